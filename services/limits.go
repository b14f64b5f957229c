package services

import (
	"math"

	"foodorder/entity"
	"foodorder/pkg/apperr"
)

// MaxQuantity bounds a single cart line or order item.
const MaxQuantity = 999

var errQuantityRange = apperr.BadRequest("quantity must be between 1 and 999")

func checkQuantity(qty int) error {
	if qty < 1 || qty > MaxQuantity {
		return errQuantityRange
	}
	return nil
}

// mulPrice returns price*qty and false when either is negative or the product overflows.
func mulPrice(price int64, qty int) (int64, bool) {
	if price < 0 || qty < 0 {
		return 0, false
	}
	if qty != 0 && price > math.MaxInt64/int64(qty) {
		return 0, false
	}
	return price * int64(qty), true
}

func addPrice(a, b int64) (int64, bool) {
	if a < 0 || b < 0 || a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}

// orderTotal sums the items and the shipping fee. The result is always positive.
func orderTotal(fee int64, items []entity.OrderItem) (int64, error) {
	total := fee
	for _, it := range items {
		line, ok := mulPrice(it.Price, it.Quantity)
		if !ok {
			return 0, apperr.BadRequest("order total is out of range")
		}
		if total, ok = addPrice(total, line); !ok {
			return 0, apperr.BadRequest("order total is out of range")
		}
	}
	if total <= 0 {
		return 0, apperr.BadRequest("order total is out of range")
	}
	return total, nil
}

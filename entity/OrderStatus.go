package entity

const (
	OrderComplete   = "ORDER_COMPLETE"
	OrderPreparing  = "PREPARING"
	OrderDelivering = "DELIVERING"
	OrderDelivered  = "DELIVERY_COMPLETE"
)

var OrderStatuses = []string{OrderComplete, OrderPreparing, OrderDelivering, OrderDelivered}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

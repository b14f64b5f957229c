// Package events carries order lifecycle notifications to interested consumers.
package events

import (
	"context"
	"errors"
	"time"
)

const (
	OrderCreated       = "ORDER_CREATED"
	OrderStatusChanged = "ORDER_STATUS_CHANGED"
)

type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    uint      `json:"orderId"`
	UserID     uint      `json:"userId"`
	StoreID    uint      `json:"storeId"`
	OwnerID    uint      `json:"ownerId"`
	Status     string    `json:"status"`
	TotalPrice int64     `json:"totalPrice"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, evt OrderEvent) error
}

// Fanout delivers an event to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, evt OrderEvent) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the state of an order.
type OrderStatus string

const (
	OrderPending         OrderStatus = "pending"
	OrderCanceled        OrderStatus = "canceled"
	OrderAccepted        OrderStatus = "accepted"
	OrderDeliveryRequest OrderStatus = "deliveryRequest"
	OrderAcceptDelivery  OrderStatus = "acceptDelivery"
	OrderRejectDelivery  OrderStatus = "rejectDelivery"
	OrderAmountReturned  OrderStatus = "amountReturned"
)

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCanceled || s == OrderAcceptDelivery || s == OrderAmountReturned
}

// OrderAction is a transition request on an order.
type OrderAction string

const (
	OrderActionCancel          OrderAction = "cancel"
	OrderActionAccept          OrderAction = "accept"
	OrderActionDeliveryRequest OrderAction = "deliveryRequest"
	OrderActionAcceptDelivery  OrderAction = "acceptDelivery"
	OrderActionRejectDelivery  OrderAction = "rejectDelivery"
	OrderActionReturnAmount    OrderAction = "returnAmount"
)

// OrderParty identifies who may perform a transition.
type OrderParty string

const (
	PartyBuyer  OrderParty = "buyer"
	PartySeller OrderParty = "seller"
	PartyAdmin  OrderParty = "admin"
)

type orderTransition struct {
	from OrderStatus
	to   OrderStatus
	by   OrderParty
}

var orderTransitions = map[OrderAction]orderTransition{
	OrderActionCancel:          {from: OrderPending, to: OrderCanceled, by: PartyBuyer},
	OrderActionAccept:          {from: OrderPending, to: OrderAccepted, by: PartySeller},
	OrderActionDeliveryRequest: {from: OrderAccepted, to: OrderDeliveryRequest, by: PartySeller},
	OrderActionAcceptDelivery:  {from: OrderDeliveryRequest, to: OrderAcceptDelivery, by: PartyBuyer},
	OrderActionRejectDelivery:  {from: OrderDeliveryRequest, to: OrderRejectDelivery, by: PartyBuyer},
	OrderActionReturnAmount:    {from: OrderRejectDelivery, to: OrderAmountReturned, by: PartyAdmin},
}

// Shipping holds delivery details supplied by the buyer.
type Shipping struct {
	Name       string
	Phone      string
	Address    string
	City       string
	PostalCode string
	Country    string
}

// Order is a marketplace purchase holding the buyer's payment in escrow until delivery.
type Order struct {
	ID          string
	BuyerID     string
	SellerID    string
	ProductID   string
	Quantity    int32
	TotalAmount decimal.Decimal
	FeeAmount   decimal.Decimal
	Shipping    Shipping
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Transition checks that actor may apply action and returns the target status.
// The actor check runs before the state check.
func (o *Order) Transition(action OrderAction, actor Actor) (OrderStatus, error) {
	t, ok := orderTransitions[action]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOrderAction, action)
	}

	if !o.actsAs(actor, t.by) {
		return "", fmt.Errorf("%w: %s requires the %s", ErrNotOrderParticipant, action, t.by)
	}

	if o.Status != t.from {
		if action == OrderActionCancel {
			return "", ErrOrderAlreadyProcessed
		}
		return "", fmt.Errorf("%w: cannot %s an order in status %s", ErrInvalidOrderTransition, action, o.Status)
	}

	return t.to, nil
}

// CanView reports whether actor may read the order.
func (o *Order) CanView(actor Actor) bool {
	return actor.ID == o.BuyerID || actor.ID == o.SellerID || actor.IsAdmin()
}

func (o *Order) actsAs(actor Actor, party OrderParty) bool {
	switch party {
	case PartyBuyer:
		return actor.ID == o.BuyerID
	case PartySeller:
		return actor.ID == o.SellerID
	case PartyAdmin:
		return actor.IsAdmin()
	}
	return false
}

// SplitFee returns the platform fee and the seller's net proceeds for total.
// The fee is rounded to cents; net absorbs the remainder.
func SplitFee(total, rate decimal.Decimal) (fee, net decimal.Decimal) {
	fee = total.Mul(rate).Round(2)
	return fee, total.Sub(fee)
}

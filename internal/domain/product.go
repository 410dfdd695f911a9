package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item with an owner who sells it.
type Product struct {
	ID        string
	OwnerID   string
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
}

// Validate checks the product before it is stored.
func (p *Product) Validate() error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	return ValidateAmount(p.Price)
}

// TotalFor returns the price of quantity units.
func (p *Product) TotalFor(quantity int32) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt32(quantity))
}

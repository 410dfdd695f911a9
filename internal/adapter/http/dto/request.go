package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// RegisterRequest represents a sign-up request.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

// VerifyRequest confirms an email address with the mailed code.
type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

// ResendOTPRequest asks for a fresh verification code.
type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RechargeRequest represents a wallet top-up.
// TotalLove defaults to Amount.
type RechargeRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	TotalLove     decimal.Decimal `json:"total_love"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=64"`
}

// ToUseCaseInput converts to use case input.
func (r *RechargeRequest) ToUseCaseInput(idempotencyKey string) usecase.RechargeInput {
	return usecase.RechargeInput{
		Amount:         r.Amount,
		TotalLove:      loveOrAmount(r.TotalLove, r.Amount),
		PaymentMethod:  r.PaymentMethod,
		IdempotencyKey: idempotencyKey,
	}
}

// TransferRequest represents a direct peer payment.
// ReceivedID is the older name for ReceiverID and is read when ReceiverID is empty.
type TransferRequest struct {
	ReceiverID    string          `json:"receiver_id"    validate:"required_without=ReceivedID"`
	ReceivedID    string          `json:"received_id"`
	Amount        decimal.Decimal `json:"amount"`
	TotalLove     decimal.Decimal `json:"total_love"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=64"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput(idempotencyKey string) usecase.TransferInput {
	return usecase.TransferInput{
		ReceiverID:     firstNonEmpty(r.ReceiverID, r.ReceivedID),
		Amount:         r.Amount,
		TotalLove:      r.TotalLove,
		PaymentMethod:  r.PaymentMethod,
		IdempotencyKey: idempotencyKey,
	}
}

// CreateLoveRequestRequest asks another user for Love.
// RequestID is the older name for TargetID.
type CreateLoveRequestRequest struct {
	TargetID  string          `json:"target_id"  validate:"required_without=RequestID"`
	RequestID string          `json:"request_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLoveRequestRequest) ToUseCaseInput() usecase.CreateLoveRequestInput {
	return usecase.CreateLoveRequestInput{
		TargetID: firstNonEmpty(r.TargetID, r.RequestID),
		Amount:   r.Amount,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// AcceptLoveRequestRequest carries the payer's details for a love request.
// Amount and TotalLove may be omitted to pay the requested amount.
type AcceptLoveRequestRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	TotalLove     decimal.Decimal `json:"total_love"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=64"`
}

// ToUseCaseInput converts to use case input.
func (r *AcceptLoveRequestRequest) ToUseCaseInput() usecase.AcceptLoveRequestInput {
	return usecase.AcceptLoveRequestInput{
		Amount:        r.Amount,
		TotalLove:     r.TotalLove,
		PaymentMethod: r.PaymentMethod,
	}
}

// CreateProductRequest lists a product for sale.
type CreateProductRequest struct {
	Name  string          `json:"name" validate:"required,max=255"`
	Price decimal.Decimal `json:"price"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateProductRequest) ToUseCaseInput() usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Name:  r.Name,
		Price: r.Price,
	}
}

// ShippingRequest is the delivery address of an order.
type ShippingRequest struct {
	Name       string `json:"name"    validate:"required"`
	Phone      string `json:"phone"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city"    validate:"required"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CreateOrderRequest places an order for a product.
type CreateOrderRequest struct {
	ProductID   string          `json:"product_id"   validate:"required"`
	Quantity    int32           `json:"quantity"     validate:"omitempty,min=1,max=1000"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Shipping    ShippingRequest `json:"shipping"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateOrderRequest) ToUseCaseInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		TotalAmount: r.TotalAmount,
		Shipping: domain.Shipping{
			Name:       r.Shipping.Name,
			Phone:      r.Shipping.Phone,
			Address:    r.Shipping.Address,
			City:       r.Shipping.City,
			PostalCode: r.Shipping.PostalCode,
			Country:    r.Shipping.Country,
		},
	}
}

func loveOrAmount(love, amount decimal.Decimal) decimal.Decimal {
	if love.IsZero() {
		return amount
	}
	return love
}

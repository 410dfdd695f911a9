package domain

import (
	"encoding/json"
	"time"
)

// AuditLog represents an audit trail entry for compliance and debugging
type AuditLog struct {
	ID           string
	UserID       string // Who performed the action
	Action       string
	ResourceType string
	ResourceID   string
	RequestID    string
	BeforeState  JSON
	AfterState   JSON
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionAccountRegister AuditAction = "account.register"
	AuditActionAccountVerify   AuditAction = "account.verify"

	AuditActionWalletRecharge AuditAction = "wallet.recharge"
	AuditActionWalletTransfer AuditAction = "wallet.transfer"

	AuditActionLoveRequestCreate AuditAction = "love_request.create"
	AuditActionLoveRequestAccept AuditAction = "love_request.accept"
	AuditActionLoveRequestReject AuditAction = "love_request.reject"

	AuditActionOrderCreate AuditAction = "order.create"
)

// OrderAuditAction returns the audit action for an order transition.
func OrderAuditAction(action OrderAction) AuditAction {
	return AuditAction("order." + string(action))
}

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}

package handler

import (
	"context"
	"net/http"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/dto"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// IdentityService defines the behavior needed by AuthHandler.
type IdentityService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	Verify(ctx context.Context, email, code string) (*domain.Account, error)
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*usecase.LoginResult, error)
}

// AuthHandler handles sign-up, verification and login.
type AuthHandler struct {
	identity IdentityService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identity IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Register creates an unverified account and mails a verification code.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := dto.Decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.identity.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Verify confirms an email address.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if err := dto.Decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.identity.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// ResendOTP mails a fresh verification code.
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendOTPRequest
	if err := dto.Decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.identity.ResendOTP(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := dto.Decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginFromUseCase(result))
}

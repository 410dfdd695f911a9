package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/dto"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

type loveRequestServiceStub struct {
	LoveRequestService

	acceptFn func(ctx context.Context, actor domain.Actor, id string, input usecase.AcceptLoveRequestInput) (*domain.LedgerEntry, error)
	listFn   func(ctx context.Context, actor domain.Actor, input usecase.ListLoveRequestsInput) ([]*domain.LoveRequest, error)
}

func (s *loveRequestServiceStub) Accept(ctx context.Context, actor domain.Actor, id string, input usecase.AcceptLoveRequestInput) (*domain.LedgerEntry, error) {
	return s.acceptFn(ctx, actor, id, input)
}

func (s *loveRequestServiceStub) List(ctx context.Context, actor domain.Actor, input usecase.ListLoveRequestsInput) ([]*domain.LoveRequest, error) {
	return s.listFn(ctx, actor, input)
}

func TestLoveRequestHandler_Accept(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"paid", nil, http.StatusOK},
		{"already decided", domain.ErrLoveRequestNotPending, http.StatusConflict},
		{"not the target", domain.ErrNotRequestTarget, http.StatusForbidden},
		{"target cannot pay", domain.ErrInsufficientBalance, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLoveRequestHandler(&loveRequestServiceStub{
				acceptFn: func(ctx context.Context, actor domain.Actor, id string, input usecase.AcceptLoveRequestInput) (*domain.LedgerEntry, error) {
					if id != "lr-1" || input.PaymentMethod != "wallet" {
						t.Fatalf("unexpected call: %s %+v", id, input)
					}
					if tt.err != nil {
						return nil, tt.err
					}
					return &domain.LedgerEntry{ID: "e-1", AccountID: actor.ID, Delta: decimal.NewFromInt(-10)}, nil
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/love-requests/lr-1/accept", bytes.NewBufferString(`{"payment_method":"wallet"}`))
			req = withActor(setChiURLParam(req, "id", "lr-1"), alice)
			rec := httptest.NewRecorder()

			h.Accept(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestLoveRequestHandler_List_Direction(t *testing.T) {
	var got usecase.LoveRequestDirection
	h := NewLoveRequestHandler(&loveRequestServiceStub{
		listFn: func(ctx context.Context, actor domain.Actor, input usecase.ListLoveRequestsInput) ([]*domain.LoveRequest, error) {
			got = input.Direction
			return []*domain.LoveRequest{{ID: "lr-1", Status: domain.LoveRequestPending}}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.List(rec, withActor(httptest.NewRequest(http.MethodGet, "/love-requests?direction=outgoing", nil), alice))

	if rec.Code != http.StatusOK || got != usecase.LoveRequestsOutgoing {
		t.Fatalf("expected outgoing listing, got %d %q", rec.Code, got)
	}
}

type orderServiceStub struct {
	OrderService

	createFn     func(ctx context.Context, actor domain.Actor, input usecase.CreateOrderInput) (*domain.Order, error)
	transitionFn func(ctx context.Context, actor domain.Actor, id string, action domain.OrderAction) (*domain.Order, error)
}

func (s *orderServiceStub) Create(ctx context.Context, actor domain.Actor, input usecase.CreateOrderInput) (*domain.Order, error) {
	return s.createFn(ctx, actor, input)
}

func (s *orderServiceStub) Transition(ctx context.Context, actor domain.Actor, id string, action domain.OrderAction) (*domain.Order, error) {
	return s.transitionFn(ctx, actor, id, action)
}

func TestOrderHandler_Create(t *testing.T) {
	h := NewOrderHandler(&orderServiceStub{
		createFn: func(ctx context.Context, actor domain.Actor, input usecase.CreateOrderInput) (*domain.Order, error) {
			return &domain.Order{
				ID:          "o-1",
				BuyerID:     actor.ID,
				ProductID:   input.ProductID,
				Quantity:    1,
				TotalAmount: input.TotalAmount,
				Status:      domain.OrderPending,
				Shipping:    input.Shipping,
			}, nil
		},
	})

	body := `{"product_id":"p-1","total_amount":"100","shipping":{"name":"Ada","address":"1 Main St","city":"Dhaka"}}`
	rec := httptest.NewRecorder()
	h.Create(rec, withActor(httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body)), alice))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	var resp dto.OrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "pending" || resp.Shipping.City != "Dhaka" || resp.BuyerID != alice.ID {
		t.Fatalf("unexpected order: %+v", resp)
	}
}

func TestOrderHandler_Transition(t *testing.T) {
	var gotAction domain.OrderAction
	h := NewOrderHandler(&orderServiceStub{
		transitionFn: func(ctx context.Context, actor domain.Actor, id string, action domain.OrderAction) (*domain.Order, error) {
			gotAction = action
			if action == domain.OrderActionCancel {
				return nil, domain.ErrInvalidOrderTransition
			}
			return &domain.Order{ID: id, Status: domain.OrderAccepted}, nil
		},
	})

	req := withActor(setChiURLParam(httptest.NewRequest(http.MethodPost, "/orders/o-1/accept", nil), "id", "o-1"), alice)
	rec := httptest.NewRecorder()
	h.Transition(domain.OrderActionAccept)(rec, req)
	if rec.Code != http.StatusOK || gotAction != domain.OrderActionAccept {
		t.Fatalf("expected accept to succeed, got %d %q", rec.Code, gotAction)
	}

	req = withActor(setChiURLParam(httptest.NewRequest(http.MethodPost, "/orders/o-1/cancel", nil), "id", "o-1"), alice)
	rec = httptest.NewRecorder()
	h.Transition(domain.OrderActionCancel)(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for cancel after accept, got %d", rec.Code)
	}
}

type notificationServiceStub struct {
	markReadFn func(ctx context.Context, actor domain.Actor, id string) error
}

func (s *notificationServiceStub) List(ctx context.Context, actor domain.Actor, input usecase.ListNotificationsInput) ([]*domain.Notification, error) {
	return []*domain.Notification{{ID: "n-1", UserID: actor.ID, Read: !input.UnreadOnly}}, nil
}

func (s *notificationServiceStub) MarkRead(ctx context.Context, actor domain.Actor, id string) error {
	return s.markReadFn(ctx, actor, id)
}

type streamerStub struct{ userID string }

func (s *streamerStub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) {
	s.userID = userID
	w.WriteHeader(http.StatusSwitchingProtocols)
}

func TestNotificationHandler(t *testing.T) {
	streamer := &streamerStub{}
	h := NewNotificationHandler(&notificationServiceStub{
		markReadFn: func(ctx context.Context, actor domain.Actor, id string) error {
			if id != "n-1" {
				return domain.ErrNotificationNotFound
			}
			return nil
		},
	}, streamer)

	rec := httptest.NewRecorder()
	h.MarkRead(rec, withActor(setChiURLParam(httptest.NewRequest(http.MethodPost, "/notifications/n-1/read", nil), "id", "n-1"), alice))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.MarkRead(rec, withActor(setChiURLParam(httptest.NewRequest(http.MethodPost, "/notifications/n-9/read", nil), "id", "n-9"), alice))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.List(rec, withActor(httptest.NewRequest(http.MethodGet, "/notifications?unread=true", nil), alice))
	var list []dto.NotificationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(list) != 1 || list[0].Read {
		t.Fatalf("unexpected notifications: %+v", list)
	}

	rec = httptest.NewRecorder()
	h.Stream(rec, withActor(httptest.NewRequest(http.MethodGet, "/notifications/stream", nil), alice))
	if streamer.userID != alice.ID {
		t.Fatalf("stream opened for %q, want %q", streamer.userID, alice.ID)
	}
}

type reconciliationServiceStub struct {
	report *usecase.ConsistencyReport
	err    error
}

func (s *reconciliationServiceStub) CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error) {
	return s.report, s.err
}

func (s *reconciliationServiceStub) ReconcileAccount(ctx context.Context, accountID string) (*usecase.ReconciliationResult, error) {
	if accountID == "missing" {
		return nil, domain.ErrAccountNotFound
	}
	return &usecase.ReconciliationResult{AccountID: accountID, IsReconciled: true}, nil
}

func TestLedgerHandler_CheckConsistency(t *testing.T) {
	tests := []struct {
		name string
		stub *reconciliationServiceStub
		want int
	}{
		{"consistent", &reconciliationServiceStub{report: &usecase.ConsistencyReport{Consistent: true}}, http.StatusOK},
		{"mismatch", &reconciliationServiceStub{report: &usecase.ConsistencyReport{
			Mismatches: []domain.BalanceMismatch{{AccountID: "a", RecordedBalance: decimal.NewFromInt(1)}},
		}}, http.StatusConflict},
		{"storage failure", &reconciliationServiceStub{err: errors.New("connection reset")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewLedgerHandler(tt.stub).CheckConsistency(rec, httptest.NewRequest(http.MethodGet, "/ledger/consistency", nil))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestLedgerHandler_Reconcile(t *testing.T) {
	h := NewLedgerHandler(&reconciliationServiceStub{})

	rec := httptest.NewRecorder()
	h.Reconcile(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/ledger/accounts/a/reconcile", nil), "id", "a"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Reconcile(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/ledger/accounts/missing/reconcile", nil), "id", "missing"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := PingerFunc(func(ctx context.Context) error { return nil })
	down := PingerFunc(func(ctx context.Context) error { return errors.New("down") })

	tests := []struct {
		name            string
		postgres, redis Pinger
		want            int
	}{
		{"ready", ok, ok, http.StatusOK},
		{"postgres down", down, ok, http.StatusServiceUnavailable},
		{"redis down", ok, down, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandler(tt.postgres, tt.redis).Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

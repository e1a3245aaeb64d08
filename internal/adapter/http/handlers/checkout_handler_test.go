package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"go.uber.org/mock/gomock"

	"eventos_inscricoes/internal/adapter/http/handlers/mocks"
	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase"
)

const createCheckoutBody = `{
	"event_id": "evt-1",
	"amount": 3,
	"registrate_myself": true,
	"billing_details": {
		"name": "Ana",
		"email": "Ana@Example.com",
		"document": "12345678900",
		"payment_method": "empenho"
	}
}`

func TestCheckoutHandler_CreateCheckout(t *testing.T) {
	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)
		r := newRouter(buyer)
		r.POST("/v1/checkouts", h.CreateCheckout)

		w := doJSON(r, http.MethodPost, "/v1/checkouts", `{"event_id":"evt-1","amount":0}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)
		r := newRouter(buyer)
		r.POST("/v1/checkouts", h.CreateCheckout)

		uc.EXPECT().CreateAcquisition(gomock.Any(), buyer, gomock.Any()).
			DoAndReturn(func(_ any, _ entities.Principal, in usecase.CreateAcquisitionInput) (entities.Checkout, error) {
				if in.EventID != "evt-1" || in.Amount != 3 || !in.RegistrateMyself {
					t.Fatalf("unexpected input: %+v", in)
				}
				if in.BillingDetails.Email != "ana@example.com" {
					t.Fatalf("expected normalized email, got %q", in.BillingDetails.Email)
				}
				return entities.Checkout{ID: "chk-1", Status: entities.CheckoutStatusPending, Amount: 3}, nil
			})

		w := doJSON(r, http.MethodPost, "/v1/checkouts", createCheckoutBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["checkout_id"] != "chk-1" || body["status"] != "pending" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("closed event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)
		r := newRouter(buyer)
		r.POST("/v1/checkouts", h.CreateCheckout)

		uc.EXPECT().CreateAcquisition(gomock.Any(), buyer, gomock.Any()).Return(entities.Checkout{}, usecase.ErrEventClosed)

		w := doJSON(r, http.MethodPost, "/v1/checkouts", createCheckoutBody)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})
}

func TestCheckoutHandler_GetCheckout(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "found", status: http.StatusOK},
		{name: "not found", err: usecase.ErrCheckoutNotFound, status: http.StatusNotFound, code: "CHECKOUT_NOT_FOUND"},
		{name: "forbidden", err: usecase.ErrForbidden, status: http.StatusForbidden, code: "FORBIDDEN"},
		{name: "internal", err: errors.New("dynamo down"), status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockICheckoutUseCase(ctrl)
			h := NewCheckoutHandler(uc)
			r := newRouter(buyer)
			r.GET("/v1/checkouts/:id", h.GetCheckout)

			uc.EXPECT().GetByID(gomock.Any(), buyer, "chk-1").Return(entities.Checkout{ID: "chk-1"}, tt.err)

			w := doJSON(r, http.MethodGet, "/v1/checkouts/chk-1", "")
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if tt.code != "" {
				body := decodeError(t, w)
				if body.Code != tt.code {
					t.Fatalf("expected code %s, got %s", tt.code, body.Code)
				}
				if tt.code == "INTERNAL_ERROR" && body.Error != "An internal error occurred" {
					t.Fatalf("internal cause leaked: %q", body.Error)
				}
			}
		})
	}
}

func TestCheckoutHandler_UpdateCheckoutStatus(t *testing.T) {
	t.Run("normalizes status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)
		r := newRouter(admin)
		r.PATCH("/v1/checkouts/:id/status", h.UpdateCheckoutStatus)

		uc.EXPECT().UpdateStatus(gomock.Any(), admin, "chk-1", entities.CheckoutStatusRefunded).
			Return(entities.Checkout{ID: "chk-1", Status: entities.CheckoutStatusRefunded}, nil)

		w := doJSON(r, http.MethodPatch, "/v1/checkouts/chk-1/status", `{"status":" Refunded "}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	errorCases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "admin only", err: usecase.ErrAdminOnly, status: http.StatusForbidden},
		{name: "transition", err: usecase.ErrInvalidStatusTransition, status: http.StatusForbidden},
		{name: "commitment managed", err: usecase.ErrCommitmentStatusManaged, status: http.StatusForbidden},
		{name: "concurrent change", err: usecase.ErrCheckoutStatusChanged, status: http.StatusConflict},
		{name: "invalid status", err: usecase.ErrInvalidCheckoutStatus, status: http.StatusBadRequest},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockICheckoutUseCase(ctrl)
			h := NewCheckoutHandler(uc)
			r := newRouter(buyer)
			r.PATCH("/v1/checkouts/:id/status", h.UpdateCheckoutStatus)

			uc.EXPECT().UpdateStatus(gomock.Any(), buyer, "chk-1", gomock.Any()).Return(entities.Checkout{}, tt.err)

			w := doJSON(r, http.MethodPatch, "/v1/checkouts/chk-1/status", `{"status":"completed"}`)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
		})
	}

	t.Run("missing status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)
		r := newRouter(admin)
		r.PATCH("/v1/checkouts/:id/status", h.UpdateCheckoutStatus)

		w := doJSON(r, http.MethodPatch, "/v1/checkouts/chk-1/status", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestCheckoutHandler_RestoreCheckout(t *testing.T) {
	t.Run("conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)
		r := newRouter(admin)
		r.POST("/v1/checkouts/:id/restore", h.RestoreCheckout)

		uc.EXPECT().Restore(gomock.Any(), admin, "chk-1").Return(entities.Checkout{}, usecase.ErrCheckoutRestoreConflict)

		w := doJSON(r, http.MethodPost, "/v1/checkouts/chk-1/restore", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)
		r := newRouter(admin)
		r.POST("/v1/checkouts/:id/restore", h.RestoreCheckout)

		uc.EXPECT().Restore(gomock.Any(), admin, "chk-1").
			Return(entities.Checkout{ID: "chk-1", Status: entities.CheckoutStatusCompleted}, nil)

		w := doJSON(r, http.MethodPost, "/v1/checkouts/chk-1/restore", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

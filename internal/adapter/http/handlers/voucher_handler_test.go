package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/mock/gomock"

	"eventos_inscricoes/internal/adapter/http/handlers/mocks"
	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase"
)

func TestVoucherHandler_GetCheckoutVoucher(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIVoucherUseCase(ctrl)
	h := NewVoucherHandler(uc)
	r := newRouter(buyer)
	r.GET("/v1/checkouts/:id/voucher", h.GetCheckoutVoucher)

	uc.EXPECT().GetByCheckout(gomock.Any(), buyer, "chk-1").Return(entities.Voucher{ID: "v-1", CheckoutID: "chk-1", Active: true}, nil)

	w := doJSON(r, http.MethodGet, "/v1/checkouts/chk-1/voucher", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["voucher_id"] != "v-1" || body["active"] != true {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestVoucherHandler_SetVoucherActive(t *testing.T) {
	t.Run("missing flag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIVoucherUseCase(ctrl)
		h := NewVoucherHandler(uc)
		r := newRouter(buyer)
		r.PATCH("/v1/voucher/:id/activate", h.SetVoucherActive)

		w := doJSON(r, http.MethodPatch, "/v1/voucher/v-1/activate", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("explicit false", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIVoucherUseCase(ctrl)
		h := NewVoucherHandler(uc)
		r := newRouter(buyer)
		r.PATCH("/v1/voucher/:id/activate", h.SetVoucherActive)

		uc.EXPECT().SetActive(gomock.Any(), buyer, "v-1", false).Return(entities.Voucher{ID: "v-1"}, nil)

		w := doJSON(r, http.MethodPatch, "/v1/voucher/v-1/activate", `{"active":false}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("not the owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIVoucherUseCase(ctrl)
		h := NewVoucherHandler(uc)
		r := newRouter(buyer)
		r.PATCH("/v1/voucher/:id/activate", h.SetVoucherActive)

		uc.EXPECT().SetActive(gomock.Any(), buyer, "v-1", true).Return(entities.Voucher{}, usecase.ErrForbidden)

		w := doJSON(r, http.MethodPatch, "/v1/voucher/v-1/activate", `{"active":true}`)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})
}

func TestVoucherHandler_ValidateVoucher(t *testing.T) {
	tests := []struct {
		name   string
		result usecase.VoucherValidation
		want   string
	}{
		{name: "valid", result: usecase.VoucherValidation{Valid: true, Remaining: 2}, want: `{"valid":true,"remaining":2}`},
		{name: "rejected", result: usecase.VoucherValidation{Reason: usecase.VoucherReasonMaximumReached}, want: `{"valid":false,"reason":"maximum number of registrations reached"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIVoucherUseCase(ctrl)
			h := NewVoucherHandler(uc)
			r := newRouter(buyer)
			r.GET("/v1/voucher/:id/validate", h.ValidateVoucher)

			uc.EXPECT().Validate(gomock.Any(), "v-1").Return(tt.result, nil)

			w := doJSON(r, http.MethodGet, "/v1/voucher/v-1/validate", "")
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			if w.Body.String() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, w.Body.String())
			}
		})
	}

	t.Run("unknown voucher", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIVoucherUseCase(ctrl)
		h := NewVoucherHandler(uc)
		r := newRouter(buyer)
		r.GET("/v1/voucher/:id/validate", h.ValidateVoucher)

		uc.EXPECT().Validate(gomock.Any(), "v-9").Return(usecase.VoucherValidation{}, usecase.ErrVoucherNotFound)

		w := doJSON(r, http.MethodGet, "/v1/voucher/v-9/validate", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestVoucherHandler_RedeemVoucher(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIVoucherUseCase(ctrl)
		h := NewVoucherHandler(uc)
		r := newRouter(buyer)
		r.POST("/v1/voucher/:id/registrate", h.RedeemVoucher)

		uc.EXPECT().Redeem(gomock.Any(), buyer, "v-1", entities.RegistrationForm{Name: "Caio", Email: "caio@example.com"}).
			Return(entities.Registration{ID: "reg-3", Status: entities.RegistrationStatusOK}, nil)

		w := doJSON(r, http.MethodPost, "/v1/voucher/v-1/registrate", `{"name":"Caio","email":"caio@example.com"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("rejected with reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIVoucherUseCase(ctrl)
		h := NewVoucherHandler(uc)
		r := newRouter(buyer)
		r.POST("/v1/voucher/:id/registrate", h.RedeemVoucher)

		uc.EXPECT().Redeem(gomock.Any(), buyer, "v-1", gomock.Any()).
			Return(entities.Registration{}, &usecase.VoucherRejectedError{Reason: usecase.VoucherReasonDisabled})

		w := doJSON(r, http.MethodPost, "/v1/voucher/v-1/registrate", `{"name":"Caio"}`)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
		body := decodeError(t, w)
		if body.Code != "VOUCHER_REJECTED" || body.Error != "voucher is disabled" {
			t.Fatalf("unexpected error body: %+v", body)
		}
	})

	t.Run("attendee already holds a purchase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIVoucherUseCase(ctrl)
		h := NewVoucherHandler(uc)
		r := newRouter(buyer)
		r.POST("/v1/voucher/:id/registrate", h.RedeemVoucher)

		uc.EXPECT().Redeem(gomock.Any(), buyer, "v-1", gomock.Any()).Return(entities.Registration{}, usecase.ErrVoucherCheckoutOccupied)

		w := doJSON(r, http.MethodPost, "/v1/voucher/v-1/registrate", `{"name":"Caio"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIVoucherUseCase(ctrl)
		h := NewVoucherHandler(uc)
		r := newRouter(entities.Principal{})
		r.POST("/v1/voucher/:id/registrate", h.RedeemVoucher)

		uc.EXPECT().Redeem(gomock.Any(), entities.Principal{}, "v-1", gomock.Any()).Return(entities.Registration{}, usecase.ErrUnauthenticated)

		w := doJSON(r, http.MethodPost, "/v1/voucher/v-1/registrate", `{"name":"Caio"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"eventos_inscricoes/internal/domain/entities"
	mock_interfaces "eventos_inscricoes/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type paymentMocks struct {
	checkouts *mock_interfaces.MockICheckoutRepository
	regs      *mock_interfaces.MockIRegistrationRepository
	vouchers  *mock_interfaces.MockIVoucherRepository
	events    *mock_interfaces.MockIEventRepository
	storage   *mock_interfaces.MockIAttachmentStorage
	gateway   *mock_interfaces.MockIPaymentGateway
	publisher *mock_interfaces.MockIEventPublisher
}

func newPaymentUseCase(t *testing.T, opts PaymentOptions) (*PaymentUseCase, paymentMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := paymentMocks{
		checkouts: mock_interfaces.NewMockICheckoutRepository(ctrl),
		regs:      mock_interfaces.NewMockIRegistrationRepository(ctrl),
		vouchers:  mock_interfaces.NewMockIVoucherRepository(ctrl),
		events:    mock_interfaces.NewMockIEventRepository(ctrl),
		storage:   mock_interfaces.NewMockIAttachmentStorage(ctrl),
		gateway:   mock_interfaces.NewMockIPaymentGateway(ctrl),
		publisher: mock_interfaces.NewMockIEventPublisher(ctrl),
	}
	uc := NewPaymentUseCase(m.checkouts, m.regs, m.vouchers, m.events, m.storage, m.gateway, m.publisher, opts)
	return uc, m
}

func commitmentCheckout(status entities.PaymentStatus) entities.Checkout {
	return entities.Checkout{
		ID:             "chk-1",
		Type:           entities.CheckoutTypeAcquire,
		Status:         entities.CheckoutStatusPending,
		UserID:         buyer.ID,
		EventID:        "evt-1",
		Amount:         2,
		TotalValue:     200,
		BillingDetails: &entities.BillingDetails{Name: "Org", Email: "org@example.com", PaymentMethod: entities.PaymentMethodCommitment},
		Payment:        &entities.Payment{Method: entities.PaymentMethodCommitment, Status: status},
	}
}

func pdf() AttachmentUpload {
	return AttachmentUpload{FileName: "nota.pdf", ContentType: "application/pdf", Size: 4, Body: strings.NewReader("%PDF")}
}

func echoPayment(_ context.Context, id string, p entities.Payment) (entities.Checkout, error) {
	c := commitmentCheckout(p.Status)
	c.ID = id
	c.Payment = &p
	return c, nil
}

func TestPaymentUseCase_UpdateCommitmentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("admin only", func(t *testing.T) {
		uc, _ := newPaymentUseCase(t, PaymentOptions{})
		if _, err := uc.UpdateCommitmentStatus(ctx, buyer, "chk-1", entities.PaymentStatusCommitted); !errors.Is(err, ErrAdminOnly) {
			t.Fatalf("expected ErrAdminOnly, got %v", err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		uc, _ := newPaymentUseCase(t, PaymentOptions{})
		if _, err := uc.UpdateCommitmentStatus(ctx, admin, "chk-1", "approved"); !errors.Is(err, ErrInvalidPaymentStatus) {
			t.Fatalf("expected ErrInvalidPaymentStatus, got %v", err)
		}
	})

	t.Run("not a commitment checkout", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		c := commitmentCheckout(entities.PaymentStatusPending)
		c.BillingDetails.PaymentMethod = entities.PaymentMethodPix
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(c, nil)

		if _, err := uc.UpdateCommitmentStatus(ctx, admin, "chk-1", entities.PaymentStatusCommitted); !errors.Is(err, ErrNotCommitmentCheckout) {
			t.Fatalf("expected ErrNotCommitmentCheckout, got %v", err)
		}
	})

	rejectedCases := []struct {
		name string
		from entities.PaymentStatus
		to   entities.PaymentStatus
	}{
		{"pending to paid skips committed", entities.PaymentStatusPending, entities.PaymentStatusPaid},
		{"paid to pending", entities.PaymentStatusPaid, entities.PaymentStatusPending},
		{"paid to committed", entities.PaymentStatusPaid, entities.PaymentStatusCommitted},
	}
	for _, tc := range rejectedCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newPaymentUseCase(t, PaymentOptions{})
			m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(tc.from), nil)

			if _, err := uc.UpdateCommitmentStatus(ctx, admin, "chk-1", tc.to); !errors.Is(err, ErrPaymentStatusTransition) {
				t.Fatalf("expected ErrPaymentStatusTransition, got %v", err)
			}
		})
	}

	allowedCases := []struct {
		name string
		from entities.PaymentStatus
		to   entities.PaymentStatus
	}{
		{"pending to committed", entities.PaymentStatusPending, entities.PaymentStatusCommitted},
		{"committed back to pending", entities.PaymentStatusCommitted, entities.PaymentStatusPending},
	}
	for _, tc := range allowedCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newPaymentUseCase(t, PaymentOptions{})
			m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(tc.from), nil)
			m.checkouts.EXPECT().UpdatePayment(gomock.Any(), "chk-1", gomock.Any()).DoAndReturn(echoPayment)

			got, err := uc.UpdateCommitmentStatus(ctx, admin, "chk-1", tc.to)
			if err != nil || got.Payment.Status != tc.to {
				t.Fatalf("unexpected result: %+v %v", got.Payment, err)
			}
		})
	}

	t.Run("same status is a no-op", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(entities.PaymentStatusCommitted), nil)

		if _, err := uc.UpdateCommitmentStatus(ctx, admin, "chk-1", entities.PaymentStatusCommitted); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("paid again resumes an unfinished completion", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(entities.PaymentStatusPaid), nil)
		m.checkouts.EXPECT().UpdateStatus(gomock.Any(), "chk-1", entities.CheckoutStatusPending, entities.CheckoutStatusCompleted).
			DoAndReturn(func(_ context.Context, _ string, _, to entities.CheckoutStatus) (entities.Checkout, error) {
				c := commitmentCheckout(entities.PaymentStatusPaid)
				c.Status = to
				return c, nil
			})
		m.vouchers.EXPECT().GetByCheckoutID(gomock.Any(), "chk-1").Return(entities.Voucher{}, nil)
		m.vouchers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, v entities.Voucher) (entities.Voucher, error) {
			return v, nil
		})
		m.regs.EXPECT().ListByCheckoutID(gomock.Any(), "chk-1").Return(nil, nil)
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		got, err := uc.UpdateCommitmentStatus(ctx, admin, "chk-1", entities.PaymentStatusPaid)
		if err != nil || got.Status != entities.CheckoutStatusCompleted {
			t.Fatalf("unexpected result: %+v %v", got, err)
		}
	})

	t.Run("committed to paid completes the checkout", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(entities.PaymentStatusCommitted), nil)
		m.checkouts.EXPECT().UpdatePayment(gomock.Any(), "chk-1", gomock.Any()).DoAndReturn(func(ctx context.Context, id string, p entities.Payment) (entities.Checkout, error) {
			if p.PaidAt == nil {
				t.Fatalf("expected paid_at to be set")
			}
			return echoPayment(ctx, id, p)
		})
		m.checkouts.EXPECT().UpdateStatus(gomock.Any(), "chk-1", entities.CheckoutStatusPending, entities.CheckoutStatusCompleted).
			DoAndReturn(func(_ context.Context, id string, _, to entities.CheckoutStatus) (entities.Checkout, error) {
				c := commitmentCheckout(entities.PaymentStatusPaid)
				c.Status = to
				return c, nil
			})
		m.vouchers.EXPECT().GetByCheckoutID(gomock.Any(), "chk-1").Return(entities.Voucher{}, nil)
		m.vouchers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, v entities.Voucher) (entities.Voucher, error) {
			return v, nil
		})
		m.regs.EXPECT().ListByCheckoutID(gomock.Any(), "chk-1").Return(nil, nil)
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		got, err := uc.UpdateCommitmentStatus(ctx, admin, "chk-1", entities.PaymentStatusPaid)
		if err != nil || got.Status != entities.CheckoutStatusCompleted {
			t.Fatalf("unexpected result: %+v %v", got, err)
		}
	})
}

func TestPaymentUseCase_UploadAttachment(t *testing.T) {
	ctx := context.Background()

	t.Run("validations", func(t *testing.T) {
		uc, _ := newPaymentUseCase(t, PaymentOptions{})
		if _, err := uc.UploadAttachment(ctx, buyer, "chk-1", "receipt", pdf()); !errors.Is(err, ErrInvalidAttachmentSlot) {
			t.Fatalf("expected ErrInvalidAttachmentSlot, got %v", err)
		}
		if _, err := uc.UploadAttachment(ctx, buyer, "chk-1", entities.AttachmentSlotCommitment, AttachmentUpload{}); !errors.Is(err, ErrAttachmentRequired) {
			t.Fatalf("expected ErrAttachmentRequired, got %v", err)
		}
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(entities.PaymentStatusPending), nil)

		if _, err := uc.UploadAttachment(ctx, stranger, "chk-1", entities.AttachmentSlotCommitment, pdf()); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("invoice is admin only", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(entities.PaymentStatusPaid), nil)

		if _, err := uc.UploadAttachment(ctx, buyer, "chk-1", entities.AttachmentSlotInvoice, pdf()); !errors.Is(err, ErrAdminOnly) {
			t.Fatalf("expected ErrAdminOnly, got %v", err)
		}
	})

	t.Run("billing method must be commitment", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		c := commitmentCheckout(entities.PaymentStatusPending)
		c.BillingDetails.PaymentMethod = entities.PaymentMethodBoleto
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(c, nil)

		if _, err := uc.UploadAttachment(ctx, buyer, "chk-1", entities.AttachmentSlotCommitment, pdf()); !errors.Is(err, ErrNotCommitmentCheckout) {
			t.Fatalf("expected ErrNotCommitmentCheckout, got %v", err)
		}
	})

	for _, slot := range []entities.AttachmentSlot{entities.AttachmentSlotCommitment, entities.AttachmentSlotPayment} {
		t.Run("upload after paid is rejected for "+string(slot), func(t *testing.T) {
			uc, m := newPaymentUseCase(t, PaymentOptions{})
			m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(entities.PaymentStatusPaid), nil).Times(2)

			for _, p := range []entities.Principal{buyer, admin} {
				if _, err := uc.UploadAttachment(ctx, p, "chk-1", slot, pdf()); !errors.Is(err, ErrAttachmentLocked) {
					t.Fatalf("expected ErrAttachmentLocked, got %v", err)
				}
			}
		})
	}

	t.Run("commitment receipt locked once committed", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(entities.PaymentStatusCommitted), nil)

		if _, err := uc.UploadAttachment(ctx, buyer, "chk-1", entities.AttachmentSlotCommitment, pdf()); !errors.Is(err, ErrAttachmentLocked) {
			t.Fatalf("expected ErrAttachmentLocked, got %v", err)
		}
	})

	t.Run("invoice before paid is rejected", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(entities.PaymentStatusCommitted), nil)

		if _, err := uc.UploadAttachment(ctx, admin, "chk-1", entities.AttachmentSlotInvoice, pdf()); !errors.Is(err, ErrAttachmentLocked) {
			t.Fatalf("expected ErrAttachmentLocked, got %v", err)
		}
	})

	t.Run("stores the file and records metadata with the tier price", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(entities.PaymentStatusPending), nil)
		m.events.EXPECT().GetByID(gomock.Any(), "evt-1").Return(openEvent(), nil)
		m.storage.EXPECT().Save(gomock.Any(), "checkouts/chk-1/commitment", gomock.Any(), int64(4), "application/pdf", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, body io.Reader, _ int64, _ string, meta map[string]string) error {
				b, _ := io.ReadAll(body)
				if string(b) != "%PDF" || meta["checkout_id"] != "chk-1" {
					t.Fatalf("unexpected upload: %q %+v", b, meta)
				}
				return nil
			})
		m.checkouts.EXPECT().UpdatePayment(gomock.Any(), "chk-1", gomock.Any()).DoAndReturn(func(ctx context.Context, id string, p entities.Payment) (entities.Checkout, error) {
			if p.Commitment == nil || p.Commitment.StoragePath != "checkouts/chk-1/commitment" || p.Commitment.FileName != "nota.pdf" {
				t.Fatalf("unexpected attachment: %+v", p.Commitment)
			}
			if p.Value != 200 || p.UpdatedAt.IsZero() {
				t.Fatalf("unexpected payment: %+v", p)
			}
			return echoPayment(ctx, id, p)
		})

		got, err := uc.UploadAttachment(ctx, buyer, "chk-1", entities.AttachmentSlotCommitment, pdf())
		if err != nil || got.Payment.Commitment == nil {
			t.Fatalf("unexpected result: %+v %v", got, err)
		}
	})

	t.Run("metadata failure removes a newly stored object", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(entities.PaymentStatusPending), nil)
		m.events.EXPECT().GetByID(gomock.Any(), "evt-1").Return(openEvent(), nil)
		m.storage.EXPECT().Save(gomock.Any(), "checkouts/chk-1/payment", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.checkouts.EXPECT().UpdatePayment(gomock.Any(), "chk-1", gomock.Any()).Return(entities.Checkout{}, errors.New("db"))
		m.storage.EXPECT().Delete(gomock.Any(), "checkouts/chk-1/payment").Return(nil)

		if _, err := uc.UploadAttachment(ctx, buyer, "chk-1", entities.AttachmentSlotPayment, pdf()); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("metadata failure keeps a replaced object", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		c := commitmentCheckout(entities.PaymentStatusPending)
		c.Payment.PaymentProof = &entities.Attachment{StoragePath: "checkouts/chk-1/payment"}
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(c, nil)
		m.events.EXPECT().GetByID(gomock.Any(), "evt-1").Return(openEvent(), nil)
		m.storage.EXPECT().Save(gomock.Any(), "checkouts/chk-1/payment", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.checkouts.EXPECT().UpdatePayment(gomock.Any(), "chk-1", gomock.Any()).Return(entities.Checkout{}, errors.New("db"))

		if _, err := uc.UploadAttachment(ctx, buyer, "chk-1", entities.AttachmentSlotPayment, pdf()); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestPaymentUseCase_DeleteAttachment(t *testing.T) {
	ctx := context.Background()

	t.Run("invoice is never deleted", func(t *testing.T) {
		uc, _ := newPaymentUseCase(t, PaymentOptions{})
		if err := uc.DeleteAttachment(ctx, admin, "chk-1", entities.AttachmentSlotInvoice); !errors.Is(err, ErrInvoiceNotDeletable) {
			t.Fatalf("expected ErrInvoiceNotDeletable, got %v", err)
		}
	})

	t.Run("empty slot", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(entities.PaymentStatusPending), nil)

		if err := uc.DeleteAttachment(ctx, buyer, "chk-1", entities.AttachmentSlotCommitment); !errors.Is(err, ErrAttachmentNotFound) {
			t.Fatalf("expected ErrAttachmentNotFound, got %v", err)
		}
	})

	t.Run("payment proof locked after paid", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		c := commitmentCheckout(entities.PaymentStatusPaid)
		c.Payment.PaymentProof = &entities.Attachment{StoragePath: "checkouts/chk-1/payment"}
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(c, nil)

		if err := uc.DeleteAttachment(ctx, buyer, "chk-1", entities.AttachmentSlotPayment); !errors.Is(err, ErrAttachmentLocked) {
			t.Fatalf("expected ErrAttachmentLocked, got %v", err)
		}
	})

	t.Run("clears metadata before removing the object", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		c := commitmentCheckout(entities.PaymentStatusPending)
		c.Payment.Commitment = &entities.Attachment{StoragePath: "checkouts/chk-1/commitment"}
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(c, nil)
		gomock.InOrder(
			m.checkouts.EXPECT().UpdatePayment(gomock.Any(), "chk-1", gomock.Any()).DoAndReturn(func(ctx context.Context, id string, p entities.Payment) (entities.Checkout, error) {
				if p.Commitment != nil {
					t.Fatalf("expected commitment cleared")
				}
				return echoPayment(ctx, id, p)
			}),
			m.storage.EXPECT().Delete(gomock.Any(), "checkouts/chk-1/commitment").Return(errors.New("s3 down")),
		)

		if err := uc.DeleteAttachment(ctx, buyer, "chk-1", entities.AttachmentSlotCommitment); err != nil {
			t.Fatalf("storage failure after metadata clear must not fail, got %v", err)
		}
	})
}

func TestPaymentUseCase_SettleWithGateway(t *testing.T) {
	ctx := context.Background()
	pixCheckout := func() entities.Checkout {
		c := commitmentCheckout(entities.PaymentStatusPending)
		c.BillingDetails.PaymentMethod = entities.PaymentMethodPix
		c.Payment.Method = entities.PaymentMethodPix
		return c
	}

	t.Run("invalid payload", func(t *testing.T) {
		uc, _ := newPaymentUseCase(t, PaymentOptions{})
		if _, err := uc.SettleWithGateway(ctx, buyer, "chk-1", json.RawMessage(`{`)); !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("commitment checkouts are not charged", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(commitmentCheckout(entities.PaymentStatusPending), nil)

		_, err := uc.SettleWithGateway(ctx, buyer, "chk-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrCommitmentNotSettleable) {
			t.Fatalf("expected ErrCommitmentNotSettleable, got %v", err)
		}
	})

	t.Run("missing payment_method_id", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(pixCheckout(), nil)

		_, err := uc.SettleWithGateway(ctx, buyer, "chk-1", json.RawMessage(`{"payer":{"email":"a@b.com"}}`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("gateway error is classified", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(pixCheckout(), nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New(`{"message":"Customer not found","code":2002}`))

		_, err := uc.SettleWithGateway(ctx, buyer, "chk-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrPaymentGatewayCustomerNotFound) {
			t.Fatalf("expected ErrPaymentGatewayCustomerNotFound, got %v", err)
		}
	})

	t.Run("approved payment completes the checkout", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(pixCheckout(), nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
			var req map[string]any
			if err := json.Unmarshal(payload, &req); err != nil {
				t.Fatalf("payload not json: %v", err)
			}
			if req["transaction_amount"] != float64(200) || req["external_reference"] != "chk-1" {
				t.Fatalf("payload not enriched: %+v", req)
			}
			payer, _ := req["payer"].(map[string]any)
			if payer["email"] != "org@example.com" {
				t.Fatalf("payer not defaulted from billing: %+v", payer)
			}
			return "123", "approved", json.RawMessage(`{"id":123}`), nil
		})
		m.checkouts.EXPECT().UpdatePayment(gomock.Any(), "chk-1", gomock.Any()).DoAndReturn(func(_ context.Context, id string, p entities.Payment) (entities.Checkout, error) {
			if p.Status != entities.PaymentStatusPaid || p.ProviderPaymentID != "123" {
				t.Fatalf("unexpected payment: %+v", p)
			}
			c := pixCheckout()
			c.Payment = &p
			return c, nil
		})
		m.checkouts.EXPECT().UpdateStatus(gomock.Any(), "chk-1", entities.CheckoutStatusPending, entities.CheckoutStatusCompleted).
			DoAndReturn(func(_ context.Context, _ string, _, to entities.CheckoutStatus) (entities.Checkout, error) {
				c := pixCheckout()
				c.Status = to
				return c, nil
			})
		m.vouchers.EXPECT().GetByCheckoutID(gomock.Any(), "chk-1").Return(entities.Voucher{ID: "v-1"}, nil)
		m.regs.EXPECT().ListByCheckoutID(gomock.Any(), "chk-1").Return(nil, nil)
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		got, err := uc.SettleWithGateway(ctx, buyer, "chk-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if err != nil || got.Status != entities.CheckoutStatusCompleted {
			t.Fatalf("unexpected result: %+v %v", got, err)
		}
	})

	t.Run("paid but still pending completes without charging again", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		c := pixCheckout()
		c.Payment.Status = entities.PaymentStatusPaid
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(c, nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Times(0)
		m.checkouts.EXPECT().UpdateStatus(gomock.Any(), "chk-1", entities.CheckoutStatusPending, entities.CheckoutStatusCompleted).
			DoAndReturn(func(_ context.Context, _ string, _, to entities.CheckoutStatus) (entities.Checkout, error) {
				done := c
				done.Status = to
				return done, nil
			})
		m.vouchers.EXPECT().GetByCheckoutID(gomock.Any(), "chk-1").Return(entities.Voucher{ID: "v-1"}, nil)
		m.regs.EXPECT().ListByCheckoutID(gomock.Any(), "chk-1").Return(nil, nil)
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		got, err := uc.SettleWithGateway(ctx, buyer, "chk-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if err != nil || got.Status != entities.CheckoutStatusCompleted {
			t.Fatalf("unexpected result: %+v %v", got, err)
		}
	})

	t.Run("completed checkout is not charged", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		c := pixCheckout()
		c.Status = entities.CheckoutStatusCompleted
		c.Payment.Status = entities.PaymentStatusPaid
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(c, nil)

		_, err := uc.SettleWithGateway(ctx, buyer, "chk-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrCheckoutNotPending) {
			t.Fatalf("expected ErrCheckoutNotPending, got %v", err)
		}
	})

	t.Run("rejected payment is recorded but reported", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(pixCheckout(), nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("124", "rejected", json.RawMessage(`{}`), nil)
		m.checkouts.EXPECT().UpdatePayment(gomock.Any(), "chk-1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, p entities.Payment) (entities.Checkout, error) {
			if p.Status != entities.PaymentStatusPending || p.ProviderStatus != "rejected" {
				t.Fatalf("unexpected payment: %+v", p)
			}
			return pixCheckout(), nil
		})

		_, err := uc.SettleWithGateway(ctx, buyer, "chk-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrPaymentNotApproved) {
			t.Fatalf("expected ErrPaymentNotApproved, got %v", err)
		}
	})

	t.Run("mock mode accepts an empty payload", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentOptions{GatewayMock: true})
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(pixCheckout(), nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("1", "pending", json.RawMessage(`{}`), nil)
		m.checkouts.EXPECT().UpdatePayment(gomock.Any(), "chk-1", gomock.Any()).Return(pixCheckout(), nil)

		_, err := uc.SettleWithGateway(ctx, buyer, "chk-1", nil)
		if !errors.Is(err, ErrPaymentNotApproved) {
			t.Fatalf("expected ErrPaymentNotApproved, got %v", err)
		}
	})
}

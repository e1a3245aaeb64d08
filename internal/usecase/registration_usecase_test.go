package usecase

import (
	"context"
	"errors"
	"testing"

	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"
	mock_interfaces "eventos_inscricoes/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type registrationMocks struct {
	repo      *mock_interfaces.MockIRegistrationRepository
	checkouts *mock_interfaces.MockICheckoutRepository
	ledger    *mock_interfaces.MockISeatLedger
	publisher *mock_interfaces.MockIEventPublisher
}

func newRegistrationUseCase(t *testing.T) (*RegistrationUseCase, registrationMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := registrationMocks{
		repo:      mock_interfaces.NewMockIRegistrationRepository(ctrl),
		checkouts: mock_interfaces.NewMockICheckoutRepository(ctrl),
		ledger:    mock_interfaces.NewMockISeatLedger(ctrl),
		publisher: mock_interfaces.NewMockIEventPublisher(ctrl),
	}
	return NewRegistrationUseCase(m.repo, m.checkouts, m.ledger, m.publisher), m
}

var (
	buyer     = entities.Principal{ID: "buyer-1"}
	admin     = entities.Principal{ID: "admin-1", IsAdmin: true}
	stranger  = entities.Principal{ID: "someone-else"}
	validForm = entities.RegistrationForm{Name: "Maria Souza", Email: "Maria@Example.com", CPF: "123.456.789-01"}
)

func completedCheckout() entities.Checkout {
	return entities.Checkout{
		ID:          "chk-1",
		Type:        entities.CheckoutTypeAcquire,
		Status:      entities.CheckoutStatusCompleted,
		UserID:      buyer.ID,
		EventID:     "evt-1",
		Amount:      2,
		SeatVersion: 4,
	}
}

func TestRegistrationUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("validations", func(t *testing.T) {
		uc, _ := newRegistrationUseCase(t)

		if _, err := uc.Create(ctx, entities.Principal{}, CreateRegistrationInput{CheckoutID: "chk-1", Form: validForm}); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
		if _, err := uc.Create(ctx, buyer, CreateRegistrationInput{CheckoutID: " ", Form: validForm}); !errors.Is(err, ErrInvalidCheckoutID) {
			t.Fatalf("expected ErrInvalidCheckoutID, got %v", err)
		}
		if _, err := uc.Create(ctx, buyer, CreateRegistrationInput{CheckoutID: "chk-1", Form: entities.RegistrationForm{Name: "x"}}); !errors.Is(err, ErrInvalidRegistrationForm) {
			t.Fatalf("expected ErrInvalidRegistrationForm, got %v", err)
		}
	})

	t.Run("checkout not found", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(entities.Checkout{}, nil)
		m.checkouts.EXPECT().GetDeletedByID(gomock.Any(), "chk-1").Return(entities.Checkout{}, nil)

		_, err := uc.Create(ctx, buyer, CreateRegistrationInput{CheckoutID: "chk-1", Form: validForm})
		if !errors.Is(err, ErrCheckoutNotFound) {
			t.Fatalf("expected ErrCheckoutNotFound, got %v", err)
		}
	})

	t.Run("deleted checkout reports the purchase as cancelled", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		deleted := completedCheckout()
		deleted.Status = entities.CheckoutStatusDeleted
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(entities.Checkout{}, nil)
		m.checkouts.EXPECT().GetDeletedByID(gomock.Any(), "chk-1").Return(deleted, nil)

		_, err := uc.Create(ctx, buyer, CreateRegistrationInput{CheckoutID: "chk-1", Form: validForm})
		if !errors.Is(err, ErrCheckoutCancelled) {
			t.Fatalf("expected ErrCheckoutCancelled, got %v", err)
		}
	})

	t.Run("only the owner or an admin", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(completedCheckout(), nil)

		_, err := uc.Create(ctx, stranger, CreateRegistrationInput{CheckoutID: "chk-1", Form: validForm})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("refunded checkout rejects new registrations", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		c := completedCheckout()
		c.Status = entities.CheckoutStatusRefunded
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(c, nil)

		_, err := uc.Create(ctx, buyer, CreateRegistrationInput{CheckoutID: "chk-1", Form: validForm})
		if !errors.Is(err, ErrCheckoutCancelled) {
			t.Fatalf("expected ErrCheckoutCancelled, got %v", err)
		}
	})

	t.Run("quota reached", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(completedCheckout(), nil)
		m.repo.EXPECT().CountByCheckoutID(gomock.Any(), "chk-1", gomock.Any(), "chk-1").Return(2, nil)

		_, err := uc.Create(ctx, buyer, CreateRegistrationInput{CheckoutID: "chk-1", Form: validForm})
		if !errors.Is(err, ErrQuotaReached) {
			t.Fatalf("expected ErrQuotaReached, got %v", err)
		}
	})

	t.Run("success commits through the ledger with the read version", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(completedCheckout(), nil)
		m.repo.EXPECT().CountByCheckoutID(gomock.Any(), "chk-1", gomock.Any(), "chk-1").Return(1, nil)
		m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, change interfaces.SeatChange) error {
			if change.CheckoutID != "chk-1" || change.ExpectedVersion != 4 || !change.NewRegistration {
				t.Fatalf("unexpected change: %+v", change)
			}
			if change.AttendeeCheckout != nil {
				t.Fatalf("expected no attendee checkout")
			}
			return nil
		})
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, evt interfaces.DomainEvent) error {
			if evt.Type != interfaces.DomainEventRegistrationCreated {
				t.Fatalf("unexpected event type %s", evt.Type)
			}
			return nil
		})

		reg, err := uc.Create(ctx, buyer, CreateRegistrationInput{CheckoutID: "chk-1", Form: validForm})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reg.Status != entities.RegistrationStatusOK || reg.CreatedByRole != entities.CreatorRoleBuyer {
			t.Fatalf("unexpected registration: %+v", reg)
		}
		if reg.Form.Email != "maria@example.com" || reg.Form.CPF != "12345678901" {
			t.Fatalf("form not normalized: %+v", reg.Form)
		}
		if reg.ID == "" || reg.ID == reg.CheckoutID {
			t.Fatalf("expected a fresh registration id, got %q", reg.ID)
		}
	})

	t.Run("pending checkout yields pending registration created by admin", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		c := completedCheckout()
		c.Status = entities.CheckoutStatusPending
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(c, nil)
		m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(nil)
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		reg, err := uc.Create(ctx, admin, CreateRegistrationInput{CheckoutID: "chk-1", Form: validForm})
		if err != nil {
			t.Fatalf("publish failure must not fail the operation, got %v", err)
		}
		if reg.Status != entities.RegistrationStatusPending || reg.CreatedByRole != entities.CreatorRoleAdmin {
			t.Fatalf("unexpected registration: %+v", reg)
		}
	})

	t.Run("version conflict re-reads and re-counts", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		first := completedCheckout()
		second := completedCheckout()
		second.SeatVersion = 5
		gomock.InOrder(
			m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(first, nil),
			m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(second, nil),
		)
		m.repo.EXPECT().CountByCheckoutID(gomock.Any(), "chk-1", gomock.Any(), "chk-1").Return(0, nil).Times(2)
		gomock.InOrder(
			m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(interfaces.ErrVersionConflict),
			m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, change interfaces.SeatChange) error {
				if change.ExpectedVersion != 5 {
					t.Fatalf("expected version 5 on retry, got %d", change.ExpectedVersion)
				}
				return nil
			}),
		)
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		if _, err := uc.Create(ctx, buyer, CreateRegistrationInput{CheckoutID: "chk-1", Form: validForm}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(completedCheckout(), nil).Times(seatCommitAttempts)
		m.repo.EXPECT().CountByCheckoutID(gomock.Any(), "chk-1", gomock.Any(), "chk-1").Return(0, nil).Times(seatCommitAttempts)
		m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(interfaces.ErrVersionConflict).Times(seatCommitAttempts)

		_, err := uc.Create(ctx, buyer, CreateRegistrationInput{CheckoutID: "chk-1", Form: validForm})
		if !errors.Is(err, ErrSeatContention) {
			t.Fatalf("expected ErrSeatContention, got %v", err)
		}
	})
}

func TestRegistrationUseCase_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	pendingReg := entities.Registration{ID: "reg-1", CheckoutID: "chk-1", AttendeeUserID: "att-1", Status: entities.RegistrationStatusPending}

	t.Run("invalid status", func(t *testing.T) {
		uc, _ := newRegistrationUseCase(t)
		if _, err := uc.UpdateStatus(ctx, admin, "reg-1", "approved"); !errors.Is(err, ErrInvalidRegistrationStatus) {
			t.Fatalf("expected ErrInvalidRegistrationStatus, got %v", err)
		}
	})

	t.Run("registration not found", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "reg-1").Return(entities.Registration{}, nil)
		if _, err := uc.UpdateStatus(ctx, admin, "reg-1", entities.RegistrationStatusOK); !errors.Is(err, ErrRegistrationNotFound) {
			t.Fatalf("expected ErrRegistrationNotFound, got %v", err)
		}
	})

	t.Run("attendee may only cancel", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "reg-1").Return(pendingReg, nil)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(completedCheckout(), nil)

		_, err := uc.UpdateStatus(ctx, entities.Principal{ID: "att-1"}, "reg-1", entities.RegistrationStatusOK)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("attendee cancels without the ledger", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "reg-1").Return(pendingReg, nil)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(completedCheckout(), nil)
		m.repo.EXPECT().UpdateStatuses(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, regs []entities.Registration) error {
			if len(regs) != 1 || regs[0].Status != entities.RegistrationStatusCancelled {
				t.Fatalf("unexpected write: %+v", regs)
			}
			return nil
		})
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		reg, err := uc.UpdateStatus(ctx, entities.Principal{ID: "att-1"}, "reg-1", entities.RegistrationStatusCancelled)
		if err != nil || reg.Status != entities.RegistrationStatusCancelled {
			t.Fatalf("unexpected result: %+v %v", reg, err)
		}
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "reg-1").Return(pendingReg, nil)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(completedCheckout(), nil)

		if _, err := uc.UpdateStatus(ctx, admin, "reg-1", entities.RegistrationStatusPending); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("owner activation passes the gate", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "reg-1").Return(pendingReg, nil)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(completedCheckout(), nil).Times(2)
		m.repo.EXPECT().CountByCheckoutID(gomock.Any(), "chk-1", gomock.Any(), "chk-1").Return(2, nil)

		_, err := uc.UpdateStatus(ctx, buyer, "reg-1", entities.RegistrationStatusOK)
		if !errors.Is(err, ErrQuotaReached) {
			t.Fatalf("expected ErrQuotaReached, got %v", err)
		}
	})

	t.Run("owner activation on a deleted checkout is cancelled", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		deleted := completedCheckout()
		deleted.Status = entities.CheckoutStatusDeleted
		m.repo.EXPECT().GetByID(gomock.Any(), "reg-1").Return(pendingReg, nil)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(entities.Checkout{}, nil).Times(2)
		m.checkouts.EXPECT().GetDeletedByID(gomock.Any(), "chk-1").Return(deleted, nil).Times(2)

		_, err := uc.UpdateStatus(ctx, buyer, "reg-1", entities.RegistrationStatusOK)
		if !errors.Is(err, ErrCheckoutCancelled) {
			t.Fatalf("expected ErrCheckoutCancelled, got %v", err)
		}
	})

	t.Run("owner activation below quota", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "reg-1").Return(pendingReg, nil)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(completedCheckout(), nil).Times(2)
		m.repo.EXPECT().CountByCheckoutID(gomock.Any(), "chk-1", gomock.Any(), "chk-1").Return(1, nil)
		m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, change interfaces.SeatChange) error {
			if change.NewRegistration || change.Registration.Status != entities.RegistrationStatusOK {
				t.Fatalf("unexpected change: %+v", change)
			}
			return nil
		})
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		reg, err := uc.UpdateStatus(ctx, buyer, "reg-1", entities.RegistrationStatusOK)
		if err != nil || reg.Status != entities.RegistrationStatusOK {
			t.Fatalf("unexpected result: %+v %v", reg, err)
		}
	})
}

func TestRegistrationUseCase_Reads(t *testing.T) {
	ctx := context.Background()
	reg := entities.Registration{ID: "reg-1", CheckoutID: "chk-1", AttendeeUserID: "att-1"}

	t.Run("attendee reads own registration without checkout lookup", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "reg-1").Return(reg, nil)

		if _, err := uc.GetByID(ctx, entities.Principal{ID: "att-1"}, "reg-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "reg-1").Return(reg, nil)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(completedCheckout(), nil)

		if _, err := uc.GetByID(ctx, stranger, "reg-1"); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("list by checkout for the owner", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(completedCheckout(), nil)
		m.repo.EXPECT().ListByCheckoutID(gomock.Any(), "chk-1").Return([]entities.Registration{reg}, nil)

		regs, err := uc.ListByCheckout(ctx, buyer, "chk-1")
		if err != nil || len(regs) != 1 {
			t.Fatalf("unexpected result: %+v %v", regs, err)
		}
	})

	t.Run("update details normalizes the form", func(t *testing.T) {
		uc, m := newRegistrationUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "reg-1").Return(reg, nil)
		m.checkouts.EXPECT().GetByID(gomock.Any(), "chk-1").Return(completedCheckout(), nil)
		m.repo.EXPECT().UpdateDetails(gomock.Any(), "reg-1", gomock.Any()).DoAndReturn(func(_ context.Context, id string, form entities.RegistrationForm) (entities.Registration, error) {
			if form.Email != "maria@example.com" {
				t.Fatalf("unexpected form: %+v", form)
			}
			out := reg
			out.Form = form
			return out, nil
		})

		if _, err := uc.UpdateDetails(ctx, buyer, "reg-1", validForm); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

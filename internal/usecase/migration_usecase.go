package usecase

import (
	"context"
	"errors"
	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"
	"fmt"

	log "github.com/sirupsen/logrus"
)

const (
	MigrationBackfillVouchers     = "vouchers"
	MigrationResyncRegistrations  = "registrations"
	migrationErrorSampleSizeLimit = 50
)

var ErrUnknownMigration = errors.New("unknown migration")

// MigrationSummary reports a batch run. Per-item failures are collected instead
// of aborting the run.
type MigrationSummary struct {
	Name      string   `json:"name"`
	Processed int      `json:"processed"`
	Changed   int      `json:"changed"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

func (s *MigrationSummary) fail(id string, err error) {
	s.Failed++
	if len(s.Errors) < migrationErrorSampleSizeLimit {
		s.Errors = append(s.Errors, fmt.Sprintf("%s: %v", id, err))
	}
}

type IMigrationUseCase interface {
	Run(ctx context.Context, p entities.Principal, name string) (MigrationSummary, error)
	BackfillVouchers(ctx context.Context) (MigrationSummary, error)
	ResyncRegistrations(ctx context.Context) (MigrationSummary, error)
}

type MigrationUseCase struct {
	checkouts interfaces.ICheckoutRepository
	vouchers  interfaces.IVoucherRepository
	lifecycle *checkoutLifecycle
}

var _ IMigrationUseCase = (*MigrationUseCase)(nil)

func NewMigrationUseCase(
	checkouts interfaces.ICheckoutRepository,
	registrations interfaces.IRegistrationRepository,
	vouchers interfaces.IVoucherRepository,
) *MigrationUseCase {
	return &MigrationUseCase{
		checkouts: checkouts,
		vouchers:  vouchers,
		lifecycle: &checkoutLifecycle{
			checkouts:     checkouts,
			registrations: registrations,
			vouchers:      vouchers,
		},
	}
}

// Run dispatches a named migration on behalf of an admin.
func (u *MigrationUseCase) Run(ctx context.Context, p entities.Principal, name string) (MigrationSummary, error) {
	if !p.IsAdmin {
		return MigrationSummary{}, ErrAdminOnly
	}
	switch name {
	case MigrationBackfillVouchers:
		return u.BackfillVouchers(ctx)
	case MigrationResyncRegistrations:
		return u.ResyncRegistrations(ctx)
	}
	return MigrationSummary{}, ErrUnknownMigration
}

// BackfillVouchers gives every completed acquire checkout its voucher.
func (u *MigrationUseCase) BackfillVouchers(ctx context.Context) (MigrationSummary, error) {
	summary := MigrationSummary{Name: MigrationBackfillVouchers}
	checkouts, err := u.checkouts.ListByStatus(ctx, entities.CheckoutStatusCompleted)
	if err != nil {
		return summary, err
	}

	for _, c := range checkouts {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Processed++
		if c.Type != entities.CheckoutTypeAcquire {
			summary.Skipped++
			continue
		}
		existing, err := u.vouchers.GetByCheckoutID(ctx, c.ID)
		if err != nil {
			summary.fail(c.ID, err)
			continue
		}
		if existing.ID != "" {
			summary.Skipped++
			continue
		}
		if err := u.lifecycle.ensureVoucher(ctx, c); err != nil {
			summary.fail(c.ID, err)
			continue
		}
		summary.Changed++
	}

	log.WithFields(log.Fields{"processed": summary.Processed, "changed": summary.Changed, "failed": summary.Failed}).
		Info("[migration][usecase] vouchers backfilled")
	return summary, nil
}

// ResyncRegistrations re-derives every registration status from its live checkout.
func (u *MigrationUseCase) ResyncRegistrations(ctx context.Context) (MigrationSummary, error) {
	summary := MigrationSummary{Name: MigrationResyncRegistrations}
	for _, status := range []entities.CheckoutStatus{
		entities.CheckoutStatusPending,
		entities.CheckoutStatusCompleted,
		entities.CheckoutStatusRefunded,
	} {
		checkouts, err := u.checkouts.ListByStatus(ctx, status)
		if err != nil {
			return summary, err
		}
		for _, c := range checkouts {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			summary.Processed++
			if c.Type != entities.CheckoutTypeAcquire {
				summary.Skipped++
				continue
			}
			changed, err := u.lifecycle.syncRegistrations(ctx, c.ID, c.Status)
			if err != nil {
				summary.fail(c.ID, err)
				continue
			}
			if changed == 0 {
				summary.Skipped++
				continue
			}
			summary.Changed++
		}
	}

	log.WithFields(log.Fields{"processed": summary.Processed, "changed": summary.Changed, "failed": summary.Failed}).
		Info("[migration][usecase] registrations resynced")
	return summary, nil
}

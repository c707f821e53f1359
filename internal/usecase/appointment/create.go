package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/metrics"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProfessionalID uint
	ClientID       uint
	ServiceType    string
	StartAt        time.Time
	Notes          string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	ledger  domain.Ledger
	pricing domain.ServicePricing
	audit   audit.Recorder
	metrics *metrics.SchedulingMetrics
	clock   timezone.Clock
	timeout time.Duration
	log     *zap.Logger
}

func NewCreateAppointment(
	ledger domain.Ledger,
	pricing domain.ServicePricing,
	audit audit.Recorder,
	m *metrics.SchedulingMetrics,
	clock timezone.Clock,
	timeout time.Duration,
	log *zap.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		ledger:  ledger,
		pricing: pricing,
		audit:   audit,
		metrics: m,
		clock:   clock,
		timeout: timeout,
		log:     log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Validação (nada é gravado antes daqui)
	// --------------------------------------------------
	st, err := catalog.Parse(in.ServiceType)
	if err != nil {
		uc.metrics.ObserveBooking("rejected")
		return nil, err
	}

	ap, err := domain.New(domain.NewInput{
		ProfessionalID: in.ProfessionalID,
		ClientID:       in.ClientID,
		ServiceType:    st,
		StartAt:        in.StartAt,
		Notes:          in.Notes,
	}, uc.clock())
	if err != nil {
		uc.metrics.ObserveBooking("rejected")
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Serviço oferecido pelo profissional
	// --------------------------------------------------
	if err := assertOffered(ctx, uc.pricing, in.ProfessionalID, st); err != nil {
		uc.metrics.ObserveBooking("rejected")
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Commit com checagem de conflito
	// --------------------------------------------------
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	err = uc.commit(ctx, ap)
	if err != nil && retryable(ctx, err) {
		uc.log.Warn("booking commit failed, retrying once",
			zap.Uint("professional_id", ap.ProfessionalID),
			zap.Error(err),
		)
		err = uc.commit(ctx, ap)
	}

	switch {
	case err == nil:
	case httperr.IsBusiness(err, httperr.CodeTimeConflict):
		uc.metrics.ObserveBooking("conflict")
		uc.audit.Dispatch(audit.Event{
			ProfessionalID: ap.ProfessionalID,
			UserID:         &in.ClientID,
			Action:         audit.ActionAppointmentConflict,
			Entity:         "appointment",
			Metadata: map[string]any{
				"service_type": st.String(),
				"start_at":     ap.StartAt,
			},
		})
		return nil, err
	case isBusiness(err):
		uc.metrics.ObserveBooking("rejected")
		return nil, err
	default:
		uc.metrics.ObserveBooking("failed")
		uc.log.Error("booking commit failed", zap.Uint("professional_id", ap.ProfessionalID), zap.Error(err))
		return nil, httperr.ErrBusinessf(httperr.CodeTryAgain, "%v", err)
	}

	// --------------------------------------------------
	// 4️⃣ Auditoria
	// --------------------------------------------------
	uc.metrics.ObserveBooking("created")
	uc.audit.Dispatch(audit.Event{
		ProfessionalID: ap.ProfessionalID,
		UserID:         &in.ClientID,
		Action:         audit.ActionAppointmentCreated,
		Entity:         "appointment",
		EntityID:       ap.ID.String(),
		Metadata: map[string]any{
			"service_type": ap.ServiceType,
			"start_at":     ap.StartAt,
			"end_at":       ap.EndAt,
		},
	})

	return ap, nil
}

// assertOffered exige preço publicado, ativo e positivo para o serviço.
func assertOffered(
	ctx context.Context,
	pricing domain.ServicePricing,
	professionalID uint,
	st catalog.ServiceType,
) error {

	price, err := pricing.GetServicePrice(ctx, professionalID, st)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			return httperr.ErrBusinessf(httperr.CodeServiceNotOffered, "%s has no published price", st)
		}
		return fmt.Errorf("load service price: %w", err)
	}

	if !price.Active || !price.Price.IsPositive() {
		return httperr.ErrBusinessf(httperr.CodeServiceNotOffered, "%s is not active", st)
	}
	return nil
}

// commit roda a checagem de conflito e a inserção na mesma transação,
// serializada por profissional.
func (uc *CreateAppointment) commit(ctx context.Context, ap *models.Appointment) error {
	err := uc.ledger.InProfessionalTx(ctx, ap.ProfessionalID, func(tx domain.Ledger) error {
		conflicts, err := NewConflictDetector(tx).Conflicts(ctx, ap.ProfessionalID, ap.StartAt, ap.EndAt)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrBusinessf(httperr.CodeTimeConflict,
				"overlaps %s-%s",
				conflicts[0].StartAt.Format(time.RFC3339), conflicts[0].EndAt.Format(time.RFC3339))
		}
		return tx.Create(ctx, ap)
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusinessf(httperr.CodeTimeConflict, "overlapping appointment for professional %d", ap.ProfessionalID)
	}
	return err
}

func isBusiness(err error) bool {
	_, ok := httperr.AsBusiness(err)
	return ok
}

// retryable: só falhas transitórias (serialização, deadlock, conexão
// perdida) ganham uma segunda tentativa, e só se o prazo não acabou.
func retryable(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return ctx.Err() == nil && httperr.IsTransient(err)
}

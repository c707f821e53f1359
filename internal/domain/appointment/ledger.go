package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// Ledger é o registro de agendamentos.
type Ledger interface {
	// InProfessionalTx executa fn numa transação que serializa as escritas
	// do profissional. Chamadas de tx dentro de fn usam a mesma transação.
	InProfessionalTx(
		ctx context.Context,
		professionalID uint,
		fn func(tx Ledger) error,
	) error

	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	// -------- Conflict / slots --------
	ListActiveOverlapping(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Listing --------
	ListForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Sweep --------
	ListExpiredScheduled(
		ctx context.Context,
		now time.Time,
		limit int,
	) ([]models.Appointment, error)

	// TransitionStatus grava o novo status de ap somente se o status
	// persistido ainda for from. Retorna false quando outra escrita venceu.
	TransitionStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) (bool, error)
}

// ServicePricing expõe o catálogo de preços publicado por profissional.
type ServicePricing interface {
	GetServicePrice(
		ctx context.Context,
		professionalID uint,
		serviceType catalog.ServiceType,
	) (*models.ServicePrice, error)
}

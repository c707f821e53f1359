package availability

import (
	"context"
	"strconv"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type SetWeeklyAvailability struct {
	store domain.Store
	audit audit.Recorder
}

func NewSetWeeklyAvailability(
	store domain.Store,
	audit audit.Recorder,
) *SetWeeklyAvailability {
	return &SetWeeklyAvailability{
		store: store,
		audit: audit,
	}
}

// Execute valida tudo antes de gravar e substitui a agenda inteira.
func (uc *SetWeeklyAvailability) Execute(
	ctx context.Context,
	professionalID uint,
	days domain.Days,
) (*domain.Weekly, error) {

	weekly, err := domain.New(professionalID, days)
	if err != nil {
		return nil, err
	}

	blob, err := domain.Serialize(weekly.Days)
	if err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, &models.Availability{
		ProfessionalID: professionalID,
		Schedule:       blob,
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: professionalID,
		UserID:         &professionalID,
		Action:         audit.ActionAvailabilityUpdated,
		Entity:         "availability",
		EntityID:       strconv.FormatUint(uint64(professionalID), 10),
		Metadata:       map[string]string{"schedule": weekly.Days.String()},
	})

	return weekly, nil
}

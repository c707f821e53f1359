package availability

import (
	"context"
	"strconv"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
)

type DeleteWeeklyAvailability struct {
	store domain.Store
	audit audit.Recorder
}

func NewDeleteWeeklyAvailability(
	store domain.Store,
	audit audit.Recorder,
) *DeleteWeeklyAvailability {
	return &DeleteWeeklyAvailability{
		store: store,
		audit: audit,
	}
}

func (uc *DeleteWeeklyAvailability) Execute(
	ctx context.Context,
	professionalID uint,
) error {

	if err := uc.store.Delete(ctx, professionalID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: professionalID,
		UserID:         &professionalID,
		Action:         audit.ActionAvailabilityDeleted,
		Entity:         "availability",
		EntityID:       strconv.FormatUint(uint64(professionalID), 10),
	})

	return nil
}

package availability

import (
	"context"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
)

type GetWeeklyAvailability struct {
	store domain.Store
}

func NewGetWeeklyAvailability(store domain.Store) *GetWeeklyAvailability {
	return &GetWeeklyAvailability{store: store}
}

// Execute devolve not_found se o profissional nunca publicou a agenda.
// Agenda publicada porém vazia volta com todos os dias vazios.
func (uc *GetWeeklyAvailability) Execute(
	ctx context.Context,
	professionalID uint,
) (*domain.Weekly, error) {

	av, err := uc.store.Get(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	days, err := domain.Parse(av.Schedule)
	if err != nil {
		return nil, err
	}

	return domain.New(professionalID, days)
}

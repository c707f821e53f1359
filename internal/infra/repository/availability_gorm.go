package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

func (r *AvailabilityGormRepository) Get(
	ctx context.Context,
	professionalID uint,
) (*models.Availability, error) {

	var av models.Availability
	if err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		First(&av).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "availability for professional %d", professionalID)
		}
		return nil, err
	}

	return &av, nil
}

// Save substitui o registro inteiro (upsert pela chave do profissional).
func (r *AvailabilityGormRepository) Save(
	ctx context.Context,
	av *models.Availability,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "professional_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"schedule", "updated_at"}),
		}).
		Create(av).Error
}

func (r *AvailabilityGormRepository) Delete(
	ctx context.Context,
	professionalID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Delete(&models.Availability{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusinessf(httperr.CodeNotFound, "availability for professional %d", professionalID)
	}

	return nil
}

var _ availability.Store = (*AvailabilityGormRepository)(nil)

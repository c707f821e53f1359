package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type ServicePriceGormRepository struct {
	db *gorm.DB
}

func NewServicePriceGormRepository(db *gorm.DB) *ServicePriceGormRepository {
	return &ServicePriceGormRepository{db: db}
}

func (r *ServicePriceGormRepository) GetServicePrice(
	ctx context.Context,
	professionalID uint,
	serviceType catalog.ServiceType,
) (*models.ServicePrice, error) {

	var sp models.ServicePrice
	if err := r.db.WithContext(ctx).
		Where("professional_id = ? AND service_type = ?", professionalID, string(serviceType)).
		First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "price of %s for professional %d", serviceType, professionalID)
		}
		return nil, err
	}

	return &sp, nil
}

func (r *ServicePriceGormRepository) ListByProfessional(
	ctx context.Context,
	professionalID uint,
	onlyActive bool,
) ([]models.ServicePrice, error) {

	q := r.db.WithContext(ctx).Where("professional_id = ?", professionalID)
	if onlyActive {
		q = q.Where("active = ?", true)
	}

	var prices []models.ServicePrice
	if err := q.Order("service_type ASC").Find(&prices).Error; err != nil {
		return nil, err
	}

	return prices, nil
}

// Upsert publica (ou atualiza) o preço de um tipo de serviço.
func (r *ServicePriceGormRepository) Upsert(
	ctx context.Context,
	sp *models.ServicePrice,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "professional_id"}, {Name: "service_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "active", "updated_at"}),
		}).
		Create(sp).Error
}

var _ domain.ServicePricing = (*ServicePriceGormRepository)(nil)

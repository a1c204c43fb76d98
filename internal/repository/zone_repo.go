package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jumparena/internal/domain"
)

var ErrNotFound = errors.New("record not found")

type ZoneRepository struct {
	db *gorm.DB
}

func NewZoneRepository(db *gorm.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

func (r *ZoneRepository) List(ctx context.Context) ([]domain.Zone, error) {
	var zones []domain.Zone
	err := r.db.WithContext(ctx).Order("zone_name").Find(&zones).Error
	return zones, err
}

func (r *ZoneRepository) GetByID(ctx context.Context, id int64) (*domain.Zone, error) {
	var z domain.Zone
	if err := r.db.WithContext(ctx).First(&z, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &z, nil
}

package directory

import (
	"context"
	"errors"
	"fmt"

	"venue-booking/models/company"

	"gorm.io/gorm"
)

// gormRepository backs the directory with Postgres.
type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) SearchByName(ctx context.Context, query string) ([]company.Company, error) {
	var companies []company.Company
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").
		Order("name ASC").
		Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	return companies, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*company.Company, error) {
	var c company.Company
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("company %d not found", id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *gormRepository) Create(ctx context.Context, c *company.Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *gormRepository) Update(ctx context.Context, c *company.Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

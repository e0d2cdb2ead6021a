package search

import (
	"context"
	"fmt"
	"time"

	"venue-booking/models/company"
	"venue-booking/models/event"

	"gorm.io/gorm"
)

// gormEventQuerier runs the event-side search queries against Postgres.
type gormEventQuerier struct {
	db *gorm.DB
}

func NewGormEventQuerier(db *gorm.DB) EventQuerier {
	return &gormEventQuerier{db: db}
}

func (q *gormEventQuerier) FindByCompany(ctx context.Context, nameQuery string, companyIDs []uint, restrictIDs bool) ([]event.Event, error) {
	tx := q.db.WithContext(ctx).Model(&event.Event{})

	if nameQuery != "" {
		tx = tx.Where("LOWER(company_name) LIKE LOWER(?)", "%"+nameQuery+"%")
	}
	if restrictIDs {
		tx = tx.Where("company_id IN ?", companyIDs)
	}

	var events []event.Event
	if err := tx.Preload("Payments").Preload("Attachments").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("query events by company: %w", err)
	}
	return events, nil
}

func (q *gormEventQuerier) FindByStartBetween(ctx context.Context, from, to time.Time) ([]event.Event, error) {
	var events []event.Event
	err := q.db.WithContext(ctx).
		Where("start_at >= ? AND start_at < ?", from, to).
		Preload("Payments").
		Preload("Attachments").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("query events by date: %w", err)
	}
	return events, nil
}

// gormCompanyQuerier resolves identification-number filters and display rows.
type gormCompanyQuerier struct {
	db *gorm.DB
}

func NewGormCompanyQuerier(db *gorm.DB) CompanyQuerier {
	return &gormCompanyQuerier{db: db}
}

func (q *gormCompanyQuerier) FindByIDNumber(ctx context.Context, idNumberQuery string) ([]company.Company, error) {
	var companies []company.Company
	err := q.db.WithContext(ctx).
		Where("id_number LIKE ?", "%"+idNumberQuery+"%").
		Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("query companies by id number: %w", err)
	}
	return companies, nil
}

func (q *gormCompanyQuerier) FindByIDs(ctx context.Context, ids []uint) ([]company.Company, error) {
	var companies []company.Company
	err := q.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("query companies by ids: %w", err)
	}
	return companies, nil
}

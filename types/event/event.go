package event

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// EventSaveRequest is the payload for creating or fully replacing a booking.
// Timestamps arrive as editable local date-times ("2006-01-02T15:04"); the
// draft layer converts them to absolute timestamps on save.
type EventSaveRequest struct {
	StartAt string `json:"start_at" validate:"required"`
	// EndAt may be omitted; it then defaults to start + 1 day.
	EndAt string `json:"end_at" validate:"omitempty"`

	CompanyID   *uint  `json:"company_id"`
	CompanyName string `json:"company_name" validate:"omitempty,max=255"`

	ContactName  string `json:"contact_name" validate:"required,max=255"`
	ContactPhone string `json:"contact_phone" validate:"required,max=30"`
	ContactEmail string `json:"contact_email" validate:"omitempty,max=255"`

	PeopleCount  int      `json:"people_count" validate:"gte=0"`
	Location     *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Description  *string  `json:"description,omitempty"`
	FoodPackages []string `json:"food_packages" validate:"dive,max=100"`

	Deposit       *float64 `json:"deposit,omitempty" validate:"omitempty,gte=0"`
	PendingAmount float64  `json:"pending_amount" validate:"gte=0"`

	Status string `json:"status" validate:"omitempty,oneof=pending partially_paid paid_in_full cancelled"`
}

// RescheduleRequest is the payload emitted by calendar drag/resize.
type RescheduleRequest struct {
	StartAt string `json:"start_at" validate:"required"`
	EndAt   string `json:"end_at" validate:"omitempty"`
}

type PaymentCreateRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaidOn      string  `json:"paid_on" validate:"required"`
	Description *string `json:"description,omitempty"`
}

type PaymentRemoveRequest struct {
	Index int `json:"index" validate:"gte=0"`
}

// Search filter modes
const (
	SearchByCompany    = "by_company"
	SearchBySingleDate = "by_single_date"
	SearchByDateRange  = "by_date_range"
)

type SearchRequest struct {
	Mode            string `json:"mode" validate:"required,oneof=by_company by_single_date by_date_range"`
	CompanyName     string `json:"company_name" validate:"omitempty,max=255"`
	CompanyIDNumber string `json:"company_id_number" validate:"omitempty,max=100"`
	Date            string `json:"date" validate:"omitempty"`
	From            string `json:"from" validate:"omitempty"`
	To              string `json:"to" validate:"omitempty"`
}

func (r EventSaveRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return nil
}

func (r RescheduleRequest) Validate() error {
	return validate.Struct(r)
}

func (r PaymentCreateRequest) Validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be a positive number")
	}
	if r.PaidOn == "" {
		return fmt.Errorf("paidOn date is required")
	}
	return nil
}

func (r SearchRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	switch r.Mode {
	case SearchBySingleDate:
		if r.Date == "" {
			return fmt.Errorf("date is required for single-date search")
		}
	case SearchByDateRange:
		if r.From == "" || r.To == "" {
			return fmt.Errorf("from and to are required for date-range search")
		}
	}
	return nil
}

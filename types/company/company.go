package company

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CompanyCreateRequest is the payload for the search-or-create flow. The
// creation form requires the full contact block.
type CompanyCreateRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	IDType        string `json:"id_type" validate:"required,oneof=tax_id citizen_id foreigner_id passport"`
	IDNumber      string `json:"id_number" validate:"required,max=100"`
	ContactPerson string `json:"contact_person" validate:"required,max=255"`
	Phone         string `json:"phone" validate:"required,max=30"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required,max=100"`
}

// CompanyUpdateRequest relaxes email, address and city to optional; the edit
// view allows clearing them.
type CompanyUpdateRequest struct {
	Name          string  `json:"name" validate:"required,max=255"`
	IDType        string  `json:"id_type" validate:"required,oneof=tax_id citizen_id foreigner_id passport"`
	IDNumber      string  `json:"id_number" validate:"required,max=100"`
	ContactPerson string  `json:"contact_person" validate:"required,max=255"`
	Phone         string  `json:"phone" validate:"required,max=30"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty" validate:"omitempty,max=100"`
}

func (r CompanyCreateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("company validation failed: %w", err)
	}
	return nil
}

func (r CompanyUpdateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("company validation failed: %w", err)
	}
	return nil
}

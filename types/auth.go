package types

import (
	"fmt"
)

type RegisterRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=255"`
	Password  string  `json:"password" validate:"required,min=8"`
	LegalName string  `json:"legal_name" validate:"required,max=255"`
	Phone     string  `json:"phone" validate:"required,max=30"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Role      string  `json:"role" validate:"omitempty,oneof=admin manager staff viewer"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Locale   string `json:"locale" validate:"omitempty,max=10"`
}

type LocaleUpdateRequest struct {
	Locale string `json:"locale" validate:"required,max=10"`
}

func (r RegisterRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if r.LegalName == "" {
		return fmt.Errorf("legalName is required")
	}
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}

func (r LoginRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

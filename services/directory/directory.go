package directory

import (
	"context"
	"fmt"
	"strings"

	"venue-booking/models/company"
	companyTypes "venue-booking/types/company"
)

// MinQueryLength gates name search so every keystroke does not scan the whole
// directory.
const MinQueryLength = 2

// Repository is the persistence surface the directory needs.
type Repository interface {
	SearchByName(ctx context.Context, query string) ([]company.Company, error)
	FindByID(ctx context.Context, id uint) (*company.Company, error)
	Create(ctx context.Context, c *company.Company) error
	Update(ctx context.Context, c *company.Company) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns companies whose name contains the query, case-insensitive.
// Queries shorter than MinQueryLength yield no search at all.
func (s *Service) Search(ctx context.Context, query string) ([]company.Company, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return []company.Company{}, nil
	}
	return s.repo.SearchByName(ctx, query)
}

// ResolveOrFlagNew picks the exact case-insensitive name match out of the
// search results. When none exists the second return is true and the caller
// should offer the create-new-company affordance.
func ResolveOrFlagNew(query string, matches []company.Company) (*company.Company, bool) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, false
	}
	for i := range matches {
		if strings.ToLower(matches[i].Name) == needle {
			return &matches[i], false
		}
	}
	return nil, true
}

// Get loads one company by identifier.
func (s *Service) Get(ctx context.Context, id uint) (*company.Company, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates the creation-form fields and persists a new company,
// returning the record with its backend-assigned identifier. Callers must
// refresh any event draft referencing it to the canonical stored name/id.
func (s *Service) Create(ctx context.Context, req companyTypes.CompanyCreateRequest, createdBy string) (*company.Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	idType := company.IdentificationType(req.IDType)
	if !idType.IsValid() {
		return nil, fmt.Errorf("identification type %q is not valid", req.IDType)
	}

	c := &company.Company{
		Name:          strings.TrimSpace(req.Name),
		IDType:        idType,
		IDNumber:      strings.TrimSpace(req.IDNumber),
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         &req.Email,
		Address:       &req.Address,
		City:          &req.City,
		CreatedBy:     createdBy,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return c, nil
}

// Update edits an existing company. The edit form relaxes email, address and
// city to optional.
func (s *Service) Update(ctx context.Context, id uint, req companyTypes.CompanyUpdateRequest, updatedBy string) (*company.Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	idType := company.IdentificationType(req.IDType)
	if !idType.IsValid() {
		return nil, fmt.Errorf("identification type %q is not valid", req.IDType)
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = strings.TrimSpace(req.Name)
	c.IDType = idType
	c.IDNumber = strings.TrimSpace(req.IDNumber)
	c.ContactPerson = req.ContactPerson
	c.Phone = req.Phone
	c.Email = req.Email
	c.Address = req.Address
	c.City = req.City
	c.UpdatedBy = updatedBy

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	return c, nil
}

package directory

import (
	"context"
	"errors"
	"testing"

	"venue-booking/models/company"
	companyTypes "venue-booking/types/company"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Repository ---

type mockRepository struct {
	searchByNameFn func(ctx context.Context, query string) ([]company.Company, error)
	findByIDFn     func(ctx context.Context, id uint) (*company.Company, error)
	createFn       func(ctx context.Context, c *company.Company) error
	updateFn       func(ctx context.Context, c *company.Company) error
}

func (m *mockRepository) SearchByName(ctx context.Context, query string) ([]company.Company, error) {
	return m.searchByNameFn(ctx, query)
}
func (m *mockRepository) FindByID(ctx context.Context, id uint) (*company.Company, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRepository) Create(ctx context.Context, c *company.Company) error {
	return m.createFn(ctx, c)
}
func (m *mockRepository) Update(ctx context.Context, c *company.Company) error {
	return m.updateFn(ctx, c)
}

func validCreateRequest() companyTypes.CompanyCreateRequest {
	return companyTypes.CompanyCreateRequest{
		Name:          "Acme Catering",
		IDType:        "tax_id",
		IDNumber:      "0105561234567",
		ContactPerson: "Jane Smith",
		Phone:         "+66812345678",
		Email:         "office@acme.example",
		Address:       "99 Sukhumvit Rd",
		City:          "Bangkok",
	}
}

// --- Tests ---

func TestSearch_ShortQuerySkipsRepository(t *testing.T) {
	called := false
	repo := &mockRepository{
		searchByNameFn: func(ctx context.Context, query string) ([]company.Company, error) {
			called = true
			return nil, nil
		},
	}
	svc := NewService(repo)

	for _, q := range []string{"", "a", " a ", "  "} {
		matches, err := svc.Search(context.Background(), q)
		assert.NoError(t, err)
		assert.Empty(t, matches)
	}
	assert.False(t, called)
}

func TestSearch_TrimsAndDelegates(t *testing.T) {
	var got string
	repo := &mockRepository{
		searchByNameFn: func(ctx context.Context, query string) ([]company.Company, error) {
			got = query
			return []company.Company{{Name: "Acme Catering"}}, nil
		},
	}
	svc := NewService(repo)

	matches, err := svc.Search(context.Background(), "  acme ")
	require.NoError(t, err)
	assert.Equal(t, "acme", got)
	assert.Len(t, matches, 1)
}

func TestResolveOrFlagNew_ExactMatchCaseInsensitive(t *testing.T) {
	matches := []company.Company{
		{ID: 1, Name: "Acme Catering"},
		{ID: 2, Name: "Acme Cat"},
	}

	resolved, offerCreate := ResolveOrFlagNew("acme catering", matches)
	require.NotNil(t, resolved)
	assert.Equal(t, uint(1), resolved.ID)
	assert.False(t, offerCreate)
}

func TestResolveOrFlagNew_NoExactMatchFlagsNew(t *testing.T) {
	matches := []company.Company{{ID: 1, Name: "Acme Catering"}}

	resolved, offerCreate := ResolveOrFlagNew("Acme", matches)
	assert.Nil(t, resolved)
	assert.True(t, offerCreate)
}

func TestResolveOrFlagNew_EmptyQuery(t *testing.T) {
	resolved, offerCreate := ResolveOrFlagNew("   ", []company.Company{{Name: "Acme"}})
	assert.Nil(t, resolved)
	assert.False(t, offerCreate)
}

func TestCreate_PersistsTrimmedRecord(t *testing.T) {
	var saved *company.Company
	repo := &mockRepository{
		createFn: func(ctx context.Context, c *company.Company) error {
			c.ID = 10
			saved = c
			return nil
		},
	}
	svc := NewService(repo)

	req := validCreateRequest()
	req.Name = "  Acme Catering  "
	created, err := svc.Create(context.Background(), req, "jane")

	require.NoError(t, err)
	assert.Equal(t, uint(10), created.ID)
	assert.Equal(t, "Acme Catering", saved.Name)
	assert.Equal(t, company.IDTypeTax, saved.IDType)
	assert.Equal(t, "jane", saved.CreatedBy)
}

func TestCreate_RejectsMissingFields(t *testing.T) {
	repo := &mockRepository{
		createFn: func(ctx context.Context, c *company.Company) error {
			t.Fatal("create must not be called on invalid input")
			return nil
		},
	}
	svc := NewService(repo)

	req := validCreateRequest()
	req.Email = ""
	_, err := svc.Create(context.Background(), req, "jane")
	assert.Error(t, err)
}

func TestCreate_RejectsUnknownIDType(t *testing.T) {
	svc := NewService(&mockRepository{})

	req := validCreateRequest()
	req.IDType = "drivers_license"
	_, err := svc.Create(context.Background(), req, "jane")
	assert.Error(t, err)
}

func TestUpdate_AppliesChanges(t *testing.T) {
	existing := &company.Company{ID: 5, Name: "Old Name", IDType: company.IDTypeTax, IDNumber: "1"}
	var saved *company.Company
	repo := &mockRepository{
		findByIDFn: func(ctx context.Context, id uint) (*company.Company, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, c *company.Company) error {
			saved = c
			return nil
		},
	}
	svc := NewService(repo)

	email := "new@acme.example"
	req := companyTypes.CompanyUpdateRequest{
		Name:          "New Name",
		IDType:        "citizen_id",
		IDNumber:      "1234567890123",
		ContactPerson: "Jane Smith",
		Phone:         "+66812345678",
		Email:         &email,
	}
	updated, err := svc.Update(context.Background(), 5, req, "admin")

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, company.IDTypeCitizen, saved.IDType)
	assert.Equal(t, "admin", saved.UpdatedBy)
	assert.Nil(t, saved.Address)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockRepository{
		findByIDFn: func(ctx context.Context, id uint) (*company.Company, error) {
			return nil, errors.New("company 99 not found")
		},
	}
	svc := NewService(repo)

	req := companyTypes.CompanyUpdateRequest{
		Name:          "X",
		IDType:        "tax_id",
		IDNumber:      "1",
		ContactPerson: "Y",
		Phone:         "+66812345678",
	}
	_, err := svc.Update(context.Background(), 99, req, "admin")
	assert.Error(t, err)
}

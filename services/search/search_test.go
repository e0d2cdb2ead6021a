package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"venue-booking/models/company"
	"venue-booking/models/event"
	eventTypes "venue-booking/types/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock queriers ---

type mockEventQuerier struct {
	findByCompanyFn      func(ctx context.Context, nameQuery string, companyIDs []uint, restrictIDs bool) ([]event.Event, error)
	findByStartBetweenFn func(ctx context.Context, from, to time.Time) ([]event.Event, error)
}

func (m *mockEventQuerier) FindByCompany(ctx context.Context, nameQuery string, companyIDs []uint, restrictIDs bool) ([]event.Event, error) {
	return m.findByCompanyFn(ctx, nameQuery, companyIDs, restrictIDs)
}
func (m *mockEventQuerier) FindByStartBetween(ctx context.Context, from, to time.Time) ([]event.Event, error) {
	return m.findByStartBetweenFn(ctx, from, to)
}

type mockCompanyQuerier struct {
	findByIDNumberFn func(ctx context.Context, idNumberQuery string) ([]company.Company, error)
	findByIDsFn      func(ctx context.Context, ids []uint) ([]company.Company, error)
}

func (m *mockCompanyQuerier) FindByIDNumber(ctx context.Context, idNumberQuery string) ([]company.Company, error) {
	return m.findByIDNumberFn(ctx, idNumberQuery)
}
func (m *mockCompanyQuerier) FindByIDs(ctx context.Context, ids []uint) ([]company.Company, error) {
	return m.findByIDsFn(ctx, ids)
}

func noCompanies() *mockCompanyQuerier {
	return &mockCompanyQuerier{
		findByIDsFn: func(ctx context.Context, ids []uint) ([]company.Company, error) {
			return nil, nil
		},
	}
}

// --- Tests ---

func TestClearInactiveFilters(t *testing.T) {
	req := eventTypes.SearchRequest{
		Mode:            eventTypes.SearchBySingleDate,
		CompanyName:     "acme",
		CompanyIDNumber: "0105",
		Date:            "2024-06-01",
		From:            "2024-06-01",
		To:              "2024-06-30",
	}

	out := ClearInactiveFilters(req)
	assert.Empty(t, out.CompanyName)
	assert.Empty(t, out.CompanyIDNumber)
	assert.Empty(t, out.From)
	assert.Empty(t, out.To)
	assert.Equal(t, "2024-06-01", out.Date)
}

func TestExecute_ByCompany_SortsByStart(t *testing.T) {
	later := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	events := &mockEventQuerier{
		findByCompanyFn: func(ctx context.Context, nameQuery string, companyIDs []uint, restrictIDs bool) ([]event.Event, error) {
			assert.Equal(t, "acme", nameQuery)
			assert.False(t, restrictIDs)
			return []event.Event{
				{ID: 2, StartAt: later, CompanyName: "Acme"},
				{ID: 1, StartAt: earlier, CompanyName: "Acme"},
			}, nil
		},
	}
	svc := NewService(events, noCompanies())

	rows, err := svc.Execute(context.Background(), eventTypes.SearchRequest{
		Mode:        eventTypes.SearchByCompany,
		CompanyName: "acme",
	})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, uint(1), rows[0].ID)
	assert.Equal(t, uint(2), rows[1].ID)
}

func TestExecute_IDNumberZeroMatchShortCircuits(t *testing.T) {
	eventsCalled := false
	events := &mockEventQuerier{
		findByCompanyFn: func(ctx context.Context, nameQuery string, companyIDs []uint, restrictIDs bool) ([]event.Event, error) {
			eventsCalled = true
			return nil, nil
		},
	}
	companies := &mockCompanyQuerier{
		findByIDNumberFn: func(ctx context.Context, idNumberQuery string) ([]company.Company, error) {
			return []company.Company{}, nil
		},
	}
	svc := NewService(events, companies)

	rows, err := svc.Execute(context.Background(), eventTypes.SearchRequest{
		Mode:            eventTypes.SearchByCompany,
		CompanyIDNumber: "no-such-number",
	})

	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.False(t, eventsCalled, "event query must be skipped when no company matches")
}

func TestExecute_IDNumberMatchesRestrictEvents(t *testing.T) {
	var gotIDs []uint
	var gotRestrict bool
	events := &mockEventQuerier{
		findByCompanyFn: func(ctx context.Context, nameQuery string, companyIDs []uint, restrictIDs bool) ([]event.Event, error) {
			gotIDs = companyIDs
			gotRestrict = restrictIDs
			return []event.Event{}, nil
		},
	}
	companies := &mockCompanyQuerier{
		findByIDNumberFn: func(ctx context.Context, idNumberQuery string) ([]company.Company, error) {
			return []company.Company{{ID: 3}, {ID: 8}}, nil
		},
		findByIDsFn: func(ctx context.Context, ids []uint) ([]company.Company, error) {
			return nil, nil
		},
	}
	svc := NewService(events, companies)

	_, err := svc.Execute(context.Background(), eventTypes.SearchRequest{
		Mode:            eventTypes.SearchByCompany,
		CompanyIDNumber: "0105",
	})

	require.NoError(t, err)
	assert.True(t, gotRestrict)
	assert.Equal(t, []uint{3, 8}, gotIDs)
}

func TestExecute_SingleDateBounds(t *testing.T) {
	var gotFrom, gotTo time.Time
	events := &mockEventQuerier{
		findByStartBetweenFn: func(ctx context.Context, from, to time.Time) ([]event.Event, error) {
			gotFrom, gotTo = from, to
			return []event.Event{}, nil
		},
	}
	svc := NewService(events, noCompanies())

	_, err := svc.Execute(context.Background(), eventTypes.SearchRequest{
		Mode: eventTypes.SearchBySingleDate,
		Date: "2024-06-01",
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), gotFrom)
	assert.Equal(t, 24*time.Hour, gotTo.Sub(gotFrom))
}

func TestExecute_DateRangeIncludesLastDay(t *testing.T) {
	var gotFrom, gotTo time.Time
	events := &mockEventQuerier{
		findByStartBetweenFn: func(ctx context.Context, from, to time.Time) ([]event.Event, error) {
			gotFrom, gotTo = from, to
			return []event.Event{}, nil
		},
	}
	svc := NewService(events, noCompanies())

	_, err := svc.Execute(context.Background(), eventTypes.SearchRequest{
		Mode: eventTypes.SearchByDateRange,
		From: "2024-06-01",
		To:   "2024-06-30",
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), gotFrom)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), gotTo)
}

func TestExecute_InvalidDate(t *testing.T) {
	svc := NewService(&mockEventQuerier{}, noCompanies())

	_, err := svc.Execute(context.Background(), eventTypes.SearchRequest{
		Mode: eventTypes.SearchBySingleDate,
		Date: "not-a-date",
	})
	assert.Error(t, err)
}

func TestExecute_UnknownMode(t *testing.T) {
	svc := NewService(&mockEventQuerier{}, noCompanies())

	_, err := svc.Execute(context.Background(), eventTypes.SearchRequest{Mode: "by_magic"})
	assert.Error(t, err)
}

func TestExecute_EnrichmentAddsCompanyFields(t *testing.T) {
	companyID := uint(3)
	events := &mockEventQuerier{
		findByStartBetweenFn: func(ctx context.Context, from, to time.Time) ([]event.Event, error) {
			return []event.Event{
				{ID: 1, CompanyID: &companyID, CompanyName: "stale name"},
				{ID: 2, CompanyName: "Walk-in"},
			}, nil
		},
	}
	companies := &mockCompanyQuerier{
		findByIDsFn: func(ctx context.Context, ids []uint) ([]company.Company, error) {
			assert.Equal(t, []uint{3}, ids)
			return []company.Company{{ID: 3, Name: "Acme Catering", IDNumber: "0105561234567"}}, nil
		},
	}
	svc := NewService(events, companies)

	rows, err := svc.Execute(context.Background(), eventTypes.SearchRequest{
		Mode: eventTypes.SearchBySingleDate,
		Date: "2024-06-01",
	})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme Catering", rows[0].CompanyDisplayName)
	assert.Equal(t, "0105561234567", rows[0].CompanyIDNumber)
	assert.Equal(t, "Walk-in", rows[1].CompanyDisplayName)
	assert.Empty(t, rows[1].CompanyIDNumber)
}

func TestExecute_EnrichmentFailureAborts(t *testing.T) {
	companyID := uint(3)
	events := &mockEventQuerier{
		findByStartBetweenFn: func(ctx context.Context, from, to time.Time) ([]event.Event, error) {
			return []event.Event{{ID: 1, CompanyID: &companyID}}, nil
		},
	}
	companies := &mockCompanyQuerier{
		findByIDsFn: func(ctx context.Context, ids []uint) ([]company.Company, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := NewService(events, companies)

	rows, err := svc.Execute(context.Background(), eventTypes.SearchRequest{
		Mode: eventTypes.SearchBySingleDate,
		Date: "2024-06-01",
	})
	assert.Error(t, err)
	assert.Nil(t, rows)
}

package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"venue-booking/models/company"
	"venue-booking/models/event"
	eventTypes "venue-booking/types/event"

	"github.com/jinzhu/now"
)

// DateLayout is the calendar-date format the filter forms submit.
const DateLayout = "2006-01-02"

// EventQuerier is the event-side persistence surface of the search layer.
type EventQuerier interface {
	// FindByCompany filters by company-name substring; when restrictIDs is
	// set only events linked to one of companyIDs match.
	FindByCompany(ctx context.Context, nameQuery string, companyIDs []uint, restrictIDs bool) ([]event.Event, error)
	// FindByStartBetween returns events whose start falls in [from, to).
	FindByStartBetween(ctx context.Context, from, to time.Time) ([]event.Event, error)
}

// CompanyQuerier resolves identification-number filters and display fields.
type CompanyQuerier interface {
	FindByIDNumber(ctx context.Context, idNumberQuery string) ([]company.Company, error)
	FindByIDs(ctx context.Context, ids []uint) ([]company.Company, error)
}

// Row is one search result with the denormalized company display fields the
// result table renders.
type Row struct {
	event.Event
	CompanyDisplayName string `json:"company_display_name"`
	CompanyIDNumber    string `json:"company_id_number"`
}

type Service struct {
	events    EventQuerier
	companies CompanyQuerier
}

func NewService(events EventQuerier, companies CompanyQuerier) *Service {
	return &Service{events: events, companies: companies}
}

// ClearInactiveFilters zeroes the filter fields that belong to the other
// modes. Selecting a mode resets stale inputs but never re-runs the search.
func ClearInactiveFilters(req eventTypes.SearchRequest) eventTypes.SearchRequest {
	switch req.Mode {
	case eventTypes.SearchByCompany:
		req.Date, req.From, req.To = "", "", ""
	case eventTypes.SearchBySingleDate:
		req.CompanyName, req.CompanyIDNumber, req.From, req.To = "", "", "", ""
	case eventTypes.SearchByDateRange:
		req.CompanyName, req.CompanyIDNumber, req.Date = "", "", ""
	}
	return req
}

// Execute runs the query for the selected mode, enriches the raw events with
// company display fields and sorts ascending by start. Any query or
// enrichment error aborts the whole search.
func (s *Service) Execute(ctx context.Context, req eventTypes.SearchRequest) ([]Row, error) {
	var (
		events []event.Event
		err    error
	)

	switch req.Mode {
	case eventTypes.SearchByCompany:
		events, err = s.executeByCompany(ctx, req)
		if err != nil {
			return nil, err
		}
		if events == nil {
			// Identification-number filter matched no company: empty result
			// without ever querying events.
			return []Row{}, nil
		}

	case eventTypes.SearchBySingleDate:
		day, perr := time.ParseInLocation(DateLayout, req.Date, time.UTC)
		if perr != nil {
			return nil, fmt.Errorf("invalid date %q", req.Date)
		}
		from := now.With(day).BeginningOfDay()
		events, err = s.events.FindByStartBetween(ctx, from, from.Add(24*time.Hour))
		if err != nil {
			return nil, fmt.Errorf("event query failed: %w", err)
		}

	case eventTypes.SearchByDateRange:
		first, perr := time.ParseInLocation(DateLayout, req.From, time.UTC)
		if perr != nil {
			return nil, fmt.Errorf("invalid range start %q", req.From)
		}
		last, perr := time.ParseInLocation(DateLayout, req.To, time.UTC)
		if perr != nil {
			return nil, fmt.Errorf("invalid range end %q", req.To)
		}
		from := now.With(first).BeginningOfDay()
		to := now.With(last).BeginningOfDay().Add(24 * time.Hour)
		events, err = s.events.FindByStartBetween(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("event query failed: %w", err)
		}

	default:
		return nil, fmt.Errorf("unknown search mode %q", req.Mode)
	}

	rows, err := s.enrich(ctx, events)
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].StartAt.Before(rows[j].StartAt)
	})
	return rows, nil
}

// executeByCompany returns nil (without error) when the identification-number
// filter short-circuits the search.
func (s *Service) executeByCompany(ctx context.Context, req eventTypes.SearchRequest) ([]event.Event, error) {
	var (
		companyIDs  []uint
		restrictIDs bool
	)

	if req.CompanyIDNumber != "" {
		matches, err := s.companies.FindByIDNumber(ctx, req.CompanyIDNumber)
		if err != nil {
			return nil, fmt.Errorf("company lookup failed: %w", err)
		}
		if len(matches) == 0 {
			return nil, nil
		}
		for _, m := range matches {
			companyIDs = append(companyIDs, m.ID)
		}
		restrictIDs = true
	}

	events, err := s.events.FindByCompany(ctx, req.CompanyName, companyIDs, restrictIDs)
	if err != nil {
		return nil, fmt.Errorf("event query failed: %w", err)
	}
	if events == nil {
		events = []event.Event{}
	}
	return events, nil
}

// enrich attaches company display fields for every event with a company
// reference. A lookup failure aborts the search rather than returning
// unenriched rows.
func (s *Service) enrich(ctx context.Context, events []event.Event) ([]Row, error) {
	idSet := map[uint]struct{}{}
	for _, ev := range events {
		if ev.CompanyID != nil {
			idSet[*ev.CompanyID] = struct{}{}
		}
	}

	byID := map[uint]company.Company{}
	if len(idSet) > 0 {
		ids := make([]uint, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		companies, err := s.companies.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("company enrichment failed: %w", err)
		}
		for _, c := range companies {
			byID[c.ID] = c
		}
	}

	rows := make([]Row, 0, len(events))
	for _, ev := range events {
		row := Row{Event: ev, CompanyDisplayName: ev.CompanyName}
		if ev.CompanyID != nil {
			if c, ok := byID[*ev.CompanyID]; ok {
				row.CompanyDisplayName = c.Name
				row.CompanyIDNumber = c.IDNumber
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

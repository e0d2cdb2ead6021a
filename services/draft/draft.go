package draft

import (
	"encoding/json"
	"strings"
	"time"

	"venue-booking/models/event"
	"venue-booking/services/ledger"
	eventTypes "venue-booking/types/event"
	"venue-booking/utils"
)

// EditLayout is the local date-time representation the edit forms work with.
const EditLayout = "2006-01-02T15:04"

// DefaultDuration is applied when a booking is created without an explicit
// end: events default to one full day.
const DefaultDuration = 24 * time.Hour

// Draft holds the mutable state of one event being created or edited.
// Timestamps are kept as editable local date-time strings until Serialize.
type Draft struct {
	ID uint

	StartAt string
	EndAt   string

	CompanyID   *uint
	CompanyName string

	ContactName  string
	ContactPhone string
	ContactEmail string

	PeopleCount  int
	Location     *string
	Description  *string
	FoodPackages []string

	Deposit       float64
	PendingAmount float64

	Status event.EventStatus

	Payments    []event.Payment
	Attachments []event.Attachment
}

// FieldErrors maps field names to user-facing validation messages.
type FieldErrors map[string]string

func (fe FieldErrors) Any() bool {
	return len(fe) > 0
}

// New initializes a draft. With an existing event all fields are copied and
// timestamps reformatted for editing; with nil a blank draft is returned with
// status defaulted to Pending and slices defaulted to empty.
func New(existing *event.Event) Draft {
	if existing == nil {
		return Draft{
			Status:       event.StatusPending,
			FoodPackages: []string{},
			Payments:     []event.Payment{},
			Attachments:  []event.Attachment{},
		}
	}

	packages := []string{}
	if existing.FoodPackages != "" {
		packages = strings.Split(existing.FoodPackages, ",")
	}

	d := Draft{
		ID:            existing.ID,
		StartAt:       existing.StartAt.Local().Format(EditLayout),
		EndAt:         existing.EndAt.Local().Format(EditLayout),
		CompanyID:     existing.CompanyID,
		CompanyName:   existing.CompanyName,
		ContactName:   existing.ContactName,
		ContactPhone:  existing.ContactPhone,
		ContactEmail:  existing.ContactEmail,
		PeopleCount:   existing.PeopleCount,
		Location:      existing.Location,
		Description:   existing.Description,
		FoodPackages:  packages,
		Deposit:       existing.Deposit,
		PendingAmount: existing.PendingAmount,
		Status:        existing.Status,
		Payments:      append([]event.Payment{}, existing.Payments...),
		Attachments:   append([]event.Attachment{}, existing.Attachments...),
	}
	return d
}

// FromRequest builds a draft on top of an optional existing event from a save
// request. An omitted end date falls back to the one-day default via
// SetStartDate.
func FromRequest(existing *event.Event, req eventTypes.EventSaveRequest) Draft {
	d := New(existing)

	d.CompanyID = req.CompanyID
	if req.CompanyName != "" {
		d.CompanyName = req.CompanyName
	}
	d.ContactName = req.ContactName
	d.ContactPhone = req.ContactPhone
	d.ContactEmail = req.ContactEmail
	d.PeopleCount = req.PeopleCount
	d.Location = req.Location
	d.Description = req.Description
	if req.FoodPackages != nil {
		d.FoodPackages = req.FoodPackages
	}
	if req.Deposit != nil {
		d.Deposit = *req.Deposit
	}
	d.PendingAmount = req.PendingAmount
	if req.Status != "" {
		d.Status = event.EventStatus(req.Status)
	}

	d.SetStartDate(req.StartAt)
	if req.EndAt != "" {
		d.SetEndDate(req.EndAt)
	}
	return d
}

// SetStartDate updates the start and recomputes the end as start plus one day.
// Callers editing the end directly use SetEndDate afterwards.
func (d *Draft) SetStartDate(value string) {
	d.StartAt = value
	if t, err := time.ParseInLocation(EditLayout, value, time.Local); err == nil {
		d.EndAt = t.Add(DefaultDuration).Format(EditLayout)
	}
}

// SetEndDate updates the end without touching the start.
func (d *Draft) SetEndDate(value string) {
	d.EndAt = value
}

// LedgerTotal returns the sum of the draft's payment entries.
func (d Draft) LedgerTotal() float64 {
	return ledger.Total(d.Payments)
}

// Validate checks the draft and returns a field-level error map. An empty map
// means the draft may be submitted.
func (d Draft) Validate() FieldErrors {
	errs := FieldErrors{}

	if d.CompanyID == nil {
		errs["company_id"] = "a company must be selected or created before saving"
	}
	if strings.TrimSpace(d.ContactName) == "" {
		errs["contact_name"] = "contact name is required"
	}
	if strings.TrimSpace(d.ContactPhone) == "" {
		errs["contact_phone"] = "contact phone is required"
	}
	if d.ContactEmail != "" && !utils.ValidateEmail(d.ContactEmail) {
		errs["contact_email"] = "email address is not valid"
	}
	if d.PeopleCount < 0 {
		errs["people_count"] = "people count cannot be negative"
	}

	start, startErr := time.ParseInLocation(EditLayout, d.StartAt, time.Local)
	if startErr != nil {
		errs["start_at"] = "start date is required"
	}
	end, endErr := time.ParseInLocation(EditLayout, d.EndAt, time.Local)
	if endErr != nil {
		errs["end_at"] = "end date is required"
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs["end_at"] = "end date must not precede the start date"
	}

	if d.Status == "" {
		errs["status"] = "status is required"
	} else if !d.Status.IsValid() {
		errs["status"] = "status is not one of the allowed values"
	}

	// The ledger is authoritative over a manually typed deposit.
	if len(d.Payments) > 0 && d.Deposit != d.LedgerTotal() {
		errs["deposit"] = "deposit is derived from the payment ledger and cannot be edited directly"
	}

	return errs
}

// TransportPayload is the draft serialized for persistence: absolute UTC
// timestamps, comma-joined package selections and JSON text for the embedded
// lists. The identifier is zero when creating a new record.
type TransportPayload struct {
	ID              uint      `json:"id,omitempty"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	CompanyID       *uint     `json:"company_id"`
	CompanyName     string    `json:"company_name"`
	ContactName     string    `json:"contact_name"`
	ContactPhone    string    `json:"contact_phone"`
	ContactEmail    string    `json:"contact_email"`
	PeopleCount     int       `json:"people_count"`
	Location        *string   `json:"location,omitempty"`
	Description     *string   `json:"description,omitempty"`
	FoodPackages    string    `json:"food_packages"`
	Deposit         float64   `json:"deposit"`
	PendingAmount   float64   `json:"pending_amount"`
	Status          string    `json:"status"`
	PaymentsJSON    string    `json:"payments_json"`
	AttachmentsJSON string    `json:"attachments_json"`
}

// Serialize converts the draft for transport. forCreate strips the identifier.
func (d Draft) Serialize(forCreate bool) (TransportPayload, error) {
	start, err := time.ParseInLocation(EditLayout, d.StartAt, time.Local)
	if err != nil {
		return TransportPayload{}, err
	}
	end, err := time.ParseInLocation(EditLayout, d.EndAt, time.Local)
	if err != nil {
		return TransportPayload{}, err
	}

	deposit := d.Deposit
	if len(d.Payments) > 0 {
		deposit = d.LedgerTotal()
	}

	paymentsJSON, err := json.Marshal(d.Payments)
	if err != nil {
		return TransportPayload{}, err
	}
	attachmentsJSON, err := json.Marshal(d.Attachments)
	if err != nil {
		return TransportPayload{}, err
	}

	p := TransportPayload{
		StartAt:         start.UTC(),
		EndAt:           end.UTC(),
		CompanyID:       d.CompanyID,
		CompanyName:     d.CompanyName,
		ContactName:     d.ContactName,
		ContactPhone:    d.ContactPhone,
		ContactEmail:    d.ContactEmail,
		PeopleCount:     d.PeopleCount,
		Location:        d.Location,
		Description:     d.Description,
		FoodPackages:    strings.Join(d.FoodPackages, ","),
		Deposit:         deposit,
		PendingAmount:   d.PendingAmount,
		Status:          d.Status.String(),
		PaymentsJSON:    string(paymentsJSON),
		AttachmentsJSON: string(attachmentsJSON),
	}
	if !forCreate {
		p.ID = d.ID
	}
	return p, nil
}

// ToModel maps a serialized payload onto the GORM event record.
func (p TransportPayload) ToModel() event.Event {
	return event.Event{
		ID:            p.ID,
		StartAt:       p.StartAt,
		EndAt:         p.EndAt,
		CompanyID:     p.CompanyID,
		CompanyName:   p.CompanyName,
		ContactName:   p.ContactName,
		ContactPhone:  p.ContactPhone,
		ContactEmail:  p.ContactEmail,
		PeopleCount:   p.PeopleCount,
		Location:      p.Location,
		Description:   p.Description,
		FoodPackages:  p.FoodPackages,
		Deposit:       p.Deposit,
		PendingAmount: p.PendingAmount,
		Status:        event.EventStatus(p.Status),
	}
}

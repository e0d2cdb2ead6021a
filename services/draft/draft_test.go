package draft

import (
	"testing"
	"time"

	"venue-booking/models/event"
	eventTypes "venue-booking/types/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() eventTypes.EventSaveRequest {
	companyID := uint(7)
	return eventTypes.EventSaveRequest{
		StartAt:      "2024-06-01T10:00",
		CompanyID:    &companyID,
		CompanyName:  "Acme Catering",
		ContactName:  "Jane Smith",
		ContactPhone: "+66812345678",
		ContactEmail: "jane@acme.example",
		PeopleCount:  120,
		FoodPackages: []string{"buffet", "dessert"},
		Status:       "pending",
	}
}

func TestNew_BlankDraftDefaults(t *testing.T) {
	d := New(nil)
	assert.Equal(t, event.StatusPending, d.Status)
	assert.NotNil(t, d.FoodPackages)
	assert.NotNil(t, d.Payments)
	assert.NotNil(t, d.Attachments)
}

func TestNew_CopiesExistingEvent(t *testing.T) {
	companyID := uint(3)
	existing := &event.Event{
		ID:           42,
		StartAt:      time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local),
		EndAt:        time.Date(2024, 6, 2, 10, 0, 0, 0, time.Local),
		CompanyID:    &companyID,
		CompanyName:  "Acme Catering",
		FoodPackages: "buffet,dessert",
		Status:       event.StatusPartiallyPaid,
	}

	d := New(existing)
	assert.Equal(t, uint(42), d.ID)
	assert.Equal(t, "2024-06-01T10:00", d.StartAt)
	assert.Equal(t, []string{"buffet", "dessert"}, d.FoodPackages)
	assert.Equal(t, event.StatusPartiallyPaid, d.Status)
}

func TestSetStartDate_EndFollowsOneDayLater(t *testing.T) {
	d := New(nil)
	d.SetStartDate("2024-06-01T10:00")
	assert.Equal(t, "2024-06-01T10:00", d.StartAt)
	assert.Equal(t, "2024-06-02T10:00", d.EndAt)
}

func TestSetEndDate_DoesNotTouchStart(t *testing.T) {
	d := New(nil)
	d.SetStartDate("2024-06-01T10:00")
	d.SetEndDate("2024-06-03T18:00")
	assert.Equal(t, "2024-06-01T10:00", d.StartAt)
	assert.Equal(t, "2024-06-03T18:00", d.EndAt)
}

func TestFromRequest_OmittedEndDefaults(t *testing.T) {
	d := FromRequest(nil, validRequest())
	assert.Equal(t, "2024-06-02T10:00", d.EndAt)
	assert.False(t, d.Validate().Any())
}

func TestFromRequest_ExplicitEndKept(t *testing.T) {
	req := validRequest()
	req.EndAt = "2024-06-05T09:00"
	d := FromRequest(nil, req)
	assert.Equal(t, "2024-06-05T09:00", d.EndAt)
}

func TestValidate_RequiresCompany(t *testing.T) {
	req := validRequest()
	req.CompanyID = nil
	d := FromRequest(nil, req)

	errs := d.Validate()
	assert.True(t, errs.Any())
	assert.Contains(t, errs, "company_id")
}

func TestValidate_RejectsBadEmail(t *testing.T) {
	req := validRequest()
	req.ContactEmail = "not-an-email"
	d := FromRequest(nil, req)

	errs := d.Validate()
	assert.Contains(t, errs, "contact_email")
}

func TestValidate_AllowsEmptyEmail(t *testing.T) {
	req := validRequest()
	req.ContactEmail = ""
	d := FromRequest(nil, req)
	assert.NotContains(t, d.Validate(), "contact_email")
}

func TestValidate_EndBeforeStart(t *testing.T) {
	req := validRequest()
	req.EndAt = "2024-05-30T10:00"
	d := FromRequest(nil, req)

	errs := d.Validate()
	assert.Contains(t, errs, "end_at")
}

func TestValidate_DepositMustMatchLedger(t *testing.T) {
	d := FromRequest(nil, validRequest())
	d.Payments = []event.Payment{
		{Amount: 100000, PaidOn: time.Now()},
		{Amount: 50000, PaidOn: time.Now()},
	}
	d.Deposit = 999

	errs := d.Validate()
	assert.Contains(t, errs, "deposit")

	d.Deposit = 150000
	assert.NotContains(t, d.Validate(), "deposit")
}

func TestValidate_DirectDepositAllowedWithoutLedger(t *testing.T) {
	d := FromRequest(nil, validRequest())
	d.Deposit = 5000
	assert.NotContains(t, d.Validate(), "deposit")
}

func TestSerialize_LedgerOverridesDeposit(t *testing.T) {
	d := FromRequest(nil, validRequest())
	d.Deposit = 999
	d.Payments = []event.Payment{
		{Amount: 100000, PaidOn: time.Now()},
		{Amount: 50000, PaidOn: time.Now()},
	}

	p, err := d.Serialize(true)
	require.NoError(t, err)
	assert.Equal(t, 150000.0, p.Deposit)
}

func TestSerialize_ForCreateStripsID(t *testing.T) {
	d := FromRequest(nil, validRequest())
	d.ID = 42

	p, err := d.Serialize(true)
	require.NoError(t, err)
	assert.Zero(t, p.ID)

	p, err = d.Serialize(false)
	require.NoError(t, err)
	assert.Equal(t, uint(42), p.ID)
}

func TestSerialize_JoinsFoodPackagesAndConvertsUTC(t *testing.T) {
	d := FromRequest(nil, validRequest())

	p, err := d.Serialize(true)
	require.NoError(t, err)
	assert.Equal(t, "buffet,dessert", p.FoodPackages)
	assert.Equal(t, time.UTC, p.StartAt.Location())

	local, _ := time.ParseInLocation(EditLayout, "2024-06-01T10:00", time.Local)
	assert.True(t, p.StartAt.Equal(local))
}

func TestSerialize_FailsOnUnparseableDates(t *testing.T) {
	d := New(nil)
	d.StartAt = "garbage"
	d.EndAt = "garbage"
	_, err := d.Serialize(true)
	assert.Error(t, err)
}

func TestToModel_RoundTrip(t *testing.T) {
	d := FromRequest(nil, validRequest())
	p, err := d.Serialize(false)
	require.NoError(t, err)

	m := p.ToModel()
	assert.Equal(t, p.StartAt, m.StartAt)
	assert.Equal(t, p.EndAt, m.EndAt)
	assert.Equal(t, "Acme Catering", m.CompanyName)
	assert.Equal(t, event.StatusPending, m.Status)
}

package constants

// Role permissions
const (
	// Admin permissions
	PermAdminFull   = "venue-booking.admin.full-permit"
	PermManagerFull = "venue-booking.manager.full-permit"
	PermStaffFull   = "venue-booking.staff.full-permit"
	PermViewerRead  = "venue-booking.viewer.read-only"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	BookingWritePermissions = []string{
		PermAdminFull,
		PermManagerFull,
		PermStaffFull,
	}
)

package models

// UserRole mirrors the role claim carried by access tokens. Token issuance
// lives in the identity service; this backend only checks roles.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleOrganizer UserRole = "organizer"
	RoleCoach     UserRole = "coach"
	RoleViewer    UserRole = "viewer"
)

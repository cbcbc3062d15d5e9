package models

// RoleName defines the fixed role lookup set
type RoleName string

const (
	RoleAdmin      RoleName = "Admin"
	RoleManager    RoleName = "Manager"
	RoleStaff      RoleName = "Staff"
	RoleConsultant RoleName = "Consultant"
	RoleMember     RoleName = "Member"

	// RoleGuest is not a stored role; it marks routes open to unauthenticated callers
	RoleGuest RoleName = "Guest"
)

// ProgramType defines how a community program is held
type ProgramType string

const (
	ProgramOnline  ProgramType = "online"
	ProgramOffline ProgramType = "offline"
	ProgramHybrid  ProgramType = "hybrid"
)

// ProgramStatus is derived from the program date by the daily sweep
type ProgramStatus string

const (
	ProgramUpcoming  ProgramStatus = "upcoming"
	ProgramOngoing   ProgramStatus = "ongoing"
	ProgramCompleted ProgramStatus = "completed"
)

// SurveyType tags a program survey mapping
type SurveyType string

const (
	SurveyBefore SurveyType = "before"
	SurveyAfter  SurveyType = "after"
)

// AppointmentStatus represents the lifecycle of a consultation appointment
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentRejected  AppointmentStatus = "rejected"
)

package dto

// MeetingTokenRequest asks for a room token for either a program or an appointment
type MeetingTokenRequest struct {
	ProgramID     *int64 `json:"programId,omitempty"`
	AppointmentID *int64 `json:"appointmentId,omitempty"`
}

// MeetingTokenResponse carries a signed room-scoped token
type MeetingTokenResponse struct {
	RoomID    string `json:"roomId"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

package models

import "time"

// Consultant profile linked one-to-one with an account
type Consultant struct {
	ID         int64  `json:"id" db:"id"`
	AccountID  int64  `json:"accountId" db:"account_id"`
	Specialty  string `json:"specialty" db:"specialty"`
	Bio        string `json:"bio" db:"bio"`
	IsDisabled bool   `json:"isDisabled" db:"is_disabled"`

	// Related entities
	Account *Account `json:"account,omitempty"`
}

// ConsultantSchedule is an atomic availability slot (date, start, end)
type ConsultantSchedule struct {
	ID           int64     `json:"id" db:"id"`
	ConsultantID int64     `json:"consultantId" db:"consultant_id"`
	Date         time.Time `json:"date" db:"date"`
	StartTime    string    `json:"startTime" db:"start_time"`
	EndTime      string    `json:"endTime" db:"end_time"`
}

package entity

// Appointment is one tracked embassy case. Every business field is optional;
// nil means the user never filled it in, which is distinct from an empty string.
// Date fields hold UTC-midnight epoch millis of a calendar day.
type Appointment struct {
	ID              int `gorm:"primaryKey"`
	ApplicantName   *string
	ReferenceNumber *string
	EmbassyOrCity   *string
	ApplyDate       *int64
	ReceivedDate    *int64
	InterviewDate   *int64
	Notes           *string
	CreatedAt       int64 `gorm:"not null"`
}

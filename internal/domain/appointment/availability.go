package appointment

import "time"

type SlotsInput struct {
	ProfessionalID uint
	Date           time.Time
	Duration       time.Duration
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

package model

// TimeSlot is one consultation slot on the simulated calendar.
type TimeSlot struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM
	Attorney  string `json:"attorney"`
	Available bool   `json:"available"`
}

// SchedulingSuggestion is the output of the scheduling stage when it runs.
type SchedulingSuggestion struct {
	Suggestion string     `json:"suggestion"`
	Slots      []TimeSlot `json:"slots"`
}

// Appointment is a booked consultation.
type Appointment struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	Type            string `json:"type"` // "phone", "video", "in_person"
	Attorney        string `json:"attorney"`
	ClientName      string `json:"client_name"`
	ClientPhone     string `json:"client_phone"`
	CaseType        string `json:"case_type"`
	Status          string `json:"status"`
}

package models

// Schedule is an available class time slot.
type Schedule struct {
	ID                string `json:"id"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	Available         bool   `json:"available"`
	MaxCapacity       int    `json:"maxCapacity"`
	CurrentEnrollment int    `json:"currentEnrollment"`
}

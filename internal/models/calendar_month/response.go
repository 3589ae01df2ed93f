package models

// CalendarMonthResponse maps each date in the month that has an entry to its
// color index; dates without entries are absent.
type CalendarMonthResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Days  map[string]int `json:"days"`
}

package models

type CalendarMonthRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

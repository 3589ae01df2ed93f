package models

type SelectDateRequest struct {
	Date string `json:"date"`
}

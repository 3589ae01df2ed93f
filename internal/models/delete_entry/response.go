package models

type DeleteEntryResponse struct {
	Date    string `json:"date"`
	Message string `json:"message"`
}

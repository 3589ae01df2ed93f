package models

import "github.com/hibi-app/hibi-server/internal/diary"

type SaveEntryResponse struct {
	Date    string      `json:"date"`
	Entry   diary.Entry `json:"entry"`
	Message string      `json:"message"`
}

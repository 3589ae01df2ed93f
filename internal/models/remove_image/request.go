package models

type RemoveImageRequest struct {
	Index *int `json:"index"`
}

package models

// RejectedImage is a file the server could not admit, with the reason.
type RejectedImage struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// AddImagesResponse reports per-file outcomes: admitted files are staged for
// the next save, rejected ones exceeded the image ceiling, failed ones could
// not be decoded as images.
type AddImagesResponse struct {
	Admitted int             `json:"admitted"`
	Rejected int             `json:"rejected"`
	Failed   []RejectedImage `json:"failed"`
}

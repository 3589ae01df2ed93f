package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hibi-app/hibi-server/internal/diary"
	"github.com/hibi-app/hibi-server/internal/imaging"
	addmodels "github.com/hibi-app/hibi-server/internal/models/add_images"
	removemodels "github.com/hibi-app/hibi-server/internal/models/remove_image"
)

// maxUploadBytes bounds one add-images request; five images from a phone
// camera fit comfortably.
const maxUploadBytes = 64 << 20

// AddImages stages the uploaded files on the caller's session. Files that do
// not decode as images are reported individually and never block their
// siblings; decodable files beyond the image ceiling are counted as
// rejected.
func (h *DiaryHandler) AddImages(c *gin.Context) {
	uid, ok := userUID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No images provided"})
		return
	}

	var pending []diary.PendingImage
	var failed []addmodels.RejectedImage
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			failed = append(failed, addmodels.RejectedImage{Filename: fh.Filename, Error: "could not read file"})
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			failed = append(failed, addmodels.RejectedImage{Filename: fh.Filename, Error: "could not read file"})
			continue
		}

		if err := imaging.Probe(data); err != nil {
			failed = append(failed, addmodels.RejectedImage{Filename: fh.Filename, Error: "not a decodable image"})
			continue
		}

		pending = append(pending, diary.PendingImage{Filename: fh.Filename, Data: data})
	}

	session := h.sessions.Session(uid)
	admitted, rejected, err := session.AddImages(pending)
	if err != nil {
		respondError(c, err)
		return
	}

	if failed == nil {
		failed = []addmodels.RejectedImage{}
	}
	c.JSON(http.StatusOK, addmodels.AddImagesResponse{
		Admitted: admitted,
		Rejected: rejected,
		Failed:   failed,
	})
}

// RemoveImage drops the attachment at the given position, persisted or
// pending alike.
func (h *DiaryHandler) RemoveImage(c *gin.Context) {
	var req removemodels.RemoveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image index is required"})
		return
	}

	uid, ok := userUID(c)
	if !ok {
		return
	}

	session := h.sessions.Session(uid)
	if err := session.RemoveImage(*req.Index); err != nil {
		h.logError(c, err, "remove image failed", "index", *req.Index)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

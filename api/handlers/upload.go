package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"familykarting/api/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PhotoService stores the uploaded photos.
type PhotoService interface {
	Upload(ctx context.Context, folder string, r io.Reader) (*dto.Upload, error)
	Delete(ctx context.Context, url string) error
}

// UploadHandler is the handler for the photo uploads.
type UploadHandler struct {
	PhotoService PhotoService
	MaxBytes     int64
	Logger       *logrus.Logger
}

type UploadHandlerDependencies struct {
	PhotoService PhotoService
	MaxBytes     int64
	Logger       *logrus.Logger
}

// NewUploadHandler creates a new instance of the upload handler.
func NewUploadHandler(deps *UploadHandlerDependencies) *UploadHandler {
	return &UploadHandler{
		PhotoService: deps.PhotoService,
		MaxBytes:     deps.MaxBytes,
		Logger:       deps.Logger,
	}
}

// UploadPhoto reads the "file" field of a multipart form into the "folder" folder.
func (h *UploadHandler) UploadPhoto(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	defer file.Close()

	result, err := h.PhotoService.Upload(c.Request.Context(), c.PostForm("folder"), file)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// DeletePhoto removes a photo by its public URL.
func (h *UploadHandler) DeletePhoto(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing url"})
		return
	}

	if err := h.PhotoService.Delete(c.Request.Context(), url); err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

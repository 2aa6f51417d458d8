package handler

import (
	"errors"
	"log"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/dto/response"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
	"github.com/timbangcerdas/timbang-api/pkg/storage"
)

// FileOpener resolves a stored file of an owner to a local path.
type FileOpener interface {
	Open(owner, name string) (string, error)
}

// FileHandler serves generated receipts and reports to their owner
type FileHandler struct {
	files FileOpener
}

// NewFileHandler creates a new file handler
func NewFileHandler(files FileOpener) *FileHandler {
	return &FileHandler{files: files}
}

// Download streams a stored file. Files are looked up under the caller's own
// directory, so one user cannot fetch another's documents.
// @Summary Download file
// @Tags files
// @Security BearerAuth
// @Produce application/pdf
// @Param name path string true "File name"
// @Router /files/{name} [get]
func (h *FileHandler) Download(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	name := c.Param("name")
	path, err := h.files.Open(userID.String(), name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		response.Error(c, apperror.NewNotFoundError("File"))
		return
	case err != nil:
		log.Printf("Failed to open %s: %v", name, err)
		response.BadRequest(c, "Nama file tidak valid")
		return
	}

	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		c.Header("Content-Type", "application/pdf")
	}
	c.FileAttachment(path, storage.DisplayName(name))
}

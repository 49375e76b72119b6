package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/middleware"
	"github.com/BruksfildServices01/marketplace-api/internal/storage"
	ucProvider "github.com/BruksfildServices01/marketplace-api/internal/usecase/provider"
)

// DocumentHandler serves locally stored uploads to the callers allowed to
// read them.
type DocumentHandler struct {
	docs  *ucProvider.Documents
	files *storage.LocalStore
}

func NewDocumentHandler(docs *ucProvider.Documents, files *storage.LocalStore) *DocumentHandler {
	return &DocumentHandler{docs: docs, files: files}
}

func (h *DocumentHandler) Get(c *gin.Context) {
	key, err := h.docs.Authorize(
		c.Request.Context(),
		middleware.UserID(c),
		middleware.Role(c),
		c.Param("filepath"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	full, err := h.files.Resolve(key)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Header("Cache-Control", "private, no-store")
	c.File(full)
}

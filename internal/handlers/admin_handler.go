package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/httpresp"
	ucAdmin "github.com/BruksfildServices01/marketplace-api/internal/usecase/admin"
)

type AdminHandler struct {
	stats *ucAdmin.Stats
}

func NewAdminHandler(stats *ucAdmin.Stats) *AdminHandler {
	return &AdminHandler{stats: stats}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	out, err := h.stats.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

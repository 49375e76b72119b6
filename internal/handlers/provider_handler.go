package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/httpresp"
	"github.com/BruksfildServices01/marketplace-api/internal/middleware"
	"github.com/BruksfildServices01/marketplace-api/internal/storage"
	ucProvider "github.com/BruksfildServices01/marketplace-api/internal/usecase/provider"
)

type ProviderHandler struct {
	requestRole *ucProvider.RequestRole
	review      *ucProvider.ReviewVerification
	update      *ucProvider.UpdateProfile
	upload      *ucProvider.UploadDocument
	queries     *ucProvider.Queries
	offered     *ucProvider.OfferedServices
}

type ProviderUseCases struct {
	RequestRole *ucProvider.RequestRole
	Review      *ucProvider.ReviewVerification
	Update      *ucProvider.UpdateProfile
	Upload      *ucProvider.UploadDocument
	Queries     *ucProvider.Queries
	Offered     *ucProvider.OfferedServices
}

func NewProviderHandler(uc ProviderUseCases) *ProviderHandler {
	return &ProviderHandler{
		requestRole: uc.RequestRole,
		review:      uc.Review,
		update:      uc.Update,
		upload:      uc.Upload,
		queries:     uc.Queries,
		offered:     uc.Offered,
	}
}

// --------- Requests ---------

type RequestRoleRequest struct {
	RequestedRole   string `json:"requested_role" binding:"required"`
	Message         string `json:"message" binding:"max=500"`
	AreaDescription string `json:"service_area_description" binding:"max=255"`
}

type ApproveRoleRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Notes  string `json:"notes" binding:"max=500"`
}

type UpdateProviderRequest struct {
	Bio                    *string  `json:"bio" binding:"omitempty,max=500"`
	IsAvailable            *bool    `json:"is_available"`
	ServiceRadius          *float64 `json:"service_radius"`
	ServiceAreaDescription *string  `json:"service_area_description" binding:"omitempty,max=255"`
	VerificationStatus     *string  `json:"verification_status"`
}

type OfferServiceRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
}

// --------- Onboarding ---------

func (h *ProviderHandler) RequestRole(c *gin.Context) {
	var req RequestRoleRequest
	if !bind(c, &req) {
		return
	}

	p, err := h.requestRole.Execute(c.Request.Context(), ucProvider.RequestRoleInput{
		UserID:          middleware.UserID(c),
		RequestedRole:   req.RequestedRole,
		Message:         req.Message,
		AreaDescription: req.AreaDescription,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message":  "Provider role granted. Your verification is pending admin review.",
		"provider": p,
	})
}

func (h *ProviderHandler) ApproveRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ApproveRoleRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.review.Execute(c.Request.Context(), ucProvider.ReviewVerificationInput{
		AdminID:      middleware.UserID(c),
		TargetUserID: id,
		Action:       req.Action,
		Notes:        req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"provider": out.Provider, "user": out.User})
}

// --------- Own profile ---------

func (h *ProviderHandler) GetProfile(c *gin.Context) {
	p, err := h.queries.ByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *ProviderHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProviderRequest
	if !bind(c, &req) {
		return
	}

	p, err := h.update.Execute(c.Request.Context(), middleware.UserID(c), ucProvider.ProfileUpdate{
		Bio:                    req.Bio,
		IsAvailable:            req.IsAvailable,
		ServiceRadius:          req.ServiceRadius,
		ServiceAreaDescription: req.ServiceAreaDescription,
		VerificationStatus:     req.VerificationStatus,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *ProviderHandler) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("document")
	if err != nil {
		httperr.BadRequest(c, "document_required", "Multipart field 'document' is required.")
		return
	}
	if file.Size > storage.MaxDocumentBytes {
		httperr.BadRequest(c, "document_too_large", "Document exceeds the size limit.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxDocumentBytes+1))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p, err := h.upload.Execute(c.Request.Context(), middleware.UserID(c), data)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

// --------- Offered services ---------

func (h *ProviderHandler) AddService(c *gin.Context) {
	var req OfferServiceRequest
	if !bind(c, &req) {
		return
	}

	ps, err := h.offered.Add(c.Request.Context(), middleware.UserID(c), req.ServiceID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, ps)
}

func (h *ProviderHandler) RemoveService(c *gin.Context) {
	serviceID, ok := paramID(c, "service_id")
	if !ok {
		return
	}

	if err := h.offered.Remove(c.Request.Context(), middleware.UserID(c), serviceID); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

// --------- Directory ---------

// List shows approved providers. Admins may ask for another status.
func (h *ProviderHandler) List(c *gin.Context) {
	status := ""
	if middleware.Role(c) == identity.RoleAdmin {
		status = c.Query("status")
	}

	list, err := h.queries.List(c.Request.Context(), status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ProviderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.queries.ByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

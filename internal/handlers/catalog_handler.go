package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/catalog"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/httpresp"
	"github.com/BruksfildServices01/marketplace-api/internal/middleware"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
	ucCatalog "github.com/BruksfildServices01/marketplace-api/internal/usecase/catalog"
)

type CatalogHandler struct {
	catalog *ucCatalog.Manager
}

func NewCatalogHandler(m *ucCatalog.Manager) *CatalogHandler {
	return &CatalogHandler{catalog: m}
}

// --------- Requests ---------

type CategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

type ServiceRequest struct {
	CategoryID        *uint    `json:"category_id"`
	Name              *string  `json:"name" binding:"omitempty,max=100"`
	Description       *string  `json:"description"`
	PricingModel      *string  `json:"pricing_model" binding:"omitempty,oneof=fixed hourly area_based"`
	BasePrice         *float64 `json:"base_price" binding:"omitempty,min=0"`
	UnitLabel         *string  `json:"unit_label" binding:"omitempty,max=50"`
	EstimatedDuration *int     `json:"estimated_duration" binding:"omitempty,min=0"`
	RequiresMaterials *bool    `json:"requires_materials"`
	IsActive          *bool    `json:"is_active"`
	ImageURL          *string  `json:"image_url" binding:"omitempty,max=255"`
}

func (r ServiceRequest) input() ucCatalog.ServiceInput {
	return ucCatalog.ServiceInput{
		CategoryID:        r.CategoryID,
		Name:              r.Name,
		Description:       r.Description,
		PricingModel:      r.PricingModel,
		BasePrice:         r.BasePrice,
		UnitLabel:         r.UnitLabel,
		EstimatedDuration: r.EstimatedDuration,
		RequiresMaterials: r.RequiresMaterials,
		IsActive:          r.IsActive,
		ImageURL:          r.ImageURL,
	}
}

type AddOnRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	IsActive    *bool    `json:"is_active"`
}

func (r AddOnRequest) input() ucCatalog.AddOnInput {
	return ucCatalog.AddOnInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		IsActive:    r.IsActive,
	}
}

type AvailabilityWindow struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type AvailabilityRequest struct {
	Windows []AvailabilityWindow `json:"windows" binding:"dive"`
}

type AreaRuleRequest struct {
	MinArea      *float64 `json:"min_area"`
	MaxArea      *float64 `json:"max_area"`
	PricePerUnit float64  `json:"price_per_unit" binding:"min=0"`
	BaseFee      float64  `json:"base_fee" binding:"min=0"`
}

// --------- Categories ---------

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	list, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cat, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, cat)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if !bind(c, &req) {
		return
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), ucCatalog.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, cat)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if !bind(c, &req) {
		return
	}
	cat, err := h.catalog.UpdateCategory(c.Request.Context(), id, ucCatalog.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, cat)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

// --------- Services ---------

// ListServices hides inactive services from everyone but admins.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	categoryID, ok := queryID(c, "category_id")
	if !ok {
		return
	}

	list, err := h.catalog.ListServices(c.Request.Context(), catalog.ServiceFilter{
		CategoryID: categoryID,
		ActiveOnly: middleware.Role(c) != identity.RoleAdmin,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	svc, err := h.catalog.GetService(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !svc.IsActive && middleware.Role(c) != identity.RoleAdmin {
		httperr.Respond(c, httperr.NotFound("service_not_found", "service not found"))
		return
	}
	httpresp.OK(c, svc)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if !bind(c, &req) {
		return
	}
	svc, err := h.catalog.CreateService(c.Request.Context(), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ServiceRequest
	if !bind(c, &req) {
		return
	}
	svc, err := h.catalog.UpdateService(c.Request.Context(), id, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeactivateService(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"message": "Service deactivated."})
}

// --------- Add-ons ---------

func (h *CatalogHandler) CreateAddOn(c *gin.Context) {
	serviceID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AddOnRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.catalog.CreateAddOn(c.Request.Context(), serviceID, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, a)
}

func (h *CatalogHandler) UpdateAddOn(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AddOnRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.catalog.UpdateAddOn(c.Request.Context(), id, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, a)
}

func (h *CatalogHandler) DeleteAddOn(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteAddOn(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

// --------- Availability / area pricing ---------

func (h *CatalogHandler) SetAvailability(c *gin.Context) {
	serviceID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AvailabilityRequest
	if !bind(c, &req) {
		return
	}

	windows := make([]models.ServiceAvailability, 0, len(req.Windows))
	for _, w := range req.Windows {
		windows = append(windows, models.ServiceAvailability{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	out, err := h.catalog.SetAvailability(c.Request.Context(), serviceID, windows)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *CatalogHandler) AddAreaRule(c *gin.Context) {
	serviceID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AreaRuleRequest
	if !bind(c, &req) {
		return
	}

	rule, err := h.catalog.AddAreaRule(c.Request.Context(), serviceID, models.AreaPricingRule{
		MinArea:      req.MinArea,
		MaxArea:      req.MaxArea,
		PricePerUnit: req.PricePerUnit,
		BaseFee:      req.BaseFee,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, rule)
}

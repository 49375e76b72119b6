package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace-api/internal/dto"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/httpresp"
	"github.com/BruksfildServices01/marketplace-api/internal/middleware"
	ucBooking "github.com/BruksfildServices01/marketplace-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create  *ucBooking.Create
	queries *ucBooking.Queries
	update  *ucBooking.Update
	cancel  *ucBooking.Cancel
	delete  *ucBooking.Delete
}

type BookingUseCases struct {
	Create  *ucBooking.Create
	Queries *ucBooking.Queries
	Update  *ucBooking.Update
	Cancel  *ucBooking.Cancel
	Delete  *ucBooking.Delete
}

func NewBookingHandler(uc BookingUseCases) *BookingHandler {
	return &BookingHandler{
		create:  uc.Create,
		queries: uc.Queries,
		update:  uc.Update,
		cancel:  uc.Cancel,
		delete:  uc.Delete,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID   uint      `json:"service_id" binding:"required"`
	ProviderID  *uint     `json:"provider_id"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`

	StreetAddress string   `json:"street_address" binding:"required,max=255"`
	City          string   `json:"city" binding:"required,max=100"`
	State         string   `json:"state" binding:"max=100"`
	ZipCode       string   `json:"zip_code" binding:"max=20"`
	Latitude      *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude     *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`

	Notes         string   `json:"notes"`
	DurationHours *float64 `json:"duration_hours" binding:"omitempty,gt=0"`
	Area          *float64 `json:"area" binding:"omitempty,gt=0"`
	AddOnIDs      []uint   `json:"add_on_ids"`
}

type UpdateBookingRequest struct {
	Status      *string    `json:"status"`
	Notes       *string    `json:"notes"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type CancelBookingRequest struct {
	Reason string   `json:"reason" binding:"max=255"`
	Fee    *float64 `json:"fee" binding:"omitempty,min=0"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateInput{
		CustomerID:    middleware.UserID(c),
		ServiceID:     req.ServiceID,
		ProviderID:    req.ProviderID,
		ScheduledAt:   req.ScheduledAt,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Notes:         req.Notes,
		DurationHours: req.DurationHours,
		Area:          req.Area,
		AddOnIDs:      req.AddOnIDs,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, b)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	list, err := h.queries.List(c.Request.Context(), actor(c), c.Query("status"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.ToBookingList(list))
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	b, err := h.queries.Get(c.Request.Context(), actor(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BookingHandler) Payment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.queries.Payment(c.Request.Context(), actor(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

// ======================================================
// UPDATE / CANCEL / DELETE
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.update.Execute(c.Request.Context(), actor(c), id, ucBooking.BookingUpdate{
		Status:      req.Status,
		Notes:       req.Notes,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CancelBookingRequest
	if c.Request.ContentLength > 0 && !bind(c, &req) {
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), actor(c), id, ucBooking.CancelInput{
		Reason: req.Reason,
		Fee:    req.Fee,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), actor(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

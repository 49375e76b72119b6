package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/httpresp"
	"github.com/BruksfildServices01/marketplace-api/internal/middleware"
	ucReview "github.com/BruksfildServices01/marketplace-api/internal/usecase/review"
)

type ReviewHandler struct {
	reviews *ucReview.Reviews
}

func NewReviewHandler(r *ucReview.Reviews) *ReviewHandler {
	return &ReviewHandler{reviews: r}
}

// --------- Requests ---------

type CreateReviewRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type ReplyReviewRequest struct {
	Reply string `json:"reply" binding:"required"`
}

type ModerateReviewRequest struct {
	IsApproved      *bool   `json:"is_approved"`
	ModerationNotes *string `json:"moderation_notes" binding:"omitempty,max=255"`
}

// --------- Handlers ---------

func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if !bind(c, &req) {
		return
	}

	r, err := h.reviews.Create(c.Request.Context(), ucReview.CreateInput{
		CustomerID: middleware.UserID(c),
		BookingID:  req.BookingID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, r)
}

func (h *ReviewHandler) List(c *gin.Context) {
	providerID, ok := queryID(c, "provider_id")
	if !ok {
		return
	}

	list, err := h.reviews.List(c.Request.Context(), providerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	r, err := h.reviews.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *ReviewHandler) Reply(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ReplyReviewRequest
	if !bind(c, &req) {
		return
	}

	r, err := h.reviews.Reply(c.Request.Context(), middleware.UserID(c), id, req.Reply)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *ReviewHandler) Moderate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ModerateReviewRequest
	if !bind(c, &req) {
		return
	}

	r, err := h.reviews.Moderate(c.Request.Context(), id, ucReview.ModerateInput{
		IsApproved:      req.IsApproved,
		ModerationNotes: req.ModerationNotes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

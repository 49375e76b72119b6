package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/httpresp"
	"github.com/BruksfildServices01/marketplace-api/internal/middleware"
	ucPayment "github.com/BruksfildServices01/marketplace-api/internal/usecase/payment"
)

type PaymentHandler struct {
	payments *ucPayment.Payments
}

func NewPaymentHandler(p *ucPayment.Payments) *PaymentHandler {
	return &PaymentHandler{payments: p}
}

// --------- Requests ---------

type CreatePaymentRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Method    string `json:"method" binding:"required,max=50"`
}

type UpdatePaymentRequest struct {
	Status       *string  `json:"status" binding:"omitempty,oneof=pending completed failed refunded"`
	RefundAmount *float64 `json:"refund_amount" binding:"omitempty,min=0"`
	RefundStatus *string  `json:"refund_status" binding:"omitempty,max=20"`
}

// --------- Handlers ---------

func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if !bind(c, &req) {
		return
	}

	p, err := h.payments.Create(c.Request.Context(), ucPayment.CreateInput{
		UserID:    middleware.UserID(c),
		Role:      middleware.Role(c),
		BookingID: req.BookingID,
		Method:    req.Method,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, p)
}

func (h *PaymentHandler) List(c *gin.Context) {
	list, err := h.payments.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.payments.Get(c.Request.Context(), middleware.UserID(c), middleware.Role(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if !bind(c, &req) {
		return
	}

	p, err := h.payments.Update(c.Request.Context(), middleware.UserID(c), id, ucPayment.PaymentUpdate{
		Status:       req.Status,
		RefundAmount: req.RefundAmount,
		RefundStatus: req.RefundStatus,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

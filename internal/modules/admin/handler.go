package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resortbooking/internal/domain"
	"resortbooking/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes mounts the admin-only moderation endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/pending", h.ListPending)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.POST("/bookings/:id/confirm", h.Confirm)
	rg.POST("/bookings/:id/reject", h.Reject)
	rg.POST("/booking-services/:id/confirm", h.ConfirmService)
	rg.POST("/booking-services/:id/reject", h.RejectService)
	rg.POST("/bookings/:id/contract", h.CreateContract)
	rg.GET("/bookings/:id/contract", h.GetContract)
	rg.POST("/bookings/:id/contract/sign", h.SignContractByAdmin)
	rg.POST("/bookings/:id/payments", h.RecordPayment)
}

// RegisterCustomerRoutes mounts the customer-side contract signing endpoint.
func (h *Handler) RegisterCustomerRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/contract/sign", h.SignContractByUser)
}

func (h *Handler) ListPending(c *gin.Context) {
	bookings, err := h.service.ListPendingBookings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list pending bookings")
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Confirm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "reason is required")
		return
	}

	b, err := h.service.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ConfirmService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	bs, err := h.service.ConfirmService(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bs)
}

func (h *Handler) RejectService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "reason is required")
		return
	}

	bs, err := h.service.RejectService(c.Request.Context(), id, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bs)
}

func (h *Handler) CreateContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	contract, err := h.service.CreateContract(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, contract)
}

func (h *Handler) GetContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	contract, err := h.service.GetContract(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, contract)
}

func (h *Handler) SignContractByAdmin(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	contract, err := h.service.SignContractByAdmin(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, contract)
}

func (h *Handler) SignContractByUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	contract, err := h.service.SignContractByUser(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, contract)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "amount must be positive")
		return
	}

	method := domain.PaymentMethod(req.Method)
	if method == "" {
		method = domain.PaymentCard
	}

	p, err := h.service.RecordPayment(c.Request.Context(), id, req.Amount, method)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrInvalidStatusTransition), errors.Is(err, ErrContractExists):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

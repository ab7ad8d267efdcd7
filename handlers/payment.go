package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripsettle/tripsettle-api/middleware"
	"github.com/tripsettle/tripsettle-api/models"
	"github.com/tripsettle/tripsettle-api/services"
)

type PaymentHandler struct {
	Trips    *services.TripService
	Payments *services.PaymentService
	WS       *WSHandler
}

func NewPaymentHandler(trips *services.TripService, payments *services.PaymentService, ws *WSHandler) *PaymentHandler {
	return &PaymentHandler{Trips: trips, Payments: payments, WS: ws}
}

// GetPayments lists the trip's recorded payments.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tripID := c.Param("id")

	if !h.requireMembership(c, tripID, userID) {
		return
	}

	payments, err := h.Payments.ListForTrip(c.Request.Context(), tripID)
	if err != nil {
		log.Printf("List payments error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// CreatePayment records a settlement from the caller to another member.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tripID := c.Param("id")

	if !h.requireMembership(c, tripID, userID) {
		return
	}

	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.Payments.Create(c.Request.Context(), tripID, userID, req)
	if err != nil {
		log.Printf("Create payment error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	h.WS.BroadcastUpdate(tripID, "payment_created", userID)
	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) requireMembership(c *gin.Context, tripID, userID string) bool {
	isMember, err := h.Trips.IsMember(c.Request.Context(), tripID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return false
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this trip"})
		return false
	}
	return true
}

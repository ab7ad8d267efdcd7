package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripsettle/tripsettle-api/middleware"
	"github.com/tripsettle/tripsettle-api/models"
	"github.com/tripsettle/tripsettle-api/services"
)

type ExpenseHandler struct {
	Trips    *services.TripService
	Expenses *services.ExpenseService
	WS       *WSHandler
}

func NewExpenseHandler(trips *services.TripService, expenses *services.ExpenseService, ws *WSHandler) *ExpenseHandler {
	return &ExpenseHandler{Trips: trips, Expenses: expenses, WS: ws}
}

// GetExpenses lists the trip's expenses with their currently resolved
// shares.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tripID := c.Param("id")

	if !h.requireMembership(c, tripID, userID) {
		return
	}

	expenses, err := h.Expenses.ListForTrip(c.Request.Context(), tripID)
	if err != nil {
		log.Printf("List expenses error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// CreateExpense records a new expense on the trip.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tripID := c.Param("id")

	if !h.requireMembership(c, tripID, userID) {
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.Expenses.Create(c.Request.Context(), tripID, req)
	if err != nil {
		log.Printf("Create expense error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.WS.BroadcastUpdate(tripID, "expense_created", userID)
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) requireMembership(c *gin.Context, tripID, userID string) bool {
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

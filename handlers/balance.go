package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripsettle/tripsettle-api/middleware"
	"github.com/tripsettle/tripsettle-api/services"
)

type BalanceHandler struct {
	Trips    *services.TripService
	Balances *services.BalanceService
}

func NewBalanceHandler(trips *services.TripService, balances *services.BalanceService) *BalanceHandler {
	return &BalanceHandler{Trips: trips, Balances: balances}
}

// GetBalances rebuilds the trip's debt matrix from the current snapshot and
// returns the netted per-pair balances.
func (h *BalanceHandler) GetBalances(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tripID := c.Param("id")

	isMember, err := h.Trips.IsMember(c.Request.Context(), tripID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this trip"})
		return
	}

	resp, err := h.Balances.Balances(c.Request.Context(), tripID, userID)
	if err != nil {
		log.Printf("Balances error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

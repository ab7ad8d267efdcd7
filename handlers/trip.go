package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripsettle/tripsettle-api/middleware"
	"github.com/tripsettle/tripsettle-api/models"
	"github.com/tripsettle/tripsettle-api/services"
)

type TripHandler struct {
	Trips *services.TripService
	WS    *WSHandler
}

func NewTripHandler(trips *services.TripService, ws *WSHandler) *TripHandler {
	return &TripHandler{Trips: trips, WS: ws}
}

// CreateTrip creates a trip owned by the caller.
func (h *TripHandler) CreateTrip(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.Trips.Create(c.Request.Context(), req.Name, userID)
	if err != nil {
		log.Printf("Create trip error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}

	c.JSON(http.StatusCreated, trip)
}

// GetTrips lists the caller's trips.
func (h *TripHandler) GetTrips(c *gin.Context) {
	userID := middleware.GetUserID(c)

	trips, err := h.Trips.ListForUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("List trips error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trips"})
		return
	}

	c.JSON(http.StatusOK, trips)
}

// GetTrip returns one trip with members and sub-groups.
func (h *TripHandler) GetTrip(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tripID := c.Param("id")

	detail, err := h.Trips.GetDetail(c.Request.Context(), tripID, userID)
	if err != nil {
		respondTripError(c, err, "Failed to fetch trip")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// JoinTrip adds the caller to a trip by join code, optionally into a
// sub-group.
func (h *TripHandler) JoinTrip(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.JoinTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Trips.JoinByCode(c.Request.Context(), req.Code, req.SubGroupID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		log.Printf("Join trip error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join trip"})
		return
	}

	h.WS.BroadcastUpdate(resp.TripID, "member_joined", userID)
	c.JSON(http.StatusOK, resp)
}

// RemoveMember kicks a member from the trip (owner only).
func (h *TripHandler) RemoveMember(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tripID := c.Param("id")

	var req models.RemoveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Trips.RemoveMember(c.Request.Context(), tripID, userID, req.UserID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the trip owner can remove members"})
		case err.Error() == "cannot remove yourself":
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot remove yourself"})
		default:
			log.Printf("Remove member error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		}
		return
	}

	h.WS.BroadcastUpdate(tripID, "member_removed", userID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ArchiveTrip sets or clears the archive flag (owner only).
func (h *TripHandler) ArchiveTrip(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tripID := c.Param("id")

	var req struct {
		Archived bool `json:"archived"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Trips.SetArchived(c.Request.Context(), tripID, userID, req.Archived); err != nil {
		respondTripError(c, err, "Failed to update trip")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateSubGroup adds a sub-group to the trip.
func (h *TripHandler) CreateSubGroup(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tripID := c.Param("id")

	if !h.requireMembership(c, tripID, userID) {
		return
	}

	var req models.CreateSubGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.Trips.CreateSubGroup(c.Request.Context(), tripID, req.Name)
	if err != nil {
		log.Printf("Create sub-group error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sub-group"})
		return
	}

	h.WS.BroadcastUpdate(tripID, "subgroup_created", userID)
	c.JSON(http.StatusCreated, group)
}

// JoinSubGroup adds the caller to a sub-group of the trip.
func (h *TripHandler) JoinSubGroup(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tripID := c.Param("id")
	subGroupID := c.Param("subgroup_id")

	if !h.requireMembership(c, tripID, userID) {
		return
	}

	if err := h.Trips.JoinSubGroup(c.Request.Context(), subGroupID, userID); err != nil {
		log.Printf("Join sub-group error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join sub-group"})
		return
	}

	h.WS.BroadcastUpdate(tripID, "subgroup_joined", userID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LeaveSubGroup removes the caller from a sub-group.
func (h *TripHandler) LeaveSubGroup(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tripID := c.Param("id")
	subGroupID := c.Param("subgroup_id")

	if err := h.Trips.LeaveSubGroup(c.Request.Context(), subGroupID, userID); err != nil {
		log.Printf("Leave sub-group error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave sub-group"})
		return
	}

	h.WS.BroadcastUpdate(tripID, "subgroup_left", userID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// requireMembership rejects non-members with 403; returns false when the
// request was already answered.
func (h *TripHandler) requireMembership(c *gin.Context, tripID, userID string) bool {
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

func respondTripError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
	case errors.Is(err, services.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this trip"})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the trip owner can do this"})
	default:
		log.Printf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

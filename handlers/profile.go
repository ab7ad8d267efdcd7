package handlers

import (
	"database/sql"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tripsettle/tripsettle-api/middleware"
	"github.com/tripsettle/tripsettle-api/models"
	"github.com/tripsettle/tripsettle-api/promptpay"
	"github.com/tripsettle/tripsettle-api/services"
	"github.com/tripsettle/tripsettle-api/utils"
)

type ProfileHandler struct {
	Users   *services.UserService
	Decoder promptpay.Decoder
}

func NewProfileHandler(users *services.UserService) *ProfileHandler {
	return &ProfileHandler{Users: users, Decoder: promptpay.TolerantDecoder{}}
}

// GetProfile returns the caller's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("Get profile error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// SaveProfile stores display name and PromptPay receiving identifier.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Users.SaveProfile(c.Request.Context(), userID, req); err != nil {
		log.Printf("Save profile error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}
	if req.PromptPayID != "" {
		log.Printf("✅ Profile saved, PromptPay %s (%s)", utils.MaskID(req.PromptPayID), req.PromptPayType)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DecodeQR extracts the PromptPay receiving identifier from scanned QR
// text. Decoding is total, so this endpoint always answers 200 with a
// result; an unrecognizable payload comes back as UNKNOWN with no id.
func (h *ProfileHandler) DecodeQR(c *gin.Context) {
	var req models.DecodeQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.Decoder.Decode(req.Payload))
}

// PromptPayQR renders a payment QR for a user's receiving identifier,
// optionally pre-filled with an amount, as a PNG.
func (h *ProfileHandler) PromptPayQR(c *gin.Context) {
	targetID := c.Param("user_id")

	user, err := h.Users.GetByID(c.Request.Context(), targetID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	if user.PromptPayID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "User has no PromptPay identifier"})
		return
	}

	amount := decimal.Zero
	if raw := c.Query("amount"); raw != "" {
		amount, err = decimal.NewFromString(raw)
		if err != nil || amount.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
	}

	payload, err := promptpay.BuildPayload(user.PromptPayID, promptpay.Kind(user.PromptPayType), amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	size := 512
	if raw := c.Query("size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 128 && v <= 2048 {
			size = v
		}
	}

	img, err := promptpay.QRImage(payload, size)
	if err != nil {
		log.Printf("QR render error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR"})
		return
	}

	c.Header("Content-Type", "image/png")
	c.Header("Cache-Control", "no-store")
	if err := png.Encode(c.Writer, img); err != nil {
		log.Printf("QR encode error: %v", err)
	}
}

package websocket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sesa/portal/internal/app/repositories"
)

// Handler for WebSocket connections
type Handler struct {
	hub            *Hub
	departmentRepo *repositories.DepartmentRepository
	profileRepo    *repositories.ProfileRepository
	logger         zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(
	hub *Hub,
	departmentRepo *repositories.DepartmentRepository,
	profileRepo *repositories.ProfileRepository,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		hub:            hub,
		departmentRepo: departmentRepo,
		profileRepo:    profileRepo,
		logger:         logger,
	}
}

// HandleConnection godoc
// @Summary Establish a WebSocket connection for a department chat room
// @Description Upgrades the HTTP connection to a WebSocket for real-time department chat
// @Tags chat, websocket
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} gin.H "Invalid department ID"
// @Failure 401 {object} gin.H "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} gin.H "Department not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /departments/{id}/chat/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	departmentIDStr := c.Param("id")
	departmentID, err := strconv.ParseInt(departmentIDStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid department ID",
		})
		return
	}

	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in context",
		})
		return
	}

	userID, ok := userIDInterface.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	deptExists, err := h.departmentRepo.ExistsByID(c, departmentID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("departmentID", departmentID).
			Int64("userID", userID).
			Msg("Failed to check department")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check department",
		})
		return
	}
	if !deptExists {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Department not found",
		})
		return
	}

	// Resolve the display name once at connect time
	userName := ""
	if profile, err := h.profileRepo.GetByUserID(c, userID); err == nil && profile.FullName != nil {
		userName = *profile.FullName
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("departmentID", departmentID).
			Int64("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:          h.hub,
		conn:         conn,
		send:         make(chan []byte, 256),
		userID:       userID,
		userName:     userName,
		departmentID: departmentID,
		logger:       h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("departmentID", departmentID).
		Int64("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}

package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/app/services"
	"github.com/sesa/portal/internal/middleware"
)

// ChatController handles department chat history
type ChatController struct {
	chatService *services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// GetHistory godoc
// @Summary Recent chat messages
// @Description Returns the most recent messages in a department room in chronological order
// @Tags chat
// @Produce json
// @Param id path int true "Department ID"
// @Param limit query int false "Message count (default 50, max 200)"
// @Success 200 {object} dto.APIResponse{data=dto.ChatHistoryResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /departments/{id}/chat/messages [get]
func (co *ChatController) GetHistory(c *gin.Context) {
	departmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := co.chatService.GetHistory(c.Request.Context(), departmentID, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, dto.FromChatMessage(&messages[i]))
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.ChatHistoryResponse{Messages: responses},
		Timestamp: time.Now(),
	})
}

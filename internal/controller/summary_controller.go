package controller

import (
	"net/http"

	"rental_coach_backend/internal/service"
	"rental_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SummaryController struct {
	ChatService *service.ChatService
}

func NewSummaryController(chatService *service.ChatService) *SummaryController {
	return &SummaryController{ChatService: chatService}
}

// SummaryPage GET /summary?listing=<id>
func (ctrl *SummaryController) SummaryPage(c *gin.Context) {
	key := conversationKey(c)
	c.HTML(http.StatusOK, "summary.html", gin.H{
		"feedback":     ctrl.ChatService.Summary(key),
		"conversation": ctrl.ChatService.Transcript(key),
	})
}

// GetSummary GET /api/summary?listing=<id>
func (ctrl *SummaryController) GetSummary(c *gin.Context) {
	util.Success(c, ctrl.ChatService.Summary(conversationKey(c)))
}

package controller

import (
	"net/http"

	"rental_coach_backend/internal/service"
	"rental_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// PageController 渲染落地页、房源列表和聊天页
type PageController struct {
	ChatService *service.ChatService
}

func NewPageController(chatService *service.ChatService) *PageController {
	return &PageController{ChatService: chatService}
}

func (ctrl *PageController) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "landing_page.html", nil)
}

func (ctrl *PageController) Simulation(c *gin.Context) {
	listings, err := ctrl.ChatService.Listings(c.Request.Context())
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	c.HTML(http.StatusOK, "marketplace.html", gin.H{"listings": listings})
}

// ChatPage 未知房源照常渲染，listing 为空
func (ctrl *PageController) ChatPage(c *gin.Context) {
	key := conversationKey(c)
	listing, err := ctrl.ChatService.Listing(c.Request.Context(), key.ListingID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	c.HTML(http.StatusOK, "chat.html", gin.H{
		"listing_id":   key.ListingID,
		"listing":      listing,
		"conversation": ctrl.ChatService.Transcript(key),
	})
}

package controller

import (
	"errors"
	"net/http"

	"rental_coach_backend/internal/middleware"
	"rental_coach_backend/internal/model"
	"rental_coach_backend/internal/service"
	"rental_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ChatController 处理与模拟房东的对话
type ChatController struct {
	ChatService *service.ChatService
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

type chatSuccessResponse struct {
	Response        string   `json:"response"`
	MissedQuestions []string `json:"missed_questions"`
}

type chatFailureResponse struct {
	Response        string   `json:"response"`
	GoodQuestions   []string `json:"good_questions"`
	MissedQuestions []string `json:"missed_questions"`
	RedFlags        []string `json:"red_flags"`
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// conversationKey 从会话和 ?listing= 参数得到对话标识，listing 缺省为 1
func conversationKey(c *gin.Context) model.ConversationKey {
	return model.ConversationKey{
		SessionID: middleware.GetSessionID(c),
		ListingID: util.ParseIntOr(c.Query("listing"), util.DefaultListingID),
	}
}

// SendMessage POST /chat?listing=<id>
// 模型失败也返回 200，响应体换成带完整反馈的失败结构
func (ctrl *ChatController) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request body")
		return
	}

	res, err := ctrl.ChatService.Turn(c.Request.Context(), conversationKey(c), req.Message)
	if err != nil {
		if errors.Is(err, util.ErrEmptyMessage) {
			util.BadRequest(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	if res.Failed {
		c.JSON(http.StatusOK, chatFailureResponse{
			Response:        res.Response,
			GoodQuestions:   res.GoodQuestions,
			MissedQuestions: res.MissedQuestions,
			RedFlags:        res.RedFlags,
		})
		return
	}
	c.JSON(http.StatusOK, chatSuccessResponse{
		Response:        res.Response,
		MissedQuestions: res.MissedQuestions,
	})
}

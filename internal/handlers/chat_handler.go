package handlers

import (
	"net/http"

	"microjob_backend/internal/middleware"
	"microjob_backend/internal/models"
	"microjob_backend/internal/services"
	"microjob_backend/internal/services/dto"
	"microjob_backend/ws"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
	wsManager   *ws.Manager
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService, wsManager *ws.Manager) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
		wsManager:   wsManager,
	}
}

// RegisterRoutes регистрирует чат поддержки: свой тред для
// пользователя, все треды для админа
func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	chat := rg.Group("/support")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.GET("/messages", h.GetMyMessages)
		chat.POST("/messages", h.SendMessage)
	}

	admin := rg.Group("/admin/support")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/threads", h.ListThreads)
		admin.GET("/threads/:id/messages", h.GetThreadMessages)
	}
}

func (h *ChatHandler) GetMyMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.chatService.GetMessages(c.Request.Context(), userID, userID, false)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	role := h.GetRole(c)
	msg, err := h.chatService.SendMessage(c.Request.Context(), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Онлайн-доставка подписчикам треда, best-effort
	if h.wsManager != nil {
		h.wsManager.BroadcastMessage(msg)
	}

	c.JSON(http.StatusCreated, msg)
}

func (h *ChatHandler) ListThreads(c *gin.Context) {
	response, err := h.chatService.GetThreads(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ChatHandler) GetThreadMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	isAdmin := h.GetRole(c) == models.UserRoleAdmin
	response, err := h.chatService.GetMessages(c.Request.Context(), c.Param("id"), userID, isAdmin)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

package handlers

import (
	"net/http"

	"microjob_backend/internal/middleware"
	"microjob_backend/internal/services"
	"microjob_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	*BaseHandler
	walletService services.WalletService
}

func NewWalletHandler(base *BaseHandler, walletService services.WalletService) *WalletHandler {
	return &WalletHandler{
		BaseHandler:   base,
		walletService: walletService,
	}
}

// RegisterRoutes регистрирует кошелек пользователя и админские маршруты
// обработки выводов
func (h *WalletHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wallet := rg.Group("/wallet")
	wallet.Use(middleware.AuthMiddleware())
	{
		wallet.GET("", h.GetWallet)
		wallet.POST("/withdrawals", h.RequestWithdrawal)
		wallet.GET("/withdrawals", h.ListMyWithdrawals)
	}

	admin := rg.Group("/admin/withdrawals")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("", h.ListAllWithdrawals)
		admin.PATCH("/:id", h.ResolveWithdrawal)
	}
}

func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.walletService.GetWallet(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *WalletHandler) RequestWithdrawal(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RequestWithdrawalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	withdrawal, err := h.walletService.RequestWithdrawal(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, withdrawal)
}

func (h *WalletHandler) ListMyWithdrawals(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	withdrawals, err := h.walletService.GetUserWithdrawals(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WithdrawalListResponse{Withdrawals: withdrawals, Total: len(withdrawals)})
}

func (h *WalletHandler) ListAllWithdrawals(c *gin.Context) {
	limit, offset := ParsePagination(c)

	withdrawals, err := h.walletService.GetAllWithdrawals(c.Request.Context(), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WithdrawalListResponse{Withdrawals: withdrawals, Total: len(withdrawals)})
}

func (h *WalletHandler) ResolveWithdrawal(c *gin.Context) {
	var req dto.ResolveWithdrawalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	withdrawal, err := h.walletService.ResolveWithdrawal(c.Request.Context(), c.Param("id"), req.Outcome)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, withdrawal)
}

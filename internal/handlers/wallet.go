package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"navix-backend/internal/models"
	"navix-backend/internal/supabase"
)

// FixedTransactionAmount is the only amount the wallet moves per operation.
const FixedTransactionAmount = 1000

type WalletHandler struct {
	dbClient *supabase.DatabaseClient
	realtime *supabase.RealtimeClient
}

func NewWalletHandler(dbClient *supabase.DatabaseClient, realtimeClient *supabase.RealtimeClient) *WalletHandler {
	return &WalletHandler{
		dbClient: dbClient,
		realtime: realtimeClient,
	}
}

// Balance godoc
// @Summary     Wallet balance
// @Tags        wallet
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.WalletResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /wallet [get]
func (h *WalletHandler) Balance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.dbClient.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get balance", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.WalletResponse{Balance: profile.Balance})
}

// Transact godoc
// @Summary     Deposit or pay the fixed amount
// @Description Moves R$1000: "deposit" credits, "pay" debits. The balance
// @Description update and the transaction insert are two separate writes.
// @Tags        wallet
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.WalletTransactionRequest true "Transaction type"
// @Success     200 {object} models.WalletResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /wallet/transactions [post]
func (h *WalletHandler) Transact(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.WalletTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Type != "deposit" && req.Type != "pay" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "type must be \"deposit\" or \"pay\""})
		return
	}

	profile, err := h.dbClient.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get balance", Message: err.Error()})
		return
	}

	newBalance := profile.Balance + FixedTransactionAmount
	if req.Type == "pay" {
		newBalance = profile.Balance - FixedTransactionAmount
		if newBalance < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Saldo insuficiente"})
			return
		}
	}

	if err := h.dbClient.UpdateProfileBalance(userID, newBalance); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update balance", Message: err.Error()})
		return
	}

	tx := &models.Transaction{
		UserID: userID,
		Amount: FixedTransactionAmount,
	}
	if req.Type == "deposit" {
		tx.Description = "Depósito via PIX"
		tx.Type = "credit"
		tx.Category = "Deposit"
	} else {
		tx.Description = "Pagamento de Taxa"
		tx.Type = "debit"
		tx.Category = "Tax"
	}

	if err := h.dbClient.InsertTransaction(tx); err != nil {
		// Balance is already updated; the history entry is what failed.
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to record transaction", Message: err.Error()})
		return
	}

	if h.realtime != nil {
		h.realtime.PublishUserEvent(userID, "balance_changed", supabase.BalanceChangedPayload(newBalance))
	}

	c.JSON(http.StatusOK, models.WalletResponse{Balance: newBalance})
}

// Transactions godoc
// @Summary     Transaction history
// @Tags        wallet
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.TransactionListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /wallet/transactions [get]
func (h *WalletHandler) Transactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.dbClient.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get balance", Message: err.Error()})
		return
	}

	transactions, err := h.dbClient.ListTransactions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list transactions", Message: err.Error()})
		return
	}

	resp := models.TransactionListResponse{
		Balance:      profile.Balance,
		Transactions: make([]models.TransactionResponse, 0, len(transactions)),
	}
	for _, t := range transactions {
		resp.Transactions = append(resp.Transactions, models.TransactionResponse{
			ID:          t.ID.String(),
			Description: t.Description,
			Amount:      t.Amount,
			Type:        t.Type,
			Category:    t.Category,
			CreatedAt:   t.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

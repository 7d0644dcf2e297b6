package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_app/internal/dto"
	"github.com/SscSPs/coop_savings_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles postings, account history and receipts.
type ledgerHandler struct {
	ledgerService         portssvc.LedgerSvcFacade
	accountService        portssvc.AccountSvcFacade
	receipts              portssvc.ReceiptGenerator
	reconciliationService portssvc.ReconciliationSvc
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, as portssvc.AccountSvcFacade, rg portssvc.ReceiptGenerator, rs portssvc.ReconciliationSvc) *ledgerHandler {
	return &ledgerHandler{
		ledgerService:         ls,
		accountService:        as,
		receipts:              rg,
		reconciliationService: rs,
	}
}

// RegisterLedgerRoutes registers staff postings and ledger reads. The group must only admit staff.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, accountService portssvc.AccountSvcFacade, receipts portssvc.ReceiptGenerator, reconciliation portssvc.ReconciliationSvc) {
	registerValidators()
	h := newLedgerHandler(ledgerService, accountService, receipts, reconciliation)

	rg.POST("/members/:memberID/deposits", h.postDeposit)
	rg.POST("/members/:memberID/withdrawals", h.postWithdrawal)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/transactions", h.listAccountTransactions)
	}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.GET("/:transactionID/receipt", h.getReceipt)
	}

	rg.GET("/ledger/reconciliation", h.reconcile)
}

// postDeposit godoc
// @Summary Deposit into a member account
// @Description Credits the member's savings, contributions or affiliation account
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   memberID path string true "Member ID"
// @Param   deposit body dto.PostDepositRequest true "Deposit details"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member or account not found"
// @Failure 409 {object} map[string]string "Member inactive"
// @Failure 500 {object} map[string]string "Failed to post deposit"
// @Security BearerAuth
// @Router /members/{memberID}/deposits [post]
func (h *ledgerHandler) postDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err, "deposit request")
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	txn, err := h.ledgerService.PostDeposit(c.Request.Context(), c.Param("memberID"), req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to post deposit")
		return
	}

	logger.Info("Deposit posted", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToPostingResponse(txn))
}

// postWithdrawal godoc
// @Summary Withdraw from a member account
// @Description Debits the member's savings or surplus account. The balance may not go negative.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   memberID path string true "Member ID"
// @Param   withdrawal body dto.PostWithdrawalRequest true "Withdrawal details"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member or account not found"
// @Failure 409 {object} map[string]string "Member inactive"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to post withdrawal"
// @Security BearerAuth
// @Router /members/{memberID}/withdrawals [post]
func (h *ledgerHandler) postWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err, "withdrawal request")
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	txn, err := h.ledgerService.PostWithdrawal(c.Request.Context(), c.Param("memberID"), req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to post withdrawal")
		return
	}

	logger.Info("Withdrawal posted", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToPostingResponse(txn))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *ledgerHandler) getAccount(c *gin.Context) {
	acc, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// listAccountTransactions godoc
// @Summary List an account's transactions
// @Description Newest first, with token pagination and optional fiscal year and month filters
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   fiscalYear query int false "Fiscal year"
// @Param   month query int false "Month 1-12"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *ledgerHandler) listAccountTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, err, "transaction list query")
		return
	}

	txns, next, err := h.ledgerService.ListAccountTransactions(c.Request.Context(), c.Param("accountID"), params)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    next,
	})
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *ledgerHandler) getTransaction(c *gin.Context) {
	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// getReceipt godoc
// @Summary Get the receipt of a transaction
// @Description Returns the issued receipt, issuing it first if the post-commit attempt did not
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve receipt"
// @Security BearerAuth
// @Router /transactions/{transactionID}/receipt [get]
func (h *ledgerHandler) getReceipt(c *gin.Context) {
	receipt, err := h.receipts.GenerateReceipt(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ReceiptResponse{Receipt: *receipt})
}

// reconcile godoc
// @Summary Reconcile balances
// @Description Lists every account whose stored balance differs from the sum of its completed transactions
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to reconcile"
// @Security BearerAuth
// @Router /ledger/reconciliation [get]
func (h *ledgerHandler) reconcile(c *gin.Context) {
	mismatches, err := h.reconciliationService.Reconcile(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to reconcile")
		return
	}
	if mismatches == nil {
		mismatches = []domain.BalanceMismatch{}
	}
	c.JSON(http.StatusOK, dto.ReconciliationResponse{
		Consistent: len(mismatches) == 0,
		Mismatches: mismatches,
	})
}

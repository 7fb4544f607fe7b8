package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
	"github.com/shopbooks/backend/internal/interfaces/http/middleware"
)

// parseDate parses a date string in the formats clients actually send
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// LedgerHandler exposes the posting engine, financial reports and bill
// settlement over HTTP
type LedgerHandler struct {
	BaseHandler
	posting    *ledgerapp.PostingService
	reports    *ledgerapp.ReportService
	settlement *ledgerapp.SettlementService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(posting *ledgerapp.PostingService, reports *ledgerapp.ReportService, settlement *ledgerapp.SettlementService) *LedgerHandler {
	return &LedgerHandler{
		posting:    posting,
		reports:    reports,
		settlement: settlement,
	}
}

// RegisterRoutes registers the ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.DELETE("/:id", h.DeleteAccount)
		accounts.PUT("/:id/opening-balance", h.SetOpeningBalance)
		accounts.GET("/:id/outstanding-bills", h.OutstandingBills)
		accounts.GET("/:id/bill-history", h.BillHistory)
	}

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.CreateVoucher)
		vouchers.GET("", h.ListVouchers)
		vouchers.GET("/:id", h.GetVoucher)
		vouchers.DELETE("/:id", h.DeleteVoucher)
	}

	reports := rg.Group("/reports")
	{
		reports.GET("/ledger", h.LedgerReport)
		reports.GET("/trial-balance", h.TrialBalance)
		reports.GET("/profit-loss", h.ProfitLoss)
		reports.GET("/balance-sheet", h.BalanceSheet)
	}

	refs := rg.Group("/bill-references")
	{
		refs.POST("/new", h.CreateNewRef)
		refs.POST("/against", h.CreateAgstRef)
		refs.DELETE("/sources/:type/:id", h.DeleteRefsBySource)
	}
}

// CreateAccount creates a ledger account
func (h *LedgerHandler) CreateAccount(c *gin.Context) {
	var req ledgerapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	account, err := h.posting.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

type listAccountsQuery struct {
	CompanyID string `form:"company_id" binding:"required,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
}

// ListAccounts lists a company's accounts
func (h *LedgerHandler) ListAccounts(c *gin.Context) {
	var q listAccountsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	accounts, err := h.posting.ListAccounts(c.Request.Context(), uuid.MustParse(q.CompanyID), shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		Search:   q.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// GetAccount returns one account
func (h *LedgerHandler) GetAccount(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	account, err := h.posting.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// DeleteAccount deletes an unreferenced account
func (h *LedgerHandler) DeleteAccount(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.posting.DeleteAccount(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetOpeningBalance sets an account's opening balance for a financial year
func (h *LedgerHandler) SetOpeningBalance(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req ledgerapp.SetOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	account, err := h.posting.SetOpeningBalance(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// CreateVoucher validates, numbers and posts a voucher
func (h *LedgerHandler) CreateVoucher(c *gin.Context) {
	var req ledgerapp.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	voucher, err := h.posting.CreateAndPost(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, voucher)
}

type listVouchersQuery struct {
	CompanyID       string `form:"company_id" binding:"required,uuid"`
	FinancialYearID string `form:"financial_year_id" binding:"required,uuid"`
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PageSize        int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ListVouchers lists vouchers for a company and financial year
func (h *LedgerHandler) ListVouchers(c *gin.Context) {
	var q listVouchersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	vouchers, err := h.posting.ListVouchers(c.Request.Context(),
		uuid.MustParse(q.CompanyID), uuid.MustParse(q.FinancialYearID),
		shared.Filter{Page: q.Page, PageSize: q.PageSize})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vouchers)
}

// GetVoucher returns one voucher with its lines
func (h *LedgerHandler) GetVoucher(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	voucher, err := h.posting.GetVoucher(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, voucher)
}

// DeleteVoucher removes a voucher and its entries
func (h *LedgerHandler) DeleteVoucher(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.posting.DeleteVoucher(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type ledgerReportQuery struct {
	AccountID       string `form:"account_id" binding:"required,uuid"`
	FinancialYearID string `form:"financial_year_id" binding:"required,uuid"`
	From            string `form:"from" binding:"required"`
	To              string `form:"to" binding:"required"`
}

// LedgerReport returns an account's statement with running balance
func (h *LedgerHandler) LedgerReport(c *gin.Context) {
	var q ledgerReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	from, err := parseDate(q.From)
	if err != nil {
		h.BadRequest(c, "invalid from date")
		return
	}
	to, err := parseDate(q.To)
	if err != nil {
		h.BadRequest(c, "invalid to date")
		return
	}

	report, err := h.reports.LedgerReport(c.Request.Context(),
		uuid.MustParse(q.AccountID), uuid.MustParse(q.FinancialYearID), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

type asOfReportQuery struct {
	CompanyID       string `form:"company_id" binding:"required,uuid"`
	FinancialYearID string `form:"financial_year_id" binding:"required,uuid"`
	AsOf            string `form:"as_of" binding:"required"`
}

// TrialBalance returns the trial balance as of a date
func (h *LedgerHandler) TrialBalance(c *gin.Context) {
	var q asOfReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	asOf, err := parseDate(q.AsOf)
	if err != nil {
		h.BadRequest(c, "invalid as_of date")
		return
	}

	report, err := h.reports.TrialBalance(c.Request.Context(),
		uuid.MustParse(q.CompanyID), uuid.MustParse(q.FinancialYearID), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

type rangeReportQuery struct {
	CompanyID       string `form:"company_id" binding:"required,uuid"`
	FinancialYearID string `form:"financial_year_id" binding:"required,uuid"`
	From            string `form:"from" binding:"required"`
	To              string `form:"to" binding:"required"`
}

// ProfitLoss returns the profit and loss statement for a period
func (h *LedgerHandler) ProfitLoss(c *gin.Context) {
	var q rangeReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	from, err := parseDate(q.From)
	if err != nil {
		h.BadRequest(c, "invalid from date")
		return
	}
	to, err := parseDate(q.To)
	if err != nil {
		h.BadRequest(c, "invalid to date")
		return
	}

	report, err := h.reports.ProfitLoss(c.Request.Context(),
		uuid.MustParse(q.CompanyID), uuid.MustParse(q.FinancialYearID), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// BalanceSheet returns the balance sheet as of a date
func (h *LedgerHandler) BalanceSheet(c *gin.Context) {
	var q asOfReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	asOf, err := parseDate(q.AsOf)
	if err != nil {
		h.BadRequest(c, "invalid as_of date")
		return
	}

	report, err := h.reports.BalanceSheet(c.Request.Context(),
		uuid.MustParse(q.CompanyID), uuid.MustParse(q.FinancialYearID), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// CreateNewRef records a bill's own reference, replacing any previous row
// for the same source document
func (h *LedgerHandler) CreateNewRef(c *gin.Context) {
	var req ledgerapp.BillRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ref, err := h.settlement.CreateNewRef(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ref)
}

// CreateAgstRef records a settlement against an earlier bill
func (h *LedgerHandler) CreateAgstRef(c *gin.Context) {
	var req ledgerapp.BillRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ref, err := h.settlement.CreateAgstRef(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ref)
}

// DeleteRefsBySource removes every bill reference of a source document
func (h *LedgerHandler) DeleteRefsBySource(c *gin.Context) {
	referenceType := c.Param("type")
	referenceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid source document id")
		return
	}

	if err := h.settlement.DeleteRefsBySource(c.Request.Context(), referenceType, referenceID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type accountBillsQuery struct {
	CompanyID string `form:"company_id" binding:"required,uuid"`
}

// OutstandingBills lists an account's unsettled bills
func (h *LedgerHandler) OutstandingBills(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var q accountBillsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	bills, err := h.settlement.OutstandingBills(c.Request.Context(), uuid.MustParse(q.CompanyID), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bills)
}

// BillHistory lists every reference row of an account in date order
func (h *LedgerHandler) BillHistory(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var q accountBillsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	history, err := h.settlement.BillHistory(c.Request.Context(), uuid.MustParse(q.CompanyID), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}

// pathID parses the :id path parameter, replying 400 on failure
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

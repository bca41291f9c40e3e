package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"reconciliation-engine/internal/config"
	"reconciliation-engine/internal/gateway"
	"reconciliation-engine/internal/models"
	service "reconciliation-engine/internal/services/reconciliation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UserHeader carries the caller's id, set by the auth layer in front of this service.
const UserHeader = "X-User-ID"

type ReconciliationHandler struct {
	service ReconciliationService
	csv     *gateway.CSVTransactionReader
}

func NewReconciliationHandler(s ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{service: s, csv: gateway.NewCSVTransactionReader()}
}

// Register mounts the reconciliation routes on rg.
func (h *ReconciliationHandler) Register(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions")
	sessions.POST("", h.CreateSession)
	sessions.GET("", h.ListSessions)
	sessions.GET("/:sessionId", h.GetSession)
	sessions.POST("/:sessionId/cancel", h.CancelSession)

	sessions.POST("/:sessionId/bank-transactions", h.ImportBankTransactions)
	sessions.POST("/:sessionId/bank-transactions/upload", h.UploadBankTransactions)
	sessions.POST("/:sessionId/internal-transactions", h.ImportInternalTransactions)
	sessions.POST("/:sessionId/internal-transactions/upload", h.UploadInternalTransactions)

	sessions.GET("/:sessionId/matches/suggestions", h.SuggestMatches)
	sessions.POST("/:sessionId/matches", h.CreateMatch)
	sessions.POST("/:sessionId/auto-match", h.AutoMatch)

	sessions.GET("/:sessionId/report", h.GetReport)
	sessions.GET("/:sessionId/report/export", h.ExportReport)
}

func (h *ReconciliationHandler) CreateSession(c *gin.Context) {
	owner, ok := requireUser(c)
	if !ok {
		return
	}

	var payload struct {
		Name            string           `json:"name" binding:"required"`
		Type            string           `json:"type"`
		PeriodStart     string           `json:"period_start" binding:"required"` // YYYY-MM-DD
		PeriodEnd       string           `json:"period_end" binding:"required"`
		AmountTolerance *decimal.Decimal `json:"amount_tolerance"`
		DateTolerance   *int             `json:"date_tolerance"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	start, err := gateway.ParseDate(payload.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_start"})
		return
	}
	end, err := gateway.ParseDate(payload.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_end"})
		return
	}

	session, err := h.service.CreateSession(c.Request.Context(), owner, service.CreateSessionParams{
		Name:            payload.Name,
		Type:            models.SessionType(payload.Type),
		PeriodStart:     start,
		PeriodEnd:       end,
		AmountTolerance: payload.AmountTolerance,
		DateTolerance:   payload.DateTolerance,
	})
	if err != nil {
		writeError(c, "CreateSession", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

func (h *ReconciliationHandler) ListSessions(c *gin.Context) {
	owner := c.GetHeader(UserHeader)
	if owner == "" {
		owner = c.Query("owner_id")
	}

	sessions, err := h.service.ListSessions(c.Request.Context(), owner)
	if err != nil {
		writeError(c, "ListSessions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": sessions})
}

func (h *ReconciliationHandler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	session, err := h.service.GetSession(c.Request.Context(), id)
	if err != nil {
		writeError(c, "GetSession", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (h *ReconciliationHandler) CancelSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	session, err := h.service.CancelSession(c.Request.Context(), id)
	if err != nil {
		writeError(c, "CancelSession", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session cancelled", "session": session})
}

type bankTransactionPayload struct {
	ExternalTransactionID string          `json:"external_transaction_id" binding:"required"`
	Date                  string          `json:"date" binding:"required"`
	Amount                decimal.Decimal `json:"amount"`
	Description           string          `json:"description"`
	Reference             string          `json:"reference"`
	Memo                  string          `json:"memo"`
	Category              string          `json:"category"`
	Merchant              string          `json:"merchant"`
	IsPending             bool            `json:"is_pending"`
}

func (h *ReconciliationHandler) ImportBankTransactions(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var payload struct {
		Transactions []bankTransactionPayload `json:"transactions" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	records := make([]service.BankTransactionInput, 0, len(payload.Transactions))
	for i, t := range payload.Transactions {
		date, err := gateway.ParseDate(t.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("transaction %d: invalid date", i)})
			return
		}
		records = append(records, service.BankTransactionInput{
			ExternalTransactionID: t.ExternalTransactionID,
			Date:                  date,
			Amount:                t.Amount,
			Description:           t.Description,
			Reference:             t.Reference,
			Memo:                  t.Memo,
			Category:              t.Category,
			Merchant:              t.Merchant,
			IsPending:             t.IsPending,
		})
	}

	result, err := h.service.ImportBankTransactions(c.Request.Context(), id, records)
	if err != nil {
		writeError(c, "ImportBankTransactions", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type internalTransactionPayload struct {
	EntityType  string          `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	Date        string          `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Account     string          `json:"account"`
}

func (h *ReconciliationHandler) ImportInternalTransactions(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var payload struct {
		Transactions []internalTransactionPayload `json:"transactions" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	records := make([]service.InternalTransactionInput, 0, len(payload.Transactions))
	for i, t := range payload.Transactions {
		date, err := gateway.ParseDate(t.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("transaction %d: invalid date", i)})
			return
		}
		records = append(records, service.InternalTransactionInput{
			EntityType:  t.EntityType,
			EntityID:    t.EntityID,
			Date:        date,
			Amount:      t.Amount,
			Description: t.Description,
			Account:     t.Account,
		})
	}

	result, err := h.service.ImportInternalTransactions(c.Request.Context(), id, records)
	if err != nil {
		writeError(c, "ImportInternalTransactions", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UploadBankTransactions imports a bank statement CSV sent as the "file" form field.
func (h *ReconciliationHandler) UploadBankTransactions(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	records, err := h.csv.ReadBankTransactions(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid CSV", "details": err.Error()})
		return
	}

	result, err := h.service.ImportBankTransactions(c.Request.Context(), id, records)
	if err != nil {
		writeError(c, "UploadBankTransactions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"file": header.Filename, "result": result})
}

// UploadInternalTransactions imports a ledger CSV sent as the "file" form field.
func (h *ReconciliationHandler) UploadInternalTransactions(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	records, err := h.csv.ReadInternalTransactions(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid CSV", "details": err.Error()})
		return
	}

	result, err := h.service.ImportInternalTransactions(c.Request.Context(), id, records)
	if err != nil {
		writeError(c, "UploadInternalTransactions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"file": header.Filename, "result": result})
}

func (h *ReconciliationHandler) SuggestMatches(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var criteria *service.MatchCriteria
	if raw := c.Query("amount_tolerance"); raw != "" {
		tol, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount_tolerance"})
			return
		}
		criteria = &service.MatchCriteria{AmountTolerance: &tol}
	}
	if raw := c.Query("date_tolerance"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_tolerance"})
			return
		}
		if criteria == nil {
			criteria = &service.MatchCriteria{}
		}
		criteria.DateTolerance = &days
	}

	results, err := h.service.FindMatches(c.Request.Context(), id, criteria)
	if err != nil {
		writeError(c, "SuggestMatches", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": results, "count": len(results)})
}

func (h *ReconciliationHandler) CreateMatch(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var payload struct {
		BankTransactionID     string `json:"bank_transaction_id" binding:"required"`
		InternalTransactionID string `json:"internal_transaction_id" binding:"required"`
		Notes                 string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	bankID, err := uuid.Parse(payload.BankTransactionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bank transaction ID"})
		return
	}
	internalID, err := uuid.Parse(payload.InternalTransactionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid internal transaction ID"})
		return
	}

	match, err := h.service.CreateMatch(c.Request.Context(), id, bankID, internalID, user, payload.Notes)
	if err != nil {
		writeError(c, "CreateMatch", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "transactions matched", "match": match})
}

func (h *ReconciliationHandler) AutoMatch(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var payload struct {
		MinConfidence string `json:"min_confidence"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
	}

	matches, err := h.service.AutoMatch(c.Request.Context(), id, user, models.Confidence(payload.MinConfidence))
	if err != nil {
		writeError(c, "AutoMatch", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "auto match completed", "matches": matches, "count": len(matches)})
}

func (h *ReconciliationHandler) GetReport(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	report, err := h.service.GenerateReport(c.Request.Context(), id)
	if err != nil {
		writeError(c, "GetReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReconciliationHandler) ExportReport(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	report, err := h.service.GenerateReport(c.Request.Context(), id)
	if err != nil {
		writeError(c, "ExportReport", err)
		return
	}

	var buf bytes.Buffer
	if err := service.ExportReportXLSX(report, &buf); err != nil {
		writeError(c, "ExportReport", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=reconciliation-%s.xlsx", id))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return uuid.Nil, false
	}
	return id, true
}

func requireUser(c *gin.Context) (string, bool) {
	user := c.GetHeader(UserHeader)
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserHeader + " header"})
		return "", false
	}
	return user, true
}

func writeError(c *gin.Context, funcName string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		body := gin.H{"error": err.Error()}
		if len(verr.Fields) > 0 {
			body["fields"] = verr.Fields
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyReconciled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		config.LogError(config.GetLogger(), "handler", funcName, c.FullPath(), nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

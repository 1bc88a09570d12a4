package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"finbook/internal/auth"
	dom "finbook/internal/domain"
	"finbook/internal/dto"
	"finbook/internal/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler handles ledger CRUD.
type TransactionHandler struct {
	svc *service.TransactionService
}

// NewTransactionHandler returns a new TransactionHandler.
func NewTransactionHandler(svc *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// List godoc
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        type        query  string  false  "income or expense"
// @Param        start_date  query  string  false  "YYYY-MM-DD, inclusive"
// @Param        end_date    query  string  false  "YYYY-MM-DD, inclusive"
// @Success      200  {object}  dto.ListTransactionsResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), userID, filter)
	if err != nil {
		slog.Error("list transactions failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Items: transactionsToResponses(list)})
}

// GetByID godoc
// @Summary      Get a transaction by ID
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Transaction ID"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		slog.Error("get transaction failed", "user_id", userID, "transaction_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, transactionToResponse(t))
}

// Create godoc
// @Summary      Create a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTransactionRequest  true  "Transaction body"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), userID,
		req.Type, req.Amount, req.CategoryID, req.Description, req.Date.Ptr())
	if err != nil {
		h.writeMutationError(c, userID, err)
		return
	}
	c.JSON(http.StatusCreated, transactionToResponse(t))
}

// Update godoc
// @Summary      Update a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int  true  "Transaction ID"
// @Param        body  body      dto.UpdateTransactionRequest  true  "Full replacement"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.Update(c.Request.Context(), userID, id,
		req.Type, req.Amount, req.CategoryID, req.Description, req.Date.Ptr())
	if err != nil {
		h.writeMutationError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, transactionToResponse(t))
}

// Delete godoc
// @Summary      Delete a transaction
// @Tags         transactions
// @Security     BearerAuth
// @Param        id   path  int  true  "Transaction ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		slog.Error("delete transaction failed", "user_id", userID, "transaction_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TransactionHandler) writeMutationError(c *gin.Context, userID int64, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "type, amount, category_id and date required"})
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "category not found"})
	case errors.Is(err, service.ErrCategoryTypeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "category type does not match transaction type"})
	default:
		slog.Error("transaction write failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseFilter reads optional type/start_date/end_date query parameters.
func parseFilter(c *gin.Context) (dom.TransactionFilter, bool) {
	var f dom.TransactionFilter
	if raw := c.Query("type"); raw != "" {
		t, err := dom.ParseTxType(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return f, false
		}
		f.Type = t
	}
	from, err := dto.ParseDateQuery(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date: use YYYY-MM-DD"})
		return f, false
	}
	to, err := dto.ParseDateQuery(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date: use YYYY-MM-DD"})
		return f, false
	}
	f.From, f.To = from, to
	return f, true
}

func transactionToResponse(t dom.Transaction) dto.TransactionResponse {
	name := t.CategoryName
	if name == "" {
		name = service.UncategorizedLabel
	}
	return dto.TransactionResponse{
		ID:           t.ID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		CategoryID:   t.CategoryID,
		CategoryName: name,
		CategoryIcon: t.CategoryIcon,
		Description:  t.Description,
		Date:         dto.FormatDate(t.Date),
		CreatedAt:    t.CreatedAt,
	}
}

func transactionsToResponses(list []dom.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, len(list))
	for i := range list {
		out[i] = transactionToResponse(list[i])
	}
	return out
}

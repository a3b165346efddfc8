package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
	"fintrack/internal/timeutil"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Title         string                     `json:"title" binding:"required,max=255"`
	Amount        int64                      `json:"amount" binding:"required,gt=0"`
	Type          models.TransactionType     `json:"transaction_type" binding:"required,transaction_type"`
	Date          string                     `json:"date" binding:"required"`
	Category      models.TransactionCategory `json:"category" binding:"required,transaction_category"`
	CategoryOther string                     `json:"category_other" binding:"max=255"`
	Description   string                     `json:"description" binding:"max=500"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction; omitted fields are left untouched.
type UpdateTransactionRequest struct {
	Title         *string                     `json:"title" binding:"omitempty,max=255"`
	Amount        *int64                      `json:"amount" binding:"omitempty,gt=0"`
	Type          *models.TransactionType     `json:"transaction_type" binding:"omitempty,transaction_type"`
	Date          *string                     `json:"date"`
	Category      *models.TransactionCategory `json:"category" binding:"omitempty,transaction_category"`
	CategoryOther *string                     `json:"category_other" binding:"omitempty,max=255"`
	Description   *string                     `json:"description" binding:"omitempty,max=500"`
}

// Create handles the creation of a new transaction
// @Summary     Create a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input or validation failure"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/ [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDateField("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.Create(actor, req.Title, req.Amount, req.Type, date, req.Category, req.CategoryOther, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// List handles the retrieval of transactions with optional filters
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Param       transaction_type query string false "Filter by type (income, expense)"
// @Param       category         query string false "Filter by exact category"
// @Param       date_from        query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       date_to          query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       page             query int    false "Page number (default 1)"
// @Param       page_size        query int    false "Items per page (default 50, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/ [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.List(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles the retrieval of a single transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id}/ [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// Update handles full and partial updates of a transaction
// @Summary     Update a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path int  true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id}/ [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.TransactionUpdate{
		Title:         req.Title,
		Amount:        req.Amount,
		Type:          req.Type,
		Category:      req.Category,
		CategoryOther: req.CategoryOther,
		Description:   req.Description,
	}
	if req.Date != nil {
		date, err := parseDateField("date", *req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.Date = &date
	}

	transaction, err := h.transactionService.Update(actor, id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// Delete handles the deletion of a transaction
// @Summary     Delete a transaction
// @Tags        transactions
// @Param       id path int true "Transaction ID"
// @Success     204 "Deleted"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id}/ [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.Delete(actor, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// FilterByCategory returns transactions matching an exact category
// @Summary     Filter transactions by category
// @Tags        transactions
// @Produce     json
// @Param       category query string false "Category value"
// @Success     200 {object} map[string][]models.Transaction "Matching transactions"
// @Router      /transactions/filter_by_category/ [get]
func (h *TransactionHandler) FilterByCategory(c *gin.Context) {
	var category *models.TransactionCategory
	if value := c.Query("category"); value != "" {
		cat := models.TransactionCategory(value)
		category = &cat
	}

	transactions, err := h.transactionService.ListByCategory(category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transactions})
}

// TodaysTransactions returns transactions dated on the local calendar day
// @Summary     List today's transactions
// @Tags        transactions
// @Produce     json
// @Success     200 {object} map[string][]models.Transaction "Today's transactions"
// @Router      /transactions/todays_transactions/ [get]
func (h *TransactionHandler) TodaysTransactions(c *gin.Context) {
	transactions, err := h.transactionService.ListToday()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transactions})
}

// FilterByType returns transactions filtered by type and date range
// @Summary     Filter transactions by type
// @Tags        transactions
// @Produce     json
// @Param       transaction_type query string false "Type (income, expense)"
// @Param       date_from        query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       date_to          query string false "Inclusive end date (YYYY-MM-DD)"
// @Success     200 {object} map[string][]models.Transaction "Matching transactions"
// @Router      /transactions/filter_by_transaction_type/ [get]
func (h *TransactionHandler) FilterByType(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.ListByType(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transactions})
}

// TodayTotals sums income and expense for one local day
// @Summary     Today's totals
// @Description Sum income and expense for the local day; an unparsable "today" override falls back to the server's local today
// @Tags        transactions
// @Produce     json
// @Param       today query string false "Override date (YYYY-MM-DD)"
// @Success     200 {object} services.Summary "Totals"
// @Router      /transactions/today_total_transactions/ [get]
func (h *TransactionHandler) TodayTotals(c *gin.Context) {
	// A "today" override that fails to parse falls back silently to the
	// server's local today.
	var override *timeutil.Date
	if value := c.Query("today"); value != "" {
		if d, err := timeutil.ParseDate(value); err == nil {
			override = &d
		}
	}

	summary, err := h.transactionService.TodayTotals(override)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// YesterdayTotals sums income and expense for the previous local day
// @Summary     Yesterday's totals
// @Tags        transactions
// @Produce     json
// @Success     200 {object} services.Summary "Totals"
// @Router      /transactions/yesterday_total_transactions/ [get]
func (h *TransactionHandler) YesterdayTotals(c *gin.Context) {
	summary, err := h.transactionService.YesterdayTotals()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Summary sums income and expense over an optional date range
// @Summary     Transaction summary
// @Description Sum income and expense over an optional inclusive date range; with no range, everything up to the local today counts
// @Tags        transactions
// @Produce     json
// @Param       date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       date_to   query string false "Inclusive end date (YYYY-MM-DD)"
// @Success     200 {object} services.Summary "Totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transactions/summary/ [get]
func (h *TransactionHandler) Summary(c *gin.Context) {
	r, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.transactionService.Summarize(r)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// parseDateRange reads the optional date_from/date_to query parameters.
func parseDateRange(c *gin.Context) (services.DateRange, error) {
	from, err := parseDateQuery(c, "date_from")
	if err != nil {
		return services.DateRange{}, err
	}
	to, err := parseDateQuery(c, "date_to")
	if err != nil {
		return services.DateRange{}, err
	}
	return services.DateRange{From: from, To: to}, nil
}

// parseTransactionFilter reads the optional type/category/date-range
// query parameters.
func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if value := c.Query("transaction_type"); value != "" {
		txType := models.TransactionType(value)
		if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction_type must be income or expense")
		}
		filter.Type = &txType
	}
	if value := c.Query("category"); value != "" {
		category := models.TransactionCategory(value)
		filter.Category = &category
	}

	r, err := parseDateRange(c)
	if err != nil {
		return filter, err
	}
	filter.DateRange = r
	return filter, nil
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// BillHandler handles bill-related requests.
type BillHandler struct {
	billService services.BillServicer
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService services.BillServicer) *BillHandler {
	return &BillHandler{billService: billService}
}

// CreateBillRequest represents the request payload for creating a bill.
// Amounts may be zero or negative; a credit against a bill is a valid
// entry.
type CreateBillRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Amount      *int64 `json:"amount" binding:"required"`
	DueDate     string `json:"due_date" binding:"required"`
	IsPaid      *bool  `json:"is_paid"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateBillRequest represents the request payload for updating a bill;
// omitted fields are left untouched.
type UpdateBillRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Amount      *int64  `json:"amount"`
	DueDate     *string `json:"due_date"`
	IsPaid      *bool   `json:"is_paid"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// Create handles the creation of a new bill
// @Summary     Create a bill
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       request body CreateBillRequest true "Bill details"
// @Success     201 {object} models.Bill "Bill created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /bills/ [post]
func (h *BillHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	dueDate, err := parseDateField("due_date", req.DueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paid := false
	if req.IsPaid != nil {
		paid = *req.IsPaid
	}

	bill, err := h.billService.Create(actor, req.Title, *req.Amount, dueDate, paid, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

// List handles the retrieval of bills with an optional paid filter
// @Summary     List bills
// @Tags        bills
// @Produce     json
// @Param       is_paid   query bool false "Filter by paid status"
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 50, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Bill] "Paginated bills"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /bills/ [get]
func (h *BillHandler) List(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.BillFilter
	if value := c.Query("is_paid"); value != "" {
		paid, err := strconv.ParseBool(value)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "is_paid must be true or false"))
			return
		}
		filter.IsPaid = &paid
	}

	result, err := h.billService.List(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles the retrieval of a single bill
// @Summary     Get a bill
// @Tags        bills
// @Produce     json
// @Param       id path int true "Bill ID"
// @Success     200 {object} models.Bill "Bill"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /bills/{id}/ [get]
func (h *BillHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// Update handles full and partial updates of a bill
// @Summary     Update a bill
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       id      path int true "Bill ID"
// @Param       request body UpdateBillRequest true "Fields to update"
// @Success     200 {object} models.Bill "Updated bill"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /bills/{id}/ [put]
func (h *BillHandler) Update(c *gin.Context) {
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

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.BillUpdate{
		Title:       req.Title,
		Amount:      req.Amount,
		IsPaid:      req.IsPaid,
		Description: req.Description,
	}
	if req.DueDate != nil {
		dueDate, err := parseDateField("due_date", *req.DueDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.DueDate = &dueDate
	}

	bill, err := h.billService.Update(actor, id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// Delete handles the deletion of a bill
// @Summary     Delete a bill
// @Tags        bills
// @Param       id path int true "Bill ID"
// @Success     204 "Deleted"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /bills/{id}/ [delete]
func (h *BillHandler) Delete(c *gin.Context) {
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

	if err := h.billService.Delete(actor, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// TodaysBills returns bills due on the local calendar day
// @Summary     List today's bills
// @Tags        bills
// @Produce     json
// @Success     200 {object} map[string][]models.Bill "Today's bills"
// @Router      /bills/todays_bills/ [get]
func (h *BillHandler) TodaysBills(c *gin.Context) {
	bills, err := h.billService.ListToday()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bills})
}

// PendingBills returns unpaid bills
// @Summary     List pending bills
// @Tags        bills
// @Produce     json
// @Success     200 {object} map[string][]models.Bill "Unpaid bills"
// @Router      /bills/pending_bills/ [get]
func (h *BillHandler) PendingBills(c *gin.Context) {
	bills, err := h.billService.ListPending()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bills})
}

// TotalPaid sums the amounts of paid bills
// @Summary     Total of paid bills
// @Tags        bills
// @Produce     json
// @Success     200 {object} map[string]int64 "Paid total"
// @Router      /bills/total_paid_bills/ [get]
func (h *BillHandler) TotalPaid(c *gin.Context) {
	total, err := h.billService.TotalPaid()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_paid_bills": total})
}

// TotalUnpaid sums the amounts of unpaid bills
// @Summary     Total of unpaid bills
// @Tags        bills
// @Produce     json
// @Success     200 {object} map[string]int64 "Unpaid total"
// @Router      /bills/total_unpaid_bills/ [get]
func (h *BillHandler) TotalUnpaid(c *gin.Context) {
	total, err := h.billService.TotalUnpaid()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_unpaid_bills": total})
}

// Total sums the amounts of all bills
// @Summary     Total of all bills
// @Tags        bills
// @Produce     json
// @Success     200 {object} map[string]int64 "Overall total"
// @Router      /bills/total_bills/ [get]
func (h *BillHandler) Total(c *gin.Context) {
	total, err := h.billService.Total()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_bills": total})
}

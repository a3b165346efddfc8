package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// PettyCashHandler handles petty-cash requests.
type PettyCashHandler struct {
	pettyCashService services.PettyCashServicer
}

// NewPettyCashHandler creates a new PettyCashHandler.
func NewPettyCashHandler(pettyCashService services.PettyCashServicer) *PettyCashHandler {
	return &PettyCashHandler{pettyCashService: pettyCashService}
}

// CreatePettyCashRequest represents the request payload for creating a
// petty-cash entry. The control number is assigned server-side and
// cannot be supplied.
type CreatePettyCashRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Amount      *int64 `json:"amount" binding:"required"`
	Date        string `json:"date" binding:"required"`
	IsApproved  *bool  `json:"is_approved"`
	Description string `json:"description" binding:"max=500"`
}

// UpdatePettyCashRequest represents the request payload for updating a
// petty-cash entry; omitted fields are left untouched.
type UpdatePettyCashRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Amount      *int64  `json:"amount"`
	Date        *string `json:"date"`
	IsApproved  *bool   `json:"is_approved"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// Create handles the creation of a new petty-cash entry
// @Summary     Create a petty-cash entry
// @Tags        petty-cash
// @Accept      json
// @Produce     json
// @Param       request body CreatePettyCashRequest true "Entry details"
// @Success     201 {object} models.PettyCash "Entry created with its control number"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /petty-cash/ [post]
func (h *PettyCashHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePettyCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDateField("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	approved := false
	if req.IsApproved != nil {
		approved = *req.IsApproved
	}

	entry, err := h.pettyCashService.Create(actor, req.Name, *req.Amount, date, approved, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// List handles the retrieval of petty-cash entries
// @Summary     List petty-cash entries
// @Tags        petty-cash
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 100)"
// @Success     200 {object} pagination.PageResponse[models.PettyCash] "Paginated entries"
// @Router      /petty-cash/ [get]
func (h *PettyCashHandler) List(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.pettyCashService.List(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles the retrieval of a single petty-cash entry
// @Summary     Get a petty-cash entry
// @Tags        petty-cash
// @Produce     json
// @Param       id path int true "Entry ID"
// @Success     200 {object} models.PettyCash "Entry"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /petty-cash/{id}/ [get]
func (h *PettyCashHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.pettyCashService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Update handles full and partial updates of a petty-cash entry
// @Summary     Update a petty-cash entry
// @Description The control number is immutable and ignored if supplied
// @Tags        petty-cash
// @Accept      json
// @Produce     json
// @Param       id      path int true "Entry ID"
// @Param       request body UpdatePettyCashRequest true "Fields to update"
// @Success     200 {object} models.PettyCash "Updated entry"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /petty-cash/{id}/ [put]
func (h *PettyCashHandler) Update(c *gin.Context) {
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

	var req UpdatePettyCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.PettyCashUpdate{
		Name:        req.Name,
		Amount:      req.Amount,
		IsApproved:  req.IsApproved,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := parseDateField("date", *req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.Date = &date
	}

	entry, err := h.pettyCashService.Update(actor, id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Delete handles the deletion of a petty-cash entry
// @Summary     Delete a petty-cash entry
// @Tags        petty-cash
// @Param       id path int true "Entry ID"
// @Success     204 "Deleted"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /petty-cash/{id}/ [delete]
func (h *PettyCashHandler) Delete(c *gin.Context) {
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

	if err := h.pettyCashService.Delete(actor, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// TodaysEntries returns entries dated on the local calendar day
// @Summary     List today's petty-cash entries
// @Tags        petty-cash
// @Produce     json
// @Success     200 {object} map[string][]models.PettyCash "Today's entries"
// @Router      /petty-cash/todays_petty_cash/ [get]
func (h *PettyCashHandler) TodaysEntries(c *gin.Context) {
	entries, err := h.pettyCashService.ListToday()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// PendingEntries returns entries awaiting approval
// @Summary     List pending petty-cash entries
// @Tags        petty-cash
// @Produce     json
// @Success     200 {object} map[string][]models.PettyCash "Pending entries"
// @Router      /petty-cash/pending_petty_cash/ [get]
func (h *PettyCashHandler) PendingEntries(c *gin.Context) {
	entries, err := h.pettyCashService.ListPending()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// TotalApproved sums the amounts of approved entries
// @Summary     Total of approved petty cash
// @Tags        petty-cash
// @Produce     json
// @Success     200 {object} map[string]int64 "Approved total"
// @Router      /petty-cash/total_petty_cash/ [get]
func (h *PettyCashHandler) TotalApproved(c *gin.Context) {
	total, err := h.pettyCashService.TotalApproved()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_petty_cash": total})
}

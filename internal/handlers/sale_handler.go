package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// SaleHandler handles sale-related requests.
type SaleHandler struct {
	saleService services.SaleServicer
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleService services.SaleServicer) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// CreateSaleRequest represents the request payload for creating a sale
type CreateSaleRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	SaleDate    string `json:"sale_date" binding:"required"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateSaleRequest represents the request payload for updating a sale;
// omitted fields are left untouched.
type UpdateSaleRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Amount      *int64  `json:"amount" binding:"omitempty,gt=0"`
	SaleDate    *string `json:"sale_date"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// Create handles the creation of a new sale
// @Summary     Create a sale
// @Tags        sales
// @Accept      json
// @Produce     json
// @Param       request body CreateSaleRequest true "Sale details"
// @Success     201 {object} models.Sale "Sale created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /sales/ [post]
func (h *SaleHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	saleDate, err := parseDateField("sale_date", req.SaleDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sale, err := h.saleService.Create(actor, req.Title, req.Amount, saleDate, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// List handles the retrieval of sales
// @Summary     List sales
// @Tags        sales
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Sale] "Paginated sales"
// @Router      /sales/ [get]
func (h *SaleHandler) List(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.saleService.List(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles the retrieval of a single sale
// @Summary     Get a sale
// @Tags        sales
// @Produce     json
// @Param       id path int true "Sale ID"
// @Success     200 {object} models.Sale "Sale"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /sales/{id}/ [get]
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	sale, err := h.saleService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

// Update handles full and partial updates of a sale
// @Summary     Update a sale
// @Tags        sales
// @Accept      json
// @Produce     json
// @Param       id      path int true "Sale ID"
// @Param       request body UpdateSaleRequest true "Fields to update"
// @Success     200 {object} models.Sale "Updated sale"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /sales/{id}/ [put]
func (h *SaleHandler) Update(c *gin.Context) {
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

	var req UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.SaleUpdate{
		Title:       req.Title,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.SaleDate != nil {
		saleDate, err := parseDateField("sale_date", *req.SaleDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.SaleDate = &saleDate
	}

	sale, err := h.saleService.Update(actor, id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

// Delete handles the deletion of a sale
// @Summary     Delete a sale
// @Tags        sales
// @Param       id path int true "Sale ID"
// @Success     204 "Deleted"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /sales/{id}/ [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
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

	if err := h.saleService.Delete(actor, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// TodaysSales returns sales dated on the local calendar day
// @Summary     List today's sales
// @Tags        sales
// @Produce     json
// @Success     200 {object} map[string][]models.Sale "Today's sales"
// @Router      /sales/todays_sales/ [get]
func (h *SaleHandler) TodaysSales(c *gin.Context) {
	sales, err := h.saleService.ListToday()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sales})
}

// Total sums the amounts of all sales
// @Summary     Total of all sales
// @Tags        sales
// @Produce     json
// @Success     200 {object} map[string]int64 "Overall total"
// @Router      /sales/total_sales/ [get]
func (h *SaleHandler) Total(c *gin.Context) {
	total, err := h.saleService.Total()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_sales": total})
}

package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/timeutil"
)

// saleService handles sale-related business logic.
type saleService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewSaleService creates a new SaleServicer.
func NewSaleService(db *gorm.DB, loc *time.Location) SaleServicer {
	return &saleService{db: db, loc: loc}
}

// Create persists a new sale owned by the actor.
func (s *saleService) Create(actor Actor, title string, amount int64, saleDate timeutil.Date, description string) (*models.Sale, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}
	if saleDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "sale_date is required")
	}

	owner := actor.UserID
	sale := &models.Sale{
		Title:       title,
		Amount:      amount,
		SaleDate:    saleDate,
		Description: description,
		UserID:      &owner,
	}

	if err := s.db.Create(sale).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sale, nil
}

// List retrieves a paginated list of sales.
func (s *saleService) List(page pagination.PageRequest) (*pagination.PageResponse[models.Sale], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Sale{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sales []models.Sale
	if err := s.db.Scopes(pagination.Paginate(page)).
		Order("sale_date DESC").
		Find(&sales).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(sales, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves a sale by ID.
func (s *saleService) GetByID(id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSaleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &sale, nil
}

// Update mutates a sale. Only the owner or a superuser may write.
func (s *saleService) Update(actor Actor, id uint, update SaleUpdate) (*models.Sale, error) {
	sale, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(sale.UserID) {
		return nil, apperrors.ErrForbidden
	}

	if update.Title != nil {
		sale.Title = *update.Title
	}
	if update.Amount != nil {
		sale.Amount = *update.Amount
	}
	if update.SaleDate != nil {
		sale.SaleDate = *update.SaleDate
	}
	if update.Description != nil {
		sale.Description = *update.Description
	}

	if sale.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}

	if err := s.db.Save(sale).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sale, nil
}

// Delete hard-deletes a sale. Only the owner or a superuser may delete.
func (s *saleService) Delete(actor Actor, id uint) error {
	sale, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !actor.CanModify(sale.UserID) {
		return apperrors.ErrForbidden
	}

	if err := s.db.Delete(sale).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListToday returns sales dated on the server's local calendar day.
func (s *saleService) ListToday() ([]models.Sale, error) {
	var sales []models.Sale
	if err := s.db.Where("sale_date = ?", timeutil.Today(s.loc)).
		Order("sale_date DESC").
		Find(&sales).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sales, nil
}

// Total sums the amounts of all sales; no rows sum to zero.
func (s *saleService) Total() (int64, error) {
	var total int64
	if err := s.db.Model(&models.Sale{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

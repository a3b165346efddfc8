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

// billService handles bill-related business logic.
type billService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewBillService creates a new BillServicer.
func NewBillService(db *gorm.DB, loc *time.Location) BillServicer {
	return &billService{db: db, loc: loc}
}

// Create persists a new bill owned by the actor.
func (s *billService) Create(actor Actor, title string, amount int64, dueDate timeutil.Date, paid bool, description string) (*models.Bill, error) {
	if dueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "due_date is required")
	}

	owner := actor.UserID
	bill := &models.Bill{
		Title:       title,
		Amount:      amount,
		DueDate:     dueDate,
		IsPaid:      paid,
		Description: description,
		UserID:      &owner,
	}

	if err := s.db.Create(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// List retrieves a paginated list of bills, optionally filtered by
// paid status.
func (s *billService) List(filter BillFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Bill], error) {
	page.Defaults()

	var totalItems int64
	if err := s.filtered(filter).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var bills []models.Bill
	if err := s.filtered(filter).Scopes(pagination.Paginate(page)).
		Order("due_date DESC").
		Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(bills, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves a bill by ID.
func (s *billService) GetByID(id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.First(&bill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bill, nil
}

// Update mutates a bill. Only the owner or a superuser may write.
func (s *billService) Update(actor Actor, id uint, update BillUpdate) (*models.Bill, error) {
	bill, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(bill.UserID) {
		return nil, apperrors.ErrForbidden
	}

	if update.Title != nil {
		bill.Title = *update.Title
	}
	if update.Amount != nil {
		bill.Amount = *update.Amount
	}
	if update.DueDate != nil {
		bill.DueDate = *update.DueDate
	}
	if update.IsPaid != nil {
		bill.IsPaid = *update.IsPaid
	}
	if update.Description != nil {
		bill.Description = *update.Description
	}

	if err := s.db.Save(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// Delete hard-deletes a bill. Only the owner or a superuser may delete.
func (s *billService) Delete(actor Actor, id uint) error {
	bill, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !actor.CanModify(bill.UserID) {
		return apperrors.ErrForbidden
	}

	if err := s.db.Delete(bill).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListToday returns bills due on the server's local calendar day.
func (s *billService) ListToday() ([]models.Bill, error) {
	var bills []models.Bill
	if err := s.db.Where("due_date = ?", timeutil.Today(s.loc)).
		Order("due_date DESC").
		Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bills, nil
}

// ListPending returns bills that have not been paid.
func (s *billService) ListPending() ([]models.Bill, error) {
	var bills []models.Bill
	if err := s.db.Where("is_paid = ?", false).
		Order("due_date DESC").
		Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bills, nil
}

// TotalPaid sums the amounts of paid bills.
func (s *billService) TotalPaid() (int64, error) {
	return s.sumWhere("is_paid = ?", true)
}

// TotalUnpaid sums the amounts of unpaid bills.
func (s *billService) TotalUnpaid() (int64, error) {
	return s.sumWhere("is_paid = ?", false)
}

// Total sums the amounts of all bills.
func (s *billService) Total() (int64, error) {
	var total int64
	if err := s.db.Model(&models.Bill{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

func (s *billService) sumWhere(query string, args ...interface{}) (int64, error) {
	var total int64
	if err := s.db.Model(&models.Bill{}).
		Where(query, args...).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

func (s *billService) filtered(f BillFilter) *gorm.DB {
	q := s.db.Model(&models.Bill{})
	if f.IsPaid != nil {
		q = q.Where("is_paid = ?", *f.IsPaid)
	}
	return q
}

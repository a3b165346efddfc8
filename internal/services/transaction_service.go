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

// transactionService handles transaction-related business logic.
type transactionService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewTransactionService creates a new TransactionServicer. Local-day
// queries use loc to resolve the caller-facing calendar date.
func NewTransactionService(db *gorm.DB, loc *time.Location) TransactionServicer {
	return &transactionService{db: db, loc: loc}
}

// Create persists a new transaction owned by the actor.
func (s *transactionService) Create(
	actor Actor,
	title string,
	amount int64,
	txType models.TransactionType,
	date timeutil.Date,
	category models.TransactionCategory,
	categoryOther, description string,
) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "date is required")
	}

	owner := actor.UserID
	transaction := &models.Transaction{
		Title:         title,
		Amount:        amount,
		Type:          txType,
		Date:          date,
		Category:      category,
		CategoryOther: categoryOther,
		Description:   description,
		UserID:        &owner,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// List retrieves a paginated, filtered list of transactions ordered by
// date descending.
func (s *transactionService) List(filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	var totalItems int64
	if err := s.filtered(filter).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := s.filtered(filter).Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves a transaction by ID. Reads are not ownership-gated.
func (s *transactionService) GetByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// Update mutates a transaction. Only the owner or a superuser may
// write; nil update fields are left untouched.
func (s *transactionService) Update(actor Actor, id uint, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(transaction.UserID) {
		return nil, apperrors.ErrForbidden
	}

	if update.Title != nil {
		transaction.Title = *update.Title
	}
	if update.Amount != nil {
		transaction.Amount = *update.Amount
	}
	if update.Type != nil {
		transaction.Type = *update.Type
	}
	if update.Date != nil {
		transaction.Date = *update.Date
	}
	if update.Category != nil {
		transaction.Category = *update.Category
	}
	if update.CategoryOther != nil {
		transaction.CategoryOther = *update.CategoryOther
	}
	if update.Description != nil {
		transaction.Description = *update.Description
	}

	if transaction.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}

	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// Delete hard-deletes a transaction. Only the owner or a superuser may delete.
func (s *transactionService) Delete(actor Actor, id uint) error {
	transaction, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !actor.CanModify(transaction.UserID) {
		return apperrors.ErrForbidden
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListByCategory returns transactions matching the exact category, or
// all transactions when no category is given.
func (s *transactionService) ListByCategory(category *models.TransactionCategory) ([]models.Transaction, error) {
	q := s.db.Model(&models.Transaction{}).Order("date DESC")
	if category != nil {
		q = q.Where("category = ?", *category)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// ListToday returns transactions dated on the server's local calendar day.
func (s *transactionService) ListToday() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("date = ?", timeutil.Today(s.loc)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// ListByType returns transactions filtered by type and/or date range.
func (s *transactionService) ListByType(filter TransactionFilter) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.filtered(filter).Order("date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// TodayTotals sums income and expense for one local calendar day. The
// override, when present, replaces the server's local today.
func (s *transactionService) TodayTotals(override *timeutil.Date) (*Summary, error) {
	day := timeutil.Today(s.loc)
	if override != nil {
		day = *override
	}
	return s.totalsForDay(day)
}

// YesterdayTotals sums income and expense for the previous local calendar day.
func (s *transactionService) YesterdayTotals() (*Summary, error) {
	return s.totalsForDay(timeutil.Yesterday(s.loc))
}

// Summarize sums income and expense over an optional inclusive date
// range. With no range given, everything up to the local today counts.
func (s *transactionService) Summarize(r DateRange) (*Summary, error) {
	if r.From == nil && r.To == nil {
		today := timeutil.Today(s.loc)
		r.To = &today
	}
	filter := TransactionFilter{DateRange: r}

	income, err := s.sumAmounts(s.filtered(filter).Where("type = ?", models.TransactionTypeIncome))
	if err != nil {
		return nil, err
	}
	expense, err := s.sumAmounts(s.filtered(filter).Where("type = ?", models.TransactionTypeExpense))
	if err != nil {
		return nil, err
	}

	return &Summary{TotalIncome: income, TotalExpense: expense, Balance: income - expense}, nil
}

func (s *transactionService) totalsForDay(day timeutil.Date) (*Summary, error) {
	base := func() *gorm.DB {
		return s.db.Model(&models.Transaction{}).Where("date = ?", day)
	}

	income, err := s.sumAmounts(base().Where("type = ?", models.TransactionTypeIncome))
	if err != nil {
		return nil, err
	}
	expense, err := s.sumAmounts(base().Where("type = ?", models.TransactionTypeExpense))
	if err != nil {
		return nil, err
	}

	return &Summary{TotalIncome: income, TotalExpense: expense, Balance: income - expense}, nil
}

// filtered builds a fresh query with the filter's conditions applied.
func (s *transactionService) filtered(f TransactionFilter) *gorm.DB {
	q := s.db.Model(&models.Transaction{})
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	return q
}

func (s *transactionService) sumAmounts(q *gorm.DB) (int64, error) {
	var total int64
	if err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

package services

import (
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/timeutil"
)

// controlNumberAttempts bounds the regenerate-and-retry loop when a
// freshly generated control number collides with an existing row.
const controlNumberAttempts = 5

// pettyCashService handles petty-cash business logic.
type pettyCashService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewPettyCashService creates a new PettyCashServicer.
func NewPettyCashService(db *gorm.DB, loc *time.Location) PettyCashServicer {
	return &pettyCashService{db: db, loc: loc}
}

// newControlNumber generates a candidate control number: "PC-" plus
// eight uppercase hex characters from a random UUID.
func newControlNumber() string {
	u := uuid.New()
	return "PC-" + strings.ToUpper(hex.EncodeToString(u[:4]))
}

// Create persists a new petty-cash entry owned by the actor. The
// control number is assigned here, before first persistence; the
// unique index resolves concurrent collisions and the insert is
// retried with a fresh number on conflict.
func (s *pettyCashService) Create(actor Actor, name string, amount int64, date timeutil.Date, approved bool, description string) (*models.PettyCash, error) {
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "date is required")
	}

	owner := actor.UserID
	entry := &models.PettyCash{
		Name:        name,
		Amount:      amount,
		Date:        date,
		IsApproved:  approved,
		Description: description,
		UserID:      &owner,
	}

	var lastErr error
	for attempt := 0; attempt < controlNumberAttempts; attempt++ {
		entry.ControlNumber = newControlNumber()
		err := s.db.Create(entry).Error
		if err == nil {
			return entry, nil
		}
		if !isUniqueViolation(err) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		lastErr = err
	}
	return nil, apperrors.Wrap(apperrors.ErrInternalServer, lastErr)
}

// isUniqueViolation reports whether err is a unique-constraint
// conflict. The control number is the only unique column on the table.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// List retrieves a paginated list of petty-cash entries.
func (s *pettyCashService) List(page pagination.PageRequest) (*pagination.PageResponse[models.PettyCash], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.PettyCash{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.PettyCash
	if err := s.db.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves a petty-cash entry by ID.
func (s *pettyCashService) GetByID(id uint) (*models.PettyCash, error) {
	var entry models.PettyCash
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPettyCashNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// Update mutates a petty-cash entry. The control number is never touched.
func (s *pettyCashService) Update(actor Actor, id uint, update PettyCashUpdate) (*models.PettyCash, error) {
	entry, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(entry.UserID) {
		return nil, apperrors.ErrForbidden
	}

	if update.Name != nil {
		entry.Name = *update.Name
	}
	if update.Amount != nil {
		entry.Amount = *update.Amount
	}
	if update.Date != nil {
		entry.Date = *update.Date
	}
	if update.IsApproved != nil {
		entry.IsApproved = *update.IsApproved
	}
	if update.Description != nil {
		entry.Description = *update.Description
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// Delete hard-deletes a petty-cash entry. Only the owner or a superuser may delete.
func (s *pettyCashService) Delete(actor Actor, id uint) error {
	entry, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !actor.CanModify(entry.UserID) {
		return apperrors.ErrForbidden
	}

	if err := s.db.Delete(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListToday returns entries dated on the server's local calendar day.
func (s *pettyCashService) ListToday() ([]models.PettyCash, error) {
	var entries []models.PettyCash
	if err := s.db.Where("date = ?", timeutil.Today(s.loc)).
		Order("date DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// ListPending returns entries that have not been approved yet.
func (s *pettyCashService) ListPending() ([]models.PettyCash, error) {
	var entries []models.PettyCash
	if err := s.db.Where("is_approved = ?", false).
		Order("date DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// TotalApproved sums the amounts of approved entries; no rows sum to zero.
func (s *pettyCashService) TotalApproved() (int64, error) {
	var total int64
	if err := s.db.Model(&models.PettyCash{}).
		Where("is_approved = ?", true).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

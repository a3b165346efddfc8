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

// calendarEventService handles calendar-event business logic.
type calendarEventService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewCalendarEventService creates a new CalendarEventServicer.
func NewCalendarEventService(db *gorm.DB, loc *time.Location) CalendarEventServicer {
	return &calendarEventService{db: db, loc: loc}
}

// Create persists a new event owned by the actor. The end must be
// strictly after the start.
func (s *calendarEventService) Create(actor Actor, title string, start, end time.Time, allDay bool, description string) (*models.CalendarEvent, error) {
	if !end.After(start) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "end_date must be after start_date")
	}

	owner := actor.UserID
	event := &models.CalendarEvent{
		Title:       title,
		StartDate:   timeutil.NewTime(start),
		EndDate:     timeutil.NewTime(end),
		AllDay:      allDay,
		Description: description,
		UserID:      &owner,
	}

	if err := s.db.Create(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return event, nil
}

// List returns the actor's own events. Unlike the other record kinds,
// the event listing is scoped to the caller.
func (s *calendarEventService) List(actor Actor, page pagination.PageRequest) (*pagination.PageResponse[models.CalendarEvent], error) {
	page.Defaults()

	base := func() *gorm.DB {
		return s.db.Model(&models.CalendarEvent{}).Where("user_id = ?", actor.UserID)
	}

	var totalItems int64
	if err := base().Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var events []models.CalendarEvent
	if err := base().Scopes(pagination.Paginate(page)).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(events, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves an event by ID.
func (s *calendarEventService) GetByID(id uint) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &event, nil
}

// Update mutates an event; the start/end ordering invariant is checked
// against the merged values.
func (s *calendarEventService) Update(actor Actor, id uint, update EventUpdate) (*models.CalendarEvent, error) {
	event, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(event.UserID) {
		return nil, apperrors.ErrForbidden
	}

	if update.Title != nil {
		event.Title = *update.Title
	}
	if update.StartDate != nil {
		event.StartDate = timeutil.NewTime(*update.StartDate)
	}
	if update.EndDate != nil {
		event.EndDate = timeutil.NewTime(*update.EndDate)
	}
	if update.AllDay != nil {
		event.AllDay = *update.AllDay
	}
	if update.Description != nil {
		event.Description = *update.Description
	}

	if !event.EndDate.After(event.StartDate.Time) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "end_date must be after start_date")
	}

	if err := s.db.Save(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return event, nil
}

// Delete hard-deletes an event. Only the owner or a superuser may delete.
func (s *calendarEventService) Delete(actor Actor, id uint) error {
	event, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !actor.CanModify(event.UserID) {
		return apperrors.ErrForbidden
	}

	if err := s.db.Delete(event).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListToday returns events starting on the server's local calendar day.
func (s *calendarEventService) ListToday() ([]models.CalendarEvent, error) {
	start, end := timeutil.DayBounds(timeutil.Today(s.loc), s.loc)

	var events []models.CalendarEvent
	if err := s.db.Where("start_date >= ? AND start_date < ?", start, end).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return events, nil
}

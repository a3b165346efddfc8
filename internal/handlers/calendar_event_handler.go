package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
	"fintrack/internal/timeutil"
)

// CalendarEventHandler handles calendar-event requests.
type CalendarEventHandler struct {
	eventService services.CalendarEventServicer
}

// NewCalendarEventHandler creates a new CalendarEventHandler.
func NewCalendarEventHandler(eventService services.CalendarEventServicer) *CalendarEventHandler {
	return &CalendarEventHandler{eventService: eventService}
}

// CreateEventRequest represents the request payload for creating a calendar event
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	AllDay      *bool  `json:"all_day"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateEventRequest represents the request payload for updating a
// calendar event; omitted fields are left untouched.
type UpdateEventRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	AllDay      *bool   `json:"all_day"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// Create handles the creation of a new calendar event
// @Summary     Create a calendar event
// @Tags        events
// @Accept      json
// @Produce     json
// @Param       request body CreateEventRequest true "Event details"
// @Success     201 {object} models.CalendarEvent "Event created"
// @Failure     400 {object} ErrorResponse "Invalid input or end not after start"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /calendar-events/ [post]
func (h *CalendarEventHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	start, err := timeutil.ParseTime(req.StartDate, timeutil.Location())
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date must be a valid timestamp"))
		return
	}
	end, err := timeutil.ParseTime(req.EndDate, timeutil.Location())
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must be a valid timestamp"))
		return
	}

	// Events are all-day unless the caller says otherwise.
	allDay := true
	if req.AllDay != nil {
		allDay = *req.AllDay
	}

	event, err := h.eventService.Create(actor, req.Title, start, end, allDay, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// List handles the retrieval of the caller's calendar events
// @Summary     List my calendar events
// @Tags        events
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 100)"
// @Success     200 {object} pagination.PageResponse[models.CalendarEvent] "Paginated events"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /calendar-events/ [get]
func (h *CalendarEventHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.eventService.List(actor, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles the retrieval of a single calendar event
// @Summary     Get a calendar event
// @Tags        events
// @Produce     json
// @Param       id path int true "Event ID"
// @Success     200 {object} models.CalendarEvent "Event"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /calendar-events/{id}/ [get]
func (h *CalendarEventHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	event, err := h.eventService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Update handles full and partial updates of a calendar event
// @Summary     Update a calendar event
// @Tags        events
// @Accept      json
// @Produce     json
// @Param       id      path int true "Event ID"
// @Param       request body UpdateEventRequest true "Fields to update"
// @Success     200 {object} models.CalendarEvent "Updated event"
// @Failure     400 {object} ErrorResponse "Invalid input or end not after start"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /calendar-events/{id}/ [put]
func (h *CalendarEventHandler) Update(c *gin.Context) {
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

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.EventUpdate{
		Title:       req.Title,
		AllDay:      req.AllDay,
		Description: req.Description,
	}
	if req.StartDate != nil {
		start, err := timeutil.ParseTime(*req.StartDate, timeutil.Location())
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date must be a valid timestamp"))
			return
		}
		update.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := timeutil.ParseTime(*req.EndDate, timeutil.Location())
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must be a valid timestamp"))
			return
		}
		update.EndDate = &end
	}

	event, err := h.eventService.Update(actor, id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete handles the deletion of a calendar event
// @Summary     Delete a calendar event
// @Tags        events
// @Param       id path int true "Event ID"
// @Success     204 "Deleted"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /calendar-events/{id}/ [delete]
func (h *CalendarEventHandler) Delete(c *gin.Context) {
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

	if err := h.eventService.Delete(actor, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// TodaysEvents returns events whose start falls on the local calendar day
// @Summary     List today's events
// @Tags        events
// @Produce     json
// @Success     200 {object} map[string][]models.CalendarEvent "Today's events"
// @Router      /calendar-events/todays_events/ [get]
func (h *CalendarEventHandler) TodaysEvents(c *gin.Context) {
	events, err := h.eventService.ListToday()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}

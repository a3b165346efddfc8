package services

import (
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/timeutil"
)

// Actor identifies the authenticated caller for permission checks.
type Actor struct {
	UserID      uint
	IsSuperuser bool
}

// CanModify reports whether the actor may write a record owned by
// ownerID. Superusers may always write; records with no owner are
// writable only by superusers.
func (a Actor) CanModify(ownerID *uint) bool {
	if a.IsSuperuser {
		return true
	}
	return ownerID != nil && *ownerID == a.UserID
}

// Summary holds income/expense sums over a filtered set of
// transactions. Empty sets sum to zero.
type Summary struct {
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	Balance      int64 `json:"balance"`
}

// DateRange is an optional inclusive date range; either side may be nil
// for an open-ended inequality.
type DateRange struct {
	From *timeutil.Date
	To   *timeutil.Date
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type     *models.TransactionType
	Category *models.TransactionCategory
	DateRange
}

// TransactionUpdate holds the mutable fields of a transaction; nil
// fields are left untouched.
type TransactionUpdate struct {
	Title         *string
	Amount        *int64
	Type          *models.TransactionType
	Date          *timeutil.Date
	Category      *models.TransactionCategory
	CategoryOther *string
	Description   *string
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password string, superuser, staff bool) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	Create(actor Actor, title string, amount int64, txType models.TransactionType, date timeutil.Date, category models.TransactionCategory, categoryOther, description string) (*models.Transaction, error)
	List(filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetByID(id uint) (*models.Transaction, error)
	Update(actor Actor, id uint, update TransactionUpdate) (*models.Transaction, error)
	Delete(actor Actor, id uint) error

	ListByCategory(category *models.TransactionCategory) ([]models.Transaction, error)
	ListToday() ([]models.Transaction, error)
	ListByType(filter TransactionFilter) ([]models.Transaction, error)
	TodayTotals(override *timeutil.Date) (*Summary, error)
	YesterdayTotals() (*Summary, error)
	Summarize(r DateRange) (*Summary, error)
}

// EventUpdate holds the mutable fields of a calendar event.
type EventUpdate struct {
	Title       *string
	StartDate   *time.Time
	EndDate     *time.Time
	AllDay      *bool
	Description *string
}

// CalendarEventServicer defines the contract for calendar-event business logic.
type CalendarEventServicer interface {
	Create(actor Actor, title string, start, end time.Time, allDay bool, description string) (*models.CalendarEvent, error)
	List(actor Actor, page pagination.PageRequest) (*pagination.PageResponse[models.CalendarEvent], error)
	GetByID(id uint) (*models.CalendarEvent, error)
	Update(actor Actor, id uint, update EventUpdate) (*models.CalendarEvent, error)
	Delete(actor Actor, id uint) error

	ListToday() ([]models.CalendarEvent, error)
}

// PettyCashUpdate holds the mutable fields of a petty-cash entry. The
// control number is immutable once assigned.
type PettyCashUpdate struct {
	Name        *string
	Amount      *int64
	Date        *timeutil.Date
	IsApproved  *bool
	Description *string
}

// PettyCashServicer defines the contract for petty-cash business logic.
type PettyCashServicer interface {
	Create(actor Actor, name string, amount int64, date timeutil.Date, approved bool, description string) (*models.PettyCash, error)
	List(page pagination.PageRequest) (*pagination.PageResponse[models.PettyCash], error)
	GetByID(id uint) (*models.PettyCash, error)
	Update(actor Actor, id uint, update PettyCashUpdate) (*models.PettyCash, error)
	Delete(actor Actor, id uint) error

	ListToday() ([]models.PettyCash, error)
	ListPending() ([]models.PettyCash, error)
	TotalApproved() (int64, error)
}

// BillFilter holds optional filter parameters for listing bills.
type BillFilter struct {
	IsPaid *bool
}

// BillUpdate holds the mutable fields of a bill.
type BillUpdate struct {
	Title       *string
	Amount      *int64
	DueDate     *timeutil.Date
	IsPaid      *bool
	Description *string
}

// BillServicer defines the contract for bill-related business logic.
type BillServicer interface {
	Create(actor Actor, title string, amount int64, dueDate timeutil.Date, paid bool, description string) (*models.Bill, error)
	List(filter BillFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Bill], error)
	GetByID(id uint) (*models.Bill, error)
	Update(actor Actor, id uint, update BillUpdate) (*models.Bill, error)
	Delete(actor Actor, id uint) error

	ListToday() ([]models.Bill, error)
	ListPending() ([]models.Bill, error)
	TotalPaid() (int64, error)
	TotalUnpaid() (int64, error)
	Total() (int64, error)
}

// SaleUpdate holds the mutable fields of a sale.
type SaleUpdate struct {
	Title       *string
	Amount      *int64
	SaleDate    *timeutil.Date
	Description *string
}

// SaleServicer defines the contract for sale-related business logic.
type SaleServicer interface {
	Create(actor Actor, title string, amount int64, saleDate timeutil.Date, description string) (*models.Sale, error)
	List(page pagination.PageRequest) (*pagination.PageResponse[models.Sale], error)
	GetByID(id uint) (*models.Sale, error)
	Update(actor Actor, id uint, update SaleUpdate) (*models.Sale, error)
	Delete(actor Actor, id uint) error

	ListToday() ([]models.Sale, error)
	Total() (int64, error)
}

package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/timeutil"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with a hashed password and a
// unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	username := fmt.Sprintf("user%d", nextID())
	return CreateTestUserWithUsername(t, db, username)
}

// CreateTestSuperuser creates an active superuser.
func CreateTestSuperuser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	user.IsSuperuser = true
	user.IsStaff = true
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("failed to promote test user: %v", err)
	}
	return user
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@test.com", username),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction of the given type and amount
// (in cents) dated on the given day.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, txType models.TransactionType, amount int64, date timeutil.Date) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Title:    fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:   amount,
		Type:     txType,
		Date:     date,
		Category: models.CategoryOther,
		UserID:   &userID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestEvent creates a one-hour calendar event starting at start.
func CreateTestEvent(t *testing.T, db *gorm.DB, userID uint, start timeutil.Time) *models.CalendarEvent {
	t.Helper()

	event := &models.CalendarEvent{
		Title:     fmt.Sprintf("Test Event %d", nextID()),
		StartDate: start,
		EndDate:   timeutil.Time{Time: start.Add(time.Hour)},
		AllDay:    false,
		UserID:    &userID,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateTestBill creates a bill with the given amount and paid status.
func CreateTestBill(t *testing.T, db *gorm.DB, userID uint, amount int64, paid bool, dueDate timeutil.Date) *models.Bill {
	t.Helper()

	bill := &models.Bill{
		Title:   fmt.Sprintf("Test Bill %d", nextID()),
		Amount:  amount,
		DueDate: dueDate,
		IsPaid:  paid,
		UserID:  &userID,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}

// CreateTestSale creates a sale with the given amount.
func CreateTestSale(t *testing.T, db *gorm.DB, userID uint, amount int64, saleDate timeutil.Date) *models.Sale {
	t.Helper()

	sale := &models.Sale{
		Title:    fmt.Sprintf("Test Sale %d", nextID()),
		Amount:   amount,
		SaleDate: saleDate,
		UserID:   &userID,
	}
	if err := db.Create(sale).Error; err != nil {
		t.Fatalf("failed to create test sale: %v", err)
	}
	return sale
}

// CreateTestPettyCash creates a petty-cash entry with a unique control
// number, bypassing the service-side generator.
func CreateTestPettyCash(t *testing.T, db *gorm.DB, userID uint, amount int64, approved bool, date timeutil.Date) *models.PettyCash {
	t.Helper()

	entry := &models.PettyCash{
		ControlNumber: fmt.Sprintf("PC-%08X", nextID()),
		Name:          fmt.Sprintf("Test Petty Cash %d", nextID()),
		Amount:        amount,
		Date:          date,
		IsApproved:    approved,
		UserID:        &userID,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test petty cash entry: %v", err)
	}
	return entry
}

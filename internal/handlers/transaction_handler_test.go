package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
	"fintrack/internal/timeutil"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createFn         func(actor services.Actor, title string, amount int64, txType models.TransactionType, date timeutil.Date, category models.TransactionCategory, categoryOther, description string) (*models.Transaction, error)
	listFn           func(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	getByIDFn        func(id uint) (*models.Transaction, error)
	updateFn         func(actor services.Actor, id uint, update services.TransactionUpdate) (*models.Transaction, error)
	deleteFn         func(actor services.Actor, id uint) error
	listByCategoryFn func(category *models.TransactionCategory) ([]models.Transaction, error)
	listTodayFn      func() ([]models.Transaction, error)
	listByTypeFn     func(filter services.TransactionFilter) ([]models.Transaction, error)
	todayTotalsFn    func(override *timeutil.Date) (*services.Summary, error)
	yesterdayFn      func() (*services.Summary, error)
	summarizeFn      func(r services.DateRange) (*services.Summary, error)
}

func (m *mockTransactionService) Create(actor services.Actor, title string, amount int64, txType models.TransactionType, date timeutil.Date, category models.TransactionCategory, categoryOther, description string) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(actor, title, amount, txType, date, category, categoryOther, description)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) List(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.listFn != nil {
		return m.listFn(filter, page)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 50, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetByID(id uint) (*models.Transaction, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) Update(actor services.Actor, id uint, update services.TransactionUpdate) (*models.Transaction, error) {
	if m.updateFn != nil {
		return m.updateFn(actor, id, update)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) Delete(actor services.Actor, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(actor, id)
	}
	return nil
}

func (m *mockTransactionService) ListByCategory(category *models.TransactionCategory) ([]models.Transaction, error) {
	if m.listByCategoryFn != nil {
		return m.listByCategoryFn(category)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) ListToday() ([]models.Transaction, error) {
	if m.listTodayFn != nil {
		return m.listTodayFn()
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) ListByType(filter services.TransactionFilter) ([]models.Transaction, error) {
	if m.listByTypeFn != nil {
		return m.listByTypeFn(filter)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) TodayTotals(override *timeutil.Date) (*services.Summary, error) {
	if m.todayTotalsFn != nil {
		return m.todayTotalsFn(override)
	}
	return &services.Summary{}, nil
}

func (m *mockTransactionService) YesterdayTotals() (*services.Summary, error) {
	if m.yesterdayFn != nil {
		return m.yesterdayFn()
	}
	return &services.Summary{}, nil
}

func (m *mockTransactionService) Summarize(r services.DateRange) (*services.Summary, error) {
	if m.summarizeFn != nil {
		return m.summarizeFn(r)
	}
	return &services.Summary{}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectActor(1, false))
	auth.GET("/transactions/", handler.List)
	auth.POST("/transactions/", handler.Create)
	auth.GET("/transactions/summary/", handler.Summary)
	auth.GET("/transactions/today_total_transactions/", handler.TodayTotals)
	auth.GET("/transactions/filter_by_category/", handler.FilterByCategory)
	auth.GET("/transactions/:id/", handler.Get)
	auth.PUT("/transactions/:id/", handler.Update)
	auth.DELETE("/transactions/:id/", handler.Delete)
	return r
}

func TestTransactionHandler_Create(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createFn: func(actor services.Actor, title string, amount int64, txType models.TransactionType, date timeutil.Date, category models.TransactionCategory, _, _ string) (*models.Transaction, error) {
				if actor.UserID != 1 {
					t.Errorf("expected actor 1, got %d", actor.UserID)
				}
				userID := actor.UserID
				return &models.Transaction{
					Base:     models.Base{ID: 10},
					Title:    title,
					Amount:   amount,
					Type:     txType,
					Date:     date,
					Category: category,
					UserID:   &userID,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "POST", "/transactions/",
			`{"title":"Salary","amount":5000,"transaction_type":"income","date":"2025-06-10","category":"salary"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["amount"].(float64) != 5000 {
			t.Errorf("expected amount 5000, got %v", result["amount"])
		}
		if result["date"] != "2025-06-10" {
			t.Errorf("expected date 2025-06-10, got %v", result["date"])
		}
	})

	t.Run("rejects non-positive amount at binding", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions/",
			`{"title":"Bad","amount":0,"transaction_type":"income","date":"2025-06-10","category":"salary"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions/",
			`{"title":"Bad","amount":100,"transaction_type":"income","date":"June 10th","category":"salary"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestTransactionHandler_List(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		txSvc := &mockTransactionService{
			listFn: func(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter = filter
				page.Defaults()
				resp := pagination.NewPageResponse([]models.Transaction{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions/?transaction_type=income&date_from=2025-06-01", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Type == nil || *gotFilter.Type != models.TransactionTypeIncome {
			t.Errorf("expected income filter, got %v", gotFilter.Type)
		}
		if gotFilter.From == nil || gotFilter.From.String() != "2025-06-01" {
			t.Errorf("expected date_from 2025-06-01, got %v", gotFilter.From)
		}
	})

	t.Run("rejects unknown transaction_type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions/?transaction_type=sideways", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects malformed date_from", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions/?date_from=nope", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_TodayTotals(t *testing.T) {
	t.Run("unparsable override falls back to nil", func(t *testing.T) {
		var gotOverride *timeutil.Date
		called := false
		txSvc := &mockTransactionService{
			todayTotalsFn: func(override *timeutil.Date) (*services.Summary, error) {
				called = true
				gotOverride = override
				return &services.Summary{TotalIncome: 1}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions/today_total_transactions/?today=not-a-date", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !called {
			t.Fatal("expected service to be called")
		}
		if gotOverride != nil {
			t.Errorf("expected nil override for unparsable date, got %v", gotOverride)
		}
	})

	t.Run("valid override is forwarded", func(t *testing.T) {
		var gotOverride *timeutil.Date
		txSvc := &mockTransactionService{
			todayTotalsFn: func(override *timeutil.Date) (*services.Summary, error) {
				gotOverride = override
				return &services.Summary{}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions/today_total_transactions/?today=2025-06-10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotOverride == nil || gotOverride.String() != "2025-06-10" {
			t.Errorf("expected override 2025-06-10, got %v", gotOverride)
		}
	})
}

func TestTransactionHandler_Summary(t *testing.T) {
	txSvc := &mockTransactionService{
		summarizeFn: func(r services.DateRange) (*services.Summary, error) {
			return &services.Summary{TotalIncome: 100, TotalExpense: 40, Balance: 60}, nil
		},
	}
	r := setupTransactionRouter(NewTransactionHandler(txSvc))

	rec := doRequest(r, "GET", "/transactions/summary/", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_income"].(float64) != 100 || result["balance"].(float64) != 60 {
		t.Errorf("unexpected summary body: %v", result)
	}
}

func TestTransactionHandler_Delete(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "DELETE", "/transactions/5/", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("non-numeric id rejected", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "DELETE", "/transactions/abc/", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

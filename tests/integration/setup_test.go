package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/timeutil"
	"fintrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Users  services.UserServicer
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
	timeutil.SetLocation(time.UTC)
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Transaction{},
		&models.CalendarEvent{},
		&models.Bill{},
		&models.Sale{},
		&models.PettyCash{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	loc := time.UTC

	// Services
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db, loc)
	eventService := services.NewCalendarEventService(db, loc)
	pettyCashService := services.NewPettyCashService(db, loc)
	billService := services.NewBillService(db, loc)
	saleService := services.NewSaleService(db, loc)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	eventHandler := handlers.NewCalendarEventHandler(eventService)
	pettyCashHandler := handlers.NewPettyCashHandler(pettyCashService)
	billHandler := handlers.NewBillHandler(billService)
	saleHandler := handlers.NewSaleHandler(saleService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CookieToHeader())

	// Session endpoints
	router.POST("/token/", authHandler.Login)
	router.POST("/token/refresh/", authHandler.Refresh)
	router.POST("/token/verify/", authHandler.Verify)
	router.POST("/logout/", authHandler.Logout)

	protected := router.Group("/")
	protected.Use(middleware.RequireAuth())

	protected.GET("/me/", authHandler.Me)

	transactions := protected.Group("/transactions")
	transactions.GET("/", transactionHandler.List)
	transactions.POST("/", transactionHandler.Create)
	transactions.GET("/filter_by_category/", transactionHandler.FilterByCategory)
	transactions.GET("/todays_transactions/", transactionHandler.TodaysTransactions)
	transactions.GET("/filter_by_transaction_type/", transactionHandler.FilterByType)
	transactions.GET("/today_total_transactions/", transactionHandler.TodayTotals)
	transactions.GET("/yesterday_total_transactions/", transactionHandler.YesterdayTotals)
	transactions.GET("/summary/", transactionHandler.Summary)
	transactions.GET("/:id/", transactionHandler.Get)
	transactions.PUT("/:id/", transactionHandler.Update)
	transactions.PATCH("/:id/", transactionHandler.Update)
	transactions.DELETE("/:id/", transactionHandler.Delete)

	events := protected.Group("/calendar-events")
	events.GET("/", eventHandler.List)
	events.POST("/", eventHandler.Create)
	events.GET("/todays_events/", eventHandler.TodaysEvents)
	events.GET("/:id/", eventHandler.Get)
	events.PUT("/:id/", eventHandler.Update)
	events.PATCH("/:id/", eventHandler.Update)
	events.DELETE("/:id/", eventHandler.Delete)

	pettyCash := protected.Group("/petty-cash")
	pettyCash.GET("/", pettyCashHandler.List)
	pettyCash.POST("/", pettyCashHandler.Create)
	pettyCash.GET("/todays_petty_cash/", pettyCashHandler.TodaysEntries)
	pettyCash.GET("/pending_petty_cash/", pettyCashHandler.PendingEntries)
	pettyCash.GET("/total_petty_cash/", pettyCashHandler.TotalApproved)
	pettyCash.GET("/:id/", pettyCashHandler.Get)
	pettyCash.PUT("/:id/", pettyCashHandler.Update)
	pettyCash.PATCH("/:id/", pettyCashHandler.Update)
	pettyCash.DELETE("/:id/", pettyCashHandler.Delete)

	bills := protected.Group("/bills")
	bills.GET("/", billHandler.List)
	bills.POST("/", billHandler.Create)
	bills.GET("/todays_bills/", billHandler.TodaysBills)
	bills.GET("/pending_bills/", billHandler.PendingBills)
	bills.GET("/total_paid_bills/", billHandler.TotalPaid)
	bills.GET("/total_unpaid_bills/", billHandler.TotalUnpaid)
	bills.GET("/total_bills/", billHandler.Total)
	bills.GET("/:id/", billHandler.Get)
	bills.PUT("/:id/", billHandler.Update)
	bills.PATCH("/:id/", billHandler.Update)
	bills.DELETE("/:id/", billHandler.Delete)

	sales := protected.Group("/sales")
	sales.GET("/", saleHandler.List)
	sales.POST("/", saleHandler.Create)
	sales.GET("/todays_sales/", saleHandler.TodaysSales)
	sales.GET("/total_sales/", saleHandler.Total)
	sales.GET("/:id/", saleHandler.Get)
	sales.PUT("/:id/", saleHandler.Update)
	sales.PATCH("/:id/", saleHandler.Update)
	sales.DELETE("/:id/", saleHandler.Delete)

	return &testApp{DB: db, Router: router, Users: userService}
}

// request makes an HTTP request to the test router, carrying any supplied cookies.
func (app *testApp) request(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// cookieByName returns the named Set-Cookie entry from a response, or nil.
func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// createUser provisions a user directly through the service layer.
func (app *testApp) createUser(t *testing.T, username, password string, superuser bool) *models.User {
	t.Helper()
	user, err := app.Users.CreateUser(username, username+"@test.com", password, superuser, false)
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// login authenticates through /token/ and returns the session cookies.
func (app *testApp) login(t *testing.T, username, password string) (access, refresh *http.Cookie) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/token/", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	access = cookieByName(rec, middleware.AccessTokenCookie)
	refresh = cookieByName(rec, middleware.RefreshTokenCookie)
	if access == nil || refresh == nil {
		t.Fatal("expected both session cookies after login")
	}
	return access, refresh
}

// sessionFor creates a user and logs them in, returning the access cookie.
func (app *testApp) sessionFor(t *testing.T, username string, superuser bool) *http.Cookie {
	t.Helper()
	app.createUser(t, username, "password123", superuser)
	access, _ := app.login(t, username, "password123")
	return access
}

// today returns the current local day formatted for request payloads.
func today() string {
	return timeutil.Today(time.UTC).String()
}

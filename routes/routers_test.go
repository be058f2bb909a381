package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ngi/config"
	"ngi/models"
	"ngi/services"
	"ngi/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = validator.RegisterGinValidations()
}

func setupRouter(t *testing.T, bypass bool) (*gin.Engine, *services.AuthService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))

	auth, err := services.NewAuthService(services.AuthServiceOptions{Username: "admin", Password: "1234", Secret: "s"})
	require.NoError(t, err)

	store := services.NewAvailabilityStore(services.AvailabilityStoreOptions{DB: db, Location: time.UTC})
	bookings := services.NewBookingService(services.BookingServiceOptions{DB: db, Location: time.UTC})

	router := gin.New()
	SetupRoutes(router, Dependencies{
		Config:       &config.Config{Timezone: "UTC", APIBaseDev: "http://localhost:8083", APIBaseProd: "https://api.example.com", DevAuthBypass: bypass},
		Auth:         auth,
		Availability: store,
		Bookings:     bookings,
		Facade:       services.NewBookingFacade(bookings, nil, nil, nil),
		Payments:     services.NewPaymentService(services.PaymentServiceOptions{DB: db}),
		Reviews:      services.NewReviewService(services.ReviewServiceOptions{DB: db}),
		Gallery:      services.NewGalleryService(services.GalleryServiceOptions{DB: db}),
		Leads:        services.NewLeadService(services.LeadServiceOptions{DB: db}),
		Export:       services.NewExportService(db),
	})
	return router, auth
}

func request(r *gin.Engine, method, url, host, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	if host != "" {
		req.Host = host
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRoutesNeedToken(t *testing.T) {
	r, auth := setupRouter(t, false)

	w := request(r, http.MethodGet, "/api/v1/admin/bookings", "api.example.com", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, http.MethodPost, "/api/v1/auth/login", "api.example.com", "", `{"username":"admin","password":"1234"}`)
	require.Equal(t, http.StatusOK, w.Code)

	token, err := auth.Login("admin", "1234")
	require.NoError(t, err)
	w = request(r, http.MethodGet, "/api/v1/admin/bookings", "api.example.com", token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodPost, "/api/v1/admin/availability/blocked", "api.example.com", token, `{"start":"2031-01-01"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDevBypassOnLocalhost(t *testing.T) {
	r, _ := setupRouter(t, true)

	w := request(r, http.MethodGet, "/api/v1/admin/leads", "localhost:8083", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodGet, "/api/v1/admin/leads", "api.example.com", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicRoutes(t *testing.T) {
	r, _ := setupRouter(t, false)

	w := request(r, http.MethodGet, "/api/v1/config", "localhost:8083", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http://localhost:8083")
	assert.NotEmpty(t, w.Header().Get("X-Session-ID"))

	w = request(r, http.MethodGet, "/api/v1/config", "guesthouse.example.com", "", "")
	assert.Contains(t, w.Body.String(), "https://api.example.com")

	w = request(r, http.MethodGet, "/api/v1/availability", "", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodGet, "/ping", "", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodGet, "/swagger/doc.json", "", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/bookings/submit")
}

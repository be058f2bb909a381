package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ngi/models"
	"ngi/services"
	"ngi/services/notification"
	"ngi/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Sunday 2025-06-01
var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterGinValidations(); err != nil {
		panic(err)
	}
}

type envelope struct {
	Code       int             `json:"code"`
	Mess       string          `json:"mess"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	} `json:"pagination"`
}

type testUploader struct{ fail bool }

func (u testUploader) Upload(ctx context.Context, file interface{}, folder string) (services.UploadResult, error) {
	if u.fail {
		return services.UploadResult{}, assert.AnError
	}
	return services.UploadResult{FileID: folder + "/f1", URL: "https://media.example.com/" + folder + "/f1.jpg"}, nil
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	rdb      *redis.Client
	store    *services.AvailabilityStore
	bookings *services.BookingService
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	now := func() time.Time { return testNow }
	bus := notification.NewMemoryBus()
	store := services.NewAvailabilityStore(services.AvailabilityStoreOptions{DB: db, Bus: bus, Location: time.UTC, Now: now})
	cache := services.NewAvailabilityCache(rdb, store.Snapshot, nil)
	cache.Watch(bus)
	bookings := services.NewBookingService(services.BookingServiceOptions{DB: db, Bus: bus, Location: time.UTC, Now: now})
	facade := services.NewBookingFacade(bookings, testUploader{}, services.NewFallbackQueue(rdb, nil), nil)

	bc := NewBookingController(bookings, facade)
	ac := NewAvailabilityController(store, cache, rdb)
	pc := NewPaymentController(services.NewPaymentService(services.PaymentServiceOptions{DB: db, KeySecret: "secret", Now: now}))
	uc := NewUploadController(testUploader{fail: true}, nil)
	rc := NewReviewController(services.NewReviewService(services.ReviewServiceOptions{DB: db}))
	gc := NewGalleryController(services.NewGalleryService(services.GalleryServiceOptions{DB: db, Uploader: testUploader{}}))
	lc := NewLeadController(services.NewLeadService(services.LeadServiceOptions{DB: db}))
	xc := NewAnalyticsController(services.NewExportService(db))

	r := gin.New()
	r.GET("/availability", ac.GetAvailability)
	r.GET("/availability/day/:date", ac.GetDay)
	r.GET("/availability/calendar", ac.GetCalendar)
	r.GET("/availability/version", ac.GetVersion)
	r.GET("/availability/history", ac.GetHistory)
	r.POST("/availability/booked", ac.AddBooked)
	r.DELETE("/availability/booked", ac.RemoveBooked)
	r.DELETE("/availability/booked/all", ac.ClearBooked)
	r.POST("/availability/blocked", ac.AddBlocked)
	r.DELETE("/availability/blocked", ac.RemoveBlocked)
	r.GET("/pricing", ac.GetPricing)
	r.GET("/pricing/tiers", ac.GetTiers)
	r.GET("/bookings", bc.GetBookings)
	r.GET("/bookings/:id", bc.GetBooking)
	r.POST("/bookings", bc.CreateBooking)
	r.POST("/bookings/submit", bc.SubmitBooking)
	r.POST("/bookings/import", bc.ImportBookings)
	r.PATCH("/bookings/:id", bc.UpdateBookingStatus)
	r.DELETE("/bookings/:id", bc.DeleteBooking)
	r.POST("/payments/order", pc.CreateOrder)
	r.POST("/payments/verify", pc.VerifyPayment)
	r.POST("/payments/upi", pc.RecordUPI)
	r.POST("/uploads/identity", uc.UploadIdentity)
	r.POST("/uploads/proof", uc.UploadProof)
	r.POST("/reviews", rc.CreateReview)
	r.GET("/reviews", rc.GetPublicReviews)
	r.PATCH("/reviews/:id", rc.UpdateReviewStatus)
	r.GET("/gallery", gc.GetGallery)
	r.POST("/gallery", gc.CreateGalleryItem)
	r.POST("/leads", lc.RecordLead)
	r.POST("/contact", lc.SendContact)
	r.GET("/analytics", xc.GetSummary)
	r.GET("/export/:collection", xc.ExportCSV)

	return &testEnv{router: r, db: db, rdb: rdb, store: store, bookings: bookings}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return e.serve(t, req)
}

func (e *testEnv) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

func multipartBody(t *testing.T, fields map[string]string, fileField string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, "doc.jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("jpeg bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

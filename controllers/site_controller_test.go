package controllers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"

	"ngi/constants"
	"ngi/models"
	"ngi/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayments(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/payments/order", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order services.PaymentOrder
	decode(t, resp.Data, &order)
	assert.Equal(t, constants.AdvanceAmount, order.Amount)

	w, resp = env.do(t, http.MethodPost, "/payments/verify",
		`{"orderId":"`+order.OrderID+`","paymentId":"pay_1","signature":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "signature_mismatch", resp.Mess)

	sig := services.NewPaymentService(services.PaymentServiceOptions{KeySecret: "secret"}).Sign(order.OrderID, "pay_1")
	w, _ = env.do(t, http.MethodPost, "/payments/verify",
		`{"orderId":"`+order.OrderID+`","paymentId":"pay_1","signature":"`+sig+`"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = env.do(t, http.MethodPost, "/payments/upi", `{"reference":"UTR1"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	w, _ = env.do(t, http.MethodPost, "/payments/upi", `{"amount":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploads(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartBody(t, nil, "file")
	req := httptest.NewRequest(http.MethodPost, "/uploads/identity", body)
	req.Header.Set("Content-Type", contentType)
	w, resp := env.serve(t, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var res services.UploadResult
	decode(t, resp.Data, &res)
	assert.True(t, res.Placeholder)

	body, contentType = multipartBody(t, nil, "file")
	req = httptest.NewRequest(http.MethodPost, "/uploads/proof", body)
	req.Header.Set("Content-Type", contentType)
	w, _ = env.serve(t, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w, _ = env.do(t, http.MethodPost, "/uploads/proof", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewsAndGallery(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/reviews", `{"rating":5,"text":"Lovely"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = env.do(t, http.MethodPost, "/reviews", `{"rating":9,"text":"Lovely"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(t, http.MethodPatch, "/reviews/1", `{"status":"rejected"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(t, http.MethodPatch, "/reviews/7", `{"status":"approved"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, resp := env.do(t, http.MethodGet, "/reviews", "")
	var reviews []models.Review
	decode(t, resp.Data, &reviews)
	assert.Empty(t, reviews)

	w, _ = env.do(t, http.MethodPost, "/gallery", `{"image":"https://media.example.com/a.jpg","title":"Pool"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body, contentType := multipartBody(t, map[string]string{"title": "Garden"}, "file")
	req := httptest.NewRequest(http.MethodPost, "/gallery", body)
	req.Header.Set("Content-Type", contentType)
	w, resp = env.serve(t, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item models.GalleryItem
	decode(t, resp.Data, &item)
	assert.Equal(t, "https://media.example.com/gallery/f1.jpg", item.Image)

	_, resp = env.do(t, http.MethodGet, "/gallery", "")
	var items []models.GalleryItem
	decode(t, resp.Data, &items)
	assert.Len(t, items, 2)
}

func TestLeadsAndContact(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/leads", `{"page":"/","sessionId":"s1"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = env.do(t, http.MethodPost, "/leads", `garbage`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var leads []models.Lead
	require.NoError(t, env.db.Find(&leads).Error)
	assert.Len(t, leads, 2)

	w, _ = env.do(t, http.MethodPost, "/contact", `{"name":"Asha","email":"asha@example.com","message":"Hi"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	w, _ = env.do(t, http.MethodPost, "/contact", `{"name":"Asha","email":"asha","message":"Hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsAndExport(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/bookings", bookingJSON)

	w, resp := env.do(t, http.MethodGet, "/analytics", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary services.AnalyticsSummary
	decode(t, resp.Data, &summary)
	assert.EqualValues(t, 1, summary.Bookings)

	w, _ = env.do(t, http.MethodGet, "/export/bookings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bookings.csv")
	rows, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	w, _ = env.do(t, http.MethodGet, "/export/users", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

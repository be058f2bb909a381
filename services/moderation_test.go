package services

import (
	"context"
	"strings"
	"testing"

	"ngi/constants"
	"ngi/errors"
	"ngi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService(t *testing.T) {
	s := NewReviewService(ReviewServiceOptions{DB: setupTestDB(t)})
	ctx := context.Background()

	first := &models.Review{Rating: 5, Text: " Lovely stay "}
	require.NoError(t, s.Create(ctx, first))
	assert.Equal(t, "Guest", first.Name)
	assert.Equal(t, "Lovely stay", first.Text)
	assert.Equal(t, constants.ReviewStatusPending, first.Status)

	second := &models.Review{Name: "Ravi", Rating: 2, Text: "Too far"}
	require.NoError(t, s.Create(ctx, second))

	assert.Error(t, s.Create(ctx, &models.Review{Rating: 6, Text: "x"}))
	assert.Error(t, s.Create(ctx, &models.Review{Rating: 4}))

	_, err := s.SetStatus(ctx, second.ID, constants.ReviewStatusRejected)
	require.NoError(t, err)
	_, err = s.SetStatus(ctx, first.ID, "hidden")
	assert.Error(t, err)
	_, err = s.SetStatus(ctx, 99, constants.ReviewStatusApproved)
	assert.True(t, errors.Is(err, errors.ErrReviewNotFound))

	public, err := s.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, first.ID, public[0].ID)

	rejected, err := s.ListAll(ctx, constants.ReviewStatusRejected)
	require.NoError(t, err)
	assert.Len(t, rejected, 1)

	require.NoError(t, s.Delete(ctx, first.ID))
	assert.True(t, errors.Is(s.Delete(ctx, first.ID), errors.ErrReviewNotFound))
}

func TestGalleryService(t *testing.T) {
	up := &fakeUploader{}
	s := NewGalleryService(GalleryServiceOptions{DB: setupTestDB(t), Uploader: up})
	ctx := context.Background()

	byURL := &models.GalleryItem{Image: "https://media.example.com/pool.jpg", Title: "Pool"}
	require.NoError(t, s.Create(ctx, byURL, nil))
	assert.Equal(t, constants.GalleryStatusActive, byURL.Status)

	uploaded := &models.GalleryItem{Title: "Garden"}
	require.NoError(t, s.Create(ctx, uploaded, strings.NewReader("png")))
	assert.Equal(t, "https://media.example.com/identity/abc.jpg", uploaded.Image)
	assert.Equal(t, []string{constants.GalleryUploadFolder}, up.folders)

	assert.Error(t, s.Create(ctx, &models.GalleryItem{Title: "no image"}, nil))

	item, err := s.Toggle(ctx, byURL.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.GalleryStatusInactive, item.Status)

	active, err := s.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, uploaded.ID, active[0].ID)

	all, err := s.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	item, err = s.Toggle(ctx, byURL.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.GalleryStatusActive, item.Status)

	_, err = s.Toggle(ctx, 99)
	assert.True(t, errors.Is(err, errors.ErrGalleryNotFound))
	require.NoError(t, s.Delete(ctx, byURL.ID))
}

func TestLeadService(t *testing.T) {
	s := NewLeadService(LeadServiceOptions{DB: setupTestDB(t)})
	ctx := context.Background()

	s.Record(ctx, &models.Lead{Page: "/", SessionID: "abc"})
	s.Record(ctx, &models.Lead{Page: "/gallery", SessionID: "abc"})
	leads, err := s.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "/gallery", leads[0].Page)

	require.NoError(t, s.SaveContact(ctx, &models.ContactMessage{Name: "Asha", Email: "asha@example.com", Message: "Is the pool heated?"}))
	assert.Error(t, s.SaveContact(ctx, &models.ContactMessage{Name: "Asha", Email: "not-an-email", Message: "hi"}))
	assert.Error(t, s.SaveContact(ctx, &models.ContactMessage{Name: "Asha", Email: "asha@example.com"}))

	msgs, err := s.ListContacts(ctx)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestLeadService_RecordNeverFails(t *testing.T) {
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// only logged
	NewLeadService(LeadServiceOptions{DB: db}).Record(context.Background(), &models.Lead{Page: "/"})
}

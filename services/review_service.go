package services

import (
	"context"
	stderrors "errors"
	"strings"

	"ngi/constants"
	"ngi/errors"
	"ngi/models"
	"ngi/services/logger"
	"ngi/validator"

	"gorm.io/gorm"
)

type ReviewServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

// ReviewService is the review moderation queue
type ReviewService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewReviewService(opts ReviewServiceOptions) *ReviewService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &ReviewService{db: opts.DB, logger: opts.Logger}
}

// Create queues a review as pending
func (s *ReviewService) Create(ctx context.Context, review *models.Review) error {
	review.Name = strings.TrimSpace(review.Name)
	review.Text = strings.TrimSpace(review.Text)
	review.Status = constants.ReviewStatusPending
	if review.Name == "" {
		review.Name = "Guest"
	}

	if err := validator.ValidateReview(review); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to save review", err)
	}
	return nil
}

// ListPublic shows everything except rejected reviews, newest first
func (s *ReviewService) ListPublic(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.db.WithContext(ctx).
		Where("status <> ?", constants.ReviewStatusRejected).
		Order("id desc").
		Find(&reviews).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to list reviews", err)
	}
	return reviews, nil
}

// ListAll is the admin view, optionally filtered by status
func (s *ReviewService) ListAll(ctx context.Context, status string) ([]models.Review, error) {
	reviews := []models.Review{}
	tx := s.db.WithContext(ctx).Order("id desc")
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if err := tx.Find(&reviews).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to list reviews", err)
	}
	return reviews, nil
}

// SetStatus approves or rejects a review
func (s *ReviewService) SetStatus(ctx context.Context, id uint, status string) (*models.Review, error) {
	if status != constants.ReviewStatusApproved && status != constants.ReviewStatusRejected {
		return nil, errors.NewAppError(errors.ErrCodeInvalidStatus, "Status must be approved or rejected", nil)
	}

	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrReviewNotFound
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to read review", err)
	}

	review.Status = status
	if err := s.db.WithContext(ctx).Model(&review).Update("status", status).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to update review", err)
	}
	return &review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to delete review", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrReviewNotFound
	}
	return nil
}

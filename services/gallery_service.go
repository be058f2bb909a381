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

type GalleryServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Uploader Uploader
}

type GalleryService struct {
	db       *gorm.DB
	logger   logger.Logger
	uploader Uploader
}

func NewGalleryService(opts GalleryServiceOptions) *GalleryService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &GalleryService{db: opts.DB, logger: opts.Logger, uploader: opts.Uploader}
}

// Create adds an active item. file, when set, is uploaded and replaces Image.
func (s *GalleryService) Create(ctx context.Context, item *models.GalleryItem, file interface{}) error {
	if file != nil {
		if s.uploader == nil {
			return errors.NewAppError(errors.ErrCodeUploadFailed, "Media storage is not configured", errors.ErrUploadFailed)
		}
		res, err := s.uploader.Upload(ctx, file, constants.GalleryUploadFolder)
		if err != nil {
			return err
		}
		item.Image = res.URL
	}

	item.Image = strings.TrimSpace(item.Image)
	item.Title = strings.TrimSpace(item.Title)
	item.Status = constants.GalleryStatusActive

	if err := validator.ValidateGalleryItem(item); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to save gallery item", err)
	}
	return nil
}

// List returns items newest first; activeOnly hides inactive ones
func (s *GalleryService) List(ctx context.Context, activeOnly bool) ([]models.GalleryItem, error) {
	items := []models.GalleryItem{}
	tx := s.db.WithContext(ctx).Order("id desc")
	if activeOnly {
		tx = tx.Where("status = ?", constants.GalleryStatusActive)
	}
	if err := tx.Find(&items).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to list gallery", err)
	}
	return items, nil
}

// Toggle flips an item between active and inactive
func (s *GalleryService) Toggle(ctx context.Context, id uint) (*models.GalleryItem, error) {
	var item models.GalleryItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrGalleryNotFound
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to read gallery item", err)
	}

	if item.Status == constants.GalleryStatusInactive {
		item.Status = constants.GalleryStatusActive
	} else {
		item.Status = constants.GalleryStatusInactive
	}

	if err := s.db.WithContext(ctx).Model(&item).Update("status", item.Status).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to update gallery item", err)
	}
	return &item, nil
}

func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.GalleryItem{}, id)
	if res.Error != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to delete gallery item", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrGalleryNotFound
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"ngi/constants"
	"ngi/errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadResult identifies a stored file
type UploadResult struct {
	FileID      string `json:"fileId"`
	URL         string `json:"url,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Uploader stores a file in a folder of the media host
type Uploader interface {
	Upload(ctx context.Context, file interface{}, folder string) (UploadResult, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file interface{}, folder string) (UploadResult, error) {
	if u.cld == nil {
		return UploadResult{}, errors.NewAppError(errors.ErrCodeUploadFailed, "Media storage is not configured", errors.ErrUploadFailed)
	}

	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return UploadResult{}, errors.NewAppError(errors.ErrCodeUploadFailed, "Upload failed", err)
	}
	if resp.Error.Message != "" {
		return UploadResult{}, errors.NewAppError(errors.ErrCodeUploadFailed, resp.Error.Message, errors.ErrUploadFailed)
	}

	return UploadResult{FileID: resp.PublicID, URL: resp.SecureURL}, nil
}

// PlaceholderIdentity stands in for an identity document that could not be
// uploaded, so the booking itself is not lost
func PlaceholderIdentity(now time.Time) UploadResult {
	return UploadResult{
		FileID:      fmt.Sprintf(constants.PlaceholderIdentityFormat, now.UnixMilli()),
		Placeholder: true,
	}
}

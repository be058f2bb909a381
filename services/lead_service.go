package services

import (
	"context"
	"strings"

	"ngi/errors"
	"ngi/models"
	"ngi/services/logger"
	"ngi/validator"

	"gorm.io/gorm"
)

type LeadServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

// LeadService stores page-visit telemetry and contact messages
type LeadService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewLeadService(opts LeadServiceOptions) *LeadService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &LeadService{db: opts.DB, logger: opts.Logger}
}

// Record saves a lead. Failures are logged only: telemetry never reaches
// the visitor.
func (s *LeadService) Record(ctx context.Context, lead *models.Lead) {
	if err := s.db.WithContext(ctx).Create(lead).Error; err != nil {
		s.logger.Error("lead not recorded: %v", err)
	}
}

func (s *LeadService) ListLeads(ctx context.Context) ([]models.Lead, error) {
	leads := []models.Lead{}
	if err := s.db.WithContext(ctx).Order("id desc").Find(&leads).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to list leads", err)
	}
	return leads, nil
}

// SaveContact stores a contact-form message; every field is required
func (s *LeadService) SaveContact(ctx context.Context, msg *models.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	if err := validator.ValidateContact(msg); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to save message", err)
	}
	return nil
}

func (s *LeadService) ListContacts(ctx context.Context) ([]models.ContactMessage, error) {
	msgs := []models.ContactMessage{}
	if err := s.db.WithContext(ctx).Order("id desc").Find(&msgs).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to list messages", err)
	}
	return msgs, nil
}

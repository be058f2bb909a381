package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"ngi/constants"
	"ngi/errors"
	"ngi/models"
	"ngi/services/logger"
	"ngi/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentServiceOptions struct {
	DB        *gorm.DB
	Logger    logger.Logger
	KeyID     string
	KeySecret string
	Now       func() time.Time
}

// PaymentService records advance payments. The gateway itself is opaque:
// orders are created locally and verified by signature.
type PaymentService struct {
	db        *gorm.DB
	logger    logger.Logger
	keyID     string
	keySecret string
	now       func() time.Time
}

func NewPaymentService(opts PaymentServiceOptions) *PaymentService {
	s := &PaymentService{
		db:        opts.DB,
		logger:    opts.Logger,
		keyID:     opts.KeyID,
		keySecret: opts.KeySecret,
		now:       opts.Now,
	}
	if s.logger == nil {
		s.logger = logger.Nop{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// PaymentOrder is what the browser needs to open the gateway checkout
type PaymentOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Key      string `json:"key"`
}

// CreateOrder stores a created order. Zero amount means the advance.
func (s *PaymentService) CreateOrder(ctx context.Context, amount int, currency string) (*PaymentOrder, error) {
	if amount == 0 {
		amount = constants.AdvanceAmount
	}
	if err := validator.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if currency == "" {
		currency = constants.DefaultCurrency
	}

	payment := models.Payment{
		ID:       "order_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14],
		Method:   constants.PaymentMethodGateway,
		Amount:   amount,
		Currency: strings.ToUpper(currency),
		Receipt:  fmt.Sprintf(constants.ReceiptFormat, s.now().UnixMilli()),
		Status:   constants.PaymentStatusCreated,
	}
	payment.OrderID = payment.ID

	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to create payment order", err)
	}

	return &PaymentOrder{
		OrderID:  payment.OrderID,
		Amount:   payment.Amount,
		Currency: payment.Currency,
		Receipt:  payment.Receipt,
		Key:      s.keyID,
	}, nil
}

// Sign is the gateway signature of orderID|paymentID
func (s *PaymentService) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the signature and marks the order paid
func (s *PaymentService) Verify(ctx context.Context, orderID, paymentID, signature string) (*models.Payment, error) {
	expected := s.Sign(orderID, paymentID)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return nil, errors.NewAppError(errors.ErrCodeSignatureMismatch, "signature_mismatch", errors.ErrSignatureMismatch)
	}

	var payment models.Payment
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPaymentNotFound
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to read payment", err)
	}

	payment.PaymentID = paymentID
	payment.Status = constants.PaymentStatusPaid
	if err := s.db.WithContext(ctx).Save(&payment).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to update payment", err)
	}

	s.logger.Info("payment %s verified for order %s", paymentID, orderID)
	return &payment, nil
}

// RecordUPI stores a UPI transfer the guest reported as done
func (s *PaymentService) RecordUPI(ctx context.Context, amount int, reference string) (*models.Payment, error) {
	if amount == 0 {
		amount = constants.AdvanceAmount
	}
	if err := validator.ValidateAmount(amount); err != nil {
		return nil, err
	}

	id := fmt.Sprintf(constants.UPIPaymentIDFormat, s.now().UnixMilli())
	payment := models.Payment{
		ID:        id,
		PaymentID: id,
		Method:    constants.PaymentMethodUPI,
		Amount:    amount,
		Currency:  constants.DefaultCurrency,
		Reference: strings.TrimSpace(reference),
		Status:    constants.PaymentStatusPaid,
	}
	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to record payment", err)
	}
	return &payment, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/payments"
	"github.com/soniabinty/gizmorent-server/internal/repository"
	"github.com/soniabinty/gizmorent-server/pkg/events"
	"github.com/soniabinty/gizmorent-server/pkg/logger"
)

type StripeIntentResult struct {
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`
}

type SSLCommerzResult struct {
	GatewayURL    string `json:"url"`
	TransactionID string `json:"transactionId"`
}

type PaymentService interface {
	CreateStripeIntent(ctx context.Context, amount float64, email string) (*StripeIntentResult, error)
	RecordPayment(ctx context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error)
	ListPayments(ctx context.Context, email string) ([]domain.PaymentRecord, error)
	InitSSLCommerz(ctx context.Context, amount float64, name, email, phone string) (*SSLCommerzResult, error)
	ConfirmSSLCommerz(ctx context.Context, tranID, validationID string) (*domain.PaymentRecord, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	stripe      payments.StripeClient
	sslcommerz  payments.SSLCommerzClient
	eventBus    events.Publisher
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	stripe payments.StripeClient,
	sslcommerz payments.SSLCommerzClient,
	eventBus events.Publisher,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		stripe:      stripe,
		sslcommerz:  sslcommerz,
		eventBus:    eventBus,
	}
}

func (s *paymentService) CreateStripeIntent(ctx context.Context, amount float64, email string) (*StripeIntentResult, error) {
	if amount <= 0 {
		return nil, domain.ValidationError("Amount must be a positive number")
	}
	email = domain.NormalizeEmail(email)
	if !domain.IsValidEmail(email) {
		return nil, domain.ValidationError("A valid email is required")
	}

	intent, err := s.stripe.CreateIntent(ctx, amount, email)
	if err != nil {
		return nil, err
	}

	record := &domain.PaymentRecord{
		Email:         email,
		Amount:        amount,
		TransactionID: intent.ID,
		Gateway:       domain.GatewayStripe,
		Status:        domain.PaymentPending,
		Date:          time.Now(),
	}
	if _, err := s.paymentRepo.Insert(ctx, record); err != nil {
		// The intent exists on Stripe's side either way; the client
		// still needs the secret.
		logger.ErrorContext(ctx, "Failed to record pending stripe payment", "error", err, "transaction_id", intent.ID)
	}

	return &StripeIntentResult{
		ClientSecret: intent.ClientSecret,
		Amount:       amount,
	}, nil
}

func (s *paymentService) RecordPayment(ctx context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	record.Email = domain.NormalizeEmail(record.Email)
	if !domain.IsValidEmail(record.Email) {
		return nil, domain.ValidationError("A valid email is required")
	}
	if record.Amount <= 0 {
		return nil, domain.ValidationError("Amount must be a positive number")
	}
	if record.TransactionID == "" {
		return nil, domain.ValidationError("Transaction id is required")
	}
	if record.Gateway == "" {
		record.Gateway = domain.GatewayStripe
	}
	if record.Status == "" {
		record.Status = domain.PaymentSuccessful
	}
	record.Date = time.Now()

	// The unique index on transaction_id makes recording idempotent
	// across client retries.
	created, err := s.paymentRepo.Insert(ctx, record)
	if err != nil {
		return nil, err
	}

	s.publishRecorded(ctx, created)
	return created, nil
}

func (s *paymentService) ListPayments(ctx context.Context, email string) ([]domain.PaymentRecord, error) {
	email = domain.NormalizeEmail(email)
	if !domain.IsValidEmail(email) {
		return nil, domain.ValidationError("A valid email is required")
	}
	return s.paymentRepo.ListByEmail(ctx, email)
}

func (s *paymentService) InitSSLCommerz(ctx context.Context, amount float64, name, email, phone string) (*SSLCommerzResult, error) {
	if amount <= 0 {
		return nil, domain.ValidationError("Amount must be a positive number")
	}
	email = domain.NormalizeEmail(email)
	if !domain.IsValidEmail(email) {
		return nil, domain.ValidationError("A valid email is required")
	}

	tranID := fmt.Sprintf("TRX_%d", time.Now().UnixMilli())

	gatewayURL, err := s.sslcommerz.InitPayment(ctx, &payments.SSLCommerzInit{
		Amount:        amount,
		TransactionID: tranID,
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
	})
	if err != nil {
		return nil, err
	}

	record := &domain.PaymentRecord{
		Email:         email,
		Amount:        amount,
		TransactionID: tranID,
		Gateway:       domain.GatewaySSLCommerz,
		Status:        domain.PaymentPending,
		Date:          time.Now(),
	}
	if _, err := s.paymentRepo.Insert(ctx, record); err != nil {
		return nil, err
	}

	return &SSLCommerzResult{
		GatewayURL:    gatewayURL,
		TransactionID: tranID,
	}, nil
}

func (s *paymentService) ConfirmSSLCommerz(ctx context.Context, tranID, validationID string) (*domain.PaymentRecord, error) {
	if tranID == "" {
		return nil, domain.ValidationError("Transaction id is required")
	}

	record, err := s.paymentRepo.FindByTransactionID(ctx, tranID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.NotFoundError("Payment not found")
	}
	if record.Status == domain.PaymentSuccessful {
		return record, nil
	}

	valid, err := s.sslcommerz.ValidateTransaction(ctx, validationID)
	if err != nil {
		return nil, err
	}

	status := domain.PaymentSuccessful
	if !valid {
		status = domain.PaymentFailed
	}

	updated, err := s.paymentRepo.UpdateStatus(ctx, tranID, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NotFoundError("Payment not found")
	}

	if status == domain.PaymentSuccessful {
		s.publishRecorded(ctx, updated)
	}
	return updated, nil
}

func (s *paymentService) publishRecorded(ctx context.Context, record *domain.PaymentRecord) {
	event := events.PaymentRecordedEvent{
		Email:         record.Email,
		TransactionID: record.TransactionID,
		Gateway:       string(record.Gateway),
		Status:        string(record.Status),
		Amount:        record.Amount,
		RecordedAt:    time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.PaymentRecorded, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish payment recorded event", "error", err, "transaction_id", record.TransactionID)
	}
}

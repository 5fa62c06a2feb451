package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/payments"
	"github.com/soniabinty/gizmorent-server/internal/service"
)

// ---------- Mocks ----------

type mockPaymentRepo struct {
	records map[string]*domain.PaymentRecord // key: transaction id
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{records: make(map[string]*domain.PaymentRecord)}
}

func (m *mockPaymentRepo) Insert(_ context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	if _, exists := m.records[record.TransactionID]; exists {
		return nil, domain.ConflictError("Payment already recorded for this transaction")
	}
	copied := *record
	m.records[record.TransactionID] = &copied
	return &copied, nil
}

func (m *mockPaymentRepo) ListByEmail(_ context.Context, email string) ([]domain.PaymentRecord, error) {
	out := []domain.PaymentRecord{}
	for _, r := range m.records {
		if r.Email == email {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockPaymentRepo) FindByTransactionID(_ context.Context, tranID string) (*domain.PaymentRecord, error) {
	if r, ok := m.records[tranID]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}

func (m *mockPaymentRepo) UpdateStatus(_ context.Context, tranID string, status domain.PaymentStatus) (*domain.PaymentRecord, error) {
	r, ok := m.records[tranID]
	if !ok {
		return nil, nil
	}
	r.Status = status
	copied := *r
	return &copied, nil
}

type mockStripeClient struct {
	intent *payments.Intent
	err    error
}

func (m *mockStripeClient) CreateIntent(_ context.Context, amount float64, _ string) (*payments.Intent, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.intent != nil {
		return m.intent, nil
	}
	return &payments.Intent{ID: "pi_test", ClientSecret: "pi_test_secret", Amount: payments.MinorUnits(amount)}, nil
}

type mockSSLCommerzClient struct {
	gatewayURL  string
	initErr     error
	valid       bool
	validateErr error
	lastInit    *payments.SSLCommerzInit
}

func (m *mockSSLCommerzClient) InitPayment(_ context.Context, req *payments.SSLCommerzInit) (string, error) {
	m.lastInit = req
	if m.initErr != nil {
		return "", m.initErr
	}
	if m.gatewayURL != "" {
		return m.gatewayURL, nil
	}
	return "https://sandbox.sslcommerz.com/pay/abc", nil
}

func (m *mockSSLCommerzClient) ValidateTransaction(_ context.Context, _ string) (bool, error) {
	return m.valid, m.validateErr
}

func newPaymentService(repo *mockPaymentRepo, ssl *mockSSLCommerzClient) service.PaymentService {
	return service.NewPaymentService(repo, &mockStripeClient{}, ssl, &capturingPublisher{})
}

// ---------- Tests ----------

func TestCreateStripeIntent(t *testing.T) {
	repo := newMockPaymentRepo()
	svc := newPaymentService(repo, &mockSSLCommerzClient{})

	result, err := svc.CreateStripeIntent(context.Background(), 42.5, "u@example.com")
	require.NoError(t, err)
	assert.Equal(t, "pi_test_secret", result.ClientSecret)
	assert.Equal(t, 42.5, result.Amount)

	record := repo.records["pi_test"]
	require.NotNil(t, record, "a pending record must be keyed by the intent id")
	assert.Equal(t, domain.PaymentPending, record.Status)
	assert.Equal(t, domain.GatewayStripe, record.Gateway)
}

func TestCreateStripeIntentRejectsNonPositiveAmount(t *testing.T) {
	svc := newPaymentService(newMockPaymentRepo(), &mockSSLCommerzClient{})

	for _, amount := range []float64{0, -10} {
		_, err := svc.CreateStripeIntent(context.Background(), amount, "u@example.com")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestRecordPaymentIdempotentByTransaction(t *testing.T) {
	repo := newMockPaymentRepo()
	svc := newPaymentService(repo, &mockSSLCommerzClient{})
	ctx := context.Background()

	record := &domain.PaymentRecord{Email: "u@example.com", Amount: 20, TransactionID: "pi_abc"}
	created, err := svc.RecordPayment(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccessful, created.Status)
	assert.Equal(t, domain.GatewayStripe, created.Gateway)

	_, err = svc.RecordPayment(ctx, &domain.PaymentRecord{Email: "u@example.com", Amount: 20, TransactionID: "pi_abc"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInitSSLCommerzCreatesPendingRecord(t *testing.T) {
	repo := newMockPaymentRepo()
	ssl := &mockSSLCommerzClient{}
	svc := newPaymentService(repo, ssl)

	result, err := svc.InitSSLCommerz(context.Background(), 75, "Sonia", "u@example.com", "+880170000000")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.TransactionID, "TRX_"))
	assert.NotEmpty(t, result.GatewayURL)

	record := repo.records[result.TransactionID]
	require.NotNil(t, record, "a pending record must exist before the redirect")
	assert.Equal(t, domain.PaymentPending, record.Status)
	assert.Equal(t, domain.GatewaySSLCommerz, record.Gateway)
	assert.Equal(t, 75.0, record.Amount)

	require.NotNil(t, ssl.lastInit)
	assert.Equal(t, result.TransactionID, ssl.lastInit.TransactionID)
}

func TestConfirmSSLCommerzFlipsStatus(t *testing.T) {
	repo := newMockPaymentRepo()
	repo.records["TRX_1"] = &domain.PaymentRecord{
		Email: "u@example.com", Amount: 75, TransactionID: "TRX_1",
		Gateway: domain.GatewaySSLCommerz, Status: domain.PaymentPending, Date: time.Now(),
	}
	svc := newPaymentService(repo, &mockSSLCommerzClient{valid: true})

	record, err := svc.ConfirmSSLCommerz(context.Background(), "TRX_1", "val-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccessful, record.Status)
}

func TestConfirmSSLCommerzInvalidMarksFailed(t *testing.T) {
	repo := newMockPaymentRepo()
	repo.records["TRX_1"] = &domain.PaymentRecord{
		Email: "u@example.com", Amount: 75, TransactionID: "TRX_1",
		Gateway: domain.GatewaySSLCommerz, Status: domain.PaymentPending, Date: time.Now(),
	}
	svc := newPaymentService(repo, &mockSSLCommerzClient{valid: false})

	record, err := svc.ConfirmSSLCommerz(context.Background(), "TRX_1", "val-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, record.Status)
}

func TestConfirmSSLCommerzUnknownTransaction(t *testing.T) {
	svc := newPaymentService(newMockPaymentRepo(), &mockSSLCommerzClient{valid: true})

	_, err := svc.ConfirmSSLCommerz(context.Background(), "TRX_missing", "val-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirmSSLCommerzAlreadySuccessfulIsNoop(t *testing.T) {
	repo := newMockPaymentRepo()
	repo.records["TRX_1"] = &domain.PaymentRecord{
		Email: "u@example.com", Amount: 75, TransactionID: "TRX_1",
		Gateway: domain.GatewaySSLCommerz, Status: domain.PaymentSuccessful, Date: time.Now(),
	}
	// The validator would say no, but a settled record is never demoted.
	svc := newPaymentService(repo, &mockSSLCommerzClient{valid: false})

	record, err := svc.ConfirmSSLCommerz(context.Background(), "TRX_1", "val-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccessful, record.Status)
}

package payments_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/payments"
	"github.com/soniabinty/gizmorent-server/pkg/config"
)

func testSSLConfig() config.SSLCommerzConfig {
	return config.SSLCommerzConfig{
		StoreID:    "teststore",
		StorePass:  "testpass",
		SuccessURL: "http://localhost:5173/payment-success",
		FailURL:    "http://localhost:5173/payment-fail",
		CancelURL:  "http://localhost:5173/payment-cancel",
	}
}

func TestInitPaymentSendsForm(t *testing.T) {
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("bad form: %v", err)
		}
		gotForm = map[string]string{
			"store_id":     r.PostFormValue("store_id"),
			"total_amount": r.PostFormValue("total_amount"),
			"tran_id":      r.PostFormValue("tran_id"),
			"cus_email":    r.PostFormValue("cus_email"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"SUCCESS","GatewayPageURL":"https://pay.example.com/session/1"}`))
	}))
	defer srv.Close()

	client := payments.NewSSLCommerzClientWithURLs(testSSLConfig(), srv.URL, srv.URL)

	gatewayURL, err := client.InitPayment(context.Background(), &payments.SSLCommerzInit{
		Amount:        49.9,
		TransactionID: "TRX_123",
		CustomerName:  "Sonia",
		CustomerEmail: "u@example.com",
		CustomerPhone: "+880170000000",
	})
	if err != nil {
		t.Fatalf("InitPayment: %v", err)
	}
	if gatewayURL != "https://pay.example.com/session/1" {
		t.Errorf("gatewayURL = %q", gatewayURL)
	}

	if gotForm["store_id"] != "teststore" {
		t.Errorf("store_id = %q", gotForm["store_id"])
	}
	if gotForm["total_amount"] != "49.90" {
		t.Errorf("total_amount = %q, want 49.90", gotForm["total_amount"])
	}
	if gotForm["tran_id"] != "TRX_123" {
		t.Errorf("tran_id = %q", gotForm["tran_id"])
	}
	if gotForm["cus_email"] != "u@example.com" {
		t.Errorf("cus_email = %q", gotForm["cus_email"])
	}
}

func TestInitPaymentFailureIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"FAILED","failedreason":"store credential mismatch"}`))
	}))
	defer srv.Close()

	client := payments.NewSSLCommerzClientWithURLs(testSSLConfig(), srv.URL, srv.URL)

	_, err := client.InitPayment(context.Background(), &payments.SSLCommerzInit{Amount: 10, TransactionID: "TRX_1"})
	if err == nil {
		t.Fatal("expected error for failed init")
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}

func TestValidateTransaction(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"VALID", true},
		{"VALIDATED", true},
		{"INVALID_TRANSACTION", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run("status "+tt.status, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("val_id"); got != "val-1" {
					t.Errorf("val_id = %q", got)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"status":"` + tt.status + `"}`))
			}))
			defer srv.Close()

			client := payments.NewSSLCommerzClientWithURLs(testSSLConfig(), srv.URL, srv.URL)

			valid, err := client.ValidateTransaction(context.Background(), "val-1")
			if err != nil {
				t.Fatalf("ValidateTransaction: %v", err)
			}
			if valid != tt.want {
				t.Errorf("valid = %v, want %v", valid, tt.want)
			}
		})
	}
}

func TestValidateTransactionUnreachableGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately unreachable

	client := payments.NewSSLCommerzClientWithURLs(testSSLConfig(), srv.URL, srv.URL)

	_, err := client.ValidateTransaction(context.Background(), "val-1")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}

package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/pkg/config"
)

const (
	sslSandboxGatewayURL   = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	sslLiveGatewayURL      = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"
	sslSandboxValidatorURL = "https://sandbox.sslcommerz.com/validator/api/validationserverAPI.php"
	sslLiveValidatorURL    = "https://securepay.sslcommerz.com/validator/api/validationserverAPI.php"
)

// SSLCommerzInit is the customer side of a redirect-based payment init.
type SSLCommerzInit struct {
	Amount        float64
	TransactionID string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

type SSLCommerzClient interface {
	InitPayment(ctx context.Context, req *SSLCommerzInit) (gatewayURL string, err error)
	ValidateTransaction(ctx context.Context, validationID string) (bool, error)
}

type sslCommerzClient struct {
	cfg          config.SSLCommerzConfig
	httpClient   *http.Client
	gatewayURL   string
	validatorURL string
}

func NewSSLCommerzClient(cfg config.SSLCommerzConfig) SSLCommerzClient {
	gatewayURL, validatorURL := sslSandboxGatewayURL, sslSandboxValidatorURL
	if cfg.Live {
		gatewayURL, validatorURL = sslLiveGatewayURL, sslLiveValidatorURL
	}
	return &sslCommerzClient{
		cfg:          cfg,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		gatewayURL:   gatewayURL,
		validatorURL: validatorURL,
	}
}

// NewSSLCommerzClientWithURLs points the client at explicit endpoints. Used
// by tests.
func NewSSLCommerzClientWithURLs(cfg config.SSLCommerzConfig, gatewayURL, validatorURL string) SSLCommerzClient {
	return &sslCommerzClient{
		cfg:          cfg,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		gatewayURL:   gatewayURL,
		validatorURL: validatorURL,
	}
}

type sslInitResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

func (c *sslCommerzClient) InitPayment(ctx context.Context, req *SSLCommerzInit) (string, error) {
	form := url.Values{
		"store_id":         {c.cfg.StoreID},
		"store_passwd":     {c.cfg.StorePass},
		"total_amount":     {fmt.Sprintf("%.2f", req.Amount)},
		"currency":         {"USD"},
		"tran_id":          {req.TransactionID},
		"success_url":      {c.cfg.SuccessURL},
		"fail_url":         {c.cfg.FailURL},
		"cancel_url":       {c.cfg.CancelURL},
		"cus_name":         {req.CustomerName},
		"cus_email":        {req.CustomerEmail},
		"cus_phone":        {req.CustomerPhone},
		"shipping_method":  {"Courier"},
		"product_name":     {"Gadget Rent"},
		"product_category": {"Rental"},
		"product_profile":  {"general"},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", domain.UpstreamError("Could not reach payment gateway")
	}
	defer resp.Body.Close()

	var body sslInitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", domain.UpstreamError("Unexpected response from payment gateway")
	}

	if body.GatewayPageURL == "" {
		return "", domain.UpstreamError("Failed to get payment gateway URL")
	}
	return body.GatewayPageURL, nil
}

type sslValidationResponse struct {
	Status string `json:"status"`
}

func (c *sslCommerzClient) ValidateTransaction(ctx context.Context, validationID string) (bool, error) {
	q := url.Values{
		"val_id":       {validationID},
		"store_id":     {c.cfg.StoreID},
		"store_passwd": {c.cfg.StorePass},
		"format":       {"json"},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.validatorURL+"?"+q.Encode(), nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, domain.UpstreamError("Could not reach payment gateway")
	}
	defer resp.Body.Close()

	var body sslValidationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, domain.UpstreamError("Unexpected response from payment gateway")
	}

	return body.Status == "VALID" || body.Status == "VALIDATED", nil
}

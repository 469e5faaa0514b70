package msg91

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ksbmInfotechOfficial/vscct/internal/config"
)

const defaultBaseURL = "https://control.msg91.com"

// Client sends OTP SMS through the MSG91 v5 API. Phones are dialed with the
// 91 country prefix; the stored numbers are bare 10-digit strings.
type Client struct {
	cfg        config.OTPConfig
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.OTPConfig) *Client {
	return &Client{
		cfg:        cfg,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type sendOtpResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (c *Client) SendOtp(ctx context.Context, phone, code string) error {
	q := url.Values{}
	q.Set("template_id", c.cfg.TemplateID)
	q.Set("mobile", "91"+phone)
	q.Set("otp", code)

	endpoint := fmt.Sprintf("%s/api/v5/otp?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build msg91 request: %w", err)
	}
	req.Header.Set("authkey", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("msg91 request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("msg91 returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed sendOtpResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to parse msg91 response: %w", err)
	}
	if parsed.Type != "success" {
		return fmt.Errorf("msg91 rejected otp send: %s", parsed.Message)
	}
	return nil
}

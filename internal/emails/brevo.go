package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// BrevoSendRequest matches Brevo API v3 send transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoSender `json:"sender"`
	To          []BrevoTo   `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

type BrevoSender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BrevoTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Sender sends transactional emails (account confirmation, password reset).
type Sender interface {
	SendAccountConfirmation(ctx context.Context, toEmail, firstName, confirmLink string) error
	SendPasswordReset(ctx context.Context, toEmail, firstName, resetLink string) error
}

// BrevoClient sends emails via the Brevo API. Empty APIKey makes it a no-op
// so local and test environments need no credentials.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Client   *http.Client
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@casaplaza.app"
}

// send sends one email via Brevo API.
func (c *BrevoClient) send(ctx context.Context, toEmail, subject, html string) error {
	if c.APIKey == "" {
		return nil
	}
	body := BrevoSendRequest{
		Sender:      BrevoSender{Email: c.from(), Name: "CasaPlaza"},
		To:          []BrevoTo{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: html,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPI, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

// SendAccountConfirmation sends the confirm-your-account email after registration.
func (c *BrevoClient) SendAccountConfirmation(ctx context.Context, toEmail, firstName, confirmLink string) error {
	if c.APIKey == "" {
		return nil
	}
	if firstName == "" {
		firstName = "there"
	}
	content := confirmationContent(firstName, confirmLink)
	return c.send(ctx, toEmail, "Confirm your CasaPlaza account", EmailLayout(content))
}

// SendPasswordReset sends the password-reset email with a 1-hour link.
func (c *BrevoClient) SendPasswordReset(ctx context.Context, toEmail, firstName, resetLink string) error {
	if c.APIKey == "" {
		return nil
	}
	if firstName == "" {
		firstName = "there"
	}
	content := passwordResetContent(firstName, resetLink)
	return c.send(ctx, toEmail, "Reset your CasaPlaza password", EmailLayout(content))
}

func confirmationContent(userName, confirmLink string) string {
	return fmt.Sprintf(`
    <h1>Welcome to CasaPlaza, %s!</h1>
    <p>Thanks for signing up. Confirm your email address to activate your account and start browsing properties and making offers.</p>
    <center>
      <a href="%s" class="cp-button">Confirm my account</a>
    </center>
    <p style="margin-top: 20px; font-size: 14px; color: #666;">
      If you did not create this account, you can safely ignore this email.
    </p>
    <p>— The CasaPlaza Team</p>
`, EscapeHTML(userName), confirmLink)
}

func passwordResetContent(userName, resetLink string) string {
	return fmt.Sprintf(`
    <h1>Password Reset Requested</h1>
    <p>Hi %s,</p>
    <p>We received a request to reset the password for your <strong>CasaPlaza</strong> account. Click the button below to choose a new one. The link expires in 1 hour.</p>
    <center>
      <a href="%s" class="cp-button">Reset my password</a>
    </center>
    <p style="margin-top:20px;font-size:14px;color:#666;">
      If you did not request a reset, no action is needed — your password is unchanged.
    </p>
    <p>— The CasaPlaza Team</p>
`, EscapeHTML(userName), resetLink)
}

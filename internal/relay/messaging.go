package relay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// WhatsAppPrefix is the channel scheme marker the messaging provider puts in
// front of phone numbers. Stripped from inbound senders, restored on
// outbound addressing.
const WhatsAppPrefix = "whatsapp:"

// MessagingClient delivers a reply to a WhatsApp number (without prefix).
type MessagingClient interface {
	Send(ctx context.Context, to, body string) error
}

// TwilioClient sends messages through the Twilio Messages API.
type TwilioClient struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	client     *http.Client
}

func NewTwilioClient(accountSID, authToken, from string) *TwilioClient {
	return &TwilioClient{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    "https://api.twilio.com",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send posts the message form to the account's Messages resource. Once the
// request is sent the message cannot be recalled.
func (c *TwilioClient) Send(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	form := url.Values{}
	form.Set("From", WhatsAppPrefix+c.from)
	form.Set("To", WhatsAppPrefix+to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building message request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling messaging api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return fmt.Errorf("messaging api returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}

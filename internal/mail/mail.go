// Package mail dispatches invoice emails through the external survey
// mail service.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Sender posts send-mail requests to the mail service.
type Sender struct {
	baseURL string
	http    *http.Client
}

func NewSender(baseURL string, hc *http.Client) *Sender {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Sender{baseURL: baseURL, http: hc}
}

type sendMailRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SendInvoice asks the mail service to email the invoice to the given
// address. POST {base}/survey/send-mail. The order contents are not
// transmitted; the service only needs the recipient.
func (s *Sender) SendInvoice(ctx context.Context, email, name string) error {
	body, err := json.Marshal(sendMailRequest{Email: email, Name: name})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/survey/send-mail", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mail service: status %d", resp.StatusCode)
	}
	return nil
}

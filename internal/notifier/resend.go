package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jlizarraga/healthybreads-backend/internal/orders"
	"github.com/jlizarraga/healthybreads-backend/pkg/config"
	pkgerrors "github.com/jlizarraga/healthybreads-backend/pkg/errors"
	"github.com/jlizarraga/healthybreads-backend/pkg/logger"
)

// ResendClient delivers order emails through the Resend HTTP API.
type ResendClient struct {
	cfg  config.NotifierConfig
	http *http.Client
	logg *logger.Logger
}

// NewResendClient builds the email client. The API key must be set; callers
// fall back to Noop when it is not.
func NewResendClient(cfg config.NotifierConfig, logg *logger.Logger) (*ResendClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("notifier api key required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("notifier base url required")
	}
	return &ResendClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		logg: logg,
	}, nil
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

// NotifyOrderPlaced emails the order summary to the bakery operator.
func (c *ResendClient) NotifyOrderPlaced(ctx context.Context, order orders.Order) error {
	payload := sendEmailRequest{
		From:    c.cfg.From,
		To:      []string{c.cfg.To},
		Subject: Subject(order),
		Text:    RenderText(order),
		HTML:    RenderHTML(order),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding email payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building email request")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending order email")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("email API responded %d", resp.StatusCode))
	}

	if c.logg != nil {
		ctx = c.logg.WithOrderID(ctx, order.ID)
		c.logg.Info(ctx, "order email delivered")
	}
	return nil
}

package send

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yz4230/repowatch/internal/webhook"
)

const requestTimeout = 10 * time.Second

// deliver posts event to the configured endpoint the way GitHub does, and
// fails on any non-2xx response.
func deliver(ctx context.Context, out io.Writer, event webhook.Event, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event, err)
	}
	secret := signingSecret()
	req, err := newDeliveryRequest(ctx, sendFlags.url, secret, event, body)
	if err != nil {
		return err
	}

	log.Debug().
		Str("url", sendFlags.url).
		Str("event_type", string(event)).
		Str("delivery_id", req.Header.Get(webhook.DeliveryHeader)).
		Bool("signed", secret != "").
		Msg("sending delivery")

	client := &http.Client{Timeout: requestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", sendFlags.url, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	fmt.Fprintf(out, "%s %s\n", resp.Status, strings.TrimSpace(string(respBody)))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook rejected: status=%s", resp.Status)
	}
	return nil
}

func newDeliveryRequest(ctx context.Context, url, secret string, event webhook.Event, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "repowatch-send")
	req.Header.Set(webhook.EventHeader, string(event))
	req.Header.Set(webhook.DeliveryHeader, uuid.NewString())
	if secret != "" {
		req.Header.Set(webhook.SignatureHeader, webhook.Sign(body, secret))
	}
	return req, nil
}

package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/url"

	"github.com/yz4230/repowatch/internal/entity"
)

const formPayloadField = "payload"

var (
	// ErrMissingEvent is returned when a delivery has no event type.
	ErrMissingEvent = fmt.Errorf("%w: missing event type", entity.ErrMalformedRequest)
	// ErrEmptyPayload is returned when the body is not a non-empty JSON object.
	ErrEmptyPayload = fmt.Errorf("%w: no payload", entity.ErrMalformedRequest)
)

// PayloadFromBody returns the JSON document carried by a delivery. Form
// encoded deliveries carry it in the payload field. The document must be a
// non-empty JSON object.
func PayloadFromBody(contentType string, body []byte) ([]byte, error) {
	payload := body
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "application/x-www-form-urlencoded" {
		form, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, fmt.Errorf("%w: parse form: %v", ErrEmptyPayload, err)
		}
		payload = []byte(form.Get(formPayloadField))
	}

	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(payload, &doc); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: %v", ErrEmptyPayload, err)
		}
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrEmptyPayload)
	}
	if len(doc) == 0 {
		return nil, ErrEmptyPayload
	}
	return payload, nil
}

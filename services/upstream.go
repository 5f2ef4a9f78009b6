package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"accident-risk-api/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrUpstreamUnavailable wraps transport and decoding failures talking to a
// provider.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// UpstreamError is a provider answer that is not usable: an HTTP error
// status or an API-level status such as REQUEST_DENIED.
type UpstreamError struct {
	Service string
	Status  string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned %s: %s", e.Service, e.Status, e.Message)
	}
	return fmt.Sprintf("%s returned %s", e.Service, e.Status)
}

const maxErrorBody = 4 << 10

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return strings.TrimSuffix(v, "/")
}

// fetchJSON GETs endpoint with query and decodes a 200 response into dest.
// Errors never include the request URL since the query carries API keys.
func fetchJSON(ctx context.Context, client *http.Client, service, endpoint string, query url.Values, dest interface{}) error {
	ctx, span := telemetry.Tracer().Start(ctx, service)
	defer span.End()
	span.SetAttributes(attribute.String("upstream.service", service))

	start := time.Now()
	outcome := "error"
	defer func() { telemetry.ObserveUpstream(service, outcome, time.Since(start)) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", service, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		err = redactURL(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, service, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		outcome = "status"
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		span.SetStatus(codes.Error, resp.Status)
		return &UpstreamError{Service: service, Status: strconv.Itoa(resp.StatusCode), Message: errorMessage(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode")
		return fmt.Errorf("%w: %s: decode response: %v", ErrUpstreamUnavailable, service, err)
	}

	outcome = "ok"
	return nil
}

// errorMessage pulls a message out of the common provider error bodies.
func errorMessage(body []byte) string {
	var e struct {
		Message      string `json:"message"`
		ErrorMessage string `json:"error_message"`
		Error        struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &e) != nil {
		return ""
	}
	switch {
	case e.Message != "":
		return e.Message
	case e.ErrorMessage != "":
		return e.ErrorMessage
	default:
		return e.Error.Message
	}
}

func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

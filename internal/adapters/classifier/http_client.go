package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mikey/phish-dashboard/internal/core"
	"github.com/mikey/phish-dashboard/internal/utils"
	"go.uber.org/zap"
)

// maxErrorBodySize caps how much of a failure response is read when
// extracting the service's error message.
const maxErrorBodySize = 64 * 1024

// HTTPClassifier is an implementation of the Classifier interface that
// talks to the remote classification endpoint over JSON/HTTP.
type HTTPClassifier struct {
	client        *http.Client
	endpoint      string
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
}

// classifyRequest is the wire format of the classification request
type classifyRequest struct {
	EmailText string `json:"email_text"`
}

// classifyResponse is the wire format of a successful classification
type classifyResponse struct {
	Label       string   `json:"label"`
	Confidence  *float64 `json:"confidence"`
	Reason      string   `json:"reason"`
	Quarantined bool     `json:"quarantined"`
}

// errorResponse is the wire format of a failure response
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPClassifier creates a new HTTP classifier client
func NewHTTPClassifier(
	endpoint string,
	timeout time.Duration,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
) *HTTPClassifier {
	return &HTTPClassifier{
		client:        &http.Client{Timeout: timeout},
		endpoint:      endpoint,
		textProcessor: textProcessor,
		logger:        logger,
	}
}

// Classify submits an email body and returns the service's verdict.
// Non-success responses come back as *core.ServiceError; any failure to
// obtain or decode a usable response is returned as a plain error and
// treated as a transport failure by the caller.
func (c *HTTPClassifier) Classify(ctx context.Context, req core.ScanRequest) (*core.ScanVerdict, error) {
	payload, err := json.Marshal(classifyRequest{
		EmailText: c.textProcessor.SanitizeUTF8(req.EmailText),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode classification request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build classification request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.serviceError(resp)
	}

	var decoded classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode classification response: %w", err)
	}

	label, err := core.ParseLabel(decoded.Label)
	if err != nil {
		return nil, fmt.Errorf("invalid classification response: %w", err)
	}

	c.logger.Debug("Classification response received",
		zap.String("label", decoded.Label),
		zap.Bool("quarantined", decoded.Quarantined))

	return &core.ScanVerdict{
		Label:       label,
		Confidence:  decoded.Confidence,
		Reason:      decoded.Reason,
		Quarantined: decoded.Quarantined,
	}, nil
}

// serviceError extracts the optional error message from a non-success
// response. A missing or undecodable message yields an empty Message;
// the controller substitutes its generic fallback.
func (c *HTTPClassifier) serviceError(resp *http.Response) *core.ServiceError {
	svcErr := &core.ServiceError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		c.logger.Warn("Failed to read error response body", zap.Error(err))
		return svcErr
	}

	var decoded errorResponse
	if err := json.Unmarshal(body, &decoded); err == nil {
		svcErr.Message = decoded.Error
	}
	return svcErr
}

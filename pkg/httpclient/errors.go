package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// upstreamErrorBody covers the error shapes the commerce API is known to
// return: either a flat {"message": ...} object or a Payload-style
// {"errors": [{"message": ...}]} list.
type upstreamErrorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError carrying the upstream status and message. A 404 becomes
// a NotFound error so callers can distinguish missing entities from transport
// failures.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return apperrors.Upstream(serviceName, resp.StatusCode,
			fmt.Sprintf("status %d (failed to read body: %v)", resp.StatusCode, err))
	}

	message := extractMessage(bodyBytes)
	if message == "" {
		message = fmt.Sprintf("status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if resp.StatusCode == http.StatusNotFound {
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: fmt.Sprintf("%s: %s", serviceName, message),
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	}

	return apperrors.Upstream(serviceName, resp.StatusCode, message)
}

// extractMessage pulls a human-readable message out of a structured error
// body, or returns "" when the body is unstructured.
func extractMessage(body []byte) string {
	var parsed upstreamErrorBody
	if json.Unmarshal(body, &parsed) != nil {
		return ""
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	if len(parsed.Errors) > 0 {
		return parsed.Errors[0].Message
	}
	return ""
}

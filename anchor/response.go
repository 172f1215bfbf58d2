package anchor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/BaSui01/anchorflow/types"
)

// Normalize converts a raw HTTP response into a uniform result. It is a pure
// function over the status code and body; invoking it twice on the same
// input yields identical results.
//
// For 4xx/5xx responses it extracts the best available error message from
// the body (error_message, FastAPI detail strings and validation lists, or
// the raw text) and never fails on malformed bodies. For 2xx responses it
// enforces the backend's application-level status convention:
//
//   - {"status": "success", ...} is returned whole
//   - {"status": "error", ...} becomes an API error
//   - a mapping without a status field succeeds unless it carries an
//     error_message (implicit success, kept for legacy {"success": bool}
//     endpoints)
//   - any other status value is rejected
//   - non-mapping JSON (lists, scalars) is successful data as-is
//
// A 2xx response whose body is not valid JSON is an error: success must
// carry a decodable payload.
func Normalize(statusCode int, body []byte) (any, error) {
	if statusCode >= 400 {
		return nil, normalizeHTTPError(statusCode, body)
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		text := strings.TrimSpace(string(body))
		return nil, types.NewError(types.ErrDecode,
			fmt.Sprintf("failed to decode JSON response from successful HTTP call: %s", text)).
			WithStatus(statusCode).
			WithCause(err)
	}

	m, ok := data.(map[string]any)
	if !ok {
		// Lists and scalars on 2xx are successful data.
		return data, nil
	}

	// A JSON null status behaves exactly like an absent one.
	statusVal, present := m["status"]
	if !present || statusVal == nil {
		if em, ok := m["error_message"]; ok && em != nil {
			return nil, types.NewError(types.ErrAPI, messageText(em)).
				WithStatus(statusCode).
				WithResponse(m)
		}
		// Implicit success for endpoints that predate the status convention.
		return m, nil
	}

	if s, ok := statusVal.(string); ok {
		switch s {
		case "success":
			return m, nil
		case "error":
			msg := "unknown API error: 'status' is 'error' but 'error_message' is missing"
			if em, ok := m["error_message"]; ok && em != nil {
				msg = messageText(em)
			}
			return nil, types.NewError(types.ErrAPI, msg).
				WithStatus(statusCode).
				WithResponse(m)
		}
	}

	return nil, types.NewError(types.ErrAPI,
		fmt.Sprintf("API response has an unexpected 'status' field value: '%v'", statusVal)).
		WithStatus(statusCode).
		WithResponse(m)
}

// normalizeHTTPError builds the error for a 4xx/5xx response, degrading to
// best-effort message extraction for undecodable bodies.
func normalizeHTTPError(statusCode int, body []byte) *types.Error {
	text := strings.TrimSpace(string(body))

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		msg := text
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d %s", statusCode, http.StatusText(statusCode))
		}
		return types.NewError(types.ErrHTTP, msg).
			WithStatus(statusCode).
			WithRetryable(retryableStatus(statusCode))
	}

	m, ok := data.(map[string]any)
	if !ok {
		return types.NewError(types.ErrHTTP, messageText(data)).
			WithStatus(statusCode).
			WithResponse(data).
			WithRetryable(retryableStatus(statusCode))
	}

	return types.NewError(types.ErrHTTP, errorMessageFromMapping(m, text)).
		WithStatus(statusCode).
		WithResponse(m).
		WithRetryable(retryableStatus(statusCode))
}

// errorMessageFromMapping picks the most specific message an error mapping
// offers: error_message, then detail (string or FastAPI validation list),
// then the mapping's own JSON text.
func errorMessageFromMapping(m map[string]any, raw string) string {
	if v, ok := m["error_message"]; ok && v != nil {
		return messageText(v)
	}

	if v, ok := m["detail"]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		if recs, ok := v.([]any); ok && isValidationList(recs) {
			return joinValidationErrors(recs)
		}
	}

	return raw
}

// isValidationList reports whether detail looks like FastAPI's validation
// error format: a non-empty list whose first element carries loc and msg.
func isValidationList(recs []any) bool {
	if len(recs) == 0 {
		return false
	}
	first, ok := recs[0].(map[string]any)
	if !ok {
		return false
	}
	_, hasLoc := first["loc"]
	_, hasMsg := first["msg"]
	return hasLoc && hasMsg
}

// joinValidationErrors formats validation records as
// "<field>: <msg>; <field>: <msg>" using the last loc element as the field
// name. Records missing loc fall back to unknown_field.
func joinValidationErrors(recs []any) string {
	parts := make([]string, 0, len(recs))
	for _, r := range recs {
		rec, ok := r.(map[string]any)
		if !ok {
			continue
		}
		field := "unknown_field"
		if loc, ok := rec["loc"].([]any); ok && len(loc) > 0 {
			field = fmt.Sprintf("%v", loc[len(loc)-1])
		}
		msg := ""
		if v, ok := rec["msg"]; ok && v != nil {
			msg = messageText(v)
		}
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// messageText renders an application-provided message value as text: strings
// pass through, everything else becomes its JSON form.
func messageText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

// retryableStatus classifies throttling and server-side failures as
// transient; the orchestrator may retry those.
func retryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// Package output provides formatting utilities for agent-friendly CLI output.
package output

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/KaloyanYosifov/holy-kern-base/libhkb"
)

// SpecResponse is the JSON form of a resolved TimeSpec.
type SpecResponse struct {
	Kind     string  `json:"kind"`
	Amount   int     `json:"amount,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Time     *string `json:"time,omitempty"`
	RemindAt string  `json:"remindAt"`
	Sentence any     `json:"sentence,omitempty"`
}

// ErrorResponse reports a sentence that could not be resolved.
type ErrorResponse struct {
	Error    string `json:"error"`
	Kind     string `json:"kind"`
	Sentence any    `json:"sentence,omitempty"`
}

// ListResponse wraps the results of a batch.
type ListResponse struct {
	Value  []any `json:"value"`
	Count  int   `json:"count"`
	Failed int   `json:"failed"`
}

// ActionResponse represents the response from an action command (e.g., config set).
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON writes a value as JSON to the writer.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatSpecResponse creates a SpecResponse for spec evaluated at now.
func FormatSpecResponse(spec libhkb.TimeSpec, now time.Time) *SpecResponse {
	resp := &SpecResponse{
		RemindAt: spec.Apply(now).Format(time.RFC3339),
	}
	switch s := spec.(type) {
	case libhkb.Relative:
		resp.Kind = "relative"
		resp.Amount = s.Amount
		resp.Unit = s.Unit.String()
	case libhkb.Absolute:
		resp.Kind = "absolute"
		t := s.Time.Format(time.RFC3339)
		resp.Time = &t
	}
	return resp
}

// ErrorKind classifies a resolution error for machine consumers.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, libhkb.ErrInvalidTime):
		return "invalid_time"
	case errors.Is(err, libhkb.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, libhkb.ErrAmountOutOfRange):
		return "amount_out_of_range"
	case errors.Is(err, libhkb.ErrInternalInvariantViolation):
		return "internal"
	default:
		return "error"
	}
}

// FormatErrorResponse creates an ErrorResponse.
func FormatErrorResponse(err error, sentence any) *ErrorResponse {
	return &ErrorResponse{
		Error:    err.Error(),
		Kind:     ErrorKind(err),
		Sentence: sentence,
	}
}

// FormatListResponse creates a ListResponse from batch results.
func FormatListResponse(results []libhkb.BatchResult, now time.Time) *ListResponse {
	resp := &ListResponse{
		Value: make([]any, 0, len(results)),
		Count: len(results),
	}
	for _, r := range results {
		if r.Err != nil {
			resp.Failed++
			resp.Value = append(resp.Value, FormatErrorResponse(r.Err, r.Sentence))
			continue
		}
		spec := FormatSpecResponse(r.Spec, now)
		spec.Sentence = r.Sentence
		resp.Value = append(resp.Value, spec)
	}
	return resp
}

// FormatActionResponse creates an ActionResponse.
func FormatActionResponse(success bool, message string) *ActionResponse {
	return &ActionResponse{
		Success: success,
		Message: message,
	}
}

// Package errors provides standardized error codes for the resolution pipeline.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeClassificationFailed ErrorCode = "CLASSIFICATION_FAILED"
	ErrCodeSynthesisFailed      ErrorCode = "SYNTHESIS_FAILED"
	ErrCodeQueryRejected        ErrorCode = "QUERY_REJECTED"

	ErrCodeStoreAccessFailed ErrorCode = "STORE_ACCESS_FAILED"

	ErrCodeLookupDispatchFailed  ErrorCode = "LOOKUP_DISPATCH_FAILED"
	ErrCodeCallbackDeliverFailed ErrorCode = "CALLBACK_DELIVERY_FAILED"
	ErrCodeCallbackInvalid       ErrorCode = "CALLBACK_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewClassificationFailedError marks a soft failure of the language-model
// classifier. The dispatcher falls through to the next stage, so it is never
// retried in place.
func NewClassificationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassificationFailed,
		Message:   "Language-model classification failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSynthesisFailedError marks a failed dynamic query generation or execution.
func NewSynthesisFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSynthesisFailed,
		Message:   "Dynamic query synthesis failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryRejectedError marks a generated statement refused by the read-only guard.
func NewQueryRejectedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryRejected,
		Message:   "Generated statement rejected by read-only guard",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreAccessError creates a retryable reference-store error.
func NewStoreAccessError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreAccessFailed,
		Message:   "Reference store access error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLookupDispatchFailedError marks a trigger whose asynchronous event could
// not be published.
func NewLookupDispatchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLookupDispatchFailed,
		Message:   "Enrichment lookup dispatch failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCallbackDeliveryFailedError is logged only; the triggering caller is never
// informed because trigger and callback are decoupled.
func NewCallbackDeliveryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCallbackDeliverFailed,
		Message:   "Enrichment callback delivery failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCallbackInvalidError marks an inbound callback payload that failed schema
// validation.
func NewCallbackInvalidError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCallbackInvalid,
		Message:   "Enrichment callback payload invalid",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

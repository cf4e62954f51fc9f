// internal/common/errors/errors.go

// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeQuestionTooLong  ErrorCode = "QUESTION_TOO_LONG"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"

	ErrCodeDatasetQueryFailed ErrorCode = "DATASET_QUERY_FAILED"
	ErrCodeDataFetchFailed    ErrorCode = "DATA_FETCH_FAILED"

	ErrCodeLLMRequestFailed     ErrorCode = "LLM_REQUEST_FAILED"
	ErrCodeLLMTimeout           ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMResponseMalformed ErrorCode = "LLM_RESPONSE_MALFORMED"

	ErrCodePredictionParseFailed ErrorCode = "PREDICTION_PARSE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		Cause:     cause,
	}
}

// NewInvalidInputError reports job variables or a request body that could not be decoded.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuestionTooLongError rejects a question over the configured rune limit.
func NewQuestionTooLongError(length, limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuestionTooLong,
		Message:   fmt.Sprintf("질문이 너무 깁니다. 최대 %d자까지 입력할 수 있습니다.", limit),
		Details:   fmt.Sprintf("length: %d, limit: %d", length, limit),
		Retryable: false,
		Metadata:  map[string]interface{}{"length": length, "limit": limit},
		Timestamp: time.Now().UTC(),
	}
}

func NewDatasetQueryFailedError(dataset string, err error) *StandardError {
	e := newError(ErrCodeDatasetQueryFailed, fmt.Sprintf("Query for dataset %q failed", dataset), err, true)
	e.Metadata = map[string]interface{}{"dataset": dataset}
	return e
}

// NewDataFetchFailedError is terminal for trend analysis, which needs every history series.
func NewDataFetchFailedError(dataset string, err error) *StandardError {
	e := newError(ErrCodeDataFetchFailed, fmt.Sprintf("데이터 조회 실패: %s", dataset), err, true)
	e.Metadata = map[string]interface{}{"dataset": dataset}
	return e
}

func NewStoreUnavailableError(err error) *StandardError {
	return newError(ErrCodeStoreUnavailable, "Tabular store unavailable", err, true)
}

// LLM errors are never retried: a chat turn makes exactly one completion request.

func NewLLMRequestFailedError(err error) *StandardError {
	return newError(ErrCodeLLMRequestFailed, "AI 응답 생성 중 오류가 발생했습니다", err, false)
}

func NewLLMTimeoutError(err error) *StandardError {
	return newError(ErrCodeLLMTimeout, "AI 응답 시간이 초과되었습니다", err, false)
}

func NewLLMResponseMalformedError(err error) *StandardError {
	return newError(ErrCodeLLMResponseMalformed, "AI 응답 형식이 올바르지 않습니다", err, false)
}

func NewPredictionParseFailedError(err error) *StandardError {
	return newError(ErrCodePredictionParseFailed, "AI 응답을 파싱할 수 없습니다", err, false)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err, false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:          "INVALID_INPUT",
	ErrCodeQuestionTooLong:       "QUESTION_TOO_LONG",
	ErrCodeInternal:              "INTERNAL_ERROR",
	ErrCodeStoreUnavailable:      "STORE_UNAVAILABLE",
	ErrCodeDatasetQueryFailed:    "DATASET_QUERY_FAILED",
	ErrCodeDataFetchFailed:       "DATA_FETCH_FAILED",
	ErrCodeLLMRequestFailed:      "LLM_FAILED",
	ErrCodeLLMTimeout:            "LLM_FAILED",
	ErrCodeLLMResponseMalformed:  "LLM_FAILED",
	ErrCodePredictionParseFailed: "PREDICTION_PARSE_FAILED",
}

// GetRetryCount returns the recommended retry count for a Zeebe job.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreUnavailable,
		ErrCodeDataFetchFailed:
		return 3

	case ErrCodeDatasetQueryFailed:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError finds a StandardError in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the error code of err, or INTERNAL_ERROR when err carries none.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "LLM") || strings.Contains(codeStr, "PREDICTION"):
		return "AI"
	case strings.Contains(codeStr, "DATASET") || strings.Contains(codeStr, "DATA_") || strings.Contains(codeStr, "STORE"):
		return "DATABASE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "QUESTION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

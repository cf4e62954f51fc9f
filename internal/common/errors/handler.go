// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// terminalCodes are thrown as BPMN errors on the first failure. Bad questions
// do not improve on retry, and a model call is never repeated.
var terminalCodes = map[ErrorCode]bool{
	ErrCodeInvalidInput:          true,
	ErrCodeQuestionTooLong:       true,
	ErrCodeLLMRequestFailed:      true,
	ErrCodeLLMTimeout:            true,
	ErrCodeLLMResponseMalformed:  true,
	ErrCodePredictionParseFailed: true,
}

// ErrorHandler turns worker errors into Zeebe fail or throw commands.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleJobError fails the job with retries when the error is a transient
// store failure and Zeebe still has retries left. Everything else is thrown
// as a BPMN error for the process to route.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := h.normalizeError(err)
	bpmnErr := ConvertToBPMNError(stdErr)
	retries := JobRetries(stdErr, job.Retries)

	h.logError(job, stdErr, bpmnErr, retries)

	if retries > 0 {
		h.failJob(ctx, client, job, bpmnErr, retries)
		return
	}
	h.throwBPMNError(ctx, client, job, bpmnErr)
}

// JobRetries is the retry count to hand back to Zeebe, or 0 to throw.
// It never exceeds what the job has left.
func JobRetries(stdErr *StandardError, remaining int32) int {
	if stdErr == nil || terminalCodes[stdErr.Code] || !stdErr.Retryable || remaining <= 0 {
		return 0
	}
	retries := GetRetryCount(stdErr.Code)
	if int(remaining) < retries {
		retries = int(remaining)
	}
	return retries
}

func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return NewInternalError(err)
}

func (h *ErrorHandler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(retries)).
		ErrorMessage(bpmnErr.Message)

	if vars, ok := errorVariables(bpmnErr); ok {
		if withVars, err := cmd.VariablesFromString(vars); err == nil {
			h.send(ctx, job, "fail", func(ctx context.Context) error {
				_, err := withVars.Send(ctx)
				return err
			})
			return
		}
	}
	h.send(ctx, job, "fail", func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	})
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if vars, ok := errorVariables(bpmnErr); ok {
		if withVars, err := cmd.VariablesFromString(vars); err == nil {
			h.send(ctx, job, "throw", func(ctx context.Context) error {
				_, err := withVars.Send(ctx)
				return err
			})
			return
		}
	}
	h.send(ctx, job, "throw", func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	})
}

func (h *ErrorHandler) send(ctx context.Context, job entities.Job, action string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		h.logger.Error("failed to report job error", map[string]interface{}{
			"jobKey": job.Key,
			"action": action,
			"error":  err.Error(),
		})
	}
}

func errorVariables(bpmnErr *BPMNError) (string, bool) {
	vars := bpmnErr.ToErrorVariables()
	if len(vars) == 0 {
		return "", false
	}
	raw, err := json.Marshal(vars)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError, retries int) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    bpmnErr.Code,
		"message":          bpmnErr.Message,
		"details":          stdErr.Details,
		"terminal":         retries == 0,
		"retries":          retries,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}

// internal/chat/worker.go
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"youth-employment-chat/internal/common/config"
	apperrors "youth-employment-chat/internal/common/errors"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/common/metrics"
	"youth-employment-chat/internal/models"
)

// TaskType runs the whole pipeline as a single job.
const TaskType = "youth-employment-chat"

type WorkerInput struct {
	Question string `json:"question"`
}

type WorkerOutput struct {
	Response *models.ChatResponse `json:"chatResponse"`
}

type JobHandler struct {
	pipeline *Pipeline
	timeout  time.Duration
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewJobHandler(pipeline *Pipeline, wc config.WorkerConfig, log logger.Logger) (*JobHandler, error) {
	if pipeline == nil {
		return nil, fmt.Errorf("%s: pipeline is required", TaskType)
	}
	timeout := config.GetDuration(wc.Timeout)
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &JobHandler{
		pipeline: pipeline,
		timeout:  timeout,
		errors:   apperrors.NewErrorHandler(log),
		logger:   log,
	}, nil
}

func (h *JobHandler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.CodeOf(err))).Inc()
		h.errors.HandleJobError(context.Background(), client, job, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	resp, err := h.pipeline.Ask(ctx, input.Question)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.CodeOf(err))).Inc()
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(&WorkerOutput{Response: resp})
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *JobHandler) parseInput(job entities.Job) (*WorkerInput, error) {
	var input WorkerInput
	if err := json.Unmarshal([]byte(job.GetVariables()), &input); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	apperrors "youth-employment-chat/internal/common/errors"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/models"
)

const maxBodyBytes = 64 << 10

type Handler struct {
	chat     ChatService
	trends   TrendService
	checkers []Checker
	logger   logger.Logger
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewChatFailure(errors.New("잘못된 요청 형식입니다")))
		return
	}

	resp, err := h.chat.Ask(r.Context(), req.Question)
	if err != nil {
		h.logger.Error("chat failed", map[string]interface{}{
			"requestId": RequestIDFrom(r.Context()),
			"code":      string(apperrors.CodeOf(err)),
			"error":     err.Error(),
		})
		writeJSON(w, statusFor(err), &models.ChatResponse{Success: false, Error: publicMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AnalyzeTrends(w http.ResponseWriter, r *http.Request) {
	resp, err := h.trends.Analyze(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("trend analysis failed", map[string]interface{}{
			"requestId": RequestIDFrom(r.Context()),
			"code":      string(apperrors.CodeOf(err)),
		})
		out := &models.TrendAnalysisResponse{Success: false, Error: publicMessage(err)}
		if se, ok := apperrors.AsStandardError(err); ok {
			out.Details = se.Details
		}
		writeJSON(w, http.StatusInternalServerError, out)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready pings every configured dependency and reports each result.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.checkers))
	for _, c := range h.checkers {
		if err := c.Ping(ctx); err != nil {
			checks[c.Name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[c.Name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not_ready"
	}
	writeJSON(w, status, map[string]interface{}{"status": state, "checks": checks})
}

func decodeBody(r *http.Request, v interface{}) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	return json.NewDecoder(body).Decode(v)
}

// statusFor maps caller mistakes to 400; everything else is a server failure.
func statusFor(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeQuestionTooLong:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func publicMessage(err error) string {
	if se, ok := apperrors.AsStandardError(err); ok {
		return se.Message
	}
	return "처리 중 오류가 발생했습니다"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

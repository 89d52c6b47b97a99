package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"truthrecruit-engine/internal/apperr"
	"truthrecruit-engine/internal/pipeline"
)

const (
	maxAnalyzeBody    = 64 << 10
	msgInvalidRequest = "Invalid request body"
)

type AnalyzeHandler struct {
	Analyzer Analyzer
	Logger   *zap.Logger
	Now      func() time.Time
}

func (h AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	start := h.Now()
	reqID := RequestIDFrom(r.Context())
	elapsed := func() int64 { return h.Now().Sub(start).Milliseconds() }

	var req AnalysisRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnalyzeBody))
	if err := dec.Decode(&req); err != nil {
		h.Logger.Debug("bad analyze body", zap.String("request_id", reqID), zap.Error(err))
		WriteJSON(w, http.StatusBadRequest, AnalysisResponse{
			Error:          msgInvalidRequest,
			ProcessingTime: elapsed(),
		})
		return
	}

	analysis, err := h.Analyzer.Analyze(r.Context(), pipeline.Request{
		RequestID:   reqID,
		LinkedInURL: req.LinkedInURL,
		UserEmail:   req.UserEmail,
	})
	if err != nil {
		h.logFailure(reqID, req.LinkedInURL, err)
		WriteJSON(w, apperr.StatusOf(err), AnalysisResponse{
			Error:          apperr.PublicMessage(err),
			ProcessingTime: elapsed(),
		})
		return
	}

	WriteJSON(w, http.StatusOK, AnalysisResponse{
		Success:        true,
		Data:           &analysis,
		ProcessingTime: elapsed(),
	})
}

func (h AnalyzeHandler) logFailure(reqID, url string, err error) {
	fields := []zap.Field{
		zap.String("request_id", reqID),
		zap.String("linkedin_url", url),
		zap.String("kind", string(apperr.KindOf(err))),
		zap.Error(err),
	}
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		h.Logger.Debug("analysis rejected", fields...)
	case apperr.KindUpstream:
		h.Logger.Warn("analysis failed upstream", fields...)
	default:
		if st, ok := err.(interface{ StackTrace() []byte }); ok {
			fields = append(fields, zap.ByteString("stack", st.StackTrace()))
		}
		h.Logger.Error("analysis failed", fields...)
	}
}

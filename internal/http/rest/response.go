package rest

import (
	"encoding/json"
	"net/http"

	"github.com/bwise1/court_cases/util"
	"github.com/bwise1/court_cases/util/tracing"
	"go.uber.org/zap"
)

type ServerResponse struct {
	Message    string      `json:"message"`
	Status     string      `json:"status"`
	StatusCode int         `json:"-"`
	Data       interface{} `json:"data,omitempty"`
}

func respondWithError(err error, message, status string, tc *tracing.Context) *ServerResponse {
	logRequestError(err, message, status, tc)

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

// logRequestError keeps client mistakes at warn level so error logs only
// carry server faults.
func logRequestError(err error, message, status string, tc *tracing.Context) {
	fields := []interface{}{"status", status, "error", err}
	if tc != nil {
		fields = append(fields, "request_id", tc.RequestID, "request_source", tc.RequestSource)
	}

	if util.StatusCode(status) >= http.StatusInternalServerError {
		zap.S().Errorw(message, fields...)
		return
	}
	zap.S().Warnw(message, fields...)
}

func writeErrorResponse(w http.ResponseWriter, err error, status, message string) {
	logRequestError(err, message, status, nil)

	resp := ServerResponse{
		Message: message,
		Status:  status,
	}
	respByte, _ := json.Marshal(resp)
	writeJSONResponse(w, respByte, util.StatusCode(status))
}

func writeJSONResponse(w http.ResponseWriter, content []byte, statusCode int) {
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(content); err != nil {
		zap.S().Errorw("unable to write response", "error", err)
	}
}

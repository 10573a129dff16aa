package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ssdcollector/internal/capture"
	"ssdcollector/internal/catalog"
	"ssdcollector/internal/service"
	"ssdcollector/internal/validation"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, logger *zap.Logger, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		if status >= http.StatusInternalServerError {
			logger.Error(logMsg, zap.Error(err), zap.Int("status", status))
		} else {
			logger.Debug(logMsg, zap.Error(err), zap.Int("status", status))
		}
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondWithServiceError maps package sentinels to status codes
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verr validation.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithError(w, logger, http.StatusBadRequest, verr.Error(), "", err)
	case errors.Is(err, catalog.ErrBatteryNotFound),
		errors.Is(err, catalog.ErrProtocolNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		respondWithError(w, logger, http.StatusNotFound, err.Error(), "", err)
	case errors.Is(err, service.ErrNoPatient),
		errors.Is(err, service.ErrNothingToUpload),
		errors.Is(err, service.ErrSyncInProgress),
		errors.Is(err, service.ErrAlreadySynced):
		respondWithError(w, logger, http.StatusConflict, err.Error(), "", err)
	case errors.Is(err, capture.ErrUnsupportedFormat):
		respondWithError(w, logger, http.StatusUnsupportedMediaType, err.Error(), "", err)
	default:
		respondWithError(w, logger, http.StatusInternalServerError, "Internal server error", "", err)
	}
}

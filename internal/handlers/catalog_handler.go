package handlers

import (
	"net/http"
	"strconv"

	"ssdcollector/internal/models"
)

// batterySummary is the catalog listing entry
type batterySummary struct {
	ID                        string `json:"id"`
	Name                      string `json:"name"`
	FullName                  string `json:"fullName"`
	Language                  string `json:"language"`
	TargetAgeYears            string `json:"targetAgeYears"`
	AdministrationTimeMinutes int    `json:"administrationTimeMinutes"`
	ProtocolCount             int    `json:"protocolCount"`
	TotalWords                int    `json:"totalWords"`
}

// ListBatteries returns a summary of every battery
func (h *Handler) ListBatteries(w http.ResponseWriter, r *http.Request) {
	batteries := h.catalog.Batteries()
	out := make([]batterySummary, 0, len(batteries))
	for i := range batteries {
		b := &batteries[i]
		out = append(out, batterySummary{
			ID:                        b.ID,
			Name:                      b.Name,
			FullName:                  b.FullName,
			Language:                  b.Language,
			TargetAgeYears:            b.TargetAgeYears,
			AdministrationTimeMinutes: b.AdministrationTimeMinutes,
			ProtocolCount:             len(b.Protocols),
			TotalWords:                b.TotalWords(),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// GetBattery returns one battery with its protocols and words
func (h *Handler) GetBattery(w http.ResponseWriter, r *http.Request) {
	b, err := h.catalog.Battery(r.PathValue("batteryId"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// ListErrorTypes returns the phonological processes offered for annotation
func (h *Handler) ListErrorTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.ErrorTypes)
}

// GetPrompt serves the model pronunciation of a word as MP3
func (h *Handler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	if h.prompts == nil {
		respondWithError(w, h.logger, http.StatusServiceUnavailable, "Prompt audio is not available", "", nil)
		return
	}

	b, err := h.catalog.Battery(r.PathValue("batteryId"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	p, err := h.catalog.Protocol(b.ID, r.PathValue("protocolId"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 || index >= len(p.Words) {
		respondWithError(w, h.logger, http.StatusNotFound, "Word not found", "", err)
		return
	}

	path, err := h.prompts.PromptFile(r.Context(), b, p.Words[index])
	if err != nil {
		respondWithError(w, h.logger, http.StatusBadGateway, "Failed to generate prompt audio", "", err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}

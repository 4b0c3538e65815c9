package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"GenrePulse/core/dashboard"
	"GenrePulse/logger"
	"GenrePulse/model"
)

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type countryRequest struct {
	Country string `json:"country"`
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Warn("failed to encode response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{Success: false, Error: msg})
}

// writeState 根据状态是否致命选择状态码
func writeState(w http.ResponseWriter, s model.DashboardState) {
	if s.Fatal {
		writeJSON(w, http.StatusBadGateway, APIResponse{Success: false, Data: s, Error: s.Error})
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: s})
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: map[string]string{"status": "ok"}})
}

// DashboardHandler returns the current state, fetching once if nothing has been loaded yet.
func (s *Server) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	state := s.dash.State()
	if state.Sequence == 0 {
		state = s.dash.Refresh(r.Context())
	}
	writeState(w, state)
}

// QuarterlyHandler returns the synthetic series for ?year=, defaulting to the current year.
func (s *Server) QuarterlyHandler(w http.ResponseWriter, r *http.Request) {
	year := s.now().Year()
	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 || y > 9999 {
			writeError(w, http.StatusBadRequest, "invalid year: "+raw)
			return
		}
		year = y
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: s.dash.Quarterly(year)})
}

// CountriesHandler lists the selectable markets.
func (s *Server) CountriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: model.Countries})
}

// SetCountryHandler switches the market filter and returns the refreshed state.
func (s *Server) SetCountryHandler(w http.ResponseWriter, r *http.Request) {
	var req countryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := s.dash.SetSelectedCountry(r.Context(), req.Country)
	if err != nil {
		if errors.Is(err, dashboard.ErrUnknownCountry) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("country selected",
		logger.String("requestId", RequestIDFromContext(r.Context())),
		logger.String("country", state.SelectedCountry))
	writeState(w, state)
}

// RefreshHandler re-fetches both genres. ?force=true drops cached tracks first.
func (s *Server) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	if force && s.purger != nil {
		n, err := s.purger.Purge(r.Context())
		if err != nil {
			logger.Warn("cache purge failed", logger.ErrorField(err))
		} else {
			logger.Info("cache purged", logger.Int("keys", n))
		}
	}
	writeState(w, s.dash.Refresh(r.Context()))
}

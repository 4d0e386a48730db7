package server

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/horizon/internal/common"
	"github.com/bobmcallan/horizon/internal/models"
	"github.com/bobmcallan/horizon/internal/services/forecast"
)

// handleForecast dispatches /api/forecast: POST runs a fresh forecast from
// the user's saved portfolio (or an inline request body), GET returns the
// latest persisted snapshot.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	userID := common.ResolveUserID(r.Context())
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	switch r.Method {
	case http.MethodPost:
		s.handleForecastRun(w, r, userID)
	case http.MethodGet:
		s.handleForecastGet(w, r, userID)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleForecastRun(w http.ResponseWriter, r *http.Request, userID string) {
	var req models.ForecastRequest

	// An empty body means "forecast my saved portfolio". ContentLength is -1
	// for chunked bodies, which still carry a request.
	if r.ContentLength != 0 {
		if !DecodeJSON(w, r, &req) {
			return
		}
	} else {
		portfolio, err := s.app.UserStore.GetPortfolio(r.Context(), userID)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "No saved portfolio to forecast — save one or supply a request body")
			return
		}
		req = models.ForecastRequest{
			Years:       portfolio.Settings.Years,
			Currency:    portfolio.Settings.Currency,
			Investments: portfolio.Investments,
		}
	}

	result, err := s.app.ForecastService.RunForecast(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, forecast.ErrInvalidRequest) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Forecast run failed")
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleForecastGet(w http.ResponseWriter, r *http.Request, userID string) {
	result, err := s.app.ForecastService.LatestForecast(r.Context(), userID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "No forecast found — run one first")
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

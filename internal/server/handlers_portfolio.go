package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/bobmcallan/horizon/internal/common"
	"github.com/bobmcallan/horizon/internal/models"
)

// handlePortfolio dispatches GET/PUT /api/portfolio for the authenticated user.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	userID := common.ResolveUserID(r.Context())
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handlePortfolioGet(w, r, userID)
	case http.MethodPut:
		s.handlePortfolioPut(w, r, userID)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

func (s *Server) handlePortfolioGet(w http.ResponseWriter, r *http.Request, userID string) {
	portfolio, err := s.app.UserStore.GetPortfolio(r.Context(), userID)
	if err != nil {
		// A user with no saved portfolio gets an empty document, not a 404.
		WriteJSON(w, http.StatusOK, models.Portfolio{
			UserID: userID,
			Settings: models.PortfolioSettings{
				Currency: s.app.Config.Forecast.DefaultCurrency,
				Years:    s.app.Config.Forecast.DefaultYears,
			},
			Investments: []models.Investment{},
		})
		return
	}
	WriteJSON(w, http.StatusOK, portfolio)
}

type portfolioPutRequest struct {
	Settings    models.PortfolioSettings `json:"settings"`
	Investments []models.Investment      `json:"investments"`
}

func (s *Server) handlePortfolioPut(w http.ResponseWriter, r *http.Request, userID string) {
	var req portfolioPutRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Settings.Years < models.MinForecastYears || req.Settings.Years > models.MaxForecastYears {
		WriteError(w, http.StatusBadRequest, "settings.years must be between 1 and 50")
		return
	}
	if strings.TrimSpace(req.Settings.Currency) == "" {
		WriteError(w, http.StatusBadRequest, "settings.currency is required")
		return
	}

	// Assign ids to new investments, then validate each one.
	for i := range req.Investments {
		if strings.TrimSpace(req.Investments[i].ID) == "" {
			req.Investments[i].ID = uuid.New().String()
		}
		if err := req.Investments[i].Validate(); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	portfolio := &models.Portfolio{
		UserID:      userID,
		Settings:    req.Settings,
		Investments: req.Investments,
	}
	if err := s.app.UserStore.SavePortfolio(r.Context(), portfolio); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to save portfolio")
		WriteError(w, http.StatusInternalServerError, "Failed to save portfolio")
		return
	}

	WriteJSON(w, http.StatusOK, portfolio)
}

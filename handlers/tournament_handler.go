package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-aggregator/models"
	"github.com/Dosada05/tournament-aggregator/services"
)

type TournamentHandler struct {
	service services.AggregationService
}

func NewTournamentHandler(service services.AggregationService) *TournamentHandler {
	return &TournamentHandler{service: service}
}

// HealthHandler обрабатывает GET /health
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, jsonResponse{"status": "OK"}, nil)
}

// ListHandler обрабатывает GET /api/tournaments. В списке всегда ровно один
// сконфигурированный турнир.
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "true"

	state, err := h.service.GetState(r.Context(), force)
	if err != nil {
		badGatewayResponse(w, r, "No se pudieron obtener los torneos.", err)
		return
	}

	if err := writeJSON(w, http.StatusOK, []models.TournamentSummary{state.Summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler обрабатывает GET /api/tournaments/{tournamentID}
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "tournamentID") != h.service.TournamentID() {
		notFoundResponse(w, r)
		return
	}

	force := r.URL.Query().Get("refresh") == "true"

	state, err := h.service.GetState(r.Context(), force)
	if err != nil {
		badGatewayResponse(w, r, "No se pudo cargar el torneo solicitado.", err)
		return
	}

	if err := writeJSON(w, http.StatusOK, state.Detail, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type assignSlotInput struct {
	MatchID *int `json:"matchId"`
}

// AssignSlotHandler обрабатывает PUT /api/tournaments/{tournamentID}/groups/{groupID}/slots/{slotIndex}
func (h *TournamentHandler) AssignSlotHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "tournamentID") != h.service.TournamentID() {
		notFoundResponse(w, r)
		return
	}

	groupID := chi.URLParam(r, "groupID")
	slotIndex, err := strconv.Atoi(chi.URLParam(r, "slotIndex"))
	if err != nil {
		badRequestResponse(w, r, services.ErrSlotIndexInvalid)
		return
	}

	var input assignSlotInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.service.AssignSlot(r.Context(), groupID, slotIndex, input.MatchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, state.Detail, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type reportMatchInput struct {
	Status string `json:"status"`
	ScoreA *int   `json:"scoreA"`
	ScoreB *int   `json:"scoreB"`
}

// ReportMatchHandler обрабатывает PATCH /api/tournaments/{tournamentID}/matches/{matchID}
func (h *TournamentHandler) ReportMatchHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "tournamentID") != h.service.TournamentID() {
		notFoundResponse(w, r)
		return
	}

	matchID, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil || matchID <= 0 {
		badRequestResponse(w, r, services.ErrMatchIDInvalid)
		return
	}

	var input reportMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Status == "" {
		badRequestResponse(w, r, errors.New("status is required"))
		return
	}

	state, err := h.service.ReportMatchUpdate(r.Context(), matchID, input.Status, input.ScoreA, input.ScoreB)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, state.Detail, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/middleware"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/services"
)

type MatchHandler struct {
	matchService services.MatchService
	userService  services.UserService
}

func NewMatchHandler(matchService services.MatchService, userService services.UserService) *MatchHandler {
	return &MatchHandler{matchService: matchService, userService: userService}
}

func (h *MatchHandler) currentUser(r *http.Request) (*models.User, error) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		return nil, err
	}
	return h.userService.GetByID(r.Context(), userID)
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.TournamentID = tournamentID

	match, err := h.matchService.Create(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var statusFilter *models.MatchStatus
	if v := r.URL.Query().Get("status"); v != "" {
		status := models.MatchStatus(v)
		if !status.Valid() {
			badRequestResponse(w, r, errors.New("invalid status filter"))
			return
		}
		statusFilter = &status
	}

	matches, err := h.matchService.ListByTournament(r.Context(), tournamentID, statusFilter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateDetails(r.Context(), actor, id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateScore records a partial score without completing the match.
func (h *MatchHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Player1Score int `json:"player1_score"`
		Player2Score int `json:"player2_score"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateScore(r.Context(), actor, id, input.Player1Score, input.Player2Score)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordSets replaces the match's sets and finalizes it: the winner is
// computed from the set totals and the match transitions to completed.
func (h *MatchHandler) RecordSets(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Sets []services.SetInput `json:"sets"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RecordSets(r.Context(), actor, id, input.Sets)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.Delete(r.Context(), actor, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"net/http"

	"triviagame/services"
)

type GameHandler struct {
	gameService services.GameService
	teamService services.TeamService
}

func NewGameHandler(gs services.GameService, ts services.TeamService) *GameHandler {
	return &GameHandler{
		gameService: gs,
		teamService: ts,
	}
}

func (h *GameHandler) AddOpponent(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TeamID int `json:"team_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TeamID <= 0 {
		badRequestResponse(w, r, errors.New("team ID is required"))
		return
	}

	team, err := h.teamService.GetTeamByID(r.Context(), input.TeamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := h.gameService.PrepOpponent(team); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"status": "success",
		"team":   team.Name,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StartGame runs the two-round match. Answers may be submitted up front in
// prompt order (opponent 1 round 1, opponent 2 round 1, opponent 1 round 2,
// opponent 2 round 2); missing answers score as incorrect. Win/loss
// persistence stays with the update-team-stats endpoint.
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Answers []string `json:"answers"`
	}
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	prompter := services.NewQueuedAnswers(input.Answers...)
	if err := h.gameService.Play(r.Context(), prompter); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"status": "success",
		"result": "Game completed successfully",
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) GetOpponents(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"status":    "success",
		"opponents": h.gameService.Opponents(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) ClearOpponents(w http.ResponseWriter, r *http.Request) {
	h.gameService.ClearOpponents()

	response := jsonResponse{
		"status":  "success",
		"message": "Opponents cleared",
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

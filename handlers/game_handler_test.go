package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triviagame/models"
	"triviagame/services"
)

type stubGameService struct {
	prepFunc func(team *models.Team) error
	playFunc func(ctx context.Context, prompter services.AnswerPrompter) error

	opponents []*models.Team
	cleared   bool
}

func (s *stubGameService) PrepOpponent(team *models.Team) error {
	if s.prepFunc != nil {
		return s.prepFunc(team)
	}
	s.opponents = append(s.opponents, team)
	return nil
}

func (s *stubGameService) Opponents() []*models.Team { return s.opponents }

func (s *stubGameService) ClearOpponents() { s.cleared = true }

func (s *stubGameService) Rounds() int { return 0 }

func (s *stubGameService) Play(ctx context.Context, prompter services.AnswerPrompter) error {
	if s.playFunc != nil {
		return s.playFunc(ctx, prompter)
	}
	return nil
}

// stubTeamService only backs GetTeamByID; the game handler never touches the
// rest of the interface.
type stubTeamService struct {
	services.TeamService
	getByIDFunc func(ctx context.Context, id int) (*models.Team, error)
}

func (s *stubTeamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	return s.getByIDFunc(ctx, id)
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload
}

func TestAddOpponent(t *testing.T) {
	t.Run("adds the looked-up team", func(t *testing.T) {
		game := &stubGameService{}
		teams := &stubTeamService{getByIDFunc: func(ctx context.Context, id int) (*models.Team, error) {
			assert.Equal(t, 3, id)
			return &models.Team{ID: 3, Name: "Team A"}, nil
		}}
		handler := NewGameHandler(game, teams)

		req := httptest.NewRequest(http.MethodPost, "/api/add-opponent", strings.NewReader(`{"team_id": 3}`))
		rec := httptest.NewRecorder()
		handler.AddOpponent(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Team A", decodeBody(t, rec.Body)["team"])
		require.Len(t, game.opponents, 1)
	})

	t.Run("missing team id", func(t *testing.T) {
		handler := NewGameHandler(&stubGameService{}, &stubTeamService{})

		req := httptest.NewRequest(http.MethodPost, "/api/add-opponent", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		handler.AddOpponent(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown team", func(t *testing.T) {
		teams := &stubTeamService{getByIDFunc: func(ctx context.Context, id int) (*models.Team, error) {
			return nil, services.ErrTeamNotFound
		}}
		handler := NewGameHandler(&stubGameService{}, teams)

		req := httptest.NewRequest(http.MethodPost, "/api/add-opponent", strings.NewReader(`{"team_id": 42}`))
		rec := httptest.NewRecorder()
		handler.AddOpponent(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("roster full", func(t *testing.T) {
		game := &stubGameService{prepFunc: func(team *models.Team) error {
			return services.ErrOpponentsFull
		}}
		teams := &stubTeamService{getByIDFunc: func(ctx context.Context, id int) (*models.Team, error) {
			return &models.Team{ID: 3, Name: "Team C"}, nil
		}}
		handler := NewGameHandler(game, teams)

		req := httptest.NewRequest(http.MethodPost, "/api/add-opponent", strings.NewReader(`{"team_id": 3}`))
		rec := httptest.NewRecorder()
		handler.AddOpponent(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStartGame(t *testing.T) {
	t.Run("answers from the body reach the prompter", func(t *testing.T) {
		var captured []string
		game := &stubGameService{playFunc: func(ctx context.Context, prompter services.AnswerPrompter) error {
			for i := 0; i < 3; i++ {
				answer, err := prompter.PromptAnswer(ctx, &models.Team{Name: "x"}, "q")
				require.NoError(t, err)
				captured = append(captured, answer)
			}
			return nil
		}}
		handler := NewGameHandler(game, &stubTeamService{})

		req := httptest.NewRequest(http.MethodPost, "/api/start-game", strings.NewReader(`{"answers": ["True", "False"]}`))
		rec := httptest.NewRecorder()
		handler.StartGame(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"True", "False", ""}, captured, "exhausted prompter yields empty answers")
	})

	t.Run("empty body plays with no answers", func(t *testing.T) {
		game := &stubGameService{}
		handler := NewGameHandler(game, &stubTeamService{})

		req := httptest.NewRequest(http.MethodPost, "/api/start-game", nil)
		rec := httptest.NewRecorder()
		handler.StartGame(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not enough opponents", func(t *testing.T) {
		game := &stubGameService{playFunc: func(ctx context.Context, prompter services.AnswerPrompter) error {
			return services.ErrTwoTeamsRequired
		}}
		handler := NewGameHandler(game, &stubTeamService{})

		req := httptest.NewRequest(http.MethodPost, "/api/start-game", nil)
		rec := httptest.NewRecorder()
		handler.StartGame(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("provider failure", func(t *testing.T) {
		game := &stubGameService{playFunc: func(ctx context.Context, prompter services.AnswerPrompter) error {
			return services.ErrTriviaUnavailable
		}}
		handler := NewGameHandler(game, &stubTeamService{})

		req := httptest.NewRequest(http.MethodPost, "/api/start-game", nil)
		rec := httptest.NewRecorder()
		handler.StartGame(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetOpponents(t *testing.T) {
	game := &stubGameService{opponents: []*models.Team{{ID: 1, Name: "Team A"}}}
	handler := NewGameHandler(game, &stubTeamService{})

	req := httptest.NewRequest(http.MethodGet, "/api/get-opponents", nil)
	rec := httptest.NewRecorder()
	handler.GetOpponents(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec.Body)
	opponents, ok := payload["opponents"].([]interface{})
	require.True(t, ok)
	assert.Len(t, opponents, 1)
}

func TestClearOpponents(t *testing.T) {
	game := &stubGameService{opponents: []*models.Team{{ID: 1, Name: "Team A"}}}
	handler := NewGameHandler(game, &stubTeamService{})

	req := httptest.NewRequest(http.MethodPost, "/api/clear-opponents", nil)
	rec := httptest.NewRecorder()
	handler.ClearOpponents(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, game.cleared)
}

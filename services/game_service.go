package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"triviagame/live"
	"triviagame/models"
	"triviagame/providers"
)

// TriviaProvider is the slice of the trivia API the game session depends on.
type TriviaProvider interface {
	RequestToken(ctx context.Context) (string, error)
	FetchCategories(ctx context.Context) ([]models.TriviaCategory, error)
	FetchQuestion(ctx context.Context, category int, questionType, token string) (*models.TriviaQuestion, error)
}

// AnswerPrompter supplies a team's answer to a question. Opponent 1 is
// always prompted before opponent 2.
type AnswerPrompter interface {
	PromptAnswer(ctx context.Context, team *models.Team, question string) (string, error)
}

// LiveBroadcaster pushes game events to spectators.
type LiveBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// GameService holds one in-memory match between two teams. It is not safe
// for concurrent use; callers serialize access (one session per in-flight
// match).
type GameService interface {
	PrepOpponent(team *models.Team) error
	Opponents() []*models.Team
	ClearOpponents()
	Rounds() int
	Play(ctx context.Context, prompter AnswerPrompter) error
}

type gameService struct {
	trivia TriviaProvider
	hub    LiveBroadcaster
	logger *slog.Logger

	opponents    []*models.Team
	rounds       int
	sessionToken string
}

// NewGameService builds a fresh session and requests a session token from
// the trivia provider. Token issuance is best-effort: on failure the session
// proceeds with an empty token and is merely less guarded against repeat
// questions.
func NewGameService(ctx context.Context, trivia TriviaProvider, hub LiveBroadcaster, logger *slog.Logger) GameService {
	s := &gameService{
		trivia: trivia,
		hub:    hub,
		logger: logger,
	}

	logger.Info("requesting trivia session token")
	token, err := trivia.RequestToken(ctx)
	if err != nil {
		logger.Error("failed to get session token", slog.Any("error", err))
	} else {
		s.sessionToken = token
	}
	return s
}

// PrepOpponent adds a team to the roster. At most two teams fit; a third
// attempt fails and leaves the roster unchanged.
func (s *gameService) PrepOpponent(team *models.Team) error {
	if len(s.opponents) >= 2 {
		s.logger.Error("attempted to add opponent but opponents list is full",
			slog.String("team", team.Name))
		return ErrOpponentsFull
	}

	s.logger.Info("adding opponent", slog.String("team", team.Name))
	s.opponents = append(s.opponents, team)

	s.logger.Info("current opponents", slog.Any("roster", s.rosterNames()))
	s.hub.BroadcastToRoom(live.GameRoom, live.Event{
		Type:    live.EventRosterUpdated,
		Payload: s.rosterNames(),
		RoomID:  live.GameRoom,
	})
	return nil
}

// Opponents returns a read-only view of the roster.
func (s *gameService) Opponents() []*models.Team {
	s.logger.Info("retrieving current list of opponents")
	opponents := make([]*models.Team, len(s.opponents))
	copy(opponents, s.opponents)
	return opponents
}

// ClearOpponents empties the roster so the session can host the next match.
func (s *gameService) ClearOpponents() {
	s.logger.Info("clearing the opponents list")
	s.opponents = s.opponents[:0]
	s.hub.BroadcastToRoom(live.GameRoom, live.Event{
		Type:   live.EventOpponentsCleared,
		RoomID: live.GameRoom,
	})
}

func (s *gameService) Rounds() int {
	return s.rounds
}

// Play runs one match: two rounds, one question per round drawn from each
// opponent's favorite category. Round 1 is true/false, round 2 is
// multiple-choice. Any provider failure aborts the whole match; no partial
// credit, no retry. Final win/loss persistence is the caller's job.
func (s *gameService) Play(ctx context.Context, prompter AnswerPrompter) error {
	if len(s.opponents) < 2 {
		s.logger.Error("not enough teams to start a game",
			slog.Int("opponents", len(s.opponents)))
		return ErrTwoTeamsRequired
	}

	opponent1 := s.opponents[0]
	opponent2 := s.opponents[1]

	categories := make([]int, 0, 2)
	for _, opponent := range []*models.Team{opponent1, opponent2} {
		if opponent.FavoriteCategory == nil {
			s.logger.Error("team has no favorite category", slog.String("team", opponent.Name))
			return fmt.Errorf("%w: team %q", ErrNoFavoriteCategory, opponent.Name)
		}
		categories = append(categories, *opponent.FavoriteCategory)
	}

	s.logger.Info("game started",
		slog.String("team_1", opponent1.Name),
		slog.String("team_2", opponent2.Name))

	for i, category := range categories {
		// Round 1 is true/false, round 2 is multiple-choice.
		questionType := providers.QuestionTypeBoolean
		if i == 1 {
			questionType = providers.QuestionTypeMultiple
		}
		s.logger.Info("fetching question",
			slog.Int("round", i+1),
			slog.Int("category", category),
			slog.String("type", questionType))

		question, err := s.trivia.FetchQuestion(ctx, category, questionType, s.sessionToken)
		if err != nil {
			s.logger.Error("error fetching trivia data", slog.Any("error", err))
			return fmt.Errorf("%w: %v", ErrTriviaUnavailable, err)
		}

		s.logger.Info("question", slog.String("team", opponent1.Name), slog.String("text", question.Question))
		answer1, err := prompter.PromptAnswer(ctx, opponent1, question.Question)
		if err != nil {
			return fmt.Errorf("failed to collect answer from %q: %w", opponent1.Name, err)
		}

		s.logger.Info("question", slog.String("team", opponent2.Name), slog.String("text", question.Question))
		answer2, err := prompter.PromptAnswer(ctx, opponent2, question.Question)
		if err != nil {
			return fmt.Errorf("failed to collect answer from %q: %w", opponent2.Name, err)
		}

		correct1 := answer1 == question.CorrectAnswer
		correct2 := answer2 == question.CorrectAnswer
		s.logger.Info("result", slog.String("team", opponent1.Name), slog.Bool("correct", correct1))
		s.logger.Info("result", slog.String("team", opponent2.Name), slog.Bool("correct", correct2))

		var roundWinner string
		switch {
		case correct1 && !correct2:
			opponent1.CurrentScore++
			roundWinner = opponent1.Name
			s.logger.Info("round winner", slog.String("team", opponent1.Name))
		case correct2 && !correct1:
			opponent2.CurrentScore++
			roundWinner = opponent2.Name
			s.logger.Info("round winner", slog.String("team", opponent2.Name))
		default:
			// Both right or both wrong: reward-for-tie, both score.
			opponent1.CurrentScore++
			opponent2.CurrentScore++
			outcome := "incorrect"
			if correct1 {
				outcome = "correct"
			}
			s.logger.Info("round tied",
				slog.String("team_1", opponent1.Name),
				slog.String("team_2", opponent2.Name),
				slog.String("both", outcome))
		}

		s.rounds++
		opponent1.GamesPlayed++
		opponent2.GamesPlayed++

		s.hub.BroadcastToRoom(live.GameRoom, live.Event{
			Type: live.EventRoundResult,
			Payload: map[string]interface{}{
				"round":    s.rounds,
				"question": question.Question,
				"winner":   roundWinner,
				"scores": map[string]int{
					opponent1.Name: opponent1.CurrentScore,
					opponent2.Name: opponent2.CurrentScore,
				},
			},
			RoomID: live.GameRoom,
		})

		s.displayScore(ctx)
	}

	return nil
}

// displayScore logs the running scores and the provider's current category
// list. The category fetch is informational only; its failure does not fail
// the match.
func (s *gameService) displayScore(ctx context.Context) {
	opponent1 := s.opponents[0]
	opponent2 := s.opponents[1]

	s.logger.Info("current score",
		slog.String("team", opponent1.Name),
		slog.Int("correct", opponent1.CurrentScore),
		slog.Int("questions", s.rounds))
	s.logger.Info("current score",
		slog.String("team", opponent2.Name),
		slog.Int("correct", opponent2.CurrentScore),
		slog.Int("questions", s.rounds))

	s.hub.BroadcastToRoom(live.GameRoom, live.Event{
		Type: live.EventScoreUpdated,
		Payload: map[string]int{
			opponent1.Name: opponent1.CurrentScore,
			opponent2.Name: opponent2.CurrentScore,
		},
		RoomID: live.GameRoom,
	})

	s.logger.Info("fetching trivia categories")
	categories, err := s.trivia.FetchCategories(ctx)
	if err != nil {
		s.logger.Error("failed to fetch trivia categories", slog.Any("error", err))
		return
	}
	if len(categories) == 0 {
		s.logger.Warn("no trivia categories available to log")
		return
	}

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, fmt.Sprintf("%s (ID: %d)", category.Name, category.ID))
	}
	s.logger.Info("available trivia categories", slog.String("categories", strings.Join(names, ", ")))
}

func (s *gameService) rosterNames() []string {
	names := make([]string, 0, len(s.opponents))
	for _, opponent := range s.opponents {
		names = append(names, opponent.Name)
	}
	return names
}

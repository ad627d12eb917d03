package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"triviagame/models"
	"triviagame/repositories"
	"triviagame/storage"
)

// MascotProvider supplies mascot image URLs. Implementations never fail:
// they fall back to a default image instead.
type MascotProvider interface {
	RandomImage(ctx context.Context) string
}

type CreateTeamInput struct {
	Name             string `json:"team"`
	FavoriteCategory *int   `json:"favorite_category,omitempty"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	GetTeamByName(ctx context.Context, name string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	UpdateStats(ctx context.Context, id int, result string) error
	SetFavoriteCategory(ctx context.Context, id int, categoryID int) error
	UploadMascot(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error)
	Categories(ctx context.Context) ([]models.TriviaCategory, error)
	RandomMascot(ctx context.Context) string
}

type teamService struct {
	teamRepo repositories.TeamRepository
	mascots  MascotProvider
	trivia   TriviaProvider
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	mascots MascotProvider,
	trivia TriviaProvider,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		mascots:  mascots,
		trivia:   trivia,
		uploader: uploader,
		logger:   logger,
	}
}

// CreateTeam persists a new team. The mascot is fetched from the image
// provider synchronously; on provider failure the fallback URL is used, so
// mascot fetch never fails the creation.
func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		Name:             input.Name,
		FavoriteCategory: input.FavoriteCategory,
		MascotURL:        s.mascots.RandomImage(ctx),
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team %q: %w", input.Name, err)
	}

	s.logger.Info("team created",
		slog.Int("team_id", team.ID),
		slog.String("team", team.Name),
		slog.String("mascot", team.MascotURL))
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTeamRepoError(err, "get team by id", id)
	}
	return team, nil
}

func (s *teamService) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	team, err := s.teamRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			s.logger.Info("team not found", slog.String("team", name))
			return nil, ErrTeamNotFound
		}
		if errors.Is(err, repositories.ErrTeamDeleted) {
			s.logger.Info("team has been deleted", slog.String("team", name))
			return nil, ErrTeamDeleted
		}
		return nil, fmt.Errorf("failed to get team %q: %w", name, err)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	if err := s.teamRepo.SoftDelete(ctx, id); err != nil {
		return s.mapTeamRepoError(err, "delete team", id)
	}
	s.logger.Info("team marked as deleted", slog.Int("team_id", id))
	return nil
}

// UpdateStats records a win or loss for the team. The result value is
// validated before the store is touched so an invalid result can be told
// apart from a deleted or missing team.
func (s *teamService) UpdateStats(ctx context.Context, id int, result string) error {
	if result != repositories.ResultWin && result != repositories.ResultLoss {
		s.logger.Warn("invalid game result",
			slog.Int("team_id", id), slog.String("result", result))
		return fmt.Errorf("%w, got %q", ErrInvalidResult, result)
	}

	if err := s.teamRepo.UpdateStats(ctx, id, result); err != nil {
		return s.mapTeamRepoError(err, "update team stats", id)
	}

	s.logger.Info("team stats updated",
		slog.Int("team_id", id), slog.String("result", result))
	return nil
}

// SetFavoriteCategory validates the category against the provider's live
// category list before persisting it.
func (s *teamService) SetFavoriteCategory(ctx context.Context, id int, categoryID int) error {
	categories, err := s.trivia.FetchCategories(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTriviaUnavailable, err)
	}

	valid := false
	for _, category := range categories {
		if category.ID == categoryID {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: %d", ErrInvalidCategory, categoryID)
	}

	if err := s.teamRepo.SetFavoriteCategory(ctx, id, categoryID); err != nil {
		return s.mapTeamRepoError(err, "set favorite category", id)
	}

	s.logger.Info("favorite category updated",
		slog.Int("team_id", id), slog.Int("category", categoryID))
	return nil
}

// UploadMascot stores a custom mascot image in object storage and repoints
// the team's mascot URL at it.
func (s *teamService) UploadMascot(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImage, contentType)
	}

	if _, err := s.GetTeamByID(ctx, id); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("mascots/team_%d%s", id, ext)
	uploadResult, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload mascot for team %d: %w", id, err)
	}

	if err := s.teamRepo.UpdateMascot(ctx, id, uploadResult.Location); err != nil {
		return nil, s.mapTeamRepoError(err, "update mascot", id)
	}

	s.logger.Info("mascot uploaded",
		slog.Int("team_id", id), slog.String("mascot", uploadResult.Location))
	return s.GetTeamByID(ctx, id)
}

func (s *teamService) Categories(ctx context.Context) ([]models.TriviaCategory, error) {
	categories, err := s.trivia.FetchCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTriviaUnavailable, err)
	}
	return categories, nil
}

func (s *teamService) RandomMascot(ctx context.Context) string {
	return s.mascots.RandomImage(ctx)
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (s *teamService) mapTeamRepoError(err error, op string, id int) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		s.logger.Info("team not found", slog.String("op", op), slog.Int("team_id", id))
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamDeleted):
		s.logger.Info("team has been deleted", slog.String("op", op), slog.Int("team_id", id))
		return ErrTeamDeleted
	case errors.Is(err, repositories.ErrInvalidResult):
		return ErrInvalidResult
	default:
		s.logger.Error("database error", slog.String("op", op), slog.Int("team_id", id), slog.Any("error", err))
		return fmt.Errorf("%s (team %d): %w", op, id, err)
	}
}

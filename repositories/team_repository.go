package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"triviagame/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamDeleted      = errors.New("team has been deleted")
	ErrTeamNameConflict = errors.New("team name conflict")
	ErrInvalidResult    = errors.New("invalid result value")
)

// Game results accepted by UpdateStats.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByName(ctx context.Context, name string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	SoftDelete(ctx context.Context, id int) error
	UpdateStats(ctx context.Context, id int, result string) error
	SetFavoriteCategory(ctx context.Context, id int, categoryID int) error
	UpdateMascot(ctx context.Context, id int, mascotURL string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (team_name, favorite_category, mascot_url)
		VALUES ($1, $2, $3)
		RETURNING id, deleted, current_score, games_played, total_score`

	var favorite sql.NullInt64
	if team.FavoriteCategory != nil {
		favorite = sql.NullInt64{Int64: int64(*team.FavoriteCategory), Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		team.Name,
		favorite,
		team.MascotURL,
	).Scan(&team.ID, &team.Deleted, &team.CurrentScore, &team.GamesPlayed, &team.TotalScore)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "teams_team_name_key" {
				return ErrTeamNameConflict
			}
		}
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, team_name, favorite_category, mascot_url, deleted, current_score, games_played, total_score
		FROM teams
		WHERE id = $1`
	return r.scanTeam(ctx, query, id)
}

func (r *postgresTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	query := `
		SELECT id, team_name, favorite_category, mascot_url, deleted, current_score, games_played, total_score
		FROM teams
		WHERE team_name = $1`
	return r.scanTeam(ctx, query, name)
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	query := `
		SELECT id, team_name, favorite_category, mascot_url, deleted, current_score, games_played, total_score
		FROM teams
		WHERE deleted = FALSE
		ORDER BY team_name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		var favorite sql.NullInt64
		scanErr := rows.Scan(
			&team.ID,
			&team.Name,
			&favorite,
			&team.MascotURL,
			&team.Deleted,
			&team.CurrentScore,
			&team.GamesPlayed,
			&team.TotalScore,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		if favorite.Valid {
			category := int(favorite.Int64)
			team.FavoriteCategory = &category
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) SoftDelete(ctx context.Context, id int) error {
	if err := r.checkActive(ctx, id); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `UPDATE teams SET deleted = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// UpdateStats records a finished game for the team: a win bumps both
// games_played and total_score, a loss bumps games_played only. The
// deleted/missing check runs before any mutating statement.
func (r *postgresTeamRepository) UpdateStats(ctx context.Context, id int, result string) error {
	if result != ResultWin && result != ResultLoss {
		return fmt.Errorf("%w: %q", ErrInvalidResult, result)
	}

	if err := r.checkActive(ctx, id); err != nil {
		return err
	}

	var query string
	if result == ResultWin {
		query = `UPDATE teams SET games_played = games_played + 1, total_score = total_score + 1 WHERE id = $1`
	} else {
		query = `UPDATE teams SET games_played = games_played + 1 WHERE id = $1`
	}

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(res)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) SetFavoriteCategory(ctx context.Context, id int, categoryID int) error {
	if err := r.checkActive(ctx, id); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET favorite_category = $1 WHERE id = $2`, categoryID, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) UpdateMascot(ctx context.Context, id int, mascotURL string) error {
	if err := r.checkActive(ctx, id); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET mascot_url = $1 WHERE id = $2`, mascotURL, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// checkActive verifies the team exists and is not soft-deleted.
func (r *postgresTeamRepository) checkActive(ctx context.Context, id int) error {
	var deleted bool
	err := r.db.QueryRowContext(ctx, `SELECT deleted FROM teams WHERE id = $1`, id).Scan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to check team state: %w", err)
	}
	if deleted {
		return ErrTeamDeleted
	}
	return nil
}

func (r *postgresTeamRepository) scanTeam(ctx context.Context, query string, args ...interface{}) (*models.Team, error) {
	team := &models.Team{}
	var favorite sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&team.ID,
		&team.Name,
		&favorite,
		&team.MascotURL,
		&team.Deleted,
		&team.CurrentScore,
		&team.GamesPlayed,
		&team.TotalScore,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	if team.Deleted {
		return nil, ErrTeamDeleted
	}
	if favorite.Valid {
		category := int(favorite.Int64)
		team.FavoriteCategory = &category
	}
	return team, nil
}

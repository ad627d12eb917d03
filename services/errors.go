package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	// Validation and business-rule errors.
	ErrValidationFailed   = errors.New("validation failed")
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidResult      = errors.New("invalid result: expected 'win' or 'loss'")
	ErrInvalidCategory    = errors.New("unknown trivia category")
	ErrUnsupportedImage   = errors.New("unsupported mascot image type")

	// Conflicts.
	ErrTeamNameConflict = errors.New("team name is already in use")
	ErrUsernameConflict = errors.New("username is already in use")

	// Not-found / state errors.
	ErrTeamNotFound = errors.New("team not found")
	ErrTeamDeleted  = errors.New("team has been deleted")
	ErrUserNotFound = errors.New("user not found")

	// Game session errors.
	ErrOpponentsFull      = errors.New("opponents list is full, cannot add more opponents")
	ErrTwoTeamsRequired   = errors.New("two teams must be in the game")
	ErrNoFavoriteCategory = errors.New("favorite category is not set")

	// Upstream provider failure (trivia questions, categories, token).
	ErrTriviaUnavailable = errors.New("error fetching trivia data")
)

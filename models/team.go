package models

// Team is a registered trivia participant. GamesPlayed and TotalScore
// accumulate across matches; CurrentScore is the running score of the match
// in progress.
type Team struct {
	ID               int    `json:"id" db:"id"`
	Name             string `json:"team_name" db:"team_name"`
	FavoriteCategory *int   `json:"favorite_category,omitempty" db:"favorite_category"`
	MascotURL        string `json:"mascot_url" db:"mascot_url"`
	Deleted          bool   `json:"-" db:"deleted"`
	CurrentScore     int    `json:"current_score" db:"current_score"`
	GamesPlayed      int    `json:"games_played" db:"games_played"`
	TotalScore       int    `json:"total_score" db:"total_score"`
}

package models

// TriviaCategory is one entry of the provider's category list.
type TriviaCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TriviaQuestion is a single question as returned by the trivia provider,
// with all HTML entities already decoded.
type TriviaQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

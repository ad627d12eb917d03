package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"triviagame/models"
)

const (
	DefaultTriviaBaseURL = "https://opentdb.com"

	// Question types understood by the trivia provider.
	QuestionTypeBoolean  = "boolean"
	QuestionTypeMultiple = "multiple"

	requestTimeout = 10 * time.Second
)

var (
	ErrTriviaRequestFailed = errors.New("trivia provider request failed")
	ErrNoQuestionAvailable = errors.New("no trivia questions available for the specified category")
)

// TriviaClient talks to an Open Trivia DB compatible API. All calls are
// blocking and bounded by the client timeout; there are no retries.
type TriviaClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewTriviaClient(baseURL string, logger *slog.Logger) *TriviaClient {
	if baseURL == "" {
		baseURL = DefaultTriviaBaseURL
	}
	return &TriviaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

type tokenResponse struct {
	ResponseCode int    `json:"response_code"`
	Token        string `json:"token"`
}

type categoriesResponse struct {
	TriviaCategories []models.TriviaCategory `json:"trivia_categories"`
}

type questionResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Category         string   `json:"category"`
		Type             string   `json:"type"`
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

// RequestToken asks the provider for a session token. The token guards
// against repeat questions within a session; callers may proceed without one.
func (c *TriviaClient) RequestToken(ctx context.Context) (string, error) {
	var payload tokenResponse
	if err := c.getJSON(ctx, c.baseURL+"/api_token.php?command=request", &payload); err != nil {
		return "", err
	}
	if payload.ResponseCode != 0 {
		return "", fmt.Errorf("%w: token endpoint returned code %d", ErrTriviaRequestFailed, payload.ResponseCode)
	}
	return payload.Token, nil
}

// FetchCategories returns the provider's full category list.
func (c *TriviaClient) FetchCategories(ctx context.Context) ([]models.TriviaCategory, error) {
	var payload categoriesResponse
	if err := c.getJSON(ctx, c.baseURL+"/api_category.php", &payload); err != nil {
		return nil, err
	}
	return payload.TriviaCategories, nil
}

// FetchQuestion retrieves exactly one question of the given category and
// type. The session token is included when non-empty. Question text and
// answers arrive HTML-entity-encoded and are decoded before return.
func (c *TriviaClient) FetchQuestion(ctx context.Context, category int, questionType string, token string) (*models.TriviaQuestion, error) {
	params := url.Values{}
	params.Set("amount", "1")
	params.Set("category", strconv.Itoa(category))
	params.Set("type", questionType)
	if token != "" {
		params.Set("token", token)
	}

	var payload questionResponse
	if err := c.getJSON(ctx, c.baseURL+"/api.php?"+params.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.ResponseCode != 0 || len(payload.Results) == 0 {
		return nil, fmt.Errorf("%w (category %d, code %d)", ErrNoQuestionAvailable, category, payload.ResponseCode)
	}

	result := payload.Results[0]
	question := &models.TriviaQuestion{
		Category:         html.UnescapeString(result.Category),
		Type:             result.Type,
		Question:         html.UnescapeString(result.Question),
		CorrectAnswer:    html.UnescapeString(result.CorrectAnswer),
		IncorrectAnswers: make([]string, 0, len(result.IncorrectAnswers)),
	}
	for _, incorrect := range result.IncorrectAnswers {
		question.IncorrectAnswers = append(question.IncorrectAnswers, html.UnescapeString(incorrect))
	}
	return question, nil
}

func (c *TriviaClient) getJSON(ctx context.Context, rawURL string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTriviaRequestFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("trivia provider request failed", slog.String("url", rawURL), slog.Any("error", err))
		return fmt.Errorf("%w: %v", ErrTriviaRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("trivia provider returned non-OK status",
			slog.String("url", rawURL), slog.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: unexpected status %d", ErrTriviaRequestFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrTriviaRequestFailed, err)
	}
	return nil
}

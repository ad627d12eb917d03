package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultDogBaseURL = "https://dog.ceo"

	// FallbackMascotURL is assigned when the image provider cannot be
	// reached. Mascot fetch failures never fail the caller.
	FallbackMascotURL = "https://images.dog.ceo/breeds/shiba/shiba-16.jpg"
)

// MascotClient fetches random dog images used as team mascots.
type MascotClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewMascotClient(baseURL string, logger *slog.Logger) *MascotClient {
	if baseURL == "" {
		baseURL = DefaultDogBaseURL
	}
	return &MascotClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type dogImageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// RandomImage returns a random dog image URL, degrading to
// FallbackMascotURL on any failure.
func (c *MascotClient) RandomImage(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/breeds/image/random", nil)
	if err != nil {
		c.logger.Error("error building dog image request", slog.Any("error", err))
		return FallbackMascotURL
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("error fetching dog image", slog.Any("error", err))
		return FallbackMascotURL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("dog image provider returned non-OK status", slog.Int("status", resp.StatusCode))
		return FallbackMascotURL
	}

	var payload dogImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Message == "" {
		c.logger.Error("error decoding dog image response", slog.Any("error", err))
		return FallbackMascotURL
	}
	return payload.Message
}

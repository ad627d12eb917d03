package providers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api_token.php", r.URL.Path)
			assert.Equal(t, "request", r.URL.Query().Get("command"))
			w.Write([]byte(`{"response_code": 0, "response_message": "Token Generated Successfully!", "token": "abc123"}`))
		}))
		defer server.Close()

		client := NewTriviaClient(server.URL, discardLogger())
		token, err := client.RequestToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)
	})

	t.Run("non-zero response code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response_code": 3, "token": ""}`))
		}))
		defer server.Close()

		client := NewTriviaClient(server.URL, discardLogger())
		_, err := client.RequestToken(context.Background())
		require.ErrorIs(t, err, ErrTriviaRequestFailed)
	})

	t.Run("provider down", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewTriviaClient(server.URL, discardLogger())
		_, err := client.RequestToken(context.Background())
		require.ErrorIs(t, err, ErrTriviaRequestFailed)
	})
}

func TestFetchCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api_category.php", r.URL.Path)
		w.Write([]byte(`{"trivia_categories": [{"id": 9, "name": "General Knowledge"}, {"id": 23, "name": "History"}]}`))
	}))
	defer server.Close()

	client := NewTriviaClient(server.URL, discardLogger())
	categories, err := client.FetchCategories(context.Background())
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, 9, categories[0].ID)
	assert.Equal(t, "History", categories[1].Name)
}

func TestFetchQuestion(t *testing.T) {
	t.Run("decodes HTML entities and forwards the token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api.php", r.URL.Path)
			query := r.URL.Query()
			assert.Equal(t, "1", query.Get("amount"))
			assert.Equal(t, "23", query.Get("category"))
			assert.Equal(t, "multiple", query.Get("type"))
			assert.Equal(t, "abc123", query.Get("token"))

			w.Write([]byte(`{
				"response_code": 0,
				"results": [{
					"category": "Entertainment: Video Games",
					"type": "multiple",
					"difficulty": "medium",
					"question": "What&#039;s the franchise&#039;s name? It&#039;s &quot;huge&quot;.",
					"correct_answer": "Rock &amp; Roll",
					"incorrect_answers": ["Jazz &amp; Blues", "Pop", "Folk"]
				}]
			}`))
		}))
		defer server.Close()

		client := NewTriviaClient(server.URL, discardLogger())
		question, err := client.FetchQuestion(context.Background(), 23, QuestionTypeMultiple, "abc123")
		require.NoError(t, err)

		assert.Equal(t, `What's the franchise's name? It's "huge".`, question.Question)
		assert.Equal(t, "Rock & Roll", question.CorrectAnswer)
		assert.Equal(t, []string{"Jazz & Blues", "Pop", "Folk"}, question.IncorrectAnswers)
		assert.Equal(t, "Entertainment: Video Games", question.Category)
	})

	t.Run("token omitted when empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hasToken := r.URL.Query()["token"]
			assert.False(t, hasToken, "no token parameter expected")
			w.Write([]byte(`{"response_code": 0, "results": [{"category": "c", "type": "boolean", "question": "q", "correct_answer": "True", "incorrect_answers": ["False"]}]}`))
		}))
		defer server.Close()

		client := NewTriviaClient(server.URL, discardLogger())
		_, err := client.FetchQuestion(context.Background(), 9, QuestionTypeBoolean, "")
		require.NoError(t, err)
	})

	t.Run("empty result set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response_code": 1, "results": []}`))
		}))
		defer server.Close()

		client := NewTriviaClient(server.URL, discardLogger())
		_, err := client.FetchQuestion(context.Background(), 9, QuestionTypeBoolean, "")
		require.ErrorIs(t, err, ErrNoQuestionAvailable)
	})

	t.Run("provider unreachable", func(t *testing.T) {
		server := httptest.NewServer(nil)
		server.Close()

		client := NewTriviaClient(server.URL, discardLogger())
		_, err := client.FetchQuestion(context.Background(), 9, QuestionTypeBoolean, "")
		require.ErrorIs(t, err, ErrTriviaRequestFailed)
	})
}

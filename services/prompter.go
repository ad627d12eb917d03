package services

import (
	"context"

	"triviagame/models"
)

// QueuedAnswers feeds pre-collected answers to the game loop in submission
// order. When the queue runs dry it hands out empty answers, which simply
// score as incorrect.
type QueuedAnswers struct {
	answers []string
	next    int
}

func NewQueuedAnswers(answers ...string) *QueuedAnswers {
	return &QueuedAnswers{answers: answers}
}

func (q *QueuedAnswers) PromptAnswer(_ context.Context, _ *models.Team, _ string) (string, error) {
	if q.next >= len(q.answers) {
		return "", nil
	}
	answer := q.answers[q.next]
	q.next++
	return answer, nil
}

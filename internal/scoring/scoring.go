// Package scoring grades submitted test answers against the authoritative
// question set. Correctness is strictly binary per question: no weighting,
// partial credit, or time limits.
package scoring

import (
	"github.com/codewithgaurave/testAppBackend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Grade counts answers whose selected option matches the question's correct
// option and returns the percentage score. An answer referencing an unknown
// question counts as wrong. Grade expects at least one answer; empty
// submissions are rejected before grading.
func Grade(answers []models.Answer, questions map[primitive.ObjectID]models.Question) (float64, int) {
	if len(answers) == 0 {
		return 0, 0
	}

	correct := 0
	for _, answer := range answers {
		question, ok := questions[answer.Question]
		if ok && question.CorrectOption == answer.SelectedOption {
			correct++
		}
	}

	score := float64(correct) / float64(len(answers)) * 100
	return score, correct
}

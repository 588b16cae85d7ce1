package scoring

import (
	"math"
	"testing"

	"github.com/codewithgaurave/testAppBackend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGradeSingleQuestion(t *testing.T) {
	qID := primitive.NewObjectID()
	questions := map[primitive.ObjectID]models.Question{
		qID: {
			ID:   qID,
			Text: "x",
			Options: []models.Option{
				{ID: "a", Text: "x"},
				{ID: "b", Text: "y"},
			},
			CorrectOption: "a",
		},
	}

	score, correct := Grade([]models.Answer{{Question: qID, SelectedOption: "a"}}, questions)
	if score != 100 || correct != 1 {
		t.Fatalf("correct answer: got score=%v correct=%d, want 100/1", score, correct)
	}

	score, correct = Grade([]models.Answer{{Question: qID, SelectedOption: "b"}}, questions)
	if score != 0 || correct != 0 {
		t.Fatalf("wrong answer: got score=%v correct=%d, want 0/0", score, correct)
	}
}

func TestGradeMixedAnswers(t *testing.T) {
	q1 := primitive.NewObjectID()
	q2 := primitive.NewObjectID()
	q3 := primitive.NewObjectID()
	questions := map[primitive.ObjectID]models.Question{
		q1: {ID: q1, CorrectOption: "a"},
		q2: {ID: q2, CorrectOption: "b"},
		q3: {ID: q3, CorrectOption: "c"},
	}

	answers := []models.Answer{
		{Question: q1, SelectedOption: "a"},
		{Question: q2, SelectedOption: "a"},
		{Question: q3, SelectedOption: "c"},
	}

	score, correct := Grade(answers, questions)
	if correct != 2 {
		t.Fatalf("got %d correct, want 2", correct)
	}
	want := 2.0 / 3.0 * 100
	if math.Abs(score-want) > 1e-9 {
		t.Fatalf("got score %v, want %v", score, want)
	}
}

func TestGradeUnknownQuestionCountsWrong(t *testing.T) {
	known := primitive.NewObjectID()
	questions := map[primitive.ObjectID]models.Question{
		known: {ID: known, CorrectOption: "a"},
	}

	answers := []models.Answer{
		{Question: known, SelectedOption: "a"},
		{Question: primitive.NewObjectID(), SelectedOption: "a"},
	}

	score, correct := Grade(answers, questions)
	if correct != 1 {
		t.Fatalf("got %d correct, want 1", correct)
	}
	if score != 50 {
		t.Fatalf("got score %v, want 50", score)
	}
}

func TestGradeScoreBounds(t *testing.T) {
	qID := primitive.NewObjectID()
	questions := map[primitive.ObjectID]models.Question{
		qID: {ID: qID, CorrectOption: "a"},
	}

	for _, selected := range []string{"a", "b", ""} {
		score, _ := Grade([]models.Answer{{Question: qID, SelectedOption: selected}}, questions)
		if score < 0 || score > 100 {
			t.Fatalf("score %v out of [0,100] for selected %q", score, selected)
		}
	}
}

func TestGradeEmptySubmission(t *testing.T) {
	score, correct := Grade(nil, nil)
	if score != 0 || correct != 0 {
		t.Fatalf("empty submission: got score=%v correct=%d, want 0/0", score, correct)
	}
}

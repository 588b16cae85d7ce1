package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Option struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

type Question struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Text          string             `bson:"text" json:"text"`
	Options       []Option           `bson:"options" json:"options"`
	CorrectOption string             `bson:"correctOption" json:"correctOption"`
	Subject       primitive.ObjectID `bson:"subject" json:"subject"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// QuestionInput is the request body for creating a question. Subject stays a
// hex string until it has been checked for well-formedness.
type QuestionInput struct {
	Text          string   `json:"text"`
	Options       []Option `json:"options"`
	CorrectOption string   `json:"correctOption"`
	Subject       string   `json:"subject"`
}

// Validate enforces the question invariants: non-empty text, a present and
// well-formed subject id, at least two options each carrying text, and a
// correctOption that names one of the options. Checks run in that order, so
// a bad subject is reported before any option problem.
func (in *QuestionInput) Validate() error {
	if in.Text == "" {
		return fmt.Errorf("Question text is required")
	}
	if in.Subject == "" {
		return fmt.Errorf("Subject is required")
	}
	if _, err := primitive.ObjectIDFromHex(in.Subject); err != nil {
		return fmt.Errorf("Invalid subject ID")
	}
	if len(in.Options) < 2 {
		return fmt.Errorf("At least two options are required")
	}
	for _, option := range in.Options {
		if option.Text == "" {
			return fmt.Errorf("Option %s text is required", option.ID)
		}
	}
	for _, option := range in.Options {
		if option.ID == in.CorrectOption {
			return nil
		}
	}
	return fmt.Errorf("Correct option must exist in options array")
}

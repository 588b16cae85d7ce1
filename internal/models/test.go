package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Answer struct {
	Question       primitive.ObjectID `bson:"question" json:"question"`
	SelectedOption string             `bson:"selectedOption" json:"selectedOption"`
}

// Test is one user's attempt at a subject. It is created empty and
// not-completed, and transitions exactly once to completed when answers are
// submitted and scored. Score is only meaningful once Completed is true.
type Test struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Subject   primitive.ObjectID `bson:"subject" json:"subject"`
	Answers   []Answer           `bson:"answers" json:"answers"`
	Score     float64            `bson:"score" json:"score"`
	Completed bool               `bson:"completed" json:"completed"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

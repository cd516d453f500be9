// Package exercise holds the reviewable study items and the lifecycle
// service that drives their scheduling.
package exercise

import (
	"time"

	"github.com/abhisek/mediq/internal/schedule"
)

// Difficulty is the user-assigned difficulty of an exercise.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is one multiple-choice question. Content is immutable; the ID is
// stable across edits so attempts stay correlated.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Exercise is a reviewable question set bound to a subject.
type Exercise struct {
	ID             string               `json:"id"`
	SubjectID      string               `json:"subject_id"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	Difficulty     Difficulty           `json:"difficulty"`
	Questions      []Question           `json:"questions"`
	CreatedAt      time.Time            `json:"created_at"`
	LastReviewedAt *time.Time           `json:"last_reviewed_at,omitempty"`
	Review         schedule.ReviewState `json:"review"`
	// ReviewCount is the total number of completed reviews.
	ReviewCount int `json:"review_count"`
	// SuccessRate is the cumulative average of per-attempt percentage scores.
	SuccessRate float64 `json:"success_rate"`
}

// Question returns the question with the given ID, or nil if it was removed
// by an edit.
func (e *Exercise) Question(id string) *Question {
	for i := range e.Questions {
		if e.Questions[i].ID == id {
			return &e.Questions[i]
		}
	}
	return nil
}

// AnswerRecord is the outcome of one question within an attempt.
type AnswerRecord struct {
	QuestionID     string `json:"question_id"`
	SelectedOption int    `json:"selected_option"`
	IsCorrect      bool   `json:"is_correct"`
	TimeSpentMs    int64  `json:"time_spent_ms"`
}

// Attempt is an immutable record of one completed quiz pass. The only
// sanctioned mutation is the answer merge performed by a mistake review.
type Attempt struct {
	ID           string         `json:"id"`
	ExerciseID   string         `json:"exercise_id"`
	CompletedAt  time.Time      `json:"completed_at"`
	Score        int            `json:"score"`
	TimeSpentSec int            `json:"time_spent_sec"`
	Answers      []AnswerRecord `json:"answers"`
}

// CorrectCount returns how many answers in the attempt are correct.
func (a *Attempt) CorrectCount() int {
	n := 0
	for _, r := range a.Answers {
		if r.IsCorrect {
			n++
		}
	}
	return n
}

// DueGroups partitions exercises by due status for display.
type DueGroups struct {
	Overdue  []Exercise
	DueToday []Exercise
	Upcoming []Exercise
}

// Partition splits exercises into overdue, due-today and upcoming groups,
// compared at whole-day granularity.
func Partition(exercises []Exercise, now time.Time) DueGroups {
	var g DueGroups
	for _, ex := range exercises {
		days := ex.Review.DaysUntilReview(now)
		switch {
		case days < 0:
			g.Overdue = append(g.Overdue, ex)
		case days == 0:
			g.DueToday = append(g.DueToday, ex)
		default:
			g.Upcoming = append(g.Upcoming, ex)
		}
	}
	return g
}

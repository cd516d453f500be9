package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/mediq/internal/exercise"
	"github.com/abhisek/mediq/internal/schedule"
)

// Document keys. Answer snapshots use one key per exercise.
const (
	keyExercises = "exercises"
	keyAttempts  = "attempts"
)

func answersKey(exerciseID string) string {
	return "answers/" + exerciseID
}

// ExerciseRepo implements exercise.Repo on top of the JSON key-value store.
// Loading is tolerant of older persisted shapes: absent keys mean empty
// collections and missing scheduling fields are back-filled with defaults
// instead of rejected.
type ExerciseRepo struct {
	store *Store
}

// NewExerciseRepo returns a repo backed by the given store.
func NewExerciseRepo(s *Store) *ExerciseRepo {
	return &ExerciseRepo{store: s}
}

// exerciseDoc is the persisted shape of an exercise. Timestamps are RFC3339
// strings; scheduling fields are optional for backward compatibility.
type exerciseDoc struct {
	ID             string                 `json:"id"`
	SubjectID      string                 `json:"subject_id"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description,omitempty"`
	Difficulty     string                 `json:"difficulty,omitempty"`
	Questions      []exercise.Question    `json:"questions"`
	CreatedAt      string                 `json:"created_at"`
	LastReviewedAt string                 `json:"last_reviewed_at,omitempty"`
	Interval       int                    `json:"interval,omitempty"`
	Repetitions    int                    `json:"repetitions,omitempty"`
	Easiness       float64                `json:"easiness_factor,omitempty"`
	NextReviewAt   string                 `json:"next_review_at,omitempty"`
	ReviewCount    int                    `json:"review_count,omitempty"`
	SuccessRate    float64                `json:"success_rate,omitempty"`
}

type attemptDoc struct {
	ID           string                  `json:"id"`
	ExerciseID   string                  `json:"exercise_id"`
	CompletedAt  string                  `json:"completed_at"`
	Score        int                     `json:"score"`
	TimeSpentSec int                     `json:"time_spent_sec,omitempty"`
	Answers      []exercise.AnswerRecord `json:"answers"`
}

func (r *ExerciseRepo) Exercises(ctx context.Context) ([]exercise.Exercise, error) {
	raw, ok, err := r.store.Get(ctx, keyExercises)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var docs []exerciseDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	out := make([]exercise.Exercise, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toExercise())
	}
	return out, nil
}

func (r *ExerciseRepo) SaveExercises(ctx context.Context, exercises []exercise.Exercise) error {
	docs := make([]exerciseDoc, 0, len(exercises))
	for _, ex := range exercises {
		docs = append(docs, toExerciseDoc(ex))
	}
	return r.store.Set(ctx, keyExercises, docs)
}

func (r *ExerciseRepo) Attempts(ctx context.Context) ([]exercise.Attempt, error) {
	raw, ok, err := r.store.Get(ctx, keyAttempts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var docs []attemptDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode attempts: %w", err)
	}
	out := make([]exercise.Attempt, 0, len(docs))
	for _, d := range docs {
		out = append(out, exercise.Attempt{
			ID:           d.ID,
			ExerciseID:   d.ExerciseID,
			CompletedAt:  parseTime(d.CompletedAt),
			Score:        d.Score,
			TimeSpentSec: d.TimeSpentSec,
			Answers:      d.Answers,
		})
	}
	return out, nil
}

func (r *ExerciseRepo) SaveAttempts(ctx context.Context, attempts []exercise.Attempt) error {
	docs := make([]attemptDoc, 0, len(attempts))
	for _, a := range attempts {
		docs = append(docs, attemptDoc{
			ID:           a.ID,
			ExerciseID:   a.ExerciseID,
			CompletedAt:  a.CompletedAt.Format(time.RFC3339),
			Score:        a.Score,
			TimeSpentSec: a.TimeSpentSec,
			Answers:      a.Answers,
		})
	}
	return r.store.Set(ctx, keyAttempts, docs)
}

func (r *ExerciseRepo) Answers(ctx context.Context, exerciseID string) ([]exercise.AnswerRecord, error) {
	raw, ok, err := r.store.Get(ctx, answersKey(exerciseID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var answers []exercise.AnswerRecord
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("decode answer snapshot: %w", err)
	}
	return answers, nil
}

func (r *ExerciseRepo) SaveAnswers(ctx context.Context, exerciseID string, answers []exercise.AnswerRecord) error {
	return r.store.Set(ctx, answersKey(exerciseID), answers)
}

func (r *ExerciseRepo) DeleteAnswers(ctx context.Context, exerciseID string) error {
	return r.store.Delete(ctx, answersKey(exerciseID))
}

func toExerciseDoc(ex exercise.Exercise) exerciseDoc {
	d := exerciseDoc{
		ID:           ex.ID,
		SubjectID:    ex.SubjectID,
		Title:        ex.Title,
		Description:  ex.Description,
		Difficulty:   string(ex.Difficulty),
		Questions:    ex.Questions,
		CreatedAt:    ex.CreatedAt.Format(time.RFC3339),
		Interval:     ex.Review.Interval,
		Repetitions:  ex.Review.Repetitions,
		Easiness:     ex.Review.Easiness,
		NextReviewAt: ex.Review.NextReviewAt.Format(time.RFC3339),
		ReviewCount:  ex.ReviewCount,
		SuccessRate:  ex.SuccessRate,
	}
	if ex.LastReviewedAt != nil {
		d.LastReviewedAt = ex.LastReviewedAt.Format(time.RFC3339)
	}
	return d
}

func (d exerciseDoc) toExercise() exercise.Exercise {
	createdAt := parseTime(d.CreatedAt)

	// Back-fill defaults for fields older persisted shapes may lack.
	interval := d.Interval
	if interval < 1 {
		interval = schedule.InitialInterval
	}
	repetitions := d.Repetitions
	if repetitions < 0 {
		repetitions = 0
	}
	easiness := d.Easiness
	if easiness < schedule.MinEasiness {
		easiness = schedule.InitialEasiness
	}
	nextReview := parseTime(d.NextReviewAt)
	if nextReview.IsZero() {
		nextReview = createdAt
	}

	ex := exercise.Exercise{
		ID:          d.ID,
		SubjectID:   d.SubjectID,
		Title:       d.Title,
		Description: d.Description,
		Difficulty:  exercise.Difficulty(d.Difficulty),
		Questions:   d.Questions,
		CreatedAt:   createdAt,
		Review: schedule.ReviewState{
			Interval:     interval,
			Repetitions:  repetitions,
			Easiness:     easiness,
			NextReviewAt: nextReview,
		},
		ReviewCount: d.ReviewCount,
		SuccessRate: d.SuccessRate,
	}
	if t := parseTime(d.LastReviewedAt); !t.IsZero() {
		ex.LastReviewedAt = &t
	}
	return ex
}

// parseTime parses an RFC3339 timestamp, returning the zero time for empty
// or malformed values so callers can back-fill.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

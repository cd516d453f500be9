package exercise

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mediq/internal/schedule"
)

// ErrNotFound indicates an operation referenced an exercise that no longer
// exists. The operation is abandoned and no persistence write occurs.
var ErrNotFound = errors.New("exercise not found")

// ErrInvalidInput aliases the scheduling sentinel so callers can match a
// single error across both packages.
var ErrInvalidInput = schedule.ErrInvalidInput

// Repo is the persistence collaborator. Collections are loaded and stored
// whole; the service never partially fetches.
type Repo interface {
	Exercises(ctx context.Context) ([]Exercise, error)
	SaveExercises(ctx context.Context, exercises []Exercise) error
	Attempts(ctx context.Context) ([]Attempt, error)
	SaveAttempts(ctx context.Context, attempts []Attempt) error
	// Answers is the raw-answer snapshot for one exercise, used by mistake
	// review. Returns nil when no snapshot exists.
	Answers(ctx context.Context, exerciseID string) ([]AnswerRecord, error)
	SaveAnswers(ctx context.Context, exerciseID string, answers []AnswerRecord) error
	DeleteAnswers(ctx context.Context, exerciseID string) error
}

// Mirror is the external calendar collaborator. Deleting an exercise must
// retract its mirrored due-date entry.
type Mirror interface {
	Retract(ctx context.Context, exerciseID string) error
}

// NopMirror is a Mirror that does nothing, for setups without calendar sync.
type NopMirror struct{}

func (NopMirror) Retract(context.Context, string) error { return nil }

// Service owns the exercise lifecycle: when the scheduler runs and how
// success-rate statistics are folded in.
type Service struct {
	repo   Repo
	mirror Mirror
}

// NewService creates a lifecycle service. A nil mirror disables calendar
// retraction.
func NewService(repo Repo, mirror Mirror) *Service {
	if mirror == nil {
		mirror = NopMirror{}
	}
	return &Service{repo: repo, mirror: mirror}
}

// CreateInput is the user-supplied content of a new exercise.
type CreateInput struct {
	SubjectID   string
	Title       string
	Description string
	Difficulty  Difficulty
	Questions   []Question
}

// Create adds a new exercise, due immediately.
func (s *Service) Create(ctx context.Context, in CreateInput, now time.Time) (Exercise, error) {
	if in.Title == "" {
		return Exercise{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(in.Questions) == 0 {
		return Exercise{}, fmt.Errorf("%w: exercise needs at least one question", ErrInvalidInput)
	}
	for i, q := range in.Questions {
		if len(q.Options) < 2 {
			return Exercise{}, fmt.Errorf("%w: question %d needs at least two options", ErrInvalidInput, i+1)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return Exercise{}, fmt.Errorf("%w: question %d correct answer index %d out of range", ErrInvalidInput, i+1, q.CorrectAnswer)
		}
	}
	if in.Difficulty == "" {
		in.Difficulty = DifficultyMedium
	}

	exercises, err := s.repo.Exercises(ctx)
	if err != nil {
		return Exercise{}, fmt.Errorf("load exercises: %w", err)
	}

	ex := Exercise{
		ID:          uuid.NewString(),
		SubjectID:   in.SubjectID,
		Title:       in.Title,
		Description: in.Description,
		Difficulty:  in.Difficulty,
		Questions:   make([]Question, len(in.Questions)),
		CreatedAt:   now,
		Review:      schedule.NewReviewState(now),
	}
	copy(ex.Questions, in.Questions)
	for i := range ex.Questions {
		if ex.Questions[i].ID == "" {
			ex.Questions[i].ID = uuid.NewString()
		}
	}

	exercises = append(exercises, ex)
	if err := s.repo.SaveExercises(ctx, exercises); err != nil {
		return Exercise{}, fmt.Errorf("save exercises: %w", err)
	}
	return ex, nil
}

// List returns all exercises.
func (s *Service) List(ctx context.Context) ([]Exercise, error) {
	return s.repo.Exercises(ctx)
}

// Get returns one exercise by ID.
func (s *Service) Get(ctx context.Context, id string) (Exercise, error) {
	exercises, err := s.repo.Exercises(ctx)
	if err != nil {
		return Exercise{}, fmt.Errorf("load exercises: %w", err)
	}
	if i := indexOf(exercises, id); i >= 0 {
		return exercises[i], nil
	}
	return Exercise{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// CompleteAttempt records a finished quiz pass: the attempt is appended to
// history and the exercise's success rate is folded in. Scheduling is
// deliberately deferred to AutoReschedule or ManualReschedule so the user
// can choose.
func (s *Service) CompleteAttempt(ctx context.Context, exerciseID string, answers []AnswerRecord, timeSpentSec int, now time.Time) (Attempt, error) {
	if len(answers) == 0 {
		return Attempt{}, fmt.Errorf("%w: attempt has no answers", ErrInvalidInput)
	}

	exercises, err := s.repo.Exercises(ctx)
	if err != nil {
		return Attempt{}, fmt.Errorf("load exercises: %w", err)
	}
	i := indexOf(exercises, exerciseID)
	if i < 0 {
		return Attempt{}, fmt.Errorf("%w: %s", ErrNotFound, exerciseID)
	}
	ex := &exercises[i]
	if len(ex.Questions) == 0 {
		return Attempt{}, fmt.Errorf("%w: exercise %s has no questions", ErrInvalidInput, exerciseID)
	}

	attempts, err := s.repo.Attempts(ctx)
	if err != nil {
		return Attempt{}, fmt.Errorf("load attempts: %w", err)
	}

	attempt := Attempt{
		ID:           uuid.NewString(),
		ExerciseID:   exerciseID,
		CompletedAt:  now,
		TimeSpentSec: timeSpentSec,
		Answers:      answers,
	}
	attempt.Score = attempt.CorrectCount()

	percentage := float64(attempt.Score) / float64(len(ex.Questions)) * 100
	foldSuccessRate(ex, percentage)

	attempts = append(attempts, attempt)
	if err := s.repo.SaveAttempts(ctx, attempts); err != nil {
		return Attempt{}, fmt.Errorf("save attempts: %w", err)
	}
	if err := s.repo.SaveAnswers(ctx, exerciseID, answers); err != nil {
		return Attempt{}, fmt.Errorf("save answer snapshot: %w", err)
	}
	if err := s.repo.SaveExercises(ctx, exercises); err != nil {
		return Attempt{}, fmt.Errorf("save exercises: %w", err)
	}
	return attempt, nil
}

// AutoReschedule grades the most recent attempt and advances the review
// state through the SM-2 scheduler.
func (s *Service) AutoReschedule(ctx context.Context, exerciseID string, now time.Time) (schedule.ReviewState, error) {
	exercises, err := s.repo.Exercises(ctx)
	if err != nil {
		return schedule.ReviewState{}, fmt.Errorf("load exercises: %w", err)
	}
	i := indexOf(exercises, exerciseID)
	if i < 0 {
		return schedule.ReviewState{}, fmt.Errorf("%w: %s", ErrNotFound, exerciseID)
	}
	ex := &exercises[i]

	attempt, err := s.latestAttempt(ctx, exerciseID)
	if err != nil {
		return schedule.ReviewState{}, err
	}

	quality, err := schedule.MapQuality(attempt.Score, len(ex.Questions))
	if err != nil {
		return schedule.ReviewState{}, err
	}
	next, err := schedule.Next(quality, ex.Review, now)
	if err != nil {
		return schedule.ReviewState{}, err
	}

	ex.Review = next
	ex.LastReviewedAt = &now
	if err := s.repo.SaveExercises(ctx, exercises); err != nil {
		return schedule.ReviewState{}, fmt.Errorf("save exercises: %w", err)
	}
	return next, nil
}

// ManualReschedule sets an explicit next review date. The adaptive state
// (interval, repetitions, easiness) is left untouched so a manual override
// does not perturb the algorithm.
func (s *Service) ManualReschedule(ctx context.Context, exerciseID string, date time.Time, now time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: reschedule date is required", ErrInvalidInput)
	}

	exercises, err := s.repo.Exercises(ctx)
	if err != nil {
		return fmt.Errorf("load exercises: %w", err)
	}
	i := indexOf(exercises, exerciseID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, exerciseID)
	}

	exercises[i].Review.NextReviewAt = date
	exercises[i].LastReviewedAt = &now
	if err := s.repo.SaveExercises(ctx, exercises); err != nil {
		return fmt.Errorf("save exercises: %w", err)
	}
	return nil
}

// CompleteMistakeReview merges corrected answers into the latest attempt by
// question ID, recomputes the score from the corrected full set and treats
// the result as a full review: the success rate is folded, the review count
// advances and the scheduler runs on the corrected score.
func (s *Service) CompleteMistakeReview(ctx context.Context, exerciseID string, corrections []AnswerRecord, now time.Time) (schedule.ReviewState, error) {
	if len(corrections) == 0 {
		return schedule.ReviewState{}, fmt.Errorf("%w: no corrected answers supplied", ErrInvalidInput)
	}

	exercises, err := s.repo.Exercises(ctx)
	if err != nil {
		return schedule.ReviewState{}, fmt.Errorf("load exercises: %w", err)
	}
	i := indexOf(exercises, exerciseID)
	if i < 0 {
		return schedule.ReviewState{}, fmt.Errorf("%w: %s", ErrNotFound, exerciseID)
	}
	ex := &exercises[i]
	if len(ex.Questions) == 0 {
		return schedule.ReviewState{}, fmt.Errorf("%w: exercise %s has no questions", ErrInvalidInput, exerciseID)
	}

	attempts, err := s.repo.Attempts(ctx)
	if err != nil {
		return schedule.ReviewState{}, fmt.Errorf("load attempts: %w", err)
	}
	ai := latestAttemptIndex(attempts, exerciseID)
	if ai < 0 {
		return schedule.ReviewState{}, fmt.Errorf("%w: no attempt recorded for exercise %s", ErrNotFound, exerciseID)
	}
	attempt := &attempts[ai]

	// Merge by question ID; records the correction does not cover stay as
	// they were. Corrections for unknown questions are dropped.
	attempt.Answers = mergeAnswers(attempt.Answers, corrections)
	attempt.Score = attempt.CorrectCount()

	percentage := float64(attempt.Score) / float64(len(ex.Questions)) * 100
	foldSuccessRate(ex, percentage)

	quality, err := schedule.MapQuality(attempt.Score, len(ex.Questions))
	if err != nil {
		return schedule.ReviewState{}, err
	}
	next, err := schedule.Next(quality, ex.Review, now)
	if err != nil {
		return schedule.ReviewState{}, err
	}
	ex.Review = next
	ex.LastReviewedAt = &now

	if err := s.repo.SaveAttempts(ctx, attempts); err != nil {
		return schedule.ReviewState{}, fmt.Errorf("save attempts: %w", err)
	}
	if err := s.repo.SaveAnswers(ctx, exerciseID, attempt.Answers); err != nil {
		return schedule.ReviewState{}, fmt.Errorf("save answer snapshot: %w", err)
	}
	if err := s.repo.SaveExercises(ctx, exercises); err != nil {
		return schedule.ReviewState{}, fmt.Errorf("save exercises: %w", err)
	}
	return next, nil
}

// Delete removes an exercise and cascades: its attempts and raw-answer
// snapshot are dropped, and the external calendar mirror entry is retracted.
func (s *Service) Delete(ctx context.Context, exerciseID string) error {
	exercises, err := s.repo.Exercises(ctx)
	if err != nil {
		return fmt.Errorf("load exercises: %w", err)
	}
	i := indexOf(exercises, exerciseID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, exerciseID)
	}
	exercises = append(exercises[:i], exercises[i+1:]...)

	attempts, err := s.repo.Attempts(ctx)
	if err != nil {
		return fmt.Errorf("load attempts: %w", err)
	}
	kept := attempts[:0]
	for _, a := range attempts {
		if a.ExerciseID != exerciseID {
			kept = append(kept, a)
		}
	}

	if err := s.repo.SaveExercises(ctx, exercises); err != nil {
		return fmt.Errorf("save exercises: %w", err)
	}
	if err := s.repo.SaveAttempts(ctx, kept); err != nil {
		return fmt.Errorf("save attempts: %w", err)
	}
	if err := s.repo.DeleteAnswers(ctx, exerciseID); err != nil {
		return fmt.Errorf("delete answer snapshot: %w", err)
	}
	if err := s.mirror.Retract(ctx, exerciseID); err != nil {
		return fmt.Errorf("retract calendar entry: %w", err)
	}
	return nil
}

// latestAttempt returns the most recent attempt for an exercise.
func (s *Service) latestAttempt(ctx context.Context, exerciseID string) (Attempt, error) {
	attempts, err := s.repo.Attempts(ctx)
	if err != nil {
		return Attempt{}, fmt.Errorf("load attempts: %w", err)
	}
	if i := latestAttemptIndex(attempts, exerciseID); i >= 0 {
		return attempts[i], nil
	}
	return Attempt{}, fmt.Errorf("%w: no attempt recorded for exercise %s", ErrNotFound, exerciseID)
}

// foldSuccessRate updates the cumulative average with a new percentage
// score. The fold uses the review count before it is incremented.
func foldSuccessRate(ex *Exercise, percentage float64) {
	ex.SuccessRate = (ex.SuccessRate*float64(ex.ReviewCount) + percentage) / float64(ex.ReviewCount+1)
	ex.ReviewCount++
}

func mergeAnswers(original, corrections []AnswerRecord) []AnswerRecord {
	merged := make([]AnswerRecord, len(original))
	copy(merged, original)
	for _, c := range corrections {
		for i := range merged {
			if merged[i].QuestionID == c.QuestionID {
				merged[i] = c
				break
			}
		}
	}
	return merged
}

func indexOf(exercises []Exercise, id string) int {
	for i := range exercises {
		if exercises[i].ID == id {
			return i
		}
	}
	return -1
}

func latestAttemptIndex(attempts []Attempt, exerciseID string) int {
	best := -1
	for i := range attempts {
		if attempts[i].ExerciseID != exerciseID {
			continue
		}
		if best < 0 || attempts[i].CompletedAt.After(attempts[best].CompletedAt) {
			best = i
		}
	}
	return best
}

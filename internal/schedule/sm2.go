// Package schedule implements the SM-2 spaced repetition policy used to
// decide when an exercise should be reviewed again.
package schedule

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Defaults assigned to a brand-new exercise.
const (
	InitialInterval = 1
	InitialEasiness = 2.5
)

// MinEasiness is the SM-2 floor for the easiness factor.
const MinEasiness = 1.3

// PassThreshold is the lowest quality grade that counts as a successful review.
const PassThreshold = 3

// MaxQuality is the highest quality grade.
const MaxQuality = 5

// ErrInvalidInput indicates an out-of-range argument or a malformed review
// state. It is always detected before any state is produced.
var ErrInvalidInput = errors.New("invalid input")

// ReviewState holds the spaced repetition state for a single exercise.
type ReviewState struct {
	// Interval is the number of days until the next review. Always >= 1.
	Interval int `json:"interval"`
	// Repetitions counts consecutive successful reviews. Reset to 0 on failure.
	Repetitions int `json:"repetitions"`
	// Easiness controls how fast the interval grows. Clamped to MinEasiness.
	Easiness float64 `json:"easiness_factor"`
	// NextReviewAt is when the exercise is next due.
	NextReviewAt time.Time `json:"next_review_at"`
}

// NewReviewState returns the state for a freshly created exercise:
// default easiness, due immediately.
func NewReviewState(now time.Time) ReviewState {
	return ReviewState{
		Interval:     InitialInterval,
		Repetitions:  0,
		Easiness:     InitialEasiness,
		NextReviewAt: now,
	}
}

// Validate reports whether the state satisfies the SM-2 invariants.
func (rs ReviewState) Validate() error {
	if rs.Interval < 1 {
		return fmt.Errorf("%w: interval %d, must be >= 1", ErrInvalidInput, rs.Interval)
	}
	if rs.Repetitions < 0 {
		return fmt.Errorf("%w: repetitions %d, must be >= 0", ErrInvalidInput, rs.Repetitions)
	}
	if rs.Easiness < MinEasiness {
		return fmt.Errorf("%w: easiness factor %.2f, must be >= %.1f", ErrInvalidInput, rs.Easiness, MinEasiness)
	}
	return nil
}

// IsDue returns true if the exercise is due at or before now, compared at
// whole-day granularity.
func (rs ReviewState) IsDue(now time.Time) bool {
	return !startOfDay(now).Before(startOfDay(rs.NextReviewAt))
}

// DaysUntilReview returns the number of whole days until the next review.
// Negative when overdue, 0 when due today. Rounding absorbs the 23h and
// 25h civil days around DST transitions.
func (rs ReviewState) DaysUntilReview(now time.Time) int {
	return int(math.Round(startOfDay(rs.NextReviewAt).Sub(startOfDay(now)).Hours() / 24))
}

// Next computes the review state that follows a graded review. It is pure:
// the result depends only on quality, prev and now.
func Next(quality int, prev ReviewState, now time.Time) (ReviewState, error) {
	if quality < 0 || quality > MaxQuality {
		return ReviewState{}, fmt.Errorf("%w: quality %d out of range 0..5", ErrInvalidInput, quality)
	}
	if err := prev.Validate(); err != nil {
		return ReviewState{}, err
	}

	next := prev
	if quality >= PassThreshold {
		switch {
		case prev.Repetitions == 0:
			next.Interval = 1
		case prev.Repetitions == 1:
			next.Interval = 6
		default:
			next.Interval = int(math.Round(float64(prev.Interval) * prev.Easiness))
		}
		next.Repetitions = prev.Repetitions + 1
	} else {
		next.Repetitions = 0
		next.Interval = 1
	}

	// The easiness update uses the previous factor and the raw quality in
	// both branches.
	q := float64(quality)
	ef := prev.Easiness + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ef < MinEasiness {
		ef = MinEasiness
	}
	next.Easiness = ef

	// Calendar-day addition keeps whole-day due dates stable across DST
	// shifts and month/year rollover.
	next.NextReviewAt = now.AddDate(0, 0, next.Interval)

	return next, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

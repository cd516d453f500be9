package schedule

import (
	"errors"
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNext_FirstSuccessfulReview(t *testing.T) {
	prev := ReviewState{Interval: 1, Repetitions: 0, Easiness: 2.5}

	got, err := Next(5, prev, testNow)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got.Interval != 1 {
		t.Errorf("Interval = %d, want 1", got.Interval)
	}
	if got.Repetitions != 1 {
		t.Errorf("Repetitions = %d, want 1", got.Repetitions)
	}
	if !almostEqual(got.Easiness, 2.6) {
		t.Errorf("Easiness = %v, want 2.6", got.Easiness)
	}
	wantDue := testNow.AddDate(0, 0, 1)
	if !got.NextReviewAt.Equal(wantDue) {
		t.Errorf("NextReviewAt = %v, want %v", got.NextReviewAt, wantDue)
	}
}

func TestNext_SecondSuccessfulReview(t *testing.T) {
	prev := ReviewState{Interval: 1, Repetitions: 1, Easiness: 2.6}

	got, err := Next(5, prev, testNow)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got.Interval != 6 {
		t.Errorf("Interval = %d, want 6", got.Interval)
	}
	if got.Repetitions != 2 {
		t.Errorf("Repetitions = %d, want 2", got.Repetitions)
	}
	if !almostEqual(got.Easiness, 2.7) {
		t.Errorf("Easiness = %v, want 2.7", got.Easiness)
	}
}

func TestNext_ThirdSuccessfulReview_MultipliesInterval(t *testing.T) {
	prev := ReviewState{Interval: 6, Repetitions: 2, Easiness: 2.7}

	got, err := Next(5, prev, testNow)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	// round(6 * 2.7) = 16
	if got.Interval != 16 {
		t.Errorf("Interval = %d, want 16", got.Interval)
	}
	if got.Repetitions != 3 {
		t.Errorf("Repetitions = %d, want 3", got.Repetitions)
	}
}

func TestNext_Failure_ResetsProgress(t *testing.T) {
	prev := ReviewState{Interval: 16, Repetitions: 3, Easiness: 2.7}

	got, err := Next(0, prev, testNow)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got.Interval != 1 {
		t.Errorf("Interval = %d, want 1", got.Interval)
	}
	if got.Repetitions != 0 {
		t.Errorf("Repetitions = %d, want 0", got.Repetitions)
	}
	// 2.7 + (0.1 - 5*(0.08 + 5*0.02)) = 1.9, floor not hit.
	if !almostEqual(got.Easiness, 1.9) {
		t.Errorf("Easiness = %v, want 1.9", got.Easiness)
	}
}

func TestNext_AnyFailingQuality_ResetsRegardlessOfPrevious(t *testing.T) {
	states := []ReviewState{
		{Interval: 1, Repetitions: 0, Easiness: 2.5},
		{Interval: 6, Repetitions: 1, Easiness: 1.3},
		{Interval: 120, Repetitions: 9, Easiness: 3.1},
	}
	for _, prev := range states {
		for quality := 0; quality < PassThreshold; quality++ {
			got, err := Next(quality, prev, testNow)
			if err != nil {
				t.Fatalf("Next(%d, %+v): %v", quality, prev, err)
			}
			if got.Repetitions != 0 {
				t.Errorf("Next(%d, %+v).Repetitions = %d, want 0", quality, prev, got.Repetitions)
			}
			if got.Interval != 1 {
				t.Errorf("Next(%d, %+v).Interval = %d, want 1", quality, prev, got.Interval)
			}
		}
	}
}

func TestNext_EasinessNeverBelowFloor(t *testing.T) {
	prev := ReviewState{Interval: 1, Repetitions: 0, Easiness: MinEasiness}
	for quality := 0; quality <= MaxQuality; quality++ {
		got, err := Next(quality, prev, testNow)
		if err != nil {
			t.Fatalf("Next(%d): %v", quality, err)
		}
		if got.Easiness < MinEasiness {
			t.Errorf("Next(%d).Easiness = %v, below floor %v", quality, got.Easiness, MinEasiness)
		}
		prev = got
		prev.Interval = 1 // keep prev valid while hammering the floor
	}
}

func TestNext_FirstReviewIntervalIsOneForEveryQuality(t *testing.T) {
	// A brand-new exercise lands on interval 1 whether the first attempt
	// was perfect or a blackout; only repetitions and easiness differ.
	fresh := NewReviewState(testNow)
	for quality := 0; quality <= MaxQuality; quality++ {
		got, err := Next(quality, fresh, testNow)
		if err != nil {
			t.Fatalf("Next(%d): %v", quality, err)
		}
		if got.Interval != 1 {
			t.Errorf("Next(%d).Interval = %d, want 1", quality, got.Interval)
		}
	}
}

func TestNext_CalendarDayAddition_MonthRollover(t *testing.T) {
	prev := ReviewState{Interval: 1, Repetitions: 1, Easiness: 2.5}
	jan31 := time.Date(2025, 1, 31, 22, 0, 0, 0, time.UTC)

	got, err := Next(4, prev, jan31)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	want := time.Date(2025, 2, 6, 22, 0, 0, 0, time.UTC)
	if !got.NextReviewAt.Equal(want) {
		t.Errorf("NextReviewAt = %v, want %v", got.NextReviewAt, want)
	}
}

func TestNext_RejectsOutOfRangeQuality(t *testing.T) {
	prev := NewReviewState(testNow)
	for _, quality := range []int{-1, 6, 42} {
		if _, err := Next(quality, prev, testNow); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Next(%d) error = %v, want ErrInvalidInput", quality, err)
		}
	}
}

func TestNext_RejectsMalformedState(t *testing.T) {
	tests := []struct {
		name string
		prev ReviewState
	}{
		{"zero interval", ReviewState{Interval: 0, Repetitions: 0, Easiness: 2.5}},
		{"negative repetitions", ReviewState{Interval: 1, Repetitions: -1, Easiness: 2.5}},
		{"easiness below floor", ReviewState{Interval: 1, Repetitions: 0, Easiness: 1.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Next(4, tt.prev, testNow); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestNext_IsDeterministic(t *testing.T) {
	prev := ReviewState{Interval: 6, Repetitions: 2, Easiness: 2.2}
	a, err := Next(3, prev, testNow)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	b, err := Next(3, prev, testNow)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if a != b {
		t.Errorf("Next not deterministic: %+v vs %+v", a, b)
	}
}

func TestIsDue_WholeDayGranularity(t *testing.T) {
	rs := ReviewState{
		Interval:     1,
		Easiness:     2.5,
		NextReviewAt: time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC),
	}

	earlySameDay := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	if !rs.IsDue(earlySameDay) {
		t.Error("expected due earlier on the same calendar day")
	}
	dayBefore := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)
	if rs.IsDue(dayBefore) {
		t.Error("expected not due the day before")
	}
}

func TestDaysUntilReview(t *testing.T) {
	rs := ReviewState{
		Interval:     3,
		Easiness:     2.5,
		NextReviewAt: time.Date(2025, 3, 13, 8, 0, 0, 0, time.UTC),
	}

	now := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	if got := rs.DaysUntilReview(now); got != 3 {
		t.Errorf("DaysUntilReview = %d, want 3", got)
	}
	overdue := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	if got := rs.DaysUntilReview(overdue); got != -2 {
		t.Errorf("DaysUntilReview (overdue) = %d, want -2", got)
	}
}

func TestDaysUntilReview_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("load location: %v", err)
	}

	// Spring forward: 2025-03-09 is a 23-hour day, so the span between the
	// two midnights is under 24h. Still exactly one calendar day away, and
	// DaysUntilReview must agree with IsDue.
	rs := ReviewState{
		Interval:     1,
		Easiness:     2.5,
		NextReviewAt: time.Date(2025, 3, 10, 8, 0, 0, 0, loc),
	}
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, loc)
	if got := rs.DaysUntilReview(now); got != 1 {
		t.Errorf("DaysUntilReview = %d, want 1", got)
	}
	if rs.IsDue(now) {
		t.Error("expected not due the day before")
	}

	// Fall back: 2025-11-02 is a 25-hour day.
	rs.NextReviewAt = time.Date(2025, 11, 3, 8, 0, 0, 0, loc)
	now = time.Date(2025, 11, 2, 12, 0, 0, 0, loc)
	if got := rs.DaysUntilReview(now); got != 1 {
		t.Errorf("DaysUntilReview (fall back) = %d, want 1", got)
	}
}

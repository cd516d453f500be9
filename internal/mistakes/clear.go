package mistakes

import (
	"fmt"

	"github.com/abhisek/mediq/internal/exercise"
)

// ErrUnknownScope indicates a clear request with a scope kind the engine
// does not recognize. Clearing must never silently no-op. Matches
// errors.Is against exercise.ErrInvalidInput.
var ErrUnknownScope = fmt.Errorf("%w: unknown clear scope", exercise.ErrInvalidInput)

// ScopeKind selects what a Clear call removes.
type ScopeKind string

const (
	// ScopeAll drops every attempt.
	ScopeAll ScopeKind = "all"
	// ScopeSubject purges wrong answers for every exercise of one subject.
	ScopeSubject ScopeKind = "subject"
	// ScopeQuestion purges wrong answers for one question.
	ScopeQuestion ScopeKind = "question"
)

// Scope identifies a clear target. TargetID is the subject or question ID;
// unused for ScopeAll.
type Scope struct {
	Kind     ScopeKind
	TargetID string
}

// Clear removes mistake records from the attempt history according to scope
// and returns the surviving attempts. This mutates history, not a derived
// view: it is destructive and irreversible, and callers are expected to
// confirm with the user first. Attempts left without any answer record are
// dropped entirely.
func Clear(exercises []exercise.Exercise, attempts []exercise.Attempt, scope Scope) ([]exercise.Attempt, error) {
	switch scope.Kind {
	case ScopeAll:
		return nil, nil

	case ScopeSubject:
		subjectOf := make(map[string]string, len(exercises))
		for _, ex := range exercises {
			subjectOf[ex.ID] = ex.SubjectID
		}
		return filterAttempts(attempts, func(a exercise.Attempt, r exercise.AnswerRecord) bool {
			if subjectOf[a.ExerciseID] != scope.TargetID {
				return true
			}
			return r.IsCorrect
		}), nil

	case ScopeQuestion:
		return filterAttempts(attempts, func(_ exercise.Attempt, r exercise.AnswerRecord) bool {
			if r.QuestionID != scope.TargetID {
				return true
			}
			return r.IsCorrect
		}), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScope, scope.Kind)
	}
}

// filterAttempts keeps the answer records for which keep returns true,
// dropping attempts that end up empty.
func filterAttempts(attempts []exercise.Attempt, keep func(exercise.Attempt, exercise.AnswerRecord) bool) []exercise.Attempt {
	var out []exercise.Attempt
	for _, a := range attempts {
		var kept []exercise.AnswerRecord
		for _, r := range a.Answers {
			if keep(a, r) {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			continue
		}
		a.Answers = kept
		out = append(out, a)
	}
	return out
}

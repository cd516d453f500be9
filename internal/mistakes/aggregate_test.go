package mistakes

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/mediq/internal/exercise"
)

func fixtureExercises() []exercise.Exercise {
	return []exercise.Exercise{
		{
			ID:        "ex1",
			SubjectID: "s1",
			Title:     "Cardio basics",
			Questions: []exercise.Question{
				{ID: "q1", Text: "Stroke volume is?"},
				{ID: "q2", Text: "Preload depends on?"},
			},
		},
		{
			ID:        "ex2",
			SubjectID: "s2",
			Title:     "Renal physiology",
			Questions: []exercise.Question{
				{ID: "q3", Text: "GFR is regulated by?"},
			},
		},
	}
}

func attempt(id, exerciseID string, answers ...exercise.AnswerRecord) exercise.Attempt {
	return exercise.Attempt{
		ID:          id,
		ExerciseID:  exerciseID,
		CompletedAt: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		Answers:     answers,
	}
}

func wrong(questionID string) exercise.AnswerRecord {
	return exercise.AnswerRecord{QuestionID: questionID, IsCorrect: false}
}

func right(questionID string) exercise.AnswerRecord {
	return exercise.AnswerRecord{QuestionID: questionID, IsCorrect: true}
}

func countFor(entries []Entry, questionID string) int {
	for _, e := range entries {
		if e.QuestionID == questionID {
			return e.Count
		}
	}
	return 0
}

func TestAggregate_CountsAcrossAttempts(t *testing.T) {
	exs := fixtureExercises()
	attempts := []exercise.Attempt{
		attempt("a1", "ex1", wrong("q1"), right("q2")),
		attempt("a2", "ex1", wrong("q1"), wrong("q2")),
		attempt("a3", "ex2", wrong("q3")),
	}

	entries := Aggregate(exs, attempts)

	if got := countFor(entries, "q1"); got != 2 {
		t.Errorf("q1 count = %d, want 2", got)
	}
	if got := countFor(entries, "q2"); got != 1 {
		t.Errorf("q2 count = %d, want 1", got)
	}
	if got := countFor(entries, "q3"); got != 1 {
		t.Errorf("q3 count = %d, want 1", got)
	}

	for _, e := range entries {
		if e.QuestionID == "q1" {
			if e.SubjectID != "s1" || e.ExerciseTitle != "Cardio basics" {
				t.Errorf("q1 grouping = (%s, %s), want (s1, Cardio basics)", e.SubjectID, e.ExerciseTitle)
			}
		}
	}
}

func TestAggregate_SkipsOrphans(t *testing.T) {
	exs := fixtureExercises()
	attempts := []exercise.Attempt{
		attempt("a1", "deleted-ex", wrong("q1")),    // exercise gone
		attempt("a2", "ex1", wrong("removed-q")),    // question edited away
		attempt("a3", "ex1", wrong("q2")),
	}

	entries := Aggregate(exs, attempts)

	if len(entries) != 1 || entries[0].QuestionID != "q2" {
		t.Errorf("entries = %+v, want only q2", entries)
	}
}

func TestAggregate_IsIdempotent(t *testing.T) {
	exs := fixtureExercises()
	attempts := []exercise.Attempt{
		attempt("a1", "ex1", wrong("q1"), wrong("q2")),
		attempt("a2", "ex2", wrong("q3")),
	}

	first := Aggregate(exs, attempts)
	second := Aggregate(exs, attempts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregate not idempotent:\n%+v\nvs\n%+v", first, second)
	}
}

func TestClear_All(t *testing.T) {
	exs := fixtureExercises()
	attempts := []exercise.Attempt{
		attempt("a1", "ex1", wrong("q1")),
		attempt("a2", "ex2", wrong("q3")),
	}

	got, err := Clear(exs, attempts, Scope{Kind: ScopeAll})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("attempts after clear-all = %d, want 0", len(got))
	}
}

func TestClear_BySubject(t *testing.T) {
	exs := fixtureExercises()
	attempts := []exercise.Attempt{
		attempt("a1", "ex1", wrong("q1"), right("q2")),
		attempt("a2", "ex1", wrong("q1")),
		attempt("a3", "ex2", wrong("q3")),
	}

	got, err := Clear(exs, attempts, Scope{Kind: ScopeSubject, TargetID: "s1"})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}

	// a1 keeps its correct record, a2 is dropped entirely, a3 untouched.
	if len(got) != 2 {
		t.Fatalf("attempts = %d, want 2", len(got))
	}
	entries := Aggregate(exs, got)
	if got := countFor(entries, "q1"); got != 0 {
		t.Errorf("q1 count after subject clear = %d, want 0", got)
	}
	if got := countFor(entries, "q3"); got != 1 {
		t.Errorf("q3 count = %d, want 1 (other subject untouched)", got)
	}
}

func TestClear_ByQuestion(t *testing.T) {
	exs := fixtureExercises()
	attempts := []exercise.Attempt{
		attempt("a1", "ex1", wrong("q1"), wrong("q2")),
		attempt("a2", "ex1", wrong("q1"), right("q1")), // correct record for q1 survives
		attempt("a3", "ex1", wrong("q1")),
	}

	got, err := Clear(exs, attempts, Scope{Kind: ScopeQuestion, TargetID: "q1"})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}

	entries := Aggregate(exs, got)
	if c := countFor(entries, "q1"); c != 0 {
		t.Errorf("q1 count = %d, want 0", c)
	}
	if c := countFor(entries, "q2"); c != 1 {
		t.Errorf("q2 count = %d, want 1 (other questions unchanged)", c)
	}

	// a2 must survive with only its correct record; a3 is gone.
	found := false
	for _, a := range got {
		if a.ID == "a3" {
			t.Error("attempt a3 should have been dropped (left empty)")
		}
		if a.ID == "a2" {
			found = true
			if len(a.Answers) != 1 || !a.Answers[0].IsCorrect {
				t.Errorf("a2 answers = %+v, want the single correct record", a.Answers)
			}
		}
	}
	if !found {
		t.Error("attempt a2 missing")
	}
}

func TestClear_UnknownScope(t *testing.T) {
	_, err := Clear(nil, nil, Scope{Kind: "everything"})
	if !errors.Is(err, ErrUnknownScope) {
		t.Errorf("error = %v, want ErrUnknownScope", err)
	}
	if !errors.Is(err, exercise.ErrInvalidInput) {
		t.Errorf("error = %v, want to match ErrInvalidInput", err)
	}
}

func TestSortByCount(t *testing.T) {
	entries := []Entry{
		{QuestionID: "b", Count: 1},
		{QuestionID: "a", Count: 3},
		{QuestionID: "c", Count: 1},
	}
	SortByCount(entries)
	if entries[0].QuestionID != "a" || entries[1].QuestionID != "b" || entries[2].QuestionID != "c" {
		t.Errorf("order = %v, want a, b, c", []string{entries[0].QuestionID, entries[1].QuestionID, entries[2].QuestionID})
	}
}

func TestScenario_TwoWrongAttemptsThenSubjectClear(t *testing.T) {
	exs := fixtureExercises()
	attempts := []exercise.Attempt{
		attempt("a1", "ex1", wrong("q1")),
		attempt("a2", "ex1", wrong("q1")),
	}

	entries := Aggregate(exs, attempts)
	if got := countFor(entries, "q1"); got != 2 {
		t.Fatalf("q1 count = %d, want 2", got)
	}

	cleared, err := Clear(exs, attempts, Scope{Kind: ScopeSubject, TargetID: "s1"})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries = Aggregate(exs, cleared)
	if got := countFor(entries, "q1"); got != 0 {
		t.Errorf("q1 count after clear = %d, want 0", got)
	}
}

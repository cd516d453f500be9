// Package mistakes derives a per-question error ledger from the history of
// quiz attempts.
package mistakes

import (
	"sort"

	"github.com/abhisek/mediq/internal/exercise"
)

// Entry is the aggregated error count for one question, carrying the owning
// exercise and subject for display grouping. Entries are derived on demand;
// the attempt history remains the source of truth.
type Entry struct {
	QuestionID    string
	QuestionText  string
	SubjectID     string
	ExerciseID    string
	ExerciseTitle string
	Count         int
}

// Aggregate tallies wrong answers per question across all attempts. Attempts
// whose exercise was deleted and answers whose question was removed by an
// edit are skipped: history is expected to outlive edits and deletions.
func Aggregate(exercises []exercise.Exercise, attempts []exercise.Attempt) []Entry {
	byID := make(map[string]*exercise.Exercise, len(exercises))
	for i := range exercises {
		byID[exercises[i].ID] = &exercises[i]
	}

	counts := make(map[string]*Entry)
	var order []string
	for _, attempt := range attempts {
		ex, ok := byID[attempt.ExerciseID]
		if !ok {
			continue
		}
		for _, answer := range attempt.Answers {
			if answer.IsCorrect {
				continue
			}
			q := ex.Question(answer.QuestionID)
			if q == nil {
				continue
			}
			if e, ok := counts[q.ID]; ok {
				e.Count++
				continue
			}
			counts[q.ID] = &Entry{
				QuestionID:    q.ID,
				QuestionText:  q.Text,
				SubjectID:     ex.SubjectID,
				ExerciseID:    ex.ID,
				ExerciseTitle: ex.Title,
				Count:         1,
			}
			order = append(order, q.ID)
		}
	}

	entries := make([]Entry, 0, len(order))
	for _, id := range order {
		entries = append(entries, *counts[id])
	}
	return entries
}

// SortByCount orders entries by mistake count descending, question ID as a
// tiebreaker. Presentation concern; the aggregation itself is unordered.
func SortByCount(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].QuestionID < entries[j].QuestionID
	})
}

// SortBySubject orders entries by subject, then count descending.
func SortBySubject(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SubjectID != entries[j].SubjectID {
			return entries[i].SubjectID < entries[j].SubjectID
		}
		return entries[i].Count > entries[j].Count
	})
}

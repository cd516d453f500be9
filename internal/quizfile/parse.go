package quizfile

import (
	"fmt"

	"github.com/abhisek/mediq/internal/exercise"
)

type exerciseFile struct {
	SubjectID   string         `json:"subject_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Difficulty  string         `json:"difficulty"`
	Questions   []questionFile `json:"questions"`
}

type questionFile struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type answersFile struct {
	TimeSpentSec int          `json:"time_spent_sec"`
	Answers      []answerFile `json:"answers"`
}

type answerFile struct {
	Question       int   `json:"question"` // 1-based
	SelectedOption int   `json:"selected_option"`
	TimeSpentMs    int64 `json:"time_spent_ms"`
}

// ParseExercise validates an exercise file and converts it to a create
// request. Question IDs are assigned later by the lifecycle service.
func ParseExercise(raw []byte) (exercise.CreateInput, error) {
	var f exerciseFile
	if err := validate(exerciseSchema, raw, &f); err != nil {
		return exercise.CreateInput{}, err
	}

	in := exercise.CreateInput{
		SubjectID:   f.SubjectID,
		Title:       f.Title,
		Description: f.Description,
		Difficulty:  exercise.Difficulty(f.Difficulty),
	}
	for i, q := range f.Questions {
		if q.CorrectAnswer >= len(q.Options) {
			return exercise.CreateInput{}, &ErrInvalidFile{
				File: exerciseSchema.name,
				Err:  fmt.Errorf("question %d: correct answer index %d out of range (%d options)", i+1, q.CorrectAnswer, len(q.Options)),
			}
		}
		in.Questions = append(in.Questions, exercise.Question{
			Text:          q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return in, nil
}

// ParseAnswers validates an answers file against an exercise and converts
// it to answer records, grading each selection against the question's
// correct answer. Questions are referenced by 1-based position.
func ParseAnswers(raw []byte, ex exercise.Exercise) ([]exercise.AnswerRecord, int, error) {
	var f answersFile
	if err := validate(answersSchema, raw, &f); err != nil {
		return nil, 0, err
	}

	seen := make(map[int]bool, len(f.Answers))
	records := make([]exercise.AnswerRecord, 0, len(f.Answers))
	for _, a := range f.Answers {
		if a.Question > len(ex.Questions) {
			return nil, 0, &ErrInvalidFile{
				File: answersSchema.name,
				Err:  fmt.Errorf("question %d does not exist (exercise has %d)", a.Question, len(ex.Questions)),
			}
		}
		if seen[a.Question] {
			return nil, 0, &ErrInvalidFile{
				File: answersSchema.name,
				Err:  fmt.Errorf("question %d answered twice", a.Question),
			}
		}
		seen[a.Question] = true

		q := ex.Questions[a.Question-1]
		if a.SelectedOption >= len(q.Options) {
			return nil, 0, &ErrInvalidFile{
				File: answersSchema.name,
				Err:  fmt.Errorf("question %d: option %d out of range (%d options)", a.Question, a.SelectedOption, len(q.Options)),
			}
		}
		records = append(records, exercise.AnswerRecord{
			QuestionID:     q.ID,
			SelectedOption: a.SelectedOption,
			IsCorrect:      a.SelectedOption == q.CorrectAnswer,
			TimeSpentMs:    a.TimeSpentMs,
		})
	}
	return records, f.TimeSpentSec, nil
}

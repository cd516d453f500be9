package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mediq/internal/exercise"
	"github.com/abhisek/mediq/internal/quizfile"
	"github.com/abhisek/mediq/internal/store"
	"github.com/abhisek/mediq/internal/ui/theme"
)

var reviewCmd = &cobra.Command{
	Use:   "review <exercise> [corrections.json]",
	Short: "Review the questions answered wrong in the last attempt",
	Long: `Without a corrections file, lists the questions answered wrong in the
most recent attempt. With one, merges the corrected answers into that
attempt, recomputes the score and schedules the next review from it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, svc, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		exercises, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		ex, err := findExercise(exercises, args[0])
		if err != nil {
			return err
		}

		if len(args) == 1 {
			return printPendingMistakes(cmd, st, ex)
		}

		raw, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read corrections file: %w", err)
		}
		corrections, _, err := quizfile.ParseAnswers(raw, ex)
		if err != nil {
			return err
		}

		next, err := svc.CompleteMistakeReview(cmd.Context(), ex.ID, corrections, time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("Mistake review recorded for %q. Next review %s (interval %dd).\n",
			ex.Title, next.NextReviewAt.Format("2006-01-02"), next.Interval)
		return nil
	},
}

// printPendingMistakes shows the wrong answers from the latest snapshot so
// the user knows which questions a corrections file should cover.
func printPendingMistakes(cmd *cobra.Command, st *store.Store, ex exercise.Exercise) error {
	repo := store.NewExerciseRepo(st)
	answers, err := repo.Answers(cmd.Context(), ex.ID)
	if err != nil {
		return err
	}
	if len(answers) == 0 {
		fmt.Println("No recorded attempt for this exercise yet.")
		return nil
	}

	wrong := 0
	for _, a := range answers {
		if a.IsCorrect {
			continue
		}
		wrong++
		if q := ex.Question(a.QuestionID); q != nil {
			num := questionNumber(ex, a.QuestionID)
			fmt.Printf("  %d. %s\n", num, q.Text)
			fmt.Println(theme.Dim.Render(fmt.Sprintf("     answered: %s", option(q, a.SelectedOption))))
		}
	}
	if wrong == 0 {
		fmt.Println(theme.Good.Render("No mistakes in the last attempt. Nothing to review!"))
		return nil
	}
	fmt.Printf("\n%d question(s) to correct. Submit with: mediq review %s <corrections.json>\n",
		wrong, shortID(ex.ID))
	return nil
}

func questionNumber(ex exercise.Exercise, questionID string) int {
	for i, q := range ex.Questions {
		if q.ID == questionID {
			return i + 1
		}
	}
	return 0
}

func option(q *exercise.Question, idx int) string {
	if idx >= 0 && idx < len(q.Options) {
		return q.Options[idx]
	}
	return fmt.Sprintf("option %d", idx)
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mediq/internal/quizfile"
	"github.com/abhisek/mediq/internal/ui/theme"
)

var completeCmd = &cobra.Command{
	Use:   "complete <exercise> <answers.json>",
	Short: "Record a completed quiz attempt",
	Long: `Record a completed quiz pass from an answers file. The attempt is added
to history and the exercise's success rate is updated, but the next review
date is not moved: follow up with "mediq reschedule" to pick an automatic
or manual date.`,
	Args: cobra.ExactArgs(2),
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

		raw, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read answers file: %w", err)
		}
		answers, timeSpent, err := quizfile.ParseAnswers(raw, ex)
		if err != nil {
			return err
		}

		attempt, err := svc.CompleteAttempt(cmd.Context(), ex.ID, answers, timeSpent, time.Now())
		if err != nil {
			return err
		}

		pct := float64(attempt.Score) / float64(len(ex.Questions)) * 100
		fmt.Printf("Recorded attempt for %q: %d/%d correct (%.0f%%).\n",
			ex.Title, attempt.Score, len(ex.Questions), pct)
		fmt.Println(theme.Dim.Render(fmt.Sprintf(
			"Schedule the next review with: mediq reschedule %s [--date YYYY-MM-DD]", shortID(ex.ID))))
		return nil
	},
}

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mediq/internal/ui/theme"
)

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule <exercise>",
	Short: "Schedule the next review",
	Long: `Schedule an exercise's next review. By default the date is computed by
the SM-2 algorithm from the most recent attempt. With --date the review is
pinned to an explicit day without touching the adaptive scheduling state.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateStr, _ := cmd.Flags().GetString("date")

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

		now := time.Now()
		if dateStr != "" {
			date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
			if err != nil {
				return fmt.Errorf("parse --date: %w", err)
			}
			if err := svc.ManualReschedule(cmd.Context(), ex.ID, date, now); err != nil {
				return err
			}
			fmt.Printf("%q pinned to %s.\n", ex.Title, date.Format("2006-01-02"))
			return nil
		}

		next, err := svc.AutoReschedule(cmd.Context(), ex.ID, now)
		if err != nil {
			return err
		}
		fmt.Printf("%q scheduled for %s (interval %dd, %d consecutive, EF %.2f).\n",
			ex.Title, next.NextReviewAt.Format("2006-01-02"),
			next.Interval, next.Repetitions, next.Easiness)
		if next.Repetitions == 0 {
			fmt.Println(theme.Dim.Render("Progress reset — last score was below the pass threshold."))
		}
		return nil
	},
}

func init() {
	rescheduleCmd.Flags().String("date", "", "Pin the next review to an explicit date (YYYY-MM-DD)")
}

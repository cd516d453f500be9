package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mediq/internal/exercise"
	"github.com/abhisek/mediq/internal/subject"
	"github.com/abhisek/mediq/internal/ui/theme"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all exercises",
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
		if len(exercises) == 0 {
			fmt.Println("No exercises yet. Create one with: mediq add <exercise.json>")
			return nil
		}

		now := time.Now()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSUBJECT\tTITLE\tQUESTIONS\tREVIEWS\tSUCCESS\tNEXT REVIEW")
		for _, ex := range exercises {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.0f%%\t%s\n",
				shortID(ex.ID),
				subject.Label(ex.SubjectID),
				ex.Title,
				len(ex.Questions),
				ex.ReviewCount,
				ex.SuccessRate,
				dueLabel(ex, now),
			)
		}
		return w.Flush()
	},
}

// dueLabel renders the next review date with a status color.
func dueLabel(ex exercise.Exercise, now time.Time) string {
	date := ex.Review.NextReviewAt.Format("2006-01-02")
	switch days := ex.Review.DaysUntilReview(now); {
	case days < 0:
		return theme.Overdue.Render(fmt.Sprintf("%s (%dd overdue)", date, -days))
	case days == 0:
		return theme.DueToday.Render(date + " (today)")
	default:
		return theme.Dim.Render(fmt.Sprintf("%s (in %dd)", date, days))
	}
}

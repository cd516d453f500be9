package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mediq/internal/exercise"
	"github.com/abhisek/mediq/internal/subject"
	"github.com/abhisek/mediq/internal/ui/theme"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show exercises due for review",
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

		now := time.Now()
		groups := exercise.Partition(exercises, now)

		if len(groups.Overdue) == 0 && len(groups.DueToday) == 0 {
			fmt.Println(theme.Good.Render("Nothing due today. Good job!"))
			if n := len(groups.Upcoming); n > 0 {
				fmt.Println(theme.Dim.Render(fmt.Sprintf("%d upcoming review(s); see mediq list.", n)))
			}
			return nil
		}

		if len(groups.Overdue) > 0 {
			fmt.Println(theme.Overdue.Render(fmt.Sprintf("Overdue (%d)", len(groups.Overdue))))
			printDueGroup(groups.Overdue, now)
		}
		if len(groups.DueToday) > 0 {
			fmt.Println(theme.DueToday.Render(fmt.Sprintf("Due today (%d)", len(groups.DueToday))))
			printDueGroup(groups.DueToday, now)
		}
		return nil
	},
}

func printDueGroup(exercises []exercise.Exercise, now time.Time) {
	for _, ex := range exercises {
		line := fmt.Sprintf("  %s  %s — %s", shortID(ex.ID), subject.Label(ex.SubjectID), ex.Title)
		if days := ex.Review.DaysUntilReview(now); days < 0 {
			line += theme.Dim.Render(fmt.Sprintf("  (%dd overdue)", -days))
		}
		fmt.Println(line)
	}
}

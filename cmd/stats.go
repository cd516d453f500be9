package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mediq/internal/exercise"
	"github.com/abhisek/mediq/internal/mistakes"
	"github.com/abhisek/mediq/internal/store"
	"github.com/abhisek/mediq/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, svc, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := store.NewExerciseRepo(st)
		exercises, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		attempts, err := repo.Attempts(cmd.Context())
		if err != nil {
			return err
		}

		now := time.Now()
		groups := exercise.Partition(exercises, now)

		totalReviews := 0
		rateSum := 0.0
		rated := 0
		for _, ex := range exercises {
			totalReviews += ex.ReviewCount
			if ex.ReviewCount > 0 {
				rateSum += ex.SuccessRate
				rated++
			}
		}

		wrong := 0
		for _, e := range mistakes.Aggregate(exercises, attempts) {
			wrong += e.Count
		}

		fmt.Println(theme.Title.Render("Study statistics"))
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Exercises\t%d\n", len(exercises))
		fmt.Fprintf(w, "Attempts\t%d\n", len(attempts))
		fmt.Fprintf(w, "Reviews\t%d\n", totalReviews)
		fmt.Fprintf(w, "Overdue\t%d\n", len(groups.Overdue))
		fmt.Fprintf(w, "Due today\t%d\n", len(groups.DueToday))
		fmt.Fprintf(w, "Open mistakes\t%d\n", wrong)
		if rated > 0 {
			fmt.Fprintf(w, "Avg success rate\t%.0f%%\n", rateSum/float64(rated))
		}
		return w.Flush()
	},
}

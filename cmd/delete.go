package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <exercise>",
	Short: "Delete an exercise and its history",
	Long: `Delete an exercise. Its attempts and answer snapshots are removed and
any mirrored calendar entry is retracted. Pass --yes to confirm.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

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
		if !yes {
			return fmt.Errorf("this deletes %q and all its history; re-run with --yes to confirm", ex.Title)
		}

		if err := svc.Delete(cmd.Context(), ex.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %q.\n", ex.Title)
		return nil
	},
}

func init() {
	deleteCmd.Flags().Bool("yes", false, "Confirm the deletion")
}

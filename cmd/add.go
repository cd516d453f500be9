package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mediq/internal/quizfile"
	"github.com/abhisek/mediq/internal/subject"
)

var addCmd = &cobra.Command{
	Use:   "add <exercise.json>",
	Short: "Add a new exercise from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read exercise file: %w", err)
		}
		in, err := quizfile.ParseExercise(raw)
		if err != nil {
			return err
		}
		if in.SubjectID != "" {
			if _, ok := subject.ByID(in.SubjectID); !ok {
				fmt.Fprintf(os.Stderr, "warning: subject %q is not in the built-in catalog\n", in.SubjectID)
			}
		}

		st, svc, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ex, err := svc.Create(cmd.Context(), in, time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("Added %q (%s) with %d questions. First review due today.\n",
			ex.Title, shortID(ex.ID), len(ex.Questions))
		return nil
	},
}

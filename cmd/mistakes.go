package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/abhisek/mediq/internal/mistakes"
	"github.com/abhisek/mediq/internal/store"
	"github.com/abhisek/mediq/internal/subject"
	"github.com/abhisek/mediq/internal/ui/theme"
)

var mistakesCmd = &cobra.Command{
	Use:   "mistakes",
	Short: "Show the per-question mistake ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		sortBy, _ := cmd.Flags().GetString("sort")
		filterSubject, _ := cmd.Flags().GetString("subject")

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

		entries := mistakes.Aggregate(exercises, attempts)
		if filterSubject != "" {
			filtered := entries[:0]
			for _, e := range entries {
				if e.SubjectID == filterSubject {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}

		switch sortBy {
		case "subject":
			mistakes.SortBySubject(entries)
		case "count", "":
			mistakes.SortByCount(entries)
		default:
			return fmt.Errorf("unknown sort %q (use count or subject)", sortBy)
		}

		if len(entries) == 0 {
			fmt.Println(theme.Good.Render("No mistakes on record."))
			return nil
		}

		total := 0
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MISTAKES\tSUBJECT\tEXERCISE\tQUESTION")
		for _, e := range entries {
			total += e.Count
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				e.Count, subject.Label(e.SubjectID), e.ExerciseTitle, truncate(e.QuestionText, 60))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Println(theme.Dim.Render(fmt.Sprintf("%d mistake(s) across %d question(s).", total, len(entries))))
		return nil
	},
}

var mistakesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear mistake records from history",
	Long: `Clear mistake records. This rewrites the attempt history and cannot be
undone; pass --yes to confirm. Exactly one scope is required: --all,
--subject <id> or --question <id>.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		subjectID, _ := cmd.Flags().GetString("subject")
		questionID, _ := cmd.Flags().GetString("question")
		yes, _ := cmd.Flags().GetBool("yes")

		scope, err := clearScope(all, subjectID, questionID)
		if err != nil {
			return err
		}
		if !yes {
			return fmt.Errorf("clearing mistakes is irreversible; re-run with --yes to confirm")
		}

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

		remaining, err := mistakes.Clear(exercises, attempts, scope)
		if err != nil {
			return err
		}
		if err := repo.SaveAttempts(cmd.Context(), remaining); err != nil {
			return err
		}

		fmt.Printf("Cleared. %d attempt(s) removed from history.\n", len(attempts)-len(remaining))
		return nil
	},
}

func clearScope(all bool, subjectID, questionID string) (mistakes.Scope, error) {
	set := 0
	if all {
		set++
	}
	if subjectID != "" {
		set++
	}
	if questionID != "" {
		set++
	}
	if set != 1 {
		return mistakes.Scope{}, fmt.Errorf("exactly one of --all, --subject or --question is required")
	}
	switch {
	case all:
		return mistakes.Scope{Kind: mistakes.ScopeAll}, nil
	case subjectID != "":
		return mistakes.Scope{Kind: mistakes.ScopeSubject, TargetID: subjectID}, nil
	default:
		return mistakes.Scope{Kind: mistakes.ScopeQuestion, TargetID: questionID}, nil
	}
}

// truncate shortens s to at most n runes, never splitting a multibyte
// character.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func init() {
	mistakesCmd.Flags().String("sort", "count", "Sort order: count or subject")
	mistakesCmd.Flags().String("subject", "", "Only show mistakes for one subject")

	mistakesClearCmd.Flags().Bool("all", false, "Drop the entire attempt history")
	mistakesClearCmd.Flags().String("subject", "", "Purge wrong answers for one subject")
	mistakesClearCmd.Flags().String("question", "", "Purge wrong answers for one question ID")
	mistakesClearCmd.Flags().Bool("yes", false, "Confirm the irreversible clear")

	mistakesCmd.AddCommand(mistakesClearCmd)
}

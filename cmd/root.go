// Package cmd implements the mediq command line interface.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mediq/internal/exercise"
	"github.com/abhisek/mediq/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mediq",
	Short: "Spaced-repetition study tracker",
	Long:  "Mediq — terminal study tracker that schedules quiz reviews with the SM-2 spaced repetition algorithm.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MEDIQ_DB env var)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(rescheduleCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(mistakesCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then MEDIQ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database for a command invocation. The caller owns
// the returned store and must close it.
func openStore(cmd *cobra.Command) (*store.Store, *exercise.Service, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	svc := exercise.NewService(store.NewExerciseRepo(st), nil)
	return st, svc, nil
}

// findExercise resolves an exercise by full ID or unique ID prefix.
func findExercise(exercises []exercise.Exercise, ref string) (exercise.Exercise, error) {
	var matches []exercise.Exercise
	for _, ex := range exercises {
		if ex.ID == ref {
			return ex, nil
		}
		if strings.HasPrefix(ex.ID, ref) {
			matches = append(matches, ex)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return exercise.Exercise{}, fmt.Errorf("no exercise matches %q", ref)
	default:
		return exercise.Exercise{}, fmt.Errorf("%q is ambiguous (%d matches); use a longer prefix", ref, len(matches))
	}
}

// shortID trims a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

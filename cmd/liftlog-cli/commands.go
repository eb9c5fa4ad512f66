package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/claude/liftlog/internal/app"
	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/models"
)

func newExercisesCmd(g *globalFlags) *cobra.Command {
	var category, muscle, query string
	var favoritesOnly bool

	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "List catalog exercises",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, cmd, func(ctx context.Context, a *app.App) error {
				list := catalog.All()
				if category != "" {
					list = catalog.ByCategory(models.Category(category))
				}
				list = catalog.ByMuscleGroup(list, muscle)
				list = catalog.Search(list, query)
				favs := a.Favorites.List(ctx)
				if favoritesOnly {
					list = catalog.OnlyIDs(list, favs)
				}
				if g.asJSON {
					return printJSON(cmd.OutOrStdout(), list)
				}

				starred := make(map[string]bool, len(favs))
				for _, id := range favs {
					starred[id] = true
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, e := range list {
					star := " "
					if starred[e.ID] {
						star = "*"
					}
					_, _ = fmt.Fprintf(tw, "%s %s\t%s\t%s\n", star, e.ID, e.Category, e.Name)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category: compound|isolation")
	cmd.Flags().StringVar(&muscle, "muscle", "", "only exercises training this muscle group")
	cmd.Flags().StringVarP(&query, "query", "q", "", "search name or muscle group")
	cmd.Flags().BoolVar(&favoritesOnly, "favorites", false, "only starred exercises")
	return cmd
}

func newSetsCmd(g *globalFlags) *cobra.Command {
	sets := &cobra.Command{Use: "sets", Short: "Log, list and remove sets"}

	var weight float64
	var reps int
	var intensity, notes string

	addCmd := &cobra.Command{
		Use:   "add <exercise-id>",
		Short: "Log a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := models.NewSet{
				ExerciseID: args[0],
				Weight:     weight,
				Reps:       reps,
				Intensity:  models.Intensity(intensity),
				Notes:      notes,
			}
			if err := in.Validate(); err != nil {
				return err
			}
			return withApp(g, cmd, func(ctx context.Context, a *app.App) error {
				set, err := a.Sets.Add(ctx, in)
				if err != nil {
					return err
				}
				if g.asJSON {
					return printJSON(cmd.OutOrStdout(), set)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s: %s\n", set.ID, formatSet(*set))
				return nil
			})
		},
	}
	addCmd.Flags().Float64VarP(&weight, "weight", "w", 0, "weight in kg")
	addCmd.Flags().IntVarP(&reps, "reps", "r", 0, "repetitions")
	addCmd.Flags().StringVarP(&intensity, "intensity", "i", "", "failure|1-2-reps|2-3-reps (default 1-2-reps)")
	addCmd.Flags().StringVar(&notes, "notes", "", "free-text note")

	listCmd := &cobra.Command{
		Use:   "list <exercise-id>",
		Short: "List sets of an exercise, most recent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(g, cmd, func(ctx context.Context, a *app.App) error {
				return writeSets(cmd.OutOrStdout(), g.asJSON, a.Sets.ListByExercise(ctx, args[0]), a.Sets.Location())
			})
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <set-id>",
		Short: "Remove a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(g, cmd, func(ctx context.Context, a *app.App) error {
				return a.Sets.Remove(ctx, args[0])
			})
		},
	}

	sets.AddCommand(addCmd, listCmd, rmCmd)
	return sets
}

func newRecordsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "records <exercise-id>",
		Short: "Show personal records of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(g, cmd, func(ctx context.Context, a *app.App) error {
				pr := a.Sets.PersonalRecords(ctx, args[0])
				if g.asJSON {
					return printJSON(cmd.OutOrStdout(), pr)
				}
				if pr == nil {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sets logged")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "max weight: %g kg\nmax reps:   %d\nmax volume: %g kg\n",
					pr.MaxWeight, pr.MaxReps, pr.MaxVolume)
				return nil
			})
		},
	}
}

func newLastCmd(g *globalFlags) *cobra.Command {
	var includeToday bool
	cmd := &cobra.Command{
		Use:   "last <exercise-id>",
		Short: "Show the previous session of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(g, cmd, func(ctx context.Context, a *app.App) error {
				return writeSets(cmd.OutOrStdout(), g.asJSON, a.Sets.LastSessionSets(ctx, args[0], includeToday), a.Sets.Location())
			})
		},
	}
	cmd.Flags().BoolVar(&includeToday, "today", false, "show today's session instead")
	return cmd
}

func newHistoryCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "history <exercise-id>",
		Short: "Show all sets of an exercise with totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(g, cmd, func(ctx context.Context, a *app.App) error {
				h := a.Sets.History(ctx, args[0])
				if g.asJSON {
					return printJSON(cmd.OutOrStdout(), h)
				}
				out := cmd.OutOrStdout()
				loc := a.Sets.Location()
				_, _ = fmt.Fprintf(out, "sets: %d  volume: %g kg  avg weight: %.1f kg\n", h.TotalSets, h.TotalVolume, h.AvgWeight)
				if h.LastWorkout != nil {
					_, _ = fmt.Fprintf(out, "last workout: %s\n", h.LastWorkout.In(loc).Format(time.DateTime))
				}
				return writeSets(out, false, h.Sets, loc)
			})
		},
	}
}

func newFavCmd(g *globalFlags) *cobra.Command {
	fav := &cobra.Command{Use: "fav", Short: "Manage favorite exercises"}

	fav.AddCommand(&cobra.Command{
		Use:   "add <exercise-id>",
		Short: "Star an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := catalog.Get(args[0]); !ok {
				return fmt.Errorf("unknown exercise %q", args[0])
			}
			return withApp(g, cmd, func(ctx context.Context, a *app.App) error {
				return a.Favorites.Add(ctx, args[0])
			})
		},
	})
	fav.AddCommand(&cobra.Command{
		Use:   "rm <exercise-id>",
		Short: "Unstar an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(g, cmd, func(ctx context.Context, a *app.App) error {
				return a.Favorites.Remove(ctx, args[0])
			})
		},
	})
	fav.AddCommand(&cobra.Command{
		Use:   "toggle <exercise-id>",
		Short: "Flip the star of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(g, cmd, func(ctx context.Context, a *app.App) error {
				on, err := a.Favorites.Toggle(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s favorite: %t\n", args[0], on)
				return nil
			})
		},
	})
	fav.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List starred exercises",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, cmd, func(ctx context.Context, a *app.App) error {
				ids := a.Favorites.List(ctx)
				if g.asJSON {
					return printJSON(cmd.OutOrStdout(), ids)
				}
				for _, id := range ids {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			})
		},
	})
	return fav
}

func newResetCmd(g *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every logged set and favorite",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset deletes all data; pass --yes to confirm")
			}
			return withApp(g, cmd, func(ctx context.Context, a *app.App) error {
				return a.Reset(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all data")
	return cmd
}

// writeSets prints dates in loc, the zone the store buckets sessions by.
func writeSets(w io.Writer, asJSON bool, sets []models.WorkoutSet, loc *time.Location) error {
	if asJSON {
		return printJSON(w, sets)
	}
	if len(sets) == 0 {
		_, _ = fmt.Fprintln(w, "no sets")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range sets {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Date.In(loc).Format(time.DateTime), formatSet(s), s.ID)
	}
	return tw.Flush()
}

func formatSet(s models.WorkoutSet) string {
	out := fmt.Sprintf("%s %g kg x %d (%s)", s.ExerciseID, s.Weight, s.Reps, s.Intensity)
	if s.Notes != "" {
		out += " " + s.Notes
	}
	return out
}

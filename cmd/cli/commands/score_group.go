package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/core/services"
	"github.com/jakechorley/natshelper/pkg/core/staffing"
	"github.com/jakechorley/natshelper/pkg/core/staffing/scorers"
)

// ScoreGroupCmd creates the scoreGroup command
func ScoreGroupCmd(app *AppContext) *cobra.Command {
	var (
		job      string
		station  int
		personID int
		top      int
	)

	cmd := &cobra.Command{
		Use:   "scoreGroup <group_id>",
		Short: "Score candidates for a job in a group using the configured scorers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("group_id must be a number: %w", err)
			}

			req := services.ScoreGroupRequest{
				CompetitionID: app.Cfg.CompetitionID,
				GroupID:       groupID,
				Job:           job,
				PersonID:      personID,
			}
			if cmd.Flags().Changed("station") {
				req.Station = &station
			}

			app.Logger.Debug("scoreGroup command",
				zap.Int("group_id", groupID),
				zap.String("job", job),
				zap.Int("person_id", personID))

			store, err := app.Store()
			if err != nil {
				return err
			}

			result, err := services.ScoreGroup(app.Ctx, store, app.Cfg, app.Logger, req)
			if err != nil {
				var violation *staffing.ContractViolationError
				if errors.As(err, &violation) {
					return fmt.Errorf("%w (pass --job)", err)
				}
				return err
			}

			group := result.Group
			heading("%s in %s, %s-%s", group.Activity.ActivityCode, group.Room.Name,
				group.StartTime.Format(timeLayout), group.EndTime.Format(timeLayout))

			fmt.Printf("%-4s  %-28s  %9s", "#", "Person", "Total")
			for _, name := range result.Scorers {
				fmt.Printf("  %14s", truncate(name, 14))
			}
			fmt.Println()
			fmt.Println(strings.Repeat("-", 45+16*len(result.Scorers)))

			candidates := result.Candidates
			if top > 0 && len(candidates) > top {
				candidates = candidates[:top]
			}

			var notes []string
			for i, candidate := range candidates {
				fmt.Printf("%-4d  %-28s  ", i+1, truncate(candidate.Person.Name, 28))
				scoreColor(candidate.Breakdown.Total).Printf("%9.2f", candidate.Breakdown.Total)
				for _, scoreResult := range candidate.Breakdown.Results {
					fmt.Printf("  %14s", formatScore(scoreResult.Score))
					if scoreResult.Note != nil {
						notes = append(notes, fmt.Sprintf("%s / %s: %v", candidate.Person.Name, scoreResult.Scorer, scoreResult.Note))
					}
				}
				fmt.Println()
			}

			if len(notes) > 0 {
				fmt.Println()
				yellow.Println("Notes:")
				for _, note := range notes {
					fmt.Printf("  %s\n", note)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVar(&job, "job", "", "Staff job without the staff- prefix, e.g. judge")
	cmd.Flags().IntVar(&station, "station", 0, "Station number")
	cmd.Flags().IntVar(&personID, "person", 0, "Only score this WCA user id")
	cmd.Flags().IntVar(&top, "top", 20, "Show at most this many candidates (0 for all)")

	return cmd
}

// formatScore prints the no-preference sentinel as text
func formatScore(score float64) string {
	if score == scorers.NoPreferenceScore {
		return "no pref"
	}
	return strconv.FormatFloat(score, 'f', 2, 64)
}

func scoreColor(total float64) *color.Color {
	switch {
	case total > 0:
		return green
	case total < 0:
		return red
	default:
		return dim
	}
}

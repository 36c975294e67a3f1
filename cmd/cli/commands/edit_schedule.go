package commands

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/natshelper/pkg/core/schedule"
	"github.com/jakechorley/natshelper/pkg/core/services"
)

// EditScheduleCmd creates the editSchedule command
func EditScheduleCmd(app *AppContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "editSchedule <payload_file>",
		Short: "Apply a schedule edit payload (YAML or JSON)",
		Long: `Apply a batch of schedule edits. The payload file maps field names to values,
for example:

  20240704.333-r1.start: "09:00"
  20240704.333-r1.end: "10:30"
  20240704.333-r1.groups: "4"
  20240704.333-r1.1.active: "on"
  20240704.333-r1.1.adjustment: "-1"

The whole batch is applied or nothing is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("editSchedule command", zap.String("payload", args[0]), zap.Bool("dry_run", dryRun))

			fields, err := loadEditPayload(args[0])
			if err != nil {
				return err
			}

			store, err := app.EditStore()
			if err != nil {
				return err
			}

			result, err := services.EditSchedule(app.Ctx, store, app.Logger, app.Cfg.CompetitionID, app.Cfg.ExtensionNamespace, fields, dryRun)
			if err != nil {
				var conflict *schedule.ScheduleEditConflict
				var adjustment *schedule.InvalidAdjustmentError
				switch {
				case errors.As(err, &conflict):
					red.Printf("\n✗ Edit conflict in room %d\n", conflict.RoomID)
				case errors.As(err, &adjustment):
					red.Printf("\n✗ Invalid adjustment %q in room %d\n", adjustment.Adjustment, adjustment.RoomID)
				}
				return err
			}

			fmt.Println()
			if result.DryRun {
				yellow.Println("Dry run - nothing was saved")
			} else {
				success("Schedule updated (edit %s)", result.Edit.ID)
			}
			fmt.Println()

			printChanges(result.Outcome.Changes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Apply the edits without saving")

	return cmd
}

// loadEditPayload reads a flat map of edit fields from a YAML or JSON file
func loadEditPayload(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}

	var fields map[string]string
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse payload file: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("payload file %s has no fields", path)
	}

	return fields, nil
}

func printChanges(changes []schedule.ActivityChange) {
	if len(changes) == 0 {
		dim.Println("No activities changed")
		return
	}

	sorted := append([]schedule.ActivityChange(nil), changes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].RoomID < sorted[j].RoomID
	})

	fmt.Printf("%-10s  %-10s  %-14s  %-6s  %-8s  %s\n", "Change", "Date", "Activity", "Room", "Activity", "Groups")
	fmt.Println("----------  ----------  --------------  ------  --------  ------")
	for _, change := range sorted {
		label := fmt.Sprintf("%-10s", change.Kind)
		switch change.Kind {
		case schedule.ChangeCreated:
			label = green.Sprint(label)
		case schedule.ChangeRemoved:
			label = red.Sprint(label)
		}
		fmt.Printf("%s  %-10s  %-14s  %-6d  %-8d  %d\n", label, change.Date, change.Code, change.RoomID, change.ActivityID, change.Groups)
	}
}

package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/core/services"
)

// EditHistoryCmd creates the editHistory command
func EditHistoryCmd(app *AppContext) *cobra.Command {
	var showFields bool

	cmd := &cobra.Command{
		Use:   "editHistory [count]",
		Short: "List the schedule edits applied to the competition, latest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := 10
			if len(args) > 0 {
				count, err := strconv.Atoi(args[0])
				if err != nil || count < 1 {
					return fmt.Errorf("count must be a positive integer, got: %s", args[0])
				}
				limit = count
			}

			app.Logger.Debug("editHistory command", zap.Int("limit", limit))

			database, err := app.Database()
			if err != nil {
				return err
			}

			edits, err := services.EditHistory(app.Ctx, database, app.Logger, app.Cfg.CompetitionID, limit)
			if err != nil {
				return err
			}

			heading("Schedule edits for %s (latest %d)", app.Cfg.CompetitionID, len(edits))

			if len(edits) == 0 {
				dim.Println("No edits recorded")
				return nil
			}

			fmt.Printf("%-36s  %-19s  %7s  %7s  %7s\n", "Edit ID", "Applied (UTC)", "Created", "Removed", "Updated")
			fmt.Println(strings.Repeat("-", 36+2+19+3*9))
			for _, edit := range edits {
				fmt.Printf("%-36s  %-19s  %7d  %7d  %7d\n",
					edit.ID,
					edit.AppliedAt.UTC().Format("2006-01-02 15:04:05"),
					edit.Created, edit.Removed, edit.Updated)

				if showFields {
					for _, key := range sortedKeys(edit.Fields) {
						dim.Printf("    %s = %s\n", key, edit.Fields[key])
					}
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().BoolVar(&showFields, "fields", false, "Show the submitted fields of each edit")

	return cmd
}

func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

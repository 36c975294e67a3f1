package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/core/services"
)

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publishSchedule",
		Short: "Publish the schedule to Google Sheets, one tab per day",
		Long:  "Publish the aggregated schedule to Google Sheets. Existing day tabs are rewritten, keeping their Notes column.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("publishSchedule command", zap.String("spreadsheet_id", app.Cfg.Sheets.SpreadsheetID))

			store, err := app.Store()
			if err != nil {
				return err
			}
			sheets, err := app.Sheets()
			if err != nil {
				return err
			}

			published, err := services.PublishSchedule(app.Ctx, store, sheets, app.Logger, app.Cfg.CompetitionID, app.Cfg.Sheets.SpreadsheetID)
			if err != nil {
				return err
			}

			fmt.Println()
			success("Schedule published")
			fmt.Printf("Sheet ID: %s\n\n", app.Cfg.Sheets.SpreadsheetID)

			fmt.Printf("%-18s  %s\n", "Tab", "Activities")
			fmt.Println("------------------  ----------")
			for _, day := range published.Days {
				fmt.Printf("%-18s  %d\n", day.Title, len(day.Slots))
			}
			fmt.Println()

			return nil
		},
	}

	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/core/services"
)

// ImportCompetitionCmd creates the importCompetition command
func ImportCompetitionCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "importCompetition [competition_id]",
		Short: "Copy a competition from the WCA website into the database",
		Long:  "Copy a competition's WCIF document from the WCA website into PostgreSQL. Defaults to the configured competition.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			competitionID := app.Cfg.CompetitionID
			if len(args) > 0 {
				competitionID = args[0]
			}

			app.Logger.Debug("importCompetition command", zap.String("competition_id", competitionID))

			wca, err := app.WCA()
			if err != nil {
				return err
			}
			database, err := app.Database()
			if err != nil {
				return err
			}

			result, err := services.ImportCompetition(app.Ctx, wca, database, app.Logger, competitionID)
			if err != nil {
				return err
			}
			app.forgetCompetition()

			fmt.Println()
			success("Imported %s", result.Name)
			fmt.Printf("Competition ID: %s\n", result.CompetitionID)
			fmt.Printf("Persons:        %d\n", result.Persons)
			fmt.Printf("Activities:     %d\n", result.Activities)
			fmt.Println()

			return nil
		},
	}

	return cmd
}

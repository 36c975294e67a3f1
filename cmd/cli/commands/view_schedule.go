package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/core/services"
)

const timeLayout = "15:04"

// ViewScheduleCmd creates the viewSchedule command
func ViewScheduleCmd(app *AppContext) *cobra.Command {
	var stations int

	cmd := &cobra.Command{
		Use:   "viewSchedule",
		Short: "View the competition schedule, one table per day",
		Long: `View the aggregated competition schedule. Activities with the same code on the
same day are merged across rooms. With --stations, the estimated competitors per
group are coloured against the number of stations in each room.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("viewSchedule command", zap.Int("stations", stations))

			store, err := app.Store()
			if err != nil {
				return err
			}

			view, err := services.ViewSchedule(app.Ctx, store, app.Logger, app.Cfg.CompetitionID)
			if err != nil {
				return err
			}

			rooms := sortedRooms(view.Rooms)

			heading("%s (%s)", view.Competition.Name, view.Competition.ID)

			for _, day := range view.Days {
				cyan.Printf("Day %d - %s\n", day.Index+1, day.Date.Format("Monday 02 January 2006"))

				if len(day.Slots) == 0 {
					dim.Println("  No activities")
					fmt.Println()
					continue
				}

				fmt.Printf("  %-13s  %-14s  %-6s  %-8s", "Time", "Activity", "Groups", "Per grp")
				for _, room := range rooms {
					fmt.Printf("  %-13s", truncate(room.Name, 13))
				}
				fmt.Println()
				fmt.Println("  " + strings.Repeat("-", 47+15*len(rooms)))

				for _, slot := range day.Slots {
					fmt.Printf("  %-13s  %-14s  %-6d  ",
						slot.StartTime.Format(timeLayout)+"-"+slot.EndTime.Format(timeLayout),
						slot.Code.ID(),
						slot.NumGroups)

					people, known := view.PeoplePerRound[slot.Code.ID()]
					perGroup := formatPerGroup(people, slot.NumGroups, known)
					groupSizeColor(people, slot.NumGroups, stations).Printf("%-8s", perGroup)

					for _, room := range rooms {
						roomActivity := slot.Room(room.ID)
						if roomActivity == nil {
							dim.Printf("  %-13s", "-")
							continue
						}
						fmt.Printf("  %-13s", roomActivity.StartTime.Format(timeLayout)+"-"+roomActivity.EndTime.Format(timeLayout))
					}
					fmt.Println()
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&stations, "stations", 0, "Stations per room, used to colour group sizes")

	return cmd
}

// sortedRooms returns the rooms ordered by id
func sortedRooms(rooms map[int]*model.Room) []*model.Room {
	sorted := make([]*model.Room, 0, len(rooms))
	for _, room := range rooms {
		sorted = append(sorted, room)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted
}

// formatPerGroup estimates competitors per group, rounding up
func formatPerGroup(people, groups int, known bool) string {
	if !known || groups == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", (people+groups-1)/groups)
}

// groupSizeColor picks a colour for a group size:
// red when groups overflow the stations, yellow when they are over 80% full, green otherwise.
// Without stations or groups, no colour is applied.
func groupSizeColor(people, groups, stations int) *color.Color {
	if stations <= 0 || groups == 0 || people == 0 {
		return color.New(color.Reset)
	}
	perGroup := (people + groups - 1) / groups
	switch {
	case perGroup > stations:
		return red
	case perGroup*5 > stations*4:
		return yellow
	default:
		return green
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

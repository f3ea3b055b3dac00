package cmd

import (
	"fmt"

	"prsk-lab/feature/eventbonus"

	"github.com/spf13/cobra"
)

// eventPointsCmd represents the event-points command
var eventPointsCmd = &cobra.Command{
	Use:   "event-points",
	Short: "Calculate event points for one play",
	Long: `Calculates the event points of one play from its score, the song's event
rate, the team's event bonus and the energy spent. With --target the number
of plays needed to reach the target from --current is printed too.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		score, _ := flags.GetInt("score")
		rate, _ := flags.GetInt("rate")
		bonus, _ := flags.GetFloat64("bonus")
		energy, _ := flags.GetInt("energy")
		current, _ := flags.GetInt("current")
		target, _ := flags.GetInt("target")

		points, err := eventbonus.CalculateEventPoints(score, rate, bonus, energy)
		if err != nil {
			return err
		}
		fmt.Printf("Points per play: %d\n", points)

		if target <= 0 {
			return nil
		}
		plays, err := eventbonus.CalculatePlays(current, target, points, energy)
		if err != nil {
			return err
		}
		fmt.Printf("Remaining: %d\n", plays.Remaining)
		fmt.Printf("Plays: %d\n", plays.Plays)
		fmt.Printf("Energy: %d\n", plays.Energy)
		return nil
	},
}

func init() {
	flags := eventPointsCmd.Flags()
	flags.Int("score", 0, "Score of the play (0-100000000)")
	flags.Int("rate", eventbonus.DefaultEventRate, "Event rate of the song")
	flags.Float64("bonus", 0, "Team event bonus in percent")
	flags.Int("energy", 1, "Energy spent on the play (0-10)")
	flags.Int("current", 0, "Current event points")
	flags.Int("target", 0, "Target event points")
	RootCmd.AddCommand(eventPointsCmd)
}

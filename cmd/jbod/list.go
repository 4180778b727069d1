package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/herver/jbod-rs/internal/disks"
	"github.com/herver/jbod-rs/internal/enclosure"
	"github.com/herver/jbod-rs/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List enclosures, disks and sensor readings",
	Long: `List the attached enclosures and, per flag, their fans, temperature
sensors, voltage sensors or disks. Combining --enclosure and --disks
(or passing --disks alone) prints the combined shelf view.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		showEnc, _ := cmd.Flags().GetBool("enclosure")
		showDisks, _ := cmd.Flags().GetBool("disks")
		showFans, _ := cmd.Flags().GetBool("fan")
		showTemps, _ := cmd.Flags().GetBool("temperature")
		showVolts, _ := cmd.Flags().GetBool("voltage")
		jsonOut, _ := cmd.Flags().GetBool("json")

		inv := enclosure.NewInventory(run, cfg, log)

		switch {
		case showDisks:
			enclosures, err := inv.DiscoverEnclosures()
			if err != nil {
				return err
			}
			shelf, err := disks.NewShelf(run, cfg, log).Map(enclosures)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(struct {
					Enclosures []enclosure.Enclosure `json:"enclosures"`
					Disks      []disks.Disk          `json:"disks"`
				}{enclosures, shelf})
			}
			report.Shelf(os.Stdout, enclosures, shelf, cfg.Thresholds)

		case showEnc:
			enclosures, err := inv.DiscoverEnclosures()
			if err != nil {
				return err
			}
			if len(enclosures) == 0 {
				fmt.Println("No enclosures found")
				return nil
			}
			if jsonOut {
				return printJSON(enclosures)
			}
			report.Enclosures(os.Stdout, enclosures)

		case showFans:
			fans, err := inv.CollectFanReadings()
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(fans)
			}
			report.Fans(os.Stdout, fans)

		case showTemps:
			temps, err := inv.CollectTemperatureReadings()
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(temps)
			}
			report.Temperatures(os.Stdout, temps, cfg.Thresholds)

		case showVolts:
			volts, err := inv.CollectVoltageReadings()
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(volts)
			}
			report.Voltages(os.Stdout, volts)

		default:
			return cmd.Help()
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolP("enclosure", "e", false, "list enclosures")
	listCmd.Flags().BoolP("disks", "d", false, "list disks per enclosure")
	listCmd.Flags().BoolP("fan", "f", false, "list cooling elements")
	listCmd.Flags().BoolP("temperature", "t", false, "list temperature sensors")
	listCmd.Flags().BoolP("voltage", "v", false, "list voltage sensors")
	listCmd.Flags().Bool("json", false, "output as JSON")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

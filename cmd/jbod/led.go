package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/herver/jbod-rs/internal/ses"
)

var ledCmd = &cobra.Command{
	Use:   "led",
	Short: "Switch slot LEDs on an enclosure",
	Long: `Switch the locate (ident) or fault LED of one enclosure slot.
The device is the enclosure's sg node as printed by "jbod list -e",
and the slot is the physical disk slot number on that enclosure.

Driving LEDs writes a SES control page and requires root.`,
	Example: `  jbod led --device /dev/sg3 --slot 4 --locate --on
  jbod led --device /dev/sg3 --slot 4 --fault --off`,
	RunE: func(cmd *cobra.Command, args []string) error {
		device, _ := cmd.Flags().GetString("device")
		slot, _ := cmd.Flags().GetInt("slot")
		locate, _ := cmd.Flags().GetBool("locate")
		fault, _ := cmd.Flags().GetBool("fault")
		on, _ := cmd.Flags().GetBool("on")
		off, _ := cmd.Flags().GetBool("off")

		if locate == fault {
			return errors.New("pick exactly one of --locate or --fault")
		}
		if on == off {
			return errors.New("pick exactly one of --on or --off")
		}

		led := ses.LEDIdent
		if fault {
			led = ses.LEDFault
		}

		ctl := ses.NewControl(run, cfg.Tools.SgSes)
		if err := ctl.Set(device, slot, led, on); err != nil {
			return err
		}

		log.Info().
			Str("device", device).
			Int("slot", slot).
			Str("led", led).
			Bool("on", on).
			Msg("LED switched")
		return nil
	},
}

func init() {
	ledCmd.Flags().String("device", "", "enclosure device node (e.g. /dev/sg3)")
	ledCmd.Flags().Int("slot", 0, "disk slot number on the enclosure")
	ledCmd.Flags().Bool("locate", false, "drive the locate (ident) LED")
	ledCmd.Flags().Bool("fault", false, "drive the fault LED")
	ledCmd.Flags().Bool("on", false, "switch the LED on")
	ledCmd.Flags().Bool("off", false, "switch the LED off")
	_ = ledCmd.MarkFlagRequired("device")
	_ = ledCmd.MarkFlagRequired("slot")
}

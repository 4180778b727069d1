// Package ses drives the locate and fault LEDs of an enclosure slot
// through sg_ses. LED control is plain glue around the same external
// tool the inventory engine queries; it shares the Runner seam so the
// argument plumbing stays testable.
package ses

import (
	"errors"
	"fmt"
	"strings"

	"github.com/herver/jbod-rs/internal/runner"
)

// ErrPermissionDenied surfaces the common failure mode of driving LEDs
// without root.
var ErrPermissionDenied = errors.New("permission denied (requires root)")

// LED names as sg_ses spells them.
const (
	LEDIdent = "ident"
	LEDFault = "fault"
)

// Control switches slot LEDs on one enclosure device.
type Control struct {
	run   runner.Runner
	sgSes string
}

func NewControl(r runner.Runner, sgSes string) *Control {
	return &Control{run: r, sgSes: sgSes}
}

// Set switches the named LED of a slot on or off.
func (c *Control) Set(device string, slot int, led string, on bool) error {
	action := "--clear=" + led
	if on {
		action = "--set=" + led
	}

	out, err := c.run.Output(c.sgSes,
		fmt.Sprintf("--dev-slot-num=%d", slot),
		action,
		device,
	)
	if err != nil {
		return fmt.Errorf("sg_ses %s: %w", device, err)
	}

	lower := strings.ToLower(out)
	if strings.Contains(lower, "permission denied") ||
		strings.Contains(lower, "operation not permitted") {
		return ErrPermissionDenied
	}

	return nil
}

// Package report renders the inventory collections as colorized
// tables. It is presentation glue: it never queries hardware and only
// filters on the status strings the engine surfaces.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/herver/jbod-rs/internal/config"
	"github.com/herver/jbod-rs/internal/disks"
	"github.com/herver/jbod-rs/internal/enclosure"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func header(cols ...string) string {
	styled := make([]string, len(cols))
	for i, c := range cols {
		styled[i] = headerStyle.Render(c)
	}
	return strings.Join(styled, "\t")
}

// Enclosures renders the enclosure identity table.
func Enclosures(w io.Writer, enclosures []enclosure.Enclosure) {
	tw := newTable(w)
	fmt.Fprintln(tw, header("SLOT", "DEVICE", "VENDOR", "MODEL", "REVISION", "SERIAL"))
	for _, enc := range enclosures {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			enc.Slot, enc.DevicePath, enc.Vendor, enc.Model, enc.Revision, enc.Serial)
	}
	tw.Flush()
}

// Fans renders the cooling-element table.
func Fans(w io.Writer, fans []enclosure.FanReading) {
	tw := newTable(w)
	fmt.Fprintln(tw, header("SLOT", "IDENT", "DESCRIPTION", "STATUS", "RPM"))
	for _, fan := range fans {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			fan.Slot, fan.Index, fan.Description, fan.Comment, fan.Speed)
	}
	tw.Flush()
}

// Temperatures renders the temperature table, excluding absent sensors.
func Temperatures(w io.Writer, temps []enclosure.TemperatureReading, th config.Thresholds) {
	tw := newTable(w)
	fmt.Fprintln(tw, header("SLOT", "IDENT", "DESCRIPTION", "STATUS", "TEMP (°C)"))
	for _, t := range temps {
		if t.Status == enclosure.StatusNotInstalled {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			t.Slot, t.Index, t.Description, t.Status,
			ColorTemp(strconv.FormatInt(t.Temperature, 10), th))
	}
	tw.Flush()
}

// Voltages renders the voltage table, excluding absent sensors.
func Voltages(w io.Writer, volts []enclosure.VoltageReading) {
	tw := newTable(w)
	fmt.Fprintln(tw, header("SLOT", "IDENT", "DESCRIPTION", "STATUS", "VOLTAGE (V)"))
	for _, v := range volts {
		if v.Status == enclosure.StatusNotInstalled {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			v.Slot, v.Index, v.Description, v.Status,
			strconv.FormatFloat(v.Voltage, 'f', -1, 64))
	}
	tw.Flush()
}

// Shelf renders the combined enclosure + disks view, joining disks to
// their enclosure by slot label.
func Shelf(w io.Writer, enclosures []enclosure.Enclosure, shelf []disks.Disk, th config.Thresholds) {
	for _, enc := range enclosures {
		Enclosures(w, []enclosure.Enclosure{enc})

		tw := newTable(w)
		fmt.Fprintln(tw, header("DISK", "VENDOR", "MODEL", "SERIAL", "TEMP", "FW"))
		for _, d := range shelf {
			if d.Enclosure != enc.Slot {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				okStyle.Render(d.DevicePath), d.Vendor, d.Model, d.Serial,
				ColorTemp(d.Temperature, th), d.FirmwareRevision)
		}
		tw.Flush()
		fmt.Fprintln(w)
	}
}

// ColorTemp colorizes a temperature string: green up to the warning
// threshold, bold yellow up to the critical threshold, bold red above
// it. Unreadable values render as a red ERR so the caller can spot the
// sensor without the pass failing.
func ColorTemp(temp string, th config.Thresholds) string {
	v, err := strconv.Atoi(strings.TrimSpace(temp))
	if err != nil {
		return critStyle.Render("ERR")
	}
	switch {
	case v > th.CriticalTemp:
		return critStyle.Render(temp + "c")
	case v > th.WarningTemp:
		return warnStyle.Render(temp + "c")
	default:
		return okStyle.Render(temp + "c")
	}
}

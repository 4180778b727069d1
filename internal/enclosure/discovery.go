package enclosure

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/herver/jbod-rs/internal/config"
	"github.com/herver/jbod-rs/internal/runner"
)

// sg_inq prints Key: value lines; these prefixes are matched
// case-sensitively against each line.
const (
	vendorPrefix   = "Vendor identification:"
	productPrefix  = "Product identification:"
	revisionPrefix = "Product revision level:"
	serialPrefix   = "Unit serial number:"
)

// Identity holds the sg_inq fields of one device. Fields whose prefix
// never appears in the output stay at FieldAbsent.
type Identity struct {
	Vendor   string
	Model    string
	Revision string
	Serial   string
}

// Discovery locates SES enclosure devices and queries their identity.
type Discovery struct {
	run    runner.Runner
	log    zerolog.Logger
	lsscsi string
	sgInq  string
}

// NewDiscovery wires a Discovery against the given runner and tool
// paths.
func NewDiscovery(r runner.Runner, cfg *config.Config, log zerolog.Logger) *Discovery {
	return &Discovery{
		run:    r,
		log:    log,
		lsscsi: cfg.Tools.Lsscsi,
		sgInq:  cfg.Tools.SgInq,
	}
}

// Discover parses `lsscsi -g`, keeps the enclosure-class rows and
// runs one identity query per device. An empty host is a valid result,
// not an error; only a tool that cannot be launched at all is fatal.
func (d *Discovery) Discover() ([]Enclosure, error) {
	out, err := d.run.Output(d.lsscsi, "-g")
	if err != nil {
		return nil, fmt.Errorf("lsscsi: %w", err)
	}

	var enclosures []Enclosure
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "enclosu") {
			continue
		}

		slot, device, err := parseEnclosureRow(line)
		if err != nil {
			d.log.Debug().Str("line", line).Msg("skipping enclosure row without device path")
			continue
		}

		id, err := d.Inquire(device)
		if err != nil {
			return nil, err
		}

		enclosures = append(enclosures, Enclosure{
			Slot:       slot,
			DevicePath: device,
			Vendor:     id.Vendor,
			Model:      id.Model,
			Revision:   id.Revision,
			Serial:     id.Serial,
		})
	}

	return enclosures, nil
}

// parseEnclosureRow extracts the slot label and device path from one
// lsscsi row. Column widths vary between versions, so the device path
// is located by its /dev/ prefix rather than by position.
//
//	[6:0:24:0]  enclosu SMC      SC826-P    0001  -  /dev/sg23
func parseEnclosureRow(line string) (slot, device string, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", "", ErrNoDevicePath
	}

	slot = strings.Trim(fields[0], "[]")
	for _, f := range fields {
		if strings.HasPrefix(f, "/dev/") {
			return slot, f, nil
		}
	}
	return "", "", ErrNoDevicePath
}

// Inquire runs sg_inq against one device and parses its identity.
// Launch failures are fatal; missing fields degrade to FieldAbsent.
func (d *Discovery) Inquire(device string) (Identity, error) {
	out, err := d.run.Output(d.sgInq, device)
	if err != nil {
		return Identity{}, fmt.Errorf("sg_inq %s: %w", device, err)
	}
	return ParseIdentity(out), nil
}

// ParseIdentity extracts the identity fields from sg_inq output.
func ParseIdentity(out string) Identity {
	id := Identity{
		Vendor:   FieldAbsent,
		Model:    FieldAbsent,
		Revision: FieldAbsent,
		Serial:   FieldAbsent,
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, vendorPrefix):
			id.Vendor = strings.TrimSpace(strings.TrimPrefix(line, vendorPrefix))
		case strings.HasPrefix(line, productPrefix):
			id.Model = strings.TrimSpace(strings.TrimPrefix(line, productPrefix))
		case strings.HasPrefix(line, revisionPrefix):
			id.Revision = strings.TrimSpace(strings.TrimPrefix(line, revisionPrefix))
		case strings.HasPrefix(line, serialPrefix):
			id.Serial = strings.TrimSpace(strings.TrimPrefix(line, serialPrefix))
		}
	}

	return id
}

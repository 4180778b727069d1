package enclosure

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/herver/jbod-rs/internal/config"
	"github.com/herver/jbod-rs/internal/parse"
	"github.com/herver/jbod-rs/internal/runner"
)

// sensorClass describes one SES element class as it appears in the
// sg_ses page dump. filter is a cheap substring gate applied to the
// stream before the pattern runs; pattern captures the element
// description and the bracketed composite index preceding the class
// keyword.
type sensorClass struct {
	name    string
	filter  string
	pattern *regexp.Regexp
}

var (
	fanClass = sensorClass{
		name:    "fan",
		filter:  "Cooling",
		pattern: regexp.MustCompile(`(?P<desc>.*?)\[(?P<id>-?\d+,-?\d+)\].*Cooling`),
	}
	temperatureClass = sensorClass{
		name:    "temperature",
		filter:  "Temperature sensor",
		pattern: regexp.MustCompile(`(?P<desc>.*?)\[(?P<id>-?\d+,-?\d+)\].*Temperature`),
	}
	voltageClass = sensorClass{
		name:    "voltage",
		filter:  "Voltage sensor",
		pattern: regexp.MustCompile(`(?P<desc>.*?)\[(?P<id>-?\d+,-?\d+)\].*Voltage`),
	}
)

// match applies the class pattern to one output line, returning the
// trimmed description and the composite index. Non-matching lines are
// expected (headers, footers, other element classes) and simply skipped.
func (c sensorClass) match(line string) (desc, index string, ok bool) {
	m := c.pattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), m[2], true
}

// sensorKey is the dedup key: the same physical element may be listed
// more than once in a single sg_ses dump, and composite indices are
// only unique within one enclosure.
type sensorKey struct {
	index  string
	serial string
}

// catalog issues the per-class sg_ses queries. One instance serves all
// three classes; each build pass keeps its own dedup set.
type catalog struct {
	run   runner.Runner
	log   zerolog.Logger
	sgSes string
}

func newCatalog(r runner.Runner, cfg *config.Config, log zerolog.Logger) *catalog {
	return &catalog{run: r, log: log, sgSes: cfg.Tools.SgSes}
}

// scan streams the full sg_ses page dump of one enclosure and calls
// accept once per first-seen (index, serial) pair of the class. The
// dump can be large; reading it line by line avoids buffering pages
// when only a handful of lines matter.
func (c *catalog) scan(enc Enclosure, class sensorClass, seen map[sensorKey]struct{}, accept func(desc, index string)) error {
	stream, err := c.run.Stream(c.sgSes, "-j", "-ff", enc.DevicePath)
	if err != nil {
		return fmt.Errorf("sg_ses %s: %w", enc.DevicePath, err)
	}
	defer stream.Close()

	sc := bufio.NewScanner(stream)
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, class.filter) {
			continue
		}
		desc, index, ok := class.match(line)
		if !ok {
			continue
		}
		key := sensorKey{index: index, serial: enc.Serial}
		if _, dup := seen[key]; dup {
			// The tool emits some elements twice; absorb silently.
			continue
		}
		seen[key] = struct{}{}
		accept(desc, index)
	}
	return sc.Err()
}

// detail runs the per-index query for one element and returns its raw
// output lines.
func (c *catalog) detail(device, index string) ([]string, error) {
	out, err := c.run.Output(c.sgSes, "--index="+index, device)
	if err != nil {
		return nil, fmt.Errorf("sg_ses --index=%s %s: %w", index, device, err)
	}
	return strings.Split(out, "\n"), nil
}

// fans builds the fan catalog across all enclosures, in discovery order.
func (c *catalog) fans(enclosures []Enclosure) ([]FanReading, error) {
	var readings []FanReading
	seen := make(map[sensorKey]struct{})

	for _, enc := range enclosures {
		enc := enc
		err := c.scan(enc, fanClass, seen, func(desc, index string) {
			speed, comment, err := c.fanDetail(enc.DevicePath, index)
			if err != nil {
				c.log.Warn().Err(err).Str("index", index).Msg("fan detail query failed")
				return
			}
			readings = append(readings, FanReading{
				Slot:        enc.Slot,
				Serial:      enc.Serial,
				Description: desc,
				Index:       index,
				Speed:       speed,
				Comment:     comment,
			})
		})
		if err != nil {
			return nil, err
		}
	}
	return readings, nil
}

// fanDetail parses the RPM and trailing vendor comment out of a fan
// element detail page. A missing speed value degrades to 0.
func (c *catalog) fanDetail(device, index string) (int64, string, error) {
	lines, err := c.detail(device, index)
	if err != nil {
		return 0, "", err
	}

	var speed int64
	var comment string
	for _, line := range lines {
		if !strings.Contains(line, "speed") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			continue
		}
		speed, _ = parse.FirstInt(fields[1])
		if len(fields) > 2 {
			comment = strings.TrimSpace(fields[2])
		}
	}
	return speed, comment, nil
}

// temperatures builds the temperature catalog across all enclosures.
func (c *catalog) temperatures(enclosures []Enclosure) ([]TemperatureReading, error) {
	var readings []TemperatureReading
	seen := make(map[sensorKey]struct{})

	for _, enc := range enclosures {
		enc := enc
		err := c.scan(enc, temperatureClass, seen, func(desc, index string) {
			temp, status, err := c.temperatureDetail(enc.DevicePath, index)
			if err != nil {
				c.log.Warn().Err(err).Str("index", index).Msg("temperature detail query failed")
				return
			}
			readings = append(readings, TemperatureReading{
				Slot:        enc.Slot,
				Serial:      enc.Serial,
				Description: desc,
				Index:       index,
				Temperature: temp,
				Status:      status,
			})
		})
		if err != nil {
			return nil, err
		}
	}
	return readings, nil
}

func (c *catalog) temperatureDetail(device, index string) (int64, string, error) {
	lines, err := c.detail(device, index)
	if err != nil {
		return 0, "", err
	}

	var temp int64
	var status string
	for _, line := range lines {
		if s, ok := parse.After(line, "status:"); ok {
			status = s
		}
		if rhs, ok := parse.After(line, "Temperature="); ok {
			temp, _ = parse.FirstInt(rhs)
		}
	}
	return temp, status, nil
}

// voltages builds the voltage catalog across all enclosures. Unlike
// fan speed there is no safe zero-default for a malformed voltage
// token, so a reading that fails to parse is dropped (and logged by
// the caller through c.log) without aborting the pass.
func (c *catalog) voltages(enclosures []Enclosure) ([]VoltageReading, error) {
	var readings []VoltageReading
	seen := make(map[sensorKey]struct{})

	for _, enc := range enclosures {
		enc := enc
		err := c.scan(enc, voltageClass, seen, func(desc, index string) {
			volts, status, err := c.voltageDetail(enc.DevicePath, index)
			if err != nil {
				c.log.Warn().Err(err).
					Str("index", index).
					Str("serial", enc.Serial).
					Msg("dropping voltage reading")
				return
			}
			readings = append(readings, VoltageReading{
				Slot:        enc.Slot,
				Serial:      enc.Serial,
				Description: desc,
				Index:       index,
				Voltage:     volts,
				Status:      status,
			})
		})
		if err != nil {
			return nil, err
		}
	}
	return readings, nil
}

func (c *catalog) voltageDetail(device, index string) (float64, string, error) {
	lines, err := c.detail(device, index)
	if err != nil {
		return 0, "", err
	}

	var volts float64
	var status string
	for _, line := range lines {
		if s, ok := parse.After(line, "status:"); ok {
			status = s
		}
		if !strings.Contains(line, "Voltage:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, "", fmt.Errorf("voltage line %q: %w", line, parse.ErrMalformedNumber)
		}
		v, err := parse.Float(fields[1])
		if err != nil {
			return 0, "", err
		}
		volts = v
	}
	return volts, status, nil
}

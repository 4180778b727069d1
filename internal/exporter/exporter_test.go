package exporter

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herver/jbod-rs/internal/config"
	"github.com/herver/jbod-rs/internal/enclosure"
)

type fakeRunner struct {
	outputs   map[string]string
	launchErr error
}

func (f *fakeRunner) Output(name string, args ...string) (string, error) {
	if f.launchErr != nil {
		return "", f.launchErr
	}
	return f.outputs[strings.Join(append([]string{name}, args...), " ")], nil
}

func (f *fakeRunner) Stream(name string, args ...string) (io.ReadCloser, error) {
	out, err := f.Output(name, args...)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(out)), nil
}

func fixtureRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string]string{
		"lsscsi -g": `[0:0:0:0]    disk    ATA      Samsung SSD 860  2B6Q  /dev/sda   /dev/sg0
[6:0:24:0]   enclosu SMC      SC826-P          0001  -          /dev/sg3
`,
		"sg_inq /dev/sg3": `  Vendor identification: SMC
  Product identification: SC826-P
  Product revision level: 0001
  Unit serial number: SMC0123456
`,
		"sg_ses -j -ff /dev/sg3": `    Fan1          [2,-1]  Element type: Cooling
    Temp ambient  [4,-1]  Element type: Temperature sensor
    Temp mid      [4,0]   Element type: Temperature sensor
    5V rail       [5,-1]  Element type: Voltage sensor
`,
		"sg_ses --index=2,-1 /dev/sg3": "      status: OK\n  Ident=0, actual speed=4890 rpm, Fan at third lowest speed\n",
		"sg_ses --index=4,-1 /dev/sg3": "      status: OK\n      Temperature=38 C\n",
		"sg_ses --index=4,0 /dev/sg3":  "      status: Not installed\n",
		"sg_ses --index=5,-1 /dev/sg3": "      status: OK\n      Voltage: 5.02 volts\n",
	}}
}

func testCollector(r *fakeRunner) *Collector {
	cfg := &config.Config{Tools: config.Tools{
		Lsscsi: "lsscsi", SgInq: "sg_inq", SgSes: "sg_ses", ScsiTemperature: "scsi_temperature",
	}}
	inv := enclosure.NewInventory(r, cfg, zerolog.Nop())
	return NewCollector(inv, zerolog.Nop())
}

func TestCollect(t *testing.T) {
	c := testCollector(fixtureRunner())

	expected := `
# HELP jbod_enclosure_info Enclosure identity metadata, value is always 1
# TYPE jbod_enclosure_info gauge
jbod_enclosure_info{device="/dev/sg3",model="SC826-P",revision="0001",serial="SMC0123456",slot="6:0:24:0",vendor="SMC"} 1
# HELP jbod_fan_speed_rpm Cooling element speed in RPM
# TYPE jbod_fan_speed_rpm gauge
jbod_fan_speed_rpm{description="Fan1",index="2,-1",serial="SMC0123456",slot="6:0:24:0"} 4890
# HELP jbod_temperature_celsius Temperature sensor reading in degrees Celsius
# TYPE jbod_temperature_celsius gauge
jbod_temperature_celsius{description="Temp ambient",index="4,-1",serial="SMC0123456",slot="6:0:24:0"} 38
# HELP jbod_voltage_volts Voltage sensor reading in volts
# TYPE jbod_voltage_volts gauge
jbod_voltage_volts{description="5V rail",index="5,-1",serial="SMC0123456",slot="6:0:24:0"} 5.02
`
	// The "Temp mid" sensor is Not installed and must stay out of the
	// exposition entirely.
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"jbod_enclosure_info",
		"jbod_fan_speed_rpm",
		"jbod_temperature_celsius",
		"jbod_voltage_volts",
	)
	require.NoError(t, err)

	assert.Equal(t, 0.0, testutil.ToFloat64(c.scrapeErrors))
}

func TestCollectCountsFailedPasses(t *testing.T) {
	c := testCollector(&fakeRunner{launchErr: errors.New("exec: \"lsscsi\": executable file not found in $PATH")})

	expected := `
# HELP jbod_scrape_errors_total Inventory passes that failed entirely
# TYPE jbod_scrape_errors_total counter
jbod_scrape_errors_total 1
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected), "jbod_scrape_errors_total")
	require.NoError(t, err)
}

func TestFormatPort(t *testing.T) {
	assert.Equal(t, "0.0.0.0:9945", FormatPort("0.0.0.0", 9945))
}

package enclosure

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/herver/jbod-rs/internal/config"
)

// fakeRunner returns canned tool output keyed by the full command
// line, so the parsers are testable without hardware or privileged
// binaries.
type fakeRunner struct {
	outputs   map[string]string
	launchErr map[string]error
	calls     []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs:   make(map[string]string),
		launchErr: make(map[string]error),
	}
}

func cmdKey(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func (f *fakeRunner) Output(name string, args ...string) (string, error) {
	key := cmdKey(name, args)
	f.calls = append(f.calls, key)
	if err, ok := f.launchErr[key]; ok {
		return "", err
	}
	return f.outputs[key], nil
}

func (f *fakeRunner) Stream(name string, args ...string) (io.ReadCloser, error) {
	out, err := f.Output(name, args...)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(out)), nil
}

func (f *fakeRunner) callCount(key string) int {
	n := 0
	for _, c := range f.calls {
		if c == key {
			n++
		}
	}
	return n
}

func testConfig() *config.Config {
	return &config.Config{
		Tools: config.Tools{
			Lsscsi:          "lsscsi",
			SgInq:           "sg_inq",
			SgSes:           "sg_ses",
			ScsiTemperature: "scsi_temperature",
		},
	}
}

func nopLog() zerolog.Logger {
	return zerolog.Nop()
}

const lsscsiThreeEnclosures = `[0:0:0:0]    disk    ATA      Samsung SSD 860  2B6Q  /dev/sda   /dev/sg0
[6:0:24:0]   enclosu SMC      SC826-P          0001  -          /dev/sg3
[7:0:12:0]   enclosu HGST     4U60G2_STOR_ENCL 2019  -          /dev/sg7
[8:0:36:0]   enclosu AIC      12G-4U60         0c07  -          /dev/sg9
`

const sgInqFull = `standard INQUIRY:
  PQual=0  Device_type=13  RMB=0  LU_CONG=0  version=0x06
  Vendor identification: SMC
  Product identification: SC826-P
  Product revision level: 0001
  Unit serial number: SMC0123456
`

// Package enclosure implements the telemetry extraction and
// correlation engine: it discovers SES-capable JBOD backplanes through
// lsscsi/sg_inq and collects fan, temperature and voltage readings by
// parsing sg_ses page dumps.
package enclosure

import "errors"

// FieldAbsent is the documented default for identity fields that never
// appear in a tool's output.
const FieldAbsent = "NONE"

// StatusNotInstalled is the status string a JBOD reports for an
// absent or non-functional sensor element. Consumers filter on it by
// plain equality.
const StatusNotInstalled = "Not installed"

var (
	// ErrNoDevicePath means an lsscsi enclosure row carried no
	// /dev/... token and cannot be queried further.
	ErrNoDevicePath = errors.New("no device path in lsscsi row")
)

// Enclosure identifies one JBOD backplane. Serial is the durable
// cross-query key; DevicePath is session-dependent and must not be
// used as identity across separate tool invocations.
type Enclosure struct {
	Slot       string `json:"slot"`
	DevicePath string `json:"device_path"`
	Vendor     string `json:"vendor"`
	Model      string `json:"model"`
	Revision   string `json:"revision"`
	Serial     string `json:"serial"`
}

// FanReading is one cooling element of an enclosure.
type FanReading struct {
	Slot        string `json:"slot"`
	Serial      string `json:"serial"`
	Description string `json:"description"`
	// Index is the sg_ses composite element index (e.g. "2,-1").
	// It is opaque: only sg_ses assigns meaning to it.
	Index string `json:"index"`
	// Speed in RPM; 0 when the tool output carried no parsable value.
	Speed int64 `json:"speed"`
	// Comment is the vendor annotation trailing the speed field.
	Comment string `json:"comment"`
}

// TemperatureReading is one temperature sensor element. The unit is
// implicitly Celsius.
type TemperatureReading struct {
	Slot        string `json:"slot"`
	Serial      string `json:"serial"`
	Description string `json:"description"`
	Index       string `json:"index"`
	Temperature int64  `json:"temperature"`
	Status      string `json:"status"`
}

// VoltageReading is one voltage sensor element.
type VoltageReading struct {
	Slot        string `json:"slot"`
	Serial      string `json:"serial"`
	Description string `json:"description"`
	Index       string `json:"index"`
	Voltage     float64 `json:"voltage"`
	Status      string  `json:"status"`
}

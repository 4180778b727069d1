package enclosure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herver/jbod-rs/internal/runner"
)

func TestDiscoverThreeEnclosures(t *testing.T) {
	fake := newFakeRunner()
	fake.outputs["lsscsi -g"] = lsscsiThreeEnclosures
	fake.outputs["sg_inq /dev/sg3"] = sgInqFull
	fake.outputs["sg_inq /dev/sg7"] = "  Vendor identification: HGST\n  Unit serial number: HGST777\n"
	fake.outputs["sg_inq /dev/sg9"] = ""

	d := NewDiscovery(fake, testConfig(), nopLog())
	enclosures, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, enclosures, 3)

	assert.Equal(t, Enclosure{
		Slot:       "6:0:24:0",
		DevicePath: "/dev/sg3",
		Vendor:     "SMC",
		Model:      "SC826-P",
		Revision:   "0001",
		Serial:     "SMC0123456",
	}, enclosures[0])

	// Partial identity output degrades field by field, never errors.
	assert.Equal(t, "HGST", enclosures[1].Vendor)
	assert.Equal(t, FieldAbsent, enclosures[1].Model)
	assert.Equal(t, FieldAbsent, enclosures[1].Revision)
	assert.Equal(t, "HGST777", enclosures[1].Serial)

	// Empty identity output yields all defaults.
	assert.Equal(t, Enclosure{
		Slot:       "8:0:36:0",
		DevicePath: "/dev/sg9",
		Vendor:     FieldAbsent,
		Model:      FieldAbsent,
		Revision:   FieldAbsent,
		Serial:     FieldAbsent,
	}, enclosures[2])
}

func TestDiscoverVendorOnlyIdentity(t *testing.T) {
	fake := newFakeRunner()
	fake.outputs["lsscsi -g"] = "[0]  disk  enclosu  x  -  /dev/sg3\n"
	fake.outputs["sg_inq /dev/sg3"] = "Vendor identification: ACME\n"

	d := NewDiscovery(fake, testConfig(), nopLog())
	enclosures, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, enclosures, 1)

	assert.Equal(t, Enclosure{
		Slot:       "0",
		DevicePath: "/dev/sg3",
		Vendor:     "ACME",
		Model:      FieldAbsent,
		Revision:   FieldAbsent,
		Serial:     FieldAbsent,
	}, enclosures[0])
}

func TestDiscoverNoEnclosures(t *testing.T) {
	fake := newFakeRunner()
	fake.outputs["lsscsi -g"] = "[0:0:0:0]  disk  ATA  Samsung  2B6Q  /dev/sda  /dev/sg0\n"

	d := NewDiscovery(fake, testConfig(), nopLog())
	enclosures, err := d.Discover()
	require.NoError(t, err)
	assert.Empty(t, enclosures)
}

func TestDiscoverSkipsRowWithoutDevicePath(t *testing.T) {
	fake := newFakeRunner()
	fake.outputs["lsscsi -g"] = "[5:0:0:0]  enclosu  SMC  SC826-P  0001  -  -\n"

	d := NewDiscovery(fake, testConfig(), nopLog())
	enclosures, err := d.Discover()
	require.NoError(t, err)
	assert.Empty(t, enclosures)
}

func TestDiscoverToolUnavailableIsFatal(t *testing.T) {
	fake := newFakeRunner()
	fake.launchErr["lsscsi -g"] = runner.ErrToolUnavailable

	d := NewDiscovery(fake, testConfig(), nopLog())
	_, err := d.Discover()
	require.Error(t, err)
	assert.True(t, errors.Is(err, runner.ErrToolUnavailable))
}

func TestParseIdentityUsesLinePrefixes(t *testing.T) {
	// A vendor line must not bleed into the product field even though
	// it also contains the word "identification".
	id := ParseIdentity("  Vendor identification: ACME\n")
	assert.Equal(t, "ACME", id.Vendor)
	assert.Equal(t, FieldAbsent, id.Model)
	assert.Equal(t, FieldAbsent, id.Revision)
	assert.Equal(t, FieldAbsent, id.Serial)
}

func TestParseEnclosureRow(t *testing.T) {
	slot, device, err := parseEnclosureRow("[5]   enclosu  SMC  SC826-P  0001  -  /dev/sg12")
	require.NoError(t, err)
	assert.Equal(t, "5", slot)
	assert.Equal(t, "/dev/sg12", device)

	_, _, err = parseEnclosureRow("")
	assert.ErrorIs(t, err, ErrNoDevicePath)

	_, _, err = parseEnclosureRow("[5] enclosu SMC SC826-P 0001 - -")
	assert.ErrorIs(t, err, ErrNoDevicePath)
}

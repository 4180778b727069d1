package enclosure

import (
	"github.com/rs/zerolog"

	"github.com/herver/jbod-rs/internal/config"
	"github.com/herver/jbod-rs/internal/runner"
)

// Inventory composes discovery and the sensor catalogs into the four
// collections consumed by the presentation and export layers. All
// collections are built fresh per call; nothing is cached between
// invocations.
type Inventory struct {
	discovery *Discovery
	catalog   *catalog
}

// NewInventory builds an Inventory against the given runner.
func NewInventory(r runner.Runner, cfg *config.Config, log zerolog.Logger) *Inventory {
	return &Inventory{
		discovery: NewDiscovery(r, cfg, log),
		catalog:   newCatalog(r, cfg, log),
	}
}

// DiscoverEnclosures lists every attached SES enclosure. An empty
// slice is a valid result: "no enclosures found" is a displayable
// state, not a failure.
func (inv *Inventory) DiscoverEnclosures() ([]Enclosure, error) {
	return inv.discovery.Discover()
}

// CollectFanReadings runs discovery then the cooling-element pass.
func (inv *Inventory) CollectFanReadings() ([]FanReading, error) {
	enclosures, err := inv.discovery.Discover()
	if err != nil {
		return nil, err
	}
	return inv.catalog.fans(enclosures)
}

// CollectTemperatureReadings runs discovery then the temperature pass.
func (inv *Inventory) CollectTemperatureReadings() ([]TemperatureReading, error) {
	enclosures, err := inv.discovery.Discover()
	if err != nil {
		return nil, err
	}
	return inv.catalog.temperatures(enclosures)
}

// CollectVoltageReadings runs discovery then the voltage pass.
func (inv *Inventory) CollectVoltageReadings() ([]VoltageReading, error) {
	enclosures, err := inv.discovery.Discover()
	if err != nil {
		return nil, err
	}
	return inv.catalog.voltages(enclosures)
}

// Snapshot holds one full inventory pass.
type Snapshot struct {
	Enclosures   []Enclosure          `json:"enclosures"`
	Fans         []FanReading         `json:"fans"`
	Temperatures []TemperatureReading `json:"temperatures"`
	Voltages     []VoltageReading     `json:"voltages"`
}

// Snapshot runs discovery once and all three sensor passes over the
// result. Used by consumers that want every collection (the exporter,
// the combined list view) without paying for discovery four times.
func (inv *Inventory) Snapshot() (*Snapshot, error) {
	enclosures, err := inv.discovery.Discover()
	if err != nil {
		return nil, err
	}

	fans, err := inv.catalog.fans(enclosures)
	if err != nil {
		return nil, err
	}
	temps, err := inv.catalog.temperatures(enclosures)
	if err != nil {
		return nil, err
	}
	volts, err := inv.catalog.voltages(enclosures)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Enclosures:   enclosures,
		Fans:         fans,
		Temperatures: temps,
		Voltages:     volts,
	}, nil
}

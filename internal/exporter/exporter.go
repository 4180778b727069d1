// Package exporter exposes the enclosure inventory as Prometheus
// metrics. Each scrape runs a full inventory pass; the external tools
// answer in well under a second even on large shelves, so no cache
// sits between the registry and the hardware.
package exporter

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/herver/jbod-rs/internal/enclosure"
)

const namespace = "jbod"

// Collector implements prometheus.Collector over an inventory snapshot.
type Collector struct {
	inventory *enclosure.Inventory
	log       zerolog.Logger

	enclosureInfo *prometheus.Desc
	fanSpeed      *prometheus.Desc
	temperature   *prometheus.Desc
	voltage       *prometheus.Desc
	scrapeErrors  prometheus.Counter
}

// NewCollector builds a Collector over the given inventory.
func NewCollector(inv *enclosure.Inventory, log zerolog.Logger) *Collector {
	sensorLabels := []string{"slot", "serial", "index", "description"}

	return &Collector{
		inventory: inv,
		log:       log,
		enclosureInfo: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "enclosure", "info"),
			"Enclosure identity metadata, value is always 1",
			[]string{"slot", "device", "vendor", "model", "revision", "serial"}, nil),
		fanSpeed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "fan_speed_rpm"),
			"Cooling element speed in RPM",
			sensorLabels, nil),
		temperature: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "temperature_celsius"),
			"Temperature sensor reading in degrees Celsius",
			sensorLabels, nil),
		voltage: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "voltage_volts"),
			"Voltage sensor reading in volts",
			sensorLabels, nil),
		scrapeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_errors_total",
			Help:      "Inventory passes that failed entirely",
		}),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.enclosureInfo
	ch <- c.fanSpeed
	ch <- c.temperature
	ch <- c.voltage
	c.scrapeErrors.Describe(ch)
}

// Collect runs one inventory pass and converts every collection into
// const metrics. Sensors reported as absent by the enclosure are
// skipped rather than exported as zeroes.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap, err := c.inventory.Snapshot()
	if err != nil {
		c.log.Error().Err(err).Msg("inventory pass failed")
		c.scrapeErrors.Inc()
		c.scrapeErrors.Collect(ch)
		return
	}

	for _, enc := range snap.Enclosures {
		ch <- prometheus.MustNewConstMetric(c.enclosureInfo, prometheus.GaugeValue, 1,
			enc.Slot, enc.DevicePath, enc.Vendor, enc.Model, enc.Revision, enc.Serial)
	}

	for _, fan := range snap.Fans {
		ch <- prometheus.MustNewConstMetric(c.fanSpeed, prometheus.GaugeValue,
			float64(fan.Speed),
			fan.Slot, fan.Serial, fan.Index, fan.Description)
	}

	for _, t := range snap.Temperatures {
		if t.Status == enclosure.StatusNotInstalled {
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.temperature, prometheus.GaugeValue,
			float64(t.Temperature),
			t.Slot, t.Serial, t.Index, t.Description)
	}

	for _, v := range snap.Voltages {
		if v.Status == enclosure.StatusNotInstalled {
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.voltage, prometheus.GaugeValue,
			v.Voltage,
			v.Slot, v.Serial, v.Index, v.Description)
	}

	c.scrapeErrors.Collect(ch)
}

// FormatPort renders the listen address for http.ListenAndServe.
func FormatPort(address string, port int) string {
	return address + ":" + strconv.Itoa(port)
}

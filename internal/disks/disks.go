// Package disks maps physical drives to the enclosure they sit in,
// for the combined "enclosure + disks" view. The mapping is built from
// the same lsscsi/sg_inq text sources as enclosure discovery, plus
// scsi_temperature for the per-drive temperature string.
package disks

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/herver/jbod-rs/internal/config"
	"github.com/herver/jbod-rs/internal/enclosure"
	"github.com/herver/jbod-rs/internal/parse"
	"github.com/herver/jbod-rs/internal/runner"
)

// Disk is one drive slotted in an enclosure. Enclosure carries the
// slot label of the owning enclosure and is the join key for the
// combined view; temperature stays a string because the consuming
// layer renders unreadable values as-is.
type Disk struct {
	Enclosure        string `json:"enclosure"`
	DevicePath       string `json:"device_path"`
	Vendor           string `json:"vendor"`
	Model            string `json:"model"`
	Serial           string `json:"serial"`
	Temperature      string `json:"temperature"`
	FirmwareRevision string `json:"firmware_revision"`
}

// Shelf builds the disk-to-enclosure mapping.
type Shelf struct {
	run      runner.Runner
	log      zerolog.Logger
	lsscsi   string
	sgInq    string
	scsiTemp string
}

func NewShelf(r runner.Runner, cfg *config.Config, log zerolog.Logger) *Shelf {
	return &Shelf{
		run:      r,
		log:      log,
		lsscsi:   cfg.Tools.Lsscsi,
		sgInq:    cfg.Tools.SgInq,
		scsiTemp: cfg.Tools.ScsiTemperature,
	}
}

// Map lists the disk-class rows of `lsscsi -g` and attaches each disk
// to the discovered enclosure sharing its SCSI host and channel. Disks
// outside any known enclosure keep an empty join key and simply do not
// appear in the combined view.
func (s *Shelf) Map(enclosures []enclosure.Enclosure) ([]Disk, error) {
	out, err := s.run.Output(s.lsscsi, "-g")
	if err != nil {
		return nil, fmt.Errorf("lsscsi: %w", err)
	}

	var disks []Disk
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[1] != "disk" {
			continue
		}

		hctl := strings.Trim(fields[0], "[]")
		devIdx := -1
		var blockDev, sgDev string
		for i, f := range fields {
			if !strings.HasPrefix(f, "/dev/") {
				continue
			}
			if devIdx < 0 {
				devIdx = i
			}
			if strings.HasPrefix(f, "/dev/sg") {
				sgDev = f
			} else if blockDev == "" {
				blockDev = f
			}
		}
		if blockDev == "" && sgDev == "" {
			continue
		}

		queryDev := sgDev
		if queryDev == "" {
			queryDev = blockDev
		}

		disk := Disk{
			Enclosure:        matchEnclosure(hctl, enclosures),
			DevicePath:       blockDev,
			Vendor:           enclosure.FieldAbsent,
			Model:            enclosure.FieldAbsent,
			Serial:           enclosure.FieldAbsent,
			FirmwareRevision: enclosure.FieldAbsent,
		}
		if disk.DevicePath == "" {
			disk.DevicePath = sgDev
		}
		if devIdx > 2 {
			disk.Vendor = fields[2]
		}
		// Models may contain spaces ("Samsung SSD 860"), so the model is
		// everything between the vendor and the revision, which is the
		// last token before the first device path.
		switch {
		case devIdx > 4:
			disk.Model = strings.Join(fields[3:devIdx-1], " ")
			disk.FirmwareRevision = fields[devIdx-1]
		case devIdx == 4:
			disk.Model = fields[3]
		}

		id := s.inquire(queryDev)
		if id.Serial != enclosure.FieldAbsent {
			disk.Serial = id.Serial
		}
		disk.Temperature = s.temperature(queryDev)

		disks = append(disks, disk)
	}

	// Stable output regardless of lsscsi's row order; disks outside any
	// enclosure sort last.
	sort.SliceStable(disks, func(i, j int) bool {
		a, b := disks[i], disks[j]
		if a.Enclosure != b.Enclosure {
			if a.Enclosure == "" || b.Enclosure == "" {
				return b.Enclosure == ""
			}
			return a.Enclosure < b.Enclosure
		}
		return a.DevicePath < b.DevicePath
	})

	return disks, nil
}

// inquire runs sg_inq for the drive serial. A failed query degrades to
// defaults rather than dropping the disk from the view.
func (s *Shelf) inquire(device string) enclosure.Identity {
	out, err := s.run.Output(s.sgInq, device)
	if err != nil {
		s.log.Warn().Err(err).Str("device", device).Msg("sg_inq failed for disk")
		return enclosure.ParseIdentity("")
	}
	return enclosure.ParseIdentity(out)
}

// temperature shells out to scsi_temperature and keeps the first
// integer it prints, as a string. "NONE" when nothing parsable comes
// back.
func (s *Shelf) temperature(device string) string {
	out, err := s.run.Output(s.scsiTemp, device)
	if err != nil {
		s.log.Warn().Err(err).Str("device", device).Msg("scsi_temperature failed")
		return enclosure.FieldAbsent
	}
	v, ok := parse.FirstInt(out)
	if !ok {
		return enclosure.FieldAbsent
	}
	return strconv.FormatInt(v, 10)
}

// matchEnclosure joins a disk to an enclosure through the shared SCSI
// host:channel prefix of their H:C:T:L addresses. Daisy-chained
// enclosures hang off the same host but answer on their own target, so
// host and channel identify the chassis a drive belongs to.
func matchEnclosure(hctl string, enclosures []enclosure.Enclosure) string {
	prefix := hostChannel(hctl)
	if prefix == "" {
		return ""
	}
	for _, enc := range enclosures {
		if hostChannel(enc.Slot) == prefix {
			return enc.Slot
		}
	}
	return ""
}

func hostChannel(hctl string) string {
	parts := strings.SplitN(hctl, ":", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[0] + ":" + parts[1]
}

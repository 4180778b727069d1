// Package runner wraps invocation of the external enclosure-management
// tools. Every query in this program shells out to a privileged
// device-access binary; the Runner interface is the seam that lets the
// parsing layers be tested against canned output instead of hardware.
package runner

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strings"
)

// ErrToolUnavailable indicates an external tool could not be launched
// at all (missing binary or exec permission). This is fatal for the
// whole command, unlike a tool that runs but prints unexpected output.
var ErrToolUnavailable = errors.New("required external tool unavailable")

// Runner executes an external tool and exposes its standard output.
type Runner interface {
	// Output runs the tool to completion and returns its stdout.
	// A non-zero exit status is not an error: the sg3-utils tools
	// routinely exit non-zero while still printing usable pages.
	Output(name string, args ...string) (string, error)

	// Stream starts the tool and returns its stdout as a stream so
	// large page dumps can be consumed line by line. Closing the
	// stream reaps the process.
	Stream(name string, args ...string) (io.ReadCloser, error)
}

// Exec is the production Runner backed by os/exec.
type Exec struct{}

func (Exec) Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Tool launched and ran; whatever it printed is all we get.
			return string(out), nil
		}
		return "", launchError(name, err)
	}
	return string(out), nil
}

func (Exec) Stream(name string, args ...string) (io.ReadCloser, error) {
	cmd := exec.Command(name, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, launchError(name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, launchError(name, err)
	}
	return &procStream{ReadCloser: stdout, cmd: cmd}, nil
}

// procStream ties the lifetime of the child process to the stream.
type procStream struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (p *procStream) Close() error {
	p.ReadCloser.Close()
	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

func launchError(name string, err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrPermission) {
		return errors.Join(ErrToolUnavailable, err)
	}
	// exec.Error also covers PATH resolution failures on older output.
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return errors.Join(ErrToolUnavailable, err)
	}
	return fmt.Errorf("launch %s: %w", name, err)
}

// Requirement maps a tool binary to the distribution package that
// provides it, for the missing-binary report.
type Requirement struct {
	Tool    string
	Package string
}

// DefaultRequirements lists the binaries every inventory pass needs.
var DefaultRequirements = []Requirement{
	{Tool: "lsscsi", Package: "lsscsi"},
	{Tool: "sg_inq", Package: "sg3-utils"},
	{Tool: "sg_ses", Package: "sg3-utils"},
	{Tool: "scsi_temperature", Package: "sg3-utils: scsi_temperature"},
}

// Verify checks that every required binary resolves on PATH (or is an
// absolute path that exists) and returns the list of packages missing.
// All missing tools are reported at once rather than one per run.
func Verify(reqs []Requirement) []string {
	var missing []string
	for _, req := range reqs {
		if _, err := exec.LookPath(req.Tool); err != nil {
			missing = append(missing, req.Package)
		}
	}
	return missing
}

// VerifyError renders the missing-package list as a single error.
func VerifyError(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return errors.Join(ErrToolUnavailable,
		errors.New("install package(s): "+strings.Join(missing, ", ")))
}

package ses

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	outputs map[string]string
	calls   []string
}

func (f *fakeRunner) Output(name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	return f.outputs[key], nil
}

func (f *fakeRunner) Stream(name string, args ...string) (io.ReadCloser, error) {
	out, err := f.Output(name, args...)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(out)), nil
}

func TestSetIdentOn(t *testing.T) {
	fake := &fakeRunner{outputs: map[string]string{}}
	c := NewControl(fake, "sg_ses")

	require.NoError(t, c.Set("/dev/sg3", 4, LEDIdent, true))
	require.Len(t, fake.calls, 1)
	assert.Equal(t, "sg_ses --dev-slot-num=4 --set=ident /dev/sg3", fake.calls[0])
}

func TestSetFaultOff(t *testing.T) {
	fake := &fakeRunner{outputs: map[string]string{}}
	c := NewControl(fake, "sg_ses")

	require.NoError(t, c.Set("/dev/sg3", 11, LEDFault, false))
	assert.Equal(t, "sg_ses --dev-slot-num=11 --clear=fault /dev/sg3", fake.calls[0])
}

func TestSetPermissionDenied(t *testing.T) {
	fake := &fakeRunner{outputs: map[string]string{
		"sg_ses --dev-slot-num=0 --set=ident /dev/sg3": "sg_ses: Operation not permitted\n",
	}}
	c := NewControl(fake, "sg_ses")

	err := c.Set("/dev/sg3", 0, LEDIdent, true)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

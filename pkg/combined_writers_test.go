package pkg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestCombinedWriter_Write(t *testing.T) {
	stdout := &strings.Builder{}
	stdout.WriteString("already-here|")
	logFile := &strings.Builder{}

	cw := NewCombinedWriter(stdout, logFile)
	require.Len(t, cw.Writers, 2)

	for _, msg := range []string{"workout saved", "draft discarded"} {
		n, err := cw.Write([]byte(msg))
		require.NoError(t, err)
		assert.Equal(t, len(msg), n)
	}

	assert.Equal(t, "already-here|workout saveddraft discarded", stdout.String())
	assert.Equal(t, "workout saveddraft discarded", logFile.String())
}

func TestCombinedWriter_Write_WithError(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(&faultyWriter{}, sb, &faultyWriter{})

	msg := "a message"
	n, err := cw.Write([]byte(msg))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Zero(t, n)

	// the healthy writer still got it
	assert.Equal(t, msg, sb.String())
}

type faultyWriter struct{}

func (fw *faultyWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedLogger_HoldsUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	target := NewWriterLogger(&buf, true, false)
	logger := NewBufferedLogger(target)

	logger.Verbose("reading %s", "a.csv")
	logger.Info("done")
	logger.Warn("could not remove %s", "output.json")
	logger.Error("boom")
	assert.Empty(t, buf.String())

	logger.Flush()
	assert.Equal(t,
		"[VERBOSE] reading a.csv\ndone\n[WARN] could not remove output.json\n[ERROR] boom\n",
		buf.String())

	buf.Reset()
	logger.Flush()
	assert.Empty(t, buf.String(), "flush clears the buffer")
}

package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, logrus.InfoLevel)

	l.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Errorf("illegal opcode %02X", 0xD3)
	assert.Equal(t, "level=error msg=illegal opcode D3\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	assert.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewNullLogger(t *testing.T) {
	l := NewNullLogger()
	assert.NotPanics(t, func() {
		l.Infof("loaded %s", "rom")
		l.Errorf("bad opcode %02X", 0xDD)
		l.Fatal("stopped")
	})
}

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_FormatsMessages(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Info("POST /bookings - booked: slot_id=%d", 42)
	l.Warn("slot %s taken", "09:00")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "POST /bookings - booked: slot_id=42", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "slot 09:00 taken", entries[1].Message)
}

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "service.log")

	l, err := New(file, "warn")
	require.NoError(t, err)

	l.Info("skipped")
	l.Error("written: %d", 1)
	_ = l.Close()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written: 1")
	assert.NotContains(t, string(data), "skipped")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}

func TestNew_JSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "service.json")

	l, err := New(file, "info", WithJSON())
	require.NoError(t, err)

	l.Info("booked: slot_id=%d", 7)
	_ = l.Close()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"booked: slot_id=7"`)
	assert.Contains(t, string(data), `"level":"info"`)
}

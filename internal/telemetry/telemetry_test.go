package telemetry

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.Info("round complete", Int("round", 3), String("profile", "pareto"))

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "round complete")
	assert.Contains(t, out, "round=3")
	assert.Contains(t, out, "profile=pareto")
}

func TestLoggerSuppressesBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.SetLevel(Warn)
	log.Info("should not appear")
	log.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}

func TestWithCarriesFieldsToChildLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf).With(String("worker", "w1"))
	log.Info("started")
	assert.Contains(t, buf.String(), "worker=w1")
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithWriter(&buf)
	child := parent.WithField("id", 7)

	parent.Info("from parent")
	child.Info("from child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.NotContains(t, lines[0], "id=7")
	assert.Contains(t, lines[1], "id=7")
}

func TestLevelStringUnknownFallsBack(t *testing.T) {
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

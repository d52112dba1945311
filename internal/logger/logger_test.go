package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWithOutputJSONFormat(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	log := NewWithOutput(&output, "debug", "json")
	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", log.GetLevel())
	}

	log.WithField("request_id", "abc").Info("prediction served")

	entry := map[string]any{}
	if err := json.Unmarshal(output.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", output.String(), err)
	}
	if entry["msg"] != "prediction served" {
		t.Fatalf("expected msg field, got %#v", entry)
	}
	if entry["request_id"] != "abc" {
		t.Fatalf("expected request_id field, got %#v", entry)
	}
}

func TestNewWithOutputInvalidLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	log := NewWithOutput(&output, "verbose", "text")
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info fallback, got %s", log.GetLevel())
	}
	if !strings.Contains(output.String(), "Invalid log level") {
		t.Fatalf("expected fallback warning, got %q", output.String())
	}
}

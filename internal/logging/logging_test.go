package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONLoggerWritesComponentField(t *testing.T) {
	var output bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: FormatJSON, Output: &output})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	Component(logger, "orders").WithField("order_id", 7).Info("order created")

	payload := map[string]any{}
	if err := json.Unmarshal(output.Bytes(), &payload); err != nil {
		t.Fatalf("decode log line %q: %v", output.String(), err)
	}
	if payload["component"] != "orders" {
		t.Fatalf("expected component=orders, got %v", payload["component"])
	}
	if payload["msg"] != "order created" {
		t.Fatalf("expected msg, got %v", payload["msg"])
	}
	if payload["order_id"] != float64(7) {
		t.Fatalf("expected order_id=7, got %v", payload["order_id"])
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected invalid level to fail")
	}
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected invalid format to fail")
	}
}

func TestNewTextLoggerRespectsLevel(t *testing.T) {
	var output bytes.Buffer
	logger, err := New(Options{Level: "warn", Output: &output})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	text := output.String()
	if strings.Contains(text, "hidden") {
		t.Fatalf("expected info line to be filtered, got %q", text)
	}
	if !strings.Contains(text, "visible") {
		t.Fatalf("expected warn line, got %q", text)
	}
}

func TestComponentToleratesNilLogger(t *testing.T) {
	entry := Component(nil, "auth")
	if entry.Data["component"] != "auth" {
		t.Fatalf("expected component field, got %v", entry.Data)
	}
	entry.Info("discarded")
}

package logger_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"go.trai.ch/obslog/internal/adapters/logger"
	"go.trai.ch/obslog/internal/core/domain"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Info("document loaded", "path", "/logs/2024.xml", "elements", 42)

	output := buf.String()
	for _, want := range []string{"INFO", "document loaded", "path=/logs/2024.xml", "elements=42"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Warn("removal blocked", "dependents", 2)

	output := buf.String()
	if !strings.Contains(output, "WARN") || !strings.Contains(output, "removal blocked") {
		t.Errorf("Expected a WARN record for 'removal blocked', got: %s", output)
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Error(domain.Annotate(domain.ErrLoad, "path", "broken.xml"))

	output := buf.String()
	if !strings.Contains(output, "ERROR") {
		t.Errorf("Expected output to contain 'ERROR', got: %s", output)
	}
	if !strings.Contains(output, "failed to load document") {
		t.Errorf("Expected output to contain the error message, got: %s", output)
	}
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	lg := logger.NewWithWriter(&first)

	lg.Info("before")
	lg.SetOutput(&second)
	lg.Info("after")

	if strings.Contains(first.String(), "after") {
		t.Errorf("Expected first writer to stop receiving records, got: %s", first.String())
	}
	if !strings.Contains(second.String(), "after") {
		t.Errorf("Expected second writer to receive 'after', got: %s", second.String())
	}
}

func TestNew(t *testing.T) {
	original := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stderr = w
	defer func() { os.Stderr = original }()

	lg := logger.New()
	if lg == nil {
		t.Fatal("Expected New() to return a non-nil logger")
	}
	lg.Info("test initialization")

	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close pipe: %v", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("Failed to read pipe: %v", err)
	}
	if !strings.Contains(buf.String(), "test initialization") {
		t.Errorf("Expected logger to log 'test initialization', got: %s", buf.String())
	}
}

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf))

	z.Info("rendered",
		String("out", "payload.png"),
		Int("frames", 12),
		Bool("verified", true),
		Duration("took", 2*time.Second),
		Err(errors.New("boom")),
		Any("delay", []int{1, 10}),
	)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if got["message"] != "rendered" {
		t.Errorf("message = %v, want rendered", got["message"])
	}
	if got["out"] != "payload.png" {
		t.Errorf("out = %v, want payload.png", got["out"])
	}
	if got["frames"] != float64(12) {
		t.Errorf("frames = %v, want 12", got["frames"])
	}
	if got["verified"] != true {
		t.Errorf("verified = %v, want true", got["verified"])
	}
	if got["error"] != "boom" {
		t.Errorf("error = %v, want boom", got["error"])
	}
	if got["level"] != "info" {
		t.Errorf("level = %v, want info", got["level"])
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	z.Debug("hidden")
	z.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug and info to be filtered, got %q", buf.String())
	}

	z.Warn("shown")
	z.Error("shown")
	if n := bytes.Count(buf.Bytes(), []byte("\n")); n != 2 {
		t.Errorf("got %d lines, want 2", n)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    zerolog.Level
		wantErr bool
	}{
		{name: "", want: zerolog.InfoLevel},
		{name: "debug", want: zerolog.DebugLevel},
		{name: "warn", want: zerolog.WarnLevel},
		{name: "loud", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

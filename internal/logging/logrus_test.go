package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_LevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput("warn", "json", &buf)
	if l.GetLevel() != logrus.WarnLevel {
		t.Fatalf("level = %v, want warn", l.GetLevel())
	}
	l.Info("dropped")
	l.Warn("kept")
	if strings.Contains(buf.String(), "dropped") {
		t.Fatalf("info line should be filtered: %s", buf.String())
	}
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON output: %v (%s)", err, buf.String())
	}
	if line["msg"] != "kept" {
		t.Fatalf("msg = %v", line["msg"])
	}
}

func TestNew_FallbackLevel(t *testing.T) {
	l := NewWithOutput("loud", "text", &bytes.Buffer{})
	if l.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %v, want info", l.GetLevel())
	}
	if _, ok := l.Formatter.(*logrus.TextFormatter); !ok {
		t.Fatalf("formatter = %T, want text", l.Formatter)
	}
}

func TestLogError_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput("error", "json", &buf)
	LogError(l, "report", "Submit", "save failed", map[string]string{"report_id": "r1"}, errors.New("boom"))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("json: %v", err)
	}
	if line["module"] != "report" || line["funcName"] != "Submit" || line["msg"] != "boom" {
		t.Fatalf("unexpected fields: %v", line)
	}
	if _, ok := line["data"]; !ok {
		t.Fatalf("data field missing: %v", line)
	}
}

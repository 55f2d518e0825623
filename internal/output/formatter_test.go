package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

func init() {
	// Disable color for tests
	color.NoColor = true
}

// capture collects everything written during f.
func capture(t *testing.T, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)
	f()
	return buf.String()
}

func TestJSON(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		type item struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		}
		output := capture(t, func() {
			_ = JSON([]item{{Name: "host", Value: "example.com"}})
		})

		var result []item
		if err := json.Unmarshal([]byte(output), &result); err != nil {
			t.Fatalf("JSON output is invalid: %v", err)
		}
		if len(result) != 1 || result[0].Value != "example.com" {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("empty object", func(t *testing.T) {
		output := capture(t, func() {
			_ = JSON(map[string]interface{}{})
		})
		if !strings.Contains(output, "{}") {
			t.Errorf("expected empty object, got %s", output)
		}
	})
}

func TestYAML(t *testing.T) {
	data := map[string]map[string]string{"server": {"host": "example.com"}}
	output := capture(t, func() {
		if err := YAML(data); err != nil {
			t.Fatalf("YAML failed: %v", err)
		}
	})

	var result map[string]map[string]string
	if err := yaml.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("YAML output is invalid: %v", err)
	}
	if result["server"]["host"] != "example.com" {
		t.Errorf("unexpected result %v", result)
	}
	if !strings.HasPrefix(output, "server:\n  host:") {
		t.Errorf("expected two-space indent, got %q", output)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"ini", FormatINI, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"toml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestTable(t *testing.T) {
	t.Run("basic table", func(t *testing.T) {
		output := capture(t, func() {
			Table([]string{"NAME", "VALUE"}, [][]string{{"host", "example.com"}, {"port", "80"}})
		})
		want := "NAME  VALUE\n----  -----------\nhost  example.com\nport  80\n"
		if output != want {
			t.Errorf("Table output = %q, want %q", output, want)
		}
	})

	t.Run("empty headers", func(t *testing.T) {
		output := capture(t, func() {
			Table([]string{}, [][]string{{"data"}})
		})
		if output != "" {
			t.Errorf("expected no output for empty headers, got %s", output)
		}
	})

	t.Run("uneven columns", func(t *testing.T) {
		output := capture(t, func() {
			Table([]string{"COL1", "COL2", "COL3"}, [][]string{{"a", "b"}, {"x", "y", "z", "w"}})
		})
		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected 4 lines, got %d", len(lines))
		}
		if strings.Contains(output, "w") {
			t.Error("extra columns should be ignored")
		}
	})

	t.Run("multibyte cells align", func(t *testing.T) {
		output := capture(t, func() {
			Table([]string{"K", "V"}, [][]string{{"café", "1"}, {"ab", "2"}})
		})
		lines := strings.Split(strings.TrimSpace(output), "\n")
		if !strings.HasPrefix(lines[3], "ab    2") {
			t.Errorf("expected rune-based padding, got %q", lines[3])
		}
	})
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(string, ...interface{})
		symbol string
	}{
		{"success", Success, "✓"},
		{"error", Error, "✗"},
		{"warn", Warn, "!"},
		{"info", Info, "→"},
		{"print", Print, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := capture(t, func() {
				tt.fn("Section %s has %d options", "server", 3)
			})
			if !strings.Contains(output, "Section server has 3 options") {
				t.Errorf("expected formatted message, got %q", output)
			}
			if !strings.Contains(output, tt.symbol) {
				t.Errorf("expected symbol %q, got %q", tt.symbol, output)
			}
		})
	}
}

func TestSectionAndKeyValue(t *testing.T) {
	output := capture(t, func() {
		Section("server")
		KeyValue("host", "example.com")
	})
	if output != "[server]\nhost = example.com\n" {
		t.Errorf("unexpected output %q", output)
	}
}

package variables

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ksyq12/inicfg/internal/ini"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    Dictionary
		wantErr bool
	}{
		{"empty", nil, Dictionary{}, false},
		{"pairs", []string{"ENV=prod", "x = a=b"}, Dictionary{"ENV": "prod", "x": " a=b"}, false},
		{"empty value", []string{"E="}, Dictionary{"E": ""}, false},
		{"no equals", []string{"ENV"}, nil, true},
		{"no name", []string{"=v"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.pairs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	d := New(map[string]string{"DIR": "conf & more", "ENV": "prod"})

	tests := []struct {
		in   string
		want string
	}{
		{"plain.ini", "plain.ini"},
		{"{{DIR}}/{{ENV}}.ini", "conf & more/prod.ini"},
		{"{{MISSING}}x", "x"},
	}
	for _, tt := range tests {
		got, err := d.Resolve(tt.in)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := d.Resolve("{{#if}}"); err == nil {
		t.Error("expected a template syntax error")
	}
}

func TestResolveAll(t *testing.T) {
	d := New(nil)
	d.Set("HOME", "/home/u")
	d.Set("ROOT", "{{HOME}}/conf")

	if err := d.ResolveAll(); err != nil {
		t.Fatalf("ResolveAll failed: %v", err)
	}
	if d.Get("ROOT") != "/home/u/conf" {
		t.Errorf("ROOT = %q", d.Get("ROOT"))
	}
}

func TestResolveAllChained(t *testing.T) {
	for i := 0; i < 50; i++ {
		d := New(map[string]string{"A": "{{B}}", "B": "{{C}}/b", "C": "x", "Z": "{{A}}/z"})
		if err := d.ResolveAll(); err != nil {
			t.Fatalf("ResolveAll failed: %v", err)
		}
		want := map[string]string{"A": "x/b", "B": "x/b", "C": "x", "Z": "x/b/z"}
		if diff := cmp.Diff(want, d.Map()); diff != "" {
			t.Fatalf("run %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestResolveAllNeverSettles(t *testing.T) {
	d := New(map[string]string{"A": "x{{A}}"})
	if err := d.ResolveAll(); err == nil {
		t.Errorf("expected an error, got A = %q", d.Get("A"))
	}
}

func TestSubstituterInterface(t *testing.T) {
	var s ini.Substituter = New(map[string]string{"E": "dev"})
	got, err := s.Substitute("{{E}}.ini")
	if err != nil || got != "dev.ini" {
		t.Errorf("Substitute = %q, %v", got, err)
	}
}

func TestHelpers(t *testing.T) {
	d := New(map[string]string{"b": "Yes", "a": "0"})
	if !d.Has("a") || d.Has("c") {
		t.Error("Has mismatch")
	}
	if diff := cmp.Diff([]string{"a", "b"}, d.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	d.Merge(map[string]string{"a": "1"})
	m := d.Map()
	m["a"] = "changed"
	if d.Get("a") != "1" {
		t.Error("Map should return a copy")
	}
}

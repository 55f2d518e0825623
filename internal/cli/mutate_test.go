package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	inierrors "github.com/ksyq12/inicfg/internal/errors"
)

func TestRunSet(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		args        []string
		create      bool
		wantErr     error
		wantSaved   bool
		wantContent string
	}{
		{
			name:        "update existing option",
			files:       map[string]string{"a.ini": "[s]\nk = 1\n"},
			args:        []string{"a.ini", "s", "k", "2"},
			wantSaved:   true,
			wantContent: "[s]\nk=2\n",
		},
		{
			name:        "interpolation kept verbatim",
			files:       map[string]string{"a.ini": "[s]\n"},
			args:        []string{"a.ini", "s", "URL", "%(host)/x"},
			wantSaved:   true,
			wantContent: "[s]\nurl=%(host)/x\n",
		},
		{
			name:    "missing section without create",
			files:   map[string]string{"a.ini": "[s]\n"},
			args:    []string{"a.ini", "t", "k", "v"},
			wantErr: inierrors.ErrNoSection,
		},
		{
			name:        "create section",
			files:       map[string]string{"a.ini": "[s]\n"},
			args:        []string{"a.ini", "t", "k", "v"},
			create:      true,
			wantSaved:   true,
			wantContent: "[s]\n\n[t]\nk=v\n",
		},
		{
			name:        "create file",
			files:       map[string]string{},
			args:        []string{"new.ini", "s", "k", "v"},
			create:      true,
			wantSaved:   true,
			wantContent: "[s]\nk=v\n",
		},
		{
			name:        "create DEFAULT",
			files:       map[string]string{"a.ini": "[s]\n"},
			args:        []string{"a.ini", "default", "k", "v"},
			create:      true,
			wantSaved:   true,
			wantContent: "[DEFAULT]\nk=v\n\n[s]\n",
		},
		{
			name:    "missing file without create",
			files:   map[string]string{},
			args:    []string{"new.ini", "s", "k", "v"},
			wantErr: inierrors.ErrIO,
		},
		{
			name:    "trailing backslash would join lines",
			files:   map[string]string{"a.ini": "[s]\nnext = 1\n"},
			args:    []string{"a.ini", "s", "path", `C:\dir\`},
			wantErr: inierrors.ErrValidation,
		},
		{
			name:    "line break in value",
			files:   map[string]string{"a.ini": "[s]\n"},
			args:    []string{"a.ini", "s", "msg", "a\nb"},
			wantErr: inierrors.ErrValidation,
		},
		{
			name:    "invalid section name",
			files:   map[string]string{"a.ini": "[s]\n"},
			args:    []string{"a.ini", "a]b", "k", "v"},
			wantErr: inierrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHelper(t, tt.files)
			setCreate = tt.create
			captureOutput(t)

			err := runSet(setCmd, tt.args)
			if tt.wantErr != nil {
				if !inierrors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(h.Files.SaveCalls) != 0 {
					t.Error("nothing should be saved on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("runSet failed: %v", err)
			}
			if tt.wantSaved && len(h.Files.SaveCalls) != 1 {
				t.Fatalf("expected 1 save, got %d", len(h.Files.SaveCalls))
			}
			if diff := cmp.Diff(tt.wantContent, h.Files.Files[tt.args[0]]); diff != "" {
				t.Errorf("file mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunSetDryRun(t *testing.T) {
	h := NewTestHelper(t, map[string]string{"a.ini": "[s]\nk = 1\n"})
	dryRun = true
	buf := captureOutput(t)

	if err := runSet(setCmd, []string{"a.ini", "s", "k", "2"}); err != nil {
		t.Fatalf("runSet failed: %v", err)
	}
	if len(h.Files.SaveCalls) != 0 {
		t.Error("dry run must not save")
	}
	if buf.String() != "[s]\nk=2\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestMutateRefusesIncludedFiles(t *testing.T) {
	common := filepath.Join(t.TempDir(), "common.ini")
	if err := os.WriteFile(common, []byte("[common]\nshared = yes\n"), 0o644); err != nil {
		t.Fatalf("failed to write include: %v", err)
	}
	const root = "main.ini"
	content := "[app]\nname = demo\n<" + common + ">\n"

	tests := []struct {
		name string
		run  func() error
	}{
		{"set", func() error { return runSet(setCmd, []string{root, "app", "name", "x"}) }},
		{"remove", func() error {
			forceRemove = true
			return runRemove(removeCmd, []string{root, "app", "name"})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHelper(t, map[string]string{root: content})
			yes := true
			h.MockConfig.Cfg.Parser.Include = &yes
			captureOutput(t)

			if err := tt.run(); !inierrors.Is(err, inierrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(h.Files.SaveCalls) != 0 {
				t.Error("included content must not be written back")
			}
			if h.Files.Files[root] != content {
				t.Errorf("file changed: %q", h.Files.Files[root])
			}
		})
	}
}

func TestRunSetSaveError(t *testing.T) {
	h := NewTestHelper(t, map[string]string{"a.ini": "[s]\n"})
	h.Files.SaveErr = errors.New("disk full")
	captureOutput(t)

	err := runSet(setCmd, []string{"a.ini", "s", "k", "v"})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected save error, got %v", err)
	}
}

func TestRunRemove(t *testing.T) {
	const content = "[a]\nx = 1\ny = 2\n[b]\nz = 3\n"

	tests := []struct {
		name        string
		args        []string
		force       bool
		stdinInput  string
		wantErr     error
		wantSaved   bool
		wantContent string
		wantOutput  string
	}{
		{
			name:        "remove option with force flag",
			args:        []string{"c.ini", "a", "x"},
			force:       true,
			wantSaved:   true,
			wantContent: "[a]\ny=2\n\n[b]\nz=3\n",
		},
		{
			name:        "remove section with confirmation",
			args:        []string{"c.ini", "b"},
			stdinInput:  "yes\n",
			wantSaved:   true,
			wantContent: "[a]\nx=1\ny=2\n",
		},
		{
			name:        "remove cancelled by user",
			args:        []string{"c.ini", "b"},
			stdinInput:  "n\n",
			wantContent: content,
			wantOutput:  "Removal cancelled",
		},
		{
			name:        "empty stdin cancels",
			args:        []string{"c.ini", "a", "x"},
			stdinInput:  "",
			wantContent: content,
			wantOutput:  "Removal cancelled",
		},
		{
			name:    "missing option",
			args:    []string{"c.ini", "a", "nope"},
			force:   true,
			wantErr: inierrors.ErrNoOption,
		},
		{
			name:    "missing section",
			args:    []string{"c.ini", "nope"},
			force:   true,
			wantErr: inierrors.ErrNoSection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHelper(t, map[string]string{"c.ini": content})
			h.SetStdinInput(tt.stdinInput)
			forceRemove = tt.force
			buf := captureOutput(t)

			err := runRemove(removeCmd, tt.args)
			if tt.wantErr != nil {
				if !inierrors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("runRemove failed: %v", err)
			}
			if got := len(h.Files.SaveCalls) == 1; got != tt.wantSaved {
				t.Errorf("saved = %v, want %v", got, tt.wantSaved)
			}
			if diff := cmp.Diff(tt.wantContent, h.Files.Files["c.ini"]); diff != "" {
				t.Errorf("file mismatch (-want +got):\n%s", diff)
			}
			if tt.wantOutput != "" && !strings.Contains(buf.String(), tt.wantOutput) {
				t.Errorf("output should contain %q, got %q", tt.wantOutput, buf.String())
			}
		})
	}
}

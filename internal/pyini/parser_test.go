package pyini

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/ini"
)

func newParser(t *testing.T, defaults map[string]string, input string) *ConfigParser {
	t.Helper()
	p := New(defaults, ini.DefaultOptions())
	if err := p.ReadFrom(strings.NewReader(input), "test.ini"); err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	return p
}

func TestGetResolutionOrder(t *testing.T) {
	const input = `
[DEFAULT]
x = 4
[a]
y = %(x)
[b]
x = 1
y = %(x)
`
	tests := []struct {
		name     string
		section  string
		defaults map[string]string
		vars     map[string]string
		want     string
	}{
		{"own section wins", "b", map[string]string{"x": "2"}, map[string]string{"x": "3"}, "1"},
		{"vars before defaults", "a", map[string]string{"x": "2"}, map[string]string{"x": "3"}, "3"},
		{"defaults before DEFAULT section", "a", map[string]string{"x": "2"}, nil, "2"},
		{"DEFAULT section last", "a", nil, nil, "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, tt.defaults, input)
			got, err := p.GetWithVars(tt.section, "y", tt.vars)
			if err != nil {
				t.Fatalf("GetWithVars failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("GetWithVars = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetMissingReference(t *testing.T) {
	p := newParser(t, nil, "[a]\ny = pre-%(x)-post\n")

	_, err := p.Get("a", "y")
	if !errors.Is(err, errors.ErrInterpolationMissing) {
		t.Fatalf("expected missing interpolation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "%(x)") {
		t.Errorf("error should name the token, got %q", err.Error())
	}
	var iniErr *errors.IniError
	if !errors.As(err, &iniErr) || iniErr.Section != "a" || iniErr.Option != "y" {
		t.Errorf("error should carry section and option, got %+v", iniErr)
	}
}

func TestGetValues(t *testing.T) {
	p := newParser(t, nil, `
[DEFAULT]
prefix = /opt
[app]
home = %(prefix)/app
bin = %(home)/bin
plain = no tokens here
percent = 100%
escaped = \%(home)
two = %(prefix)%(prefix)
`)

	tests := []struct {
		option string
		want   string
	}{
		{"plain", "no tokens here"},
		{"percent", "100%"},
		{"escaped", `\%(home)`},
		{"home", "/opt/app"},
		{"bin", "/opt/app/bin"},
		{"two", "/opt/opt"},
		{"BIN", "/opt/app/bin"},
	}
	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			got, err := p.Get("app", tt.option)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Get = %q, want %q", got, tt.want)
			}
		})
	}

	raw, err := p.GetRaw("app", "bin")
	if err != nil || raw != "%(home)/bin" {
		t.Errorf("GetRaw = %q, %v", raw, err)
	}
}

func TestGetCycle(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"mutual", "[a]\nx = %(y)\ny = %(x)\n"},
		{"self", "[a]\nx = %(x)\n"},
		{"doubling", "[a]\nx = %(x)%(x)\n"},
		{"through a chain", "[a]\nx = %(y)\ny = %(z)\nz = pre-%(X)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, nil, tt.input)
			_, err := p.Get("a", "x")
			if !errors.Is(err, errors.ErrInterpolationCycle) {
				t.Errorf("expected cycle error, got %v", err)
			}
		})
	}
}

func TestGetManyTokens(t *testing.T) {
	const n = 1500
	p := newParser(t, nil, "[a]\nv = x\nwide = "+strings.Repeat("%(v)", n)+"\n")

	got, err := p.Get("a", "wide")
	if err != nil {
		t.Fatalf("a long but finite value should resolve, got %v", err)
	}
	if got != strings.Repeat("x", n) {
		t.Errorf("Get returned %d runes, want %d", len(got), n)
	}
}

func TestGetRepeatedNameWithoutCycle(t *testing.T) {
	p := newParser(t, nil, `
[DEFAULT]
base = /srv
[a]
left = %(base)/l
right = %(base)/r
both = %(left):%(right):%(base)
`)
	got, err := p.Get("a", "both")
	if err != nil || got != "/srv/l:/srv/r:/srv" {
		t.Errorf("Get(both) = %q, %v", got, err)
	}
}

func TestGetErrors(t *testing.T) {
	p := newParser(t, nil, "[a]\nx = 1\n")

	if _, err := p.Get("missing", "x"); !errors.Is(err, errors.ErrNoSection) {
		t.Errorf("expected NoSection, got %v", err)
	}
	if _, err := p.Get("a", "missing"); !errors.Is(err, errors.ErrNoOption) {
		t.Errorf("expected NoOption, got %v", err)
	}
	if _, err := p.Options("missing"); !errors.Is(err, errors.ErrNoSection) {
		t.Errorf("expected NoSection from Options, got %v", err)
	}
	if err := p.Set("missing", "x", "1"); !errors.Is(err, errors.ErrNoSection) {
		t.Errorf("expected NoSection from Set, got %v", err)
	}
}

func TestAddSection(t *testing.T) {
	p := New(nil, ini.DefaultOptions())

	if err := p.AddSection("a"); err != nil {
		t.Fatalf("AddSection failed: %v", err)
	}
	if err := p.AddSection("A"); !errors.Is(err, errors.ErrDuplicateSection) {
		t.Errorf("expected duplicate section error, got %v", err)
	}
	if err := p.AddSection("default"); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("expected validation error for the reserved name, got %v", err)
	}
	if !p.HasSection("a") {
		t.Error("HasSection(a) = false")
	}
}

func TestTypedGetters(t *testing.T) {
	p := newParser(t, nil, `
[t]
yes = Yes
off = off
one = 1
n = 42
big = 9000000000
f = 2.5
bad = maybe
ref = %(n)
`)

	for option, want := range map[string]bool{"yes": true, "off": false, "one": true} {
		got, err := p.GetBool("t", option)
		if err != nil || got != want {
			t.Errorf("GetBool(%s) = %v, %v; want %v", option, got, err, want)
		}
	}
	if _, err := p.GetBool("t", "bad"); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	if n, err := p.GetInt("t", "ref"); err != nil || n != 42 {
		t.Errorf("GetInt(ref) = %d, %v", n, err)
	}
	if _, err := p.GetInt("t", "bad"); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if n, err := p.GetInt64("t", "big"); err != nil || n != 9000000000 {
		t.Errorf("GetInt64(big) = %d, %v", n, err)
	}
	if f, err := p.GetFloat("t", "f"); err != nil || f != 2.5 {
		t.Errorf("GetFloat(f) = %v, %v", f, err)
	}
}

func TestItems(t *testing.T) {
	p := newParser(t, nil, "[DEFAULT]\nbase = /b\n[s]\nz = %(base)/z\na = %(v)\n")

	got, err := p.Items("s", false, map[string]string{"v": "var"})
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	want := []Item{{Name: "z", Value: "/b/z"}, {Name: "a", Value: "var"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}

	raw, err := p.Items("s", true, nil)
	if err != nil {
		t.Fatalf("raw Items failed: %v", err)
	}
	if raw[1].Value != "%(v)" {
		t.Errorf("raw Items should not interpolate, got %q", raw[1].Value)
	}

	if _, err := p.Items("s", false, nil); !errors.Is(err, errors.ErrInterpolationMissing) {
		t.Errorf("expected missing interpolation without vars, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	p := newParser(t, nil, "[a]\nx = 1\n[b]\n")

	removed, err := p.RemoveOption("a", "X")
	if err != nil || !removed {
		t.Errorf("RemoveOption = %v, %v", removed, err)
	}
	if p.HasOption("a", "x") {
		t.Error("option still present")
	}
	if !p.RemoveSection("b") || p.RemoveSection("b") {
		t.Error("RemoveSection should report presence once")
	}
	if diff := cmp.Diff([]string{"a"}, p.Sections()); diff != "" {
		t.Errorf("Sections mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	p := New(nil, ini.DefaultOptions())
	if err := p.AddSection("app"); err != nil {
		t.Fatalf("AddSection failed: %v", err)
	}
	if err := p.Set("app", "Home", `%(root)\app`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	p.Store().AddSection(DefaultSectionName).Put("root", "C:")

	var out bytes.Buffer
	if err := p.Write(&out); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := "[DEFAULT]\nroot=C:\n\n[app]\nhome=%(root)\\app\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("Write mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "out.ini")
	if err := p.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	again := New(nil, ini.DefaultOptions())
	if err := again.Read(path); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	got, err := again.Get("app", "home")
	if err != nil || got != `C:\app` {
		t.Errorf("Get after round trip = %q, %v", got, err)
	}
}

func TestSetRejectsUnwritableValues(t *testing.T) {
	tests := []struct {
		name   string
		option string
		value  string
	}{
		{"odd trailing backslash", "path", `C:\dir\`},
		{"newline", "msg", "a\nb"},
		{"carriage return", "msg", "a\r\nb"},
		{"comment char in name", "#path", "x"},
		{"operator in name", "a=b", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, nil, "[s]\nother = 1\n")
			err := p.Set("s", tt.option, tt.value)
			if !errors.Is(err, errors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if p.HasOption("s", tt.option) {
				t.Error("rejected option should not be stored")
			}
		})
	}
}

func TestWriteRoundTripBackslashes(t *testing.T) {
	p := newParser(t, nil, "[s]\n")
	if err := p.Set("s", "path", `C:\dir\\`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := p.Set("s", "other", "1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var out bytes.Buffer
	if err := p.Write(&out); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	again := newParser(t, nil, out.String())
	for option, want := range map[string]string{"path": `C:\dir\\`, "other": "1"} {
		if got, err := again.GetRaw("s", option); err != nil || got != want {
			t.Errorf("GetRaw(%s) = %q, %v; want %q", option, got, err, want)
		}
	}
}

func TestWriteRejectsUnwritableStore(t *testing.T) {
	p := newParser(t, nil, "[s]\n")
	sec, _ := p.Section("s")
	sec.Put("msg", "a\nb")

	var out bytes.Buffer
	if err := p.Write(&out); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if err := p.WriteFile(filepath.Join(t.TempDir(), "out.ini")); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("expected validation error from WriteFile, got %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	p := New(nil, ini.DefaultOptions())
	err := p.Read(filepath.Join(t.TempDir(), "absent.ini"))
	if !errors.Is(err, errors.ErrIO) {
		t.Errorf("expected IO error, got %v", err)
	}
}

func TestProfileAccess(t *testing.T) {
	p := newParser(t, nil, "[app]\n[app/db]\nhost = h\n[app/db/replica]\n")

	app, ok := p.Section("app")
	if !ok {
		t.Fatal("section app missing")
	}
	if diff := cmp.Diff([]string{"db"}, app.ChildrenNames()); diff != "" {
		t.Errorf("ChildrenNames mismatch (-want +got):\n%s", diff)
	}
	db, ok := app.Child("db")
	if !ok {
		t.Fatal("child db missing")
	}
	if v, _ := db.Get("host"); v != "h" {
		t.Errorf("db host = %q", v)
	}
}

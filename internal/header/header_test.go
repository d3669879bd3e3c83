package header

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	gen, err := NewGenerator("SVN_REV", "PIO_ENV")
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	info := Info{Revision: "123M", Timestamp: "2026-08-23 10:00:00.000001"}
	text, err := gen.Render(info)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := `// AUTO GENERATED FILE, DO NOT EDIT
#ifndef SVN_REV
    #define SVN_REV "123M"
#endif
// last checked 2026-08-23 10:00:00.000001
`
	if text != want {
		t.Errorf("Unexpected header:\n%s\nwant:\n%s", text, want)
	}
}

func TestRenderWithEnvironment(t *testing.T) {
	gen, err := NewGenerator("SVN_REV", "PIO_ENV")
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	info := Info{Revision: "4711:4713MS", Environment: "esp32-eth-debug", Timestamp: "2026-08-23 10:00:00.000002"}
	text, err := gen.Render(info)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(text, `#define SVN_REV "4711:4713MS"`) {
		t.Errorf("Header missing revision macro:\n%s", text)
	}
	if !strings.Contains(text, "#ifndef PIO_ENV\n    #define PIO_ENV \"esp32-eth-debug\"\n#endif\n") {
		t.Errorf("Header missing guarded environment macro:\n%s", text)
	}
}

func TestRenderEmptyRevision(t *testing.T) {
	gen, err := NewGenerator("SVN_REV", "PIO_ENV")
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	text, err := gen.Render(Info{Timestamp: "2026-08-23 10:00:00.000003"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(text, `#define SVN_REV ""`) {
		t.Errorf("Expected empty revision macro:\n%s", text)
	}
	if strings.Contains(text, "PIO_ENV") {
		t.Errorf("Environment macro should be absent without an environment:\n%s", text)
	}
}

func TestRenderEscapesValue(t *testing.T) {
	gen, err := NewGenerator("SVN_REV", "PIO_ENV")
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	text, err := gen.Render(Info{Revision: `we"ird\rev`, Timestamp: "now"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(text, `#define SVN_REV "we\"ird\\rev"`) {
		t.Errorf("Expected escaped revision literal:\n%s", text)
	}
}

func TestCustomTemplate(t *testing.T) {
	tmplPath := filepath.Join(t.TempDir(), "header.tmpl")
	content := `#define {{ .RevisionMacro }}_STR "{{ cstring .Revision }}" // {{ upper .Environment }}`
	if err := os.WriteFile(tmplPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	gen, err := NewGenerator("SVN_REV", "PIO_ENV")
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	if err := gen.LoadTemplate(tmplPath); err != nil {
		t.Fatalf("LoadTemplate failed: %v", err)
	}

	text, err := gen.Render(Info{Revision: "99", Environment: "debug"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := `#define SVN_REV_STR "99" // DEBUG`
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Revision.h")
	gen, err := NewGenerator("SVN_REV", "PIO_ENV")
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	first, err := gen.Render(Info{Revision: "123M", Timestamp: "2026-08-23 10:00:00.000004"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if err := Write(path, first); err != nil {
		t.Fatalf("First write failed: %v", err)
	}

	second, err := gen.Render(Info{Revision: "123M", Timestamp: "2026-08-23 10:00:01.000005"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if err := Write(path, second); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != second {
		t.Error("Second write did not overwrite the first")
	}

	// Same macro value, different timestamp comment
	rev1, _ := ParseMacro(first, "SVN_REV")
	rev2, _ := ParseMacro(second, "SVN_REV")
	if rev1 != rev2 {
		t.Errorf("Macro values differ between runs: %q vs %q", rev1, rev2)
	}
	if first == second {
		t.Error("Expected differing timestamp comments between runs")
	}
}

func TestDefineFlag(t *testing.T) {
	tests := []struct {
		macro string
		value string
		want  string
	}{
		{macro: "SVN_REV", value: "123M", want: `'-DSVN_REV="123M"'`},
		{macro: "SVN_REV", value: "", want: `'-DSVN_REV=""'`},
		{macro: "PIO_ENV", value: "debug", want: `'-DPIO_ENV="debug"'`},
	}

	for _, tt := range tests {
		if got := DefineFlag(tt.macro, tt.value); got != tt.want {
			t.Errorf("DefineFlag(%q, %q) = %q, want %q", tt.macro, tt.value, got, tt.want)
		}
	}
}

func TestParseMacro(t *testing.T) {
	content := `// AUTO GENERATED FILE, DO NOT EDIT
#ifndef SVN_REV
    #define SVN_REV "4711:4713MS"
#endif
#ifndef PIO_ENV
    #define PIO_ENV "esp32-eth"
#endif
// last checked 2026-08-23 10:00:00.000006
`

	tests := []struct {
		name    string
		macro   string
		want    string
		wantOK  bool
		content string
	}{
		{name: "revision", macro: "SVN_REV", want: "4711:4713MS", wantOK: true, content: content},
		{name: "environment", macro: "PIO_ENV", want: "esp32-eth", wantOK: true, content: content},
		{name: "absent macro", macro: "OTHER", content: content},
		{name: "empty value", macro: "SVN_REV", want: "", wantOK: true, content: `#define SVN_REV ""`},
		{name: "escaped value", macro: "SVN_REV", want: `we"ird\rev`, wantOK: true, content: `#define SVN_REV "we\"ird\\rev"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMacro(tt.content, tt.macro)
			if ok != tt.wantOK {
				t.Fatalf("ParseMacro ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseMacro = %q, want %q", got, tt.want)
			}
		})
	}
}

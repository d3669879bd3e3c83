// Package header renders and writes the generated revision header.
package header

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	tmpl "github.com/requireiot/revheader/internal/template"
)

// timestampLayout is the human-readable generation time written into the
// header comment. Informational only, never used for staleness checks.
const timestampLayout = "2006-01-02 15:04:05.000000"

// builtinTemplate is the default header layout. Both macros are
// include-guarded so a pre-existing definition from elsewhere wins:
// the generator defines fallback values, not authoritative ones.
const builtinTemplate = `// AUTO GENERATED FILE, DO NOT EDIT
#ifndef {{ .RevisionMacro }}
    #define {{ .RevisionMacro }} "{{ cstring .Revision }}"
#endif
{{ if .Environment -}}
#ifndef {{ .EnvMacro }}
    #define {{ .EnvMacro }} "{{ cstring .Environment }}"
#endif
{{ end -}}
// last checked {{ .Timestamp }}
`

// Info holds the values substituted into the header. Constructed fresh
// on every invocation and discarded once the header is written.
type Info struct {
	Revision    string
	Environment string
	Timestamp   string
}

// NewInfo builds an Info stamped with the current time. Environment is
// empty outside the build-context-aware variant.
func NewInfo(revision, environment string) Info {
	return Info{
		Revision:    revision,
		Environment: environment,
		Timestamp:   time.Now().Format(timestampLayout),
	}
}

// Generator renders revision headers from the built-in or a custom template.
type Generator struct {
	revisionMacro string
	envMacro      string
	engine        *tmpl.Engine
}

// templateData is what header templates render against.
type templateData struct {
	RevisionMacro string
	EnvMacro      string
	Revision      string
	Environment   string
	Timestamp     string
}

// NewGenerator creates a generator using the given macro names and the
// built-in template.
func NewGenerator(revisionMacro, envMacro string) (*Generator, error) {
	g := &Generator{
		revisionMacro: revisionMacro,
		envMacro:      envMacro,
		engine:        tmpl.New(),
	}

	if err := g.engine.LoadString("header", builtinTemplate); err != nil {
		return nil, fmt.Errorf("loading built-in template: %w", err)
	}

	return g, nil
}

// LoadTemplate replaces the built-in template with one loaded from a file.
func (g *Generator) LoadTemplate(path string) error {
	return g.engine.LoadFile("header", path)
}

// Render produces the header text for the given info.
func (g *Generator) Render(info Info) (string, error) {
	data := templateData{
		RevisionMacro: g.revisionMacro,
		EnvMacro:      g.envMacro,
		Revision:      info.Revision,
		Environment:   info.Environment,
		Timestamp:     info.Timestamp,
	}

	return g.engine.Render("header", data)
}

// Write writes the rendered header to path, creating the file if absent
// and truncating any prior content. A failure here is fatal to the build
// step; there is no partial-success state to recover from.
func Write(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// DefineFlag formats the compiler command-line fragment reported on stdout
// for the build orchestrator to capture, e.g. '-DSVN_REV="123M"'.
func DefineFlag(macro, value string) string {
	return fmt.Sprintf("'-D%s=\"%s\"'", macro, value)
}

// ParseMacro extracts the string value of a #define from header content.
// The boolean reports whether the macro was found.
func ParseMacro(content, macro string) (string, bool) {
	re := regexp.MustCompile(`#define\s+` + regexp.QuoteMeta(macro) + `\s+"((?:[^"\\]|\\.)*)"`)
	m := re.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return unescape(m[1]), true
}

// unescape reverses the C string literal escaping applied by the template.
func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

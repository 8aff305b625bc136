package compose

import (
	"strings"
	"text/template"

	"github.com/mixlang/mixgen/internal/synth"
)

// mixRendering holds everything the mix template needs.
type mixRendering struct {
	TypeName    string
	Join        string
	LeftVar     string
	LeftType    string
	LeftExpr    string
	RightVar    string
	RightType   string
	RightExpr   string
	Definitions []synth.Definition
}

var mixTemplate = template.Must(template.New("mix").Parse(`abstract class {{.TypeName}} extends {{.Join}}

val {{.LeftVar}}: {{.LeftType}} = {{.LeftExpr}}
val {{.RightVar}}: {{.RightType}} = {{.RightExpr}}
new {{.TypeName}} {
{{- range .Definitions}}
  {{.Source}}
{{- end}}
}
`))

func renderMix(r mixRendering) string {
	var b strings.Builder
	if err := mixTemplate.Execute(&b, r); err != nil {
		// The template is static and the data is plain strings; a failure
		// here is a programming error.
		panic(err)
	}
	return b.String()
}

// delegateRendering holds everything the delegate template needs.
// TypeParams is the class's rendered type parameter clause ("[T, U]" or
// empty); the intermediate type carries the same clause so the class can
// pass its parameters through.
type delegateRendering struct {
	TypeName    string
	TypeParams  string
	Join        string
	FieldName   string
	FieldType   string
	FieldExpr   string
	ClassName   string
	Body        string
	Definitions []synth.Definition
}

var delegateTemplate = template.Must(template.New("delegate").Parse(`abstract class {{.TypeName}}{{.TypeParams}} extends {{.Join}}

{{if .FieldExpr}}val {{.FieldName}}: {{.FieldType}} = {{.FieldExpr}}
{{end}}class {{.ClassName}}{{.TypeParams}} extends {{.TypeName}}{{.TypeParams}} {
{{- if .Body}}
{{.Body}}
{{- end}}
{{- range .Definitions}}
  {{.Source}}
{{- end}}
}
`))

func renderDelegate(r delegateRendering) string {
	r.Body = indentBody(r.Body)
	var b strings.Builder
	if err := delegateTemplate.Execute(&b, r); err != nil {
		panic(err)
	}
	return b.String()
}

// indentBody reindents the original class body two spaces so it lines up
// with the injected definitions.
func indentBody(body string) string {
	body = strings.TrimRight(body, "\n")
	if body == "" {
		return ""
	}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = "  " + strings.TrimLeft(line, " \t")
	}
	return strings.Join(lines, "\n")
}

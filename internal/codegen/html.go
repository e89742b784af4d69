package codegen

import (
	"strings"
)

// mountID is the fixed container id the first declared component mounts
// into. There is no explicit entry-point directive in the language.
const mountID = "app"

// generateHTML wraps the generated CSS and JS into a self-contained
// document with an auto-mount statement for the first component.
func (g *Generator) generateHTML(js, css string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html>\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>Lumina App</title>\n")
	sb.WriteString("<style>\n")
	sb.WriteString(css)
	sb.WriteString("</style>\n")
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString("<div id=\"" + mountID + "\"></div>\n")
	sb.WriteString("<script>\n")
	sb.WriteString(js)
	if first := g.firstComponent(); first != "" {
		sb.WriteString("document.getElementById(\"" + mountID + "\").appendChild(" + first + "());\n")
	}
	sb.WriteString("</script>\n")
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

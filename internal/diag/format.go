package diag

import (
	"fmt"
	"strings"
)

// FormatLine renders one diagnostic in the stable text-line form shared by
// every front end:
//
//	<path>:<line> <SEVERITY-CODE> <symbol-or-blank>: <message>
func FormatLine(path string, d Diagnostic) string {
	return fmt.Sprintf("%s:%d %s %s: %s", path, d.Line, Tag(d.Severity, d.Code), d.Symbol, d.Message)
}

// FormatShort renders all diagnostics of a bag, one per line, in bag order.
// Returns the empty string when the bag is empty.
func FormatShort(path string, b *Bag) string {
	if b == nil || b.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for _, d := range b.Items() {
		sb.WriteString(FormatLine(path, d))
		sb.WriteByte('\n')
	}
	return sb.String()
}

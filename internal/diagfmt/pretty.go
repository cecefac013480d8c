// Package diagfmt renders diagnostics for humans. The stable text-line
// format lives in diag.FormatLine; this package adds the colorized CLI
// presentation on top of it.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"flint/internal/diag"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	pathColor = color.New(color.Faint)
)

// Options controls rendering.
type Options struct {
	// Color enables ANSI styling. Off emits exactly the stable text line.
	Color bool
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	}
	return infoColor
}

// Write renders every diagnostic of bag to w, one line each.
func Write(w io.Writer, path string, bag *diag.Bag, opts Options) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		if !opts.Color {
			fmt.Fprintln(w, diag.FormatLine(path, d))
			continue
		}
		tag := severityColor(d.Severity).Sprint(diag.Tag(d.Severity, d.Code))
		loc := pathColor.Sprintf("%s:%d", path, d.Line)
		fmt.Fprintf(w, "%s %s %s: %s\n", loc, tag, d.Symbol, d.Message)
	}
}

// Summary renders a one-line run summary ("3 errors, 1 warning, 2 infos").
func Summary(w io.Writer, errs, warns, infos int, opts Options) {
	if errs+warns+infos == 0 {
		fmt.Fprintln(w, "no findings")
		return
	}
	parts := ""
	appendPart := func(n int, singular string, c *color.Color) {
		if n == 0 {
			return
		}
		word := singular
		if n != 1 {
			word += "s"
		}
		text := fmt.Sprintf("%d %s", n, word)
		if opts.Color {
			text = c.Sprint(text)
		}
		if parts != "" {
			parts += ", "
		}
		parts += text
	}
	appendPart(errs, "error", errColor)
	appendPart(warns, "warning", warnColor)
	appendPart(infos, "info", infoColor)
	fmt.Fprintln(w, parts)
}

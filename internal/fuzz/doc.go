// Package fuzztests houses Go fuzz harnesses that exercise the analysis
// pipeline (source -> lexer -> parser -> checks). Its goal is to smoke test
// robustness and guard against panics or hangs on arbitrary inputs.
package fuzztests

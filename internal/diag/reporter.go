package diag

// Reporter is the minimal contract for receiving diagnostics from checks.
// Implementations: BagReporter (appends to a Bag), DedupReporter (filter).
type Reporter interface {
	Report(sev Severity, code Code, line int, symbol, msg string)
}

// BagReporter is an adapter that writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(sev Severity, code Code, line int, symbol, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Line:     line,
		Severity: sev,
		Code:     code,
		Symbol:   symbol,
		Message:  msg,
	})
}

type dedupKey struct {
	sev  Severity
	code Code
	line int
	sym  string
	msg  string
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same severity, code, line, symbol and message.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(sev Severity, code Code, line int, symbol, msg string) {
	if r == nil {
		return
	}
	key := dedupKey{sev: sev, code: code, line: line, sym: symbol, msg: msg}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(sev, code, line, symbol, msg)
	}
}

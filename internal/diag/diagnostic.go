package diag

type Diagnostic struct {
	Line     int
	Severity Severity
	Code     Code
	Symbol   string
	Message  string
}

func New(sev Severity, code Code, line int, symbol, msg string) Diagnostic {
	return Diagnostic{
		Line:     line,
		Severity: sev,
		Code:     code,
		Symbol:   symbol,
		Message:  msg,
	}
}

func NewError(code Code, line int, symbol, msg string) Diagnostic {
	return New(SevError, code, line, symbol, msg)
}

func NewWarning(code Code, line int, symbol, msg string) Diagnostic {
	return New(SevWarning, code, line, symbol, msg)
}

func NewInfo(code Code, line int, symbol, msg string) Diagnostic {
	return New(SevInfo, code, line, symbol, msg)
}

package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Letter returns the one-letter prefix used in diagnostic text lines.
func (s Severity) Letter() string {
	switch s {
	case SevInfo:
		return "I"
	case SevWarning:
		return "W"
	case SevError:
		return "E"
	}
	return "?"
}

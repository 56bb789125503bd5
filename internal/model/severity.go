package model

// Severity is the three-valued classification attached to alerts and threats.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Severities lists the known severities in ascending order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

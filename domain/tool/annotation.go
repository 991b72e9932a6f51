// Package tool provides the domain model for agent tools.
package tool

// RiskLevel indicates the potential impact of a tool execution.
type RiskLevel int

const (
	RiskNone     RiskLevel = iota // No risk - purely informational
	RiskLow                       // Low risk - reversible changes
	RiskMedium                    // Medium risk - overwrites existing data
	RiskHigh                      // High risk - removes data
	RiskCritical                  // Critical risk - irreversible or destructive
)

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskNone:
		return "none"
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Annotations describe tool behavior for listing, retries, and MCP hints.
type Annotations struct {
	// ReadOnly indicates the tool has no side effects.
	ReadOnly bool `json:"read_only"`

	// Destructive indicates the tool may remove or overwrite data.
	Destructive bool `json:"destructive"`

	// Idempotent indicates multiple calls with same input yield same result.
	Idempotent bool `json:"idempotent"`

	// RiskLevel indicates the potential impact of execution.
	RiskLevel RiskLevel `json:"risk_level"`
}

// DefaultAnnotations returns annotations with safe defaults.
func DefaultAnnotations() Annotations {
	return Annotations{RiskLevel: RiskLow}
}

// ReadOnlyAnnotations returns annotations for a read-only tool.
func ReadOnlyAnnotations() Annotations {
	return Annotations{
		ReadOnly:   true,
		Idempotent: true,
		RiskLevel:  RiskNone,
	}
}

// DestructiveAnnotations returns annotations for a destructive tool.
func DestructiveAnnotations() Annotations {
	return Annotations{
		Destructive: true,
		RiskLevel:   RiskHigh,
	}
}

// CanRetry returns true if the tool can be safely retried on failure.
func (a Annotations) CanRetry() bool {
	return a.ReadOnly || a.Idempotent
}

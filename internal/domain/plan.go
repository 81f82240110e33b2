package domain

// Severity ranks a recommendation.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeveritySuccess  Severity = "success"
)

// Recommendation is one finding produced by the planning rules.
type Recommendation struct {
	Severity Severity
	Title    string
	Message  string
}

// Plan is the ordered output of the planning stage: recommendations in
// rule order, goals in the order their rules fired.
type Plan struct {
	Recommendations []Recommendation
	Goals           []string
}

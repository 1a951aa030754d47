package doctor

import "time"

// Check is a single diagnostic.
type Check interface {
	Name() string

	// Category groups results in text output, e.g. "config" or "logs".
	Category() string

	Run() *CheckResult
}

// Runner runs checks in registration order.
type Runner struct {
	checks []Check
}

// NewRunner returns a Runner with no checks.
func NewRunner() *Runner {
	return &Runner{}
}

// AddCheck appends c to the checks run by Run.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes every check and summarizes the results.
func (r *Runner) Run() *Report {
	report := &Report{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}
	for _, check := range r.checks {
		result := check.Run()
		report.Results = append(report.Results, result)
		report.Summary.add(result.Status)
	}
	return report
}

// Fix applies the fixes offered by checks that implement Fixer and found
// fixable issues in the last Run.
func (r *Runner) Fix() []FixResult {
	var results []FixResult
	for _, check := range r.checks {
		fixer, ok := check.(Fixer)
		if !ok || !fixer.CanFix() {
			continue
		}
		results = append(results, fixer.Fix()...)
	}
	return results
}

// Report is the outcome of one Run.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

// HasErrors reports whether any check failed with SeverityError.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any check returned SeverityWarning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

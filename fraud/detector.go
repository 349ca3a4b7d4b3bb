// Package fraud implements the rule-based fraud detection engine: a registry
// of independently toggleable rules, a detector that scores a candidate
// transaction against historical behavior, and an in-memory monitoring
// service for the resulting alerts.
package fraud

import (
	"fmt"
)

// Analysis is the verdict for one candidate transaction.
type Analysis struct {
	Approved  bool
	Alerts    []Alert
	RiskScore float64 // 0..1
}

// Detector evaluates candidate transactions against a rule registry.
// Rule failures are routed to the event sink and never abort an analysis.
type Detector struct {
	registry *Registry
	logEvent EventFunc
}

// NewDetector builds a detector over the given registry. logEvent may be nil.
func NewDetector(registry *Registry, logEvent EventFunc) *Detector {
	return &Detector{registry: registry, logEvent: logEvent}
}

// Analyze runs every enabled rule against the candidate and its history and
// aggregates the triggered alerts into a risk score and verdict. The
// transaction is approved unless at least one alert carries the block action.
func (d *Detector) Analyze(current Pattern, history []Pattern) Analysis {
	analysis := Analysis{Approved: true}

	for _, rule := range d.registry.Active() {
		alert, err := evaluate(rule, current, history)
		if err != nil {
			d.emit(SystemEvent{
				Type:    "ERROR",
				Message: "FRAUD_RULE_FAILED",
				Details: map[string]any{
					"ruleId": rule.Info().ID,
					"error":  err.Error(),
				},
			})
			continue
		}
		if alert == nil {
			continue
		}
		analysis.Alerts = append(analysis.Alerts, *alert)
		analysis.RiskScore += severityWeight[alert.Severity]
		if alert.Action == ActionBlock {
			analysis.Approved = false
		}
	}

	if analysis.RiskScore > 1 {
		analysis.RiskScore = 1
	}
	return analysis
}

// evaluate isolates a single rule: a panic inside a rule is converted into
// an error so one bad rule cannot abort the analysis of the rest.
func evaluate(rule Rule, current Pattern, history []Pattern) (alert *Alert, err error) {
	defer func() {
		if r := recover(); r != nil {
			alert = nil
			err = fmt.Errorf("rule panicked: %v", r)
		}
	}()
	return rule.Evaluate(current, history)
}

func (d *Detector) emit(event SystemEvent) {
	if d.logEvent != nil {
		d.logEvent(event)
	}
}

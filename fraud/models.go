package fraud

import (
	"time"

	"github.com/shopspring/decimal"
)

// Severity grades how serious a triggered rule is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Action is the enforcement tier attached to a rule: monitor logs only, flag
// surfaces the transaction for review, block rejects it.
type Action string

const (
	ActionMonitor Action = "monitor"
	ActionFlag    Action = "flag"
	ActionBlock   Action = "block"
)

// Pattern is a normalized transaction observation. The same shape serves as
// both the candidate under analysis and a historical context row; it carries
// no identity and is supplied fresh per call.
type Pattern struct {
	UserID           string
	AccountID        string
	Amount           decimal.Decimal
	Timestamp        time.Time
	Location         string
	Device           string
	MerchantCategory string
}

// Alert is the outcome of one triggered rule. Alerts are immutable once
// created.
type Alert struct {
	ID          string
	UserID      string
	AccountID   string
	AlertType   string
	Severity    Severity
	Description string
	Confidence  float64 // 0..1
	DetectedAt  time.Time
	Metadata    map[string]any
	Action      Action
}

// SystemEvent is a structured event handed to the external logging
// collaborator. This package only emits events; it never implements the sink.
type SystemEvent struct {
	Type    string
	Message string
	Details map[string]any
}

// EventFunc receives structured events from the detector and monitoring
// service. A nil EventFunc is valid and drops events.
type EventFunc func(SystemEvent)

// severityWeight maps alert severities to their risk-score contribution.
// Weights are chosen so that two significant signals push the aggregate
// past 0.5.
var severityWeight = map[Severity]float64{
	SeverityInfo:     0.05,
	SeverityLow:      0.10,
	SeverityMedium:   0.20,
	SeverityHigh:     0.35,
	SeverityCritical: 0.50,
}

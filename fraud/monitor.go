package fraud

import (
	"sort"
	"sync"
)

// MonitoringService keeps the in-memory alert log and escalates critical
// alerts to the external logging collaborator. The log is append-only and
// deliberately unbounded; eviction policy belongs to the storage layer that
// would replace it in a long-running deployment.
type MonitoringService struct {
	mu       sync.Mutex
	alerts   []Alert
	logEvent EventFunc
}

// NewMonitoringService builds a monitoring service. logEvent may be nil.
func NewMonitoringService(logEvent EventFunc) *MonitoringService {
	return &MonitoringService{logEvent: logEvent}
}

// RecordAlert appends an alert to the log. Critical alerts additionally emit
// a CRITICAL_FRAUD_ALERT system event through the logging collaborator.
func (s *MonitoringService) RecordAlert(alert Alert) {
	s.mu.Lock()
	s.alerts = append(s.alerts, alert)
	s.mu.Unlock()

	if alert.Severity == SeverityCritical && s.logEvent != nil {
		s.logEvent(SystemEvent{
			Type:    "ERROR",
			Message: "CRITICAL_FRAUD_ALERT",
			Details: map[string]any{
				"alertId": alert.ID,
				"userId":  alert.UserID,
			},
		})
	}
}

// AlertsForUser returns the user's alerts, most recent first, truncated to
// limit. A non-positive limit returns all matches.
func (s *MonitoringService) AlertsForUser(userID string, limit int) []Alert {
	return s.query(limit, func(a Alert) bool { return a.UserID == userID })
}

// AlertsBySeverity returns alerts of the given severity, most recent first,
// truncated to limit. A non-positive limit returns all matches.
func (s *MonitoringService) AlertsBySeverity(severity Severity, limit int) []Alert {
	return s.query(limit, func(a Alert) bool { return a.Severity == severity })
}

func (s *MonitoringService) query(limit int, match func(Alert) bool) []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Alert
	for _, a := range s.alerts {
		if match(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DetectedAt.After(out[j].DetectedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

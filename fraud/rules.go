package fraud

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Built-in rule identifiers.
const (
	RuleLargeAmount         = "LARGE_AMOUNT"
	RuleRapidTransactions   = "RAPID_TRANSACTIONS"
	RuleUnusualLocation     = "UNUSUAL_LOCATION"
	RuleUnusualDevice       = "UNUSUAL_DEVICE"
	RuleRoundAmount         = "ROUND_AMOUNT"
	RuleHighVelocity        = "HIGH_VELOCITY"
	RuleNewAccountHighValue = "NEW_ACCOUNT_HIGH_VALUE"
	RuleSuspiciousMerchant  = "SUSPICIOUS_MERCHANT"
	RuleAccountTakeover     = "ACCOUNT_TAKEOVER"
)

// Detection thresholds.
var (
	// LargeAmountMultiplier is how many times the historical average an
	// amount must reach to count as anomalously large.
	LargeAmountMultiplier = decimal.NewFromInt(50)

	// TakeoverAmountMultiplier is the (lower) multiplier used as the
	// large-amount indicator in the account-takeover check.
	TakeoverAmountMultiplier = decimal.NewFromInt(10)

	// NewAccountHighValueThreshold flags a first-ever transaction at or
	// above this amount.
	NewAccountHighValueThreshold = decimal.NewFromInt(10000)

	// RoundAmountUnit is the unit whose exact multiples look structured.
	RoundAmountUnit = decimal.NewFromInt(1000)
)

const (
	largeAmountMinHistory = 5
	rapidWindow           = 5 * time.Minute
	rapidCountLow         = 3
	rapidCountMedium      = 5
	velocityWindow        = 24 * time.Hour
	velocityMaxCount      = 50
)

// blockedMerchantCategories are merchant categories that always warrant a flag.
var blockedMerchantCategories = map[string]bool{
	"gambling":        true,
	"adult_services":  true,
	"crypto_exchange": true,
	"pawn_shop":       true,
	"wire_transfer":   true,
}

// RuleInfo is the static metadata of a fraud rule.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Severity    Severity
	Action      Action
}

// Rule evaluates a candidate transaction against the user's history. A nil
// alert means the rule did not trigger. A returned error (or a panic during
// evaluation) is isolated by the detector and never aborts the analysis of
// the remaining rules.
type Rule interface {
	Info() RuleInfo
	Evaluate(current Pattern, history []Pattern) (*Alert, error)
}

// funcRule adapts a plain function into a Rule.
type funcRule struct {
	info  RuleInfo
	check func(current Pattern, history []Pattern) (*Alert, error)
}

func (r funcRule) Info() RuleInfo { return r.info }

func (r funcRule) Evaluate(current Pattern, history []Pattern) (*Alert, error) {
	return r.check(current, history)
}

// NewRule builds a custom rule from metadata and a check function.
func NewRule(info RuleInfo, check func(current Pattern, history []Pattern) (*Alert, error)) Rule {
	return funcRule{info: info, check: check}
}

// alert stamps a triggered rule into an Alert for the candidate pattern.
func (ri RuleInfo) alert(current Pattern, description string, confidence float64, metadata map[string]any) *Alert {
	return &Alert{
		ID:          uuid.NewString(),
		UserID:      current.UserID,
		AccountID:   current.AccountID,
		AlertType:   ri.ID,
		Severity:    ri.Severity,
		Description: description,
		Confidence:  confidence,
		DetectedAt:  time.Now(),
		Metadata:    metadata,
		Action:      ri.Action,
	}
}

// historyAverage is the mean transaction amount over the history, or zero
// for an empty history.
func historyAverage(history []Pattern) decimal.Decimal {
	if len(history) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range history {
		sum = sum.Add(p.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(history))))
}

// isUnusualLocation reports whether the candidate's location has never been
// seen in the history. Unknown locations on either side are not unusual.
func isUnusualLocation(current Pattern, history []Pattern) bool {
	if current.Location == "" {
		return false
	}
	seen := false
	for _, p := range history {
		if p.Location == "" {
			continue
		}
		seen = true
		if p.Location == current.Location {
			return false
		}
	}
	return seen
}

// isUnusualDevice reports whether the candidate's device has never been seen
// in the history.
func isUnusualDevice(current Pattern, history []Pattern) bool {
	if current.Device == "" {
		return false
	}
	seen := false
	for _, p := range history {
		if p.Device == "" {
			continue
		}
		seen = true
		if p.Device == current.Device {
			return false
		}
	}
	return seen
}

// countWithin counts history rows inside the trailing window ending at the
// candidate's timestamp, window boundary exclusive.
func countWithin(current Pattern, history []Pattern, window time.Duration) int {
	cutoff := current.Timestamp.Add(-window)
	count := 0
	for _, p := range history {
		if p.Timestamp.After(cutoff) && !p.Timestamp.After(current.Timestamp) {
			count++
		}
	}
	return count
}

func largeAmountRule() Rule {
	info := RuleInfo{
		ID:          RuleLargeAmount,
		Name:        "Large amount",
		Description: "Amount far exceeds the historical average",
		Severity:    SeverityHigh,
		Action:      ActionFlag,
	}
	return funcRule{info: info, check: func(current Pattern, history []Pattern) (*Alert, error) {
		if len(history) < largeAmountMinHistory {
			return nil, nil
		}
		avg := historyAverage(history)
		if !avg.IsPositive() || current.Amount.LessThan(avg.Mul(LargeAmountMultiplier)) {
			return nil, nil
		}
		desc := fmt.Sprintf("amount %s is %sx the historical average %s",
			current.Amount, current.Amount.Div(avg).Round(1), avg.Round(2))
		return info.alert(current, desc, 0.85, map[string]any{
			"historicalAverage": avg.String(),
		}), nil
	}}
}

func rapidTransactionsRule() Rule {
	info := RuleInfo{
		ID:          RuleRapidTransactions,
		Name:        "Rapid transactions",
		Description: "Several transactions inside a five-minute window",
		Severity:    SeverityLow,
		Action:      ActionMonitor,
	}
	return funcRule{info: info, check: func(current Pattern, history []Pattern) (*Alert, error) {
		count := countWithin(current, history, rapidWindow) + 1 // include the candidate
		if count < rapidCountLow {
			return nil, nil
		}
		triggered := info
		if count >= rapidCountMedium {
			triggered.Severity = SeverityMedium
		}
		desc := fmt.Sprintf("%d transactions within %s", count, rapidWindow)
		return triggered.alert(current, desc, 0.7, map[string]any{
			"transactionCount": count,
		}), nil
	}}
}

func unusualLocationRule() Rule {
	info := RuleInfo{
		ID:          RuleUnusualLocation,
		Name:        "Unusual location",
		Description: "Location never seen in the user's history",
		Severity:    SeverityMedium,
		Action:      ActionMonitor,
	}
	return funcRule{info: info, check: func(current Pattern, history []Pattern) (*Alert, error) {
		if !isUnusualLocation(current, history) {
			return nil, nil
		}
		desc := fmt.Sprintf("location %q not seen before", current.Location)
		return info.alert(current, desc, 0.6, map[string]any{
			"location": current.Location,
		}), nil
	}}
}

func unusualDeviceRule() Rule {
	info := RuleInfo{
		ID:          RuleUnusualDevice,
		Name:        "Unusual device",
		Description: "Device never seen in the user's history",
		Severity:    SeverityMedium,
		Action:      ActionMonitor,
	}
	return funcRule{info: info, check: func(current Pattern, history []Pattern) (*Alert, error) {
		if !isUnusualDevice(current, history) {
			return nil, nil
		}
		desc := fmt.Sprintf("device %q not seen before", current.Device)
		return info.alert(current, desc, 0.6, map[string]any{
			"device": current.Device,
		}), nil
	}}
}

func roundAmountRule() Rule {
	info := RuleInfo{
		ID:          RuleRoundAmount,
		Name:        "Round amount",
		Description: "Amount is an exact multiple of a round unit",
		Severity:    SeverityLow,
		Action:      ActionMonitor,
	}
	return funcRule{info: info, check: func(current Pattern, history []Pattern) (*Alert, error) {
		if !current.Amount.IsPositive() || !current.Amount.Mod(RoundAmountUnit).IsZero() {
			return nil, nil
		}
		desc := fmt.Sprintf("amount %s is a multiple of %s", current.Amount, RoundAmountUnit)
		return info.alert(current, desc, 0.4, nil), nil
	}}
}

func highVelocityRule() Rule {
	info := RuleInfo{
		ID:          RuleHighVelocity,
		Name:        "High velocity",
		Description: "Transaction count over 24 hours exceeds the limit",
		Severity:    SeverityHigh,
		Action:      ActionBlock,
	}
	return funcRule{info: info, check: func(current Pattern, history []Pattern) (*Alert, error) {
		count := countWithin(current, history, velocityWindow) + 1
		if count <= velocityMaxCount {
			return nil, nil
		}
		desc := fmt.Sprintf("%d transactions in the last 24 hours", count)
		return info.alert(current, desc, 0.9, map[string]any{
			"transactionCount": count,
		}), nil
	}}
}

func newAccountHighValueRule() Rule {
	info := RuleInfo{
		ID:          RuleNewAccountHighValue,
		Name:        "New account high value",
		Description: "High-value transaction with no history at all",
		Severity:    SeverityCritical,
		Action:      ActionBlock,
	}
	return funcRule{info: info, check: func(current Pattern, history []Pattern) (*Alert, error) {
		if len(history) > 0 || current.Amount.LessThan(NewAccountHighValueThreshold) {
			return nil, nil
		}
		desc := fmt.Sprintf("first transaction of %s meets the high-value threshold %s",
			current.Amount, NewAccountHighValueThreshold)
		return info.alert(current, desc, 0.95, nil), nil
	}}
}

func suspiciousMerchantRule() Rule {
	info := RuleInfo{
		ID:          RuleSuspiciousMerchant,
		Name:        "Suspicious merchant",
		Description: "Merchant category is on the blocked list",
		Severity:    SeverityMedium,
		Action:      ActionFlag,
	}
	return funcRule{info: info, check: func(current Pattern, history []Pattern) (*Alert, error) {
		if !blockedMerchantCategories[current.MerchantCategory] {
			return nil, nil
		}
		desc := fmt.Sprintf("merchant category %q is blocked", current.MerchantCategory)
		return info.alert(current, desc, 0.75, map[string]any{
			"merchantCategory": current.MerchantCategory,
		}), nil
	}}
}

func accountTakeoverRule() Rule {
	info := RuleInfo{
		ID:          RuleAccountTakeover,
		Name:        "Account takeover",
		Description: "Large amount from an unusual location and device at once",
		Severity:    SeverityCritical,
		Action:      ActionBlock,
	}
	return funcRule{info: info, check: func(current Pattern, history []Pattern) (*Alert, error) {
		if len(history) == 0 {
			return nil, nil
		}
		avg := historyAverage(history)
		large := avg.IsPositive() && current.Amount.GreaterThanOrEqual(avg.Mul(TakeoverAmountMultiplier))
		if !large || !isUnusualLocation(current, history) || !isUnusualDevice(current, history) {
			return nil, nil
		}
		desc := "large amount combined with unusual location and unusual device"
		return info.alert(current, desc, 0.9, map[string]any{
			"location": current.Location,
			"device":   current.Device,
		}), nil
	}}
}

// builtinRules returns the standard rule set in evaluation order.
func builtinRules() []Rule {
	return []Rule{
		largeAmountRule(),
		rapidTransactionsRule(),
		unusualLocationRule(),
		unusualDeviceRule(),
		roundAmountRule(),
		highVelocityRule(),
		newAccountHighValueRule(),
		suspiciousMerchantRule(),
		accountTakeoverRule(),
	}
}

package worktime

// BreakPolicy is the organization's automatic break deduction rule.
type BreakPolicy struct {
	ThresholdHours int
	BreakMinutes   int
}

// DefaultBreakPolicy deducts a 30 minute break from any shift of six
// hours or more.
var DefaultBreakPolicy = BreakPolicy{
	ThresholdHours: 6,
	BreakMinutes:   30,
}

// AutoBreakMinutes returns the deduction for a shift of the given
// length. Shifts under the threshold get no deduction.
func (p BreakPolicy) AutoBreakMinutes(totalMinutes int) int {
	if totalMinutes >= p.ThresholdHours*60 {
		return p.BreakMinutes
	}
	return 0
}

// NetMinutes applies the break deduction, clamped at zero.
func NetMinutes(totalMinutes, breakMinutes int) int {
	net := totalMinutes - breakMinutes
	if net < 0 {
		return 0
	}
	return net
}

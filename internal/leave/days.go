package leave

import "time"

const day = 24 * time.Hour

// spanDays returns ceil((to - from) / 24h). Dates are expected as
// midnight UTC instants, so for whole-day ranges this is the exact number
// of nights between the two dates.
func spanDays(from, to time.Time) int {
	d := to.Sub(from)
	days := int(d / day)
	if d%day > 0 {
		days++
	}
	return days
}

// requestedDays is the inclusive day count used when validating an
// application: both endpoints count.
func requestedDays(from, to time.Time) int {
	return spanDays(from, to) + 1
}

// debitDays is the exclusive day count removed from the balance when a
// request is approved. It deliberately differs from requestedDays by one:
// the original system validated applications with an inclusive count but
// debited the exclusive one, and observable balances depend on it.
// Unifying the two formulas is pending product sign-off.
func debitDays(from, to time.Time) int {
	return spanDays(from, to)
}

/*
payroll.go - Pure hour and pay calculation

PURPOSE:
  Converts monthly salary to an hourly rate and session durations to hours and
  pay. Everything here is a pure function over decimal.Decimal.

ROUNDING CONTRACT:
  Every derived value is rounded half-up to two decimals at the point it is
  produced: the hourly rate, each session's hours, each session's pay, and
  every aggregated total again. Aggregates are sums of already-rounded
  components, never a single rounding of an unrounded sum. Report totals
  depend on this; do not refactor to round once at the end.
*/
package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkingDaysPerMonth is the fixed divisor converting a monthly salary to an
// hourly rate. A business constant, not configurable.
const WorkingDaysPerMonth = 26

var secondsPerHour = decimal.NewFromInt(3600)

// Round2 rounds half-up to two decimal places. All derived values in the
// engine pass through this helper.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// HourlyRateFor returns round2(monthlySalary / WorkingDaysPerMonth), or zero
// when the salary is zero (rate undefined).
func HourlyRateFor(monthlySalary float64) decimal.Decimal {
	if monthlySalary == 0 {
		return decimal.Zero
	}
	salary := decimal.NewFromFloat(monthlySalary)
	return Round2(salary.Div(decimal.NewFromInt(WorkingDaysPerMonth)))
}

// SessionHours returns the session's worked hours rounded to two decimals.
// The second return is false when hours are undefined: the session is still
// open, or a timestamp does not parse. A check-out earlier than its check-in
// yields negative hours; the raw subtraction is kept so the anomaly stays
// visible downstream.
func SessionHours(s Session) (decimal.Decimal, bool) {
	if s.CheckIn == "" || s.CheckOut == "" {
		return decimal.Zero, false
	}
	in, err := time.Parse(TimeLayout, s.CheckIn)
	if err != nil {
		return decimal.Zero, false
	}
	out, err := time.Parse(TimeLayout, s.CheckOut)
	if err != nil {
		return decimal.Zero, false
	}
	seconds := decimal.NewFromFloat(out.Sub(in).Seconds())
	return Round2(seconds.Div(secondsPerHour)), true
}

// Salary returns round2(hourlyRate * hours).
func Salary(hourlyRate, hours decimal.Decimal) decimal.Decimal {
	return Round2(hourlyRate.Mul(hours))
}

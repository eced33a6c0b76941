// Package report builds the daily analysis report from live task data
// plus the append-only change log.
package report

import "time"

// The review cutoff is 11:00 in the business timezone, approximated as
// a fixed UTC offset. This deliberately ignores DST transitions; see
// DESIGN.md before "fixing" it.
const (
	businessUTCOffsetHours = 2
	reviewCutoffHour       = 11
)

var businessZone = time.FixedZone("business", businessUTCOffsetHours*60*60)

// ReviewWindowStart returns the reporting period boundary: 11:00
// business time on the prior business day. Monday looks back to
// Friday, Sunday to Friday, every other day to the day before
// (Saturday therefore also lands on Friday).
func ReviewWindowStart(now time.Time) time.Time {
	local := now.In(businessZone)

	back := 1
	switch local.Weekday() {
	case time.Monday:
		back = 3
	case time.Sunday:
		back = 2
	}

	day := local.AddDate(0, 0, -back)
	return time.Date(day.Year(), day.Month(), day.Day(), reviewCutoffHour, 0, 0, 0, businessZone).UTC()
}

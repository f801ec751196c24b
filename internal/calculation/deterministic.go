package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
// Only the calendar year is used, to label projection years.
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

package permit

import "time"

// ProcessIDPrefix starts every generated process identifier.
const ProcessIDPrefix = "PORT-"

const processIDLayout = "20060102-150405"

// GenerateProcessID formats now as PORT-YYYYMMDD-HHMMSS in now's location.
// Two calls within the same second return the same identifier.
func GenerateProcessID(now time.Time) string {
	return ProcessIDPrefix + now.Format(processIDLayout)
}

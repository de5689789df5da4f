package timezone

import (
	"time"
	_ "time/tzdata"
)

const (
	DefaultTimezone = "Asia/Ho_Chi_Minh"

	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = DateLayout + " " + TimeLayout
)

// Location resolves tz, falling back to the salon's home timezone.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// Clock is injected into use cases so tests can pin "now".
type Clock func() time.Time

func System() Clock {
	return func() time.Time { return time.Now().In(Location(DefaultTimezone)) }
}

func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, Location(DefaultTimezone))
}

func ParseDateTime(date, hm string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, date+" "+hm, Location(DefaultTimezone))
}

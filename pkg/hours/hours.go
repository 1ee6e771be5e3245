package hours

import (
	"fmt"
	"time"
)

// DayHours is the schedule of a single weekday, times are "HH:MM" on the circuit timezone.
type DayHours struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// OperatingHours is the weekly schedule of a circuit.
type OperatingHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

// Status is the operating hours evaluated at a given instant.
type Status struct {
	OpenNow   bool       `json:"openNow"`
	Today     DayHours   `json:"today"`
	NextOpen  *time.Time `json:"nextOpen,omitempty"`
	Timezone  string     `json:"timezone"`
	LocalTime time.Time  `json:"localTime"`
}

const clockLayout = "15:04"

// Default closed day, matching what the admin form starts with.
var DefaultDay = DayHours{IsOpen: false, OpenTime: "09:00", CloseTime: "18:00"}

// Day returns the schedule of a weekday.
func (o *OperatingHours) Day(day time.Weekday) DayHours {
	switch day {
	case time.Monday:
		return o.Monday
	case time.Tuesday:
		return o.Tuesday
	case time.Wednesday:
		return o.Wednesday
	case time.Thursday:
		return o.Thursday
	case time.Friday:
		return o.Friday
	case time.Saturday:
		return o.Saturday
	default:
		return o.Sunday
	}
}

// Validate checks that every open day has a parsable window that closes after it opens.
func (o *OperatingHours) Validate() error {
	for day := time.Sunday; day <= time.Saturday; day++ {
		d := o.Day(day)
		if !d.IsOpen {
			continue
		}

		open, err := time.Parse(clockLayout, d.OpenTime)
		if err != nil {
			return fmt.Errorf("%s: invalid open time %q", day, d.OpenTime)
		}
		closing, err := time.Parse(clockLayout, d.CloseTime)
		if err != nil {
			return fmt.Errorf("%s: invalid close time %q", day, d.CloseTime)
		}
		if !closing.After(open) {
			return fmt.Errorf("%s: close time must be after open time", day)
		}
	}
	return nil
}

// window returns the open and close instants of a day on loc.
func window(d DayHours, date time.Time, loc *time.Location) (time.Time, time.Time, bool) {
	if !d.IsOpen {
		return time.Time{}, time.Time{}, false
	}

	open, err := time.Parse(clockLayout, d.OpenTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	closing, err := time.Parse(clockLayout, d.CloseTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	y, m, day := date.Date()
	return time.Date(y, m, day, open.Hour(), open.Minute(), 0, 0, loc),
		time.Date(y, m, day, closing.Hour(), closing.Minute(), 0, 0, loc),
		true
}

// Evaluate returns whether the circuit is open at now and, when closed, the next opening within a week.
func Evaluate(o *OperatingHours, loc *time.Location, now time.Time) Status {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)

	status := Status{Timezone: loc.String(), LocalTime: local}
	if o == nil {
		return status
	}

	status.Today = o.Day(local.Weekday())

	openAt, closeAt, ok := window(status.Today, local, loc)
	if ok && !local.Before(openAt) && local.Before(closeAt) {
		status.OpenNow = true
		return status
	}

	for offset := 0; offset <= 7; offset++ {
		date := local.AddDate(0, 0, offset)
		openAt, _, ok := window(o.Day(date.Weekday()), date, loc)
		if ok && openAt.After(local) {
			status.NextOpen = &openAt
			break
		}
	}

	return status
}

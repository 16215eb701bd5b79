package transit

import "time"

type Calendar struct {
	ServiceID string `bson:"service_id" json:"service_id"`

	Monday    bool `bson:"monday" json:"monday"`
	Tuesday   bool `bson:"tuesday" json:"tuesday"`
	Wednesday bool `bson:"wednesday" json:"wednesday"`
	Thursday  bool `bson:"thursday" json:"thursday"`
	Friday    bool `bson:"friday" json:"friday"`
	Saturday  bool `bson:"saturday" json:"saturday"`
	Sunday    bool `bson:"sunday" json:"sunday"`

	// YYYYMMDD inclusive bounds
	StartDate string `bson:"start_date" json:"start_date"`
	EndDate   string `bson:"end_date" json:"end_date"`
}

// RunsOn reports whether the base calendar (ignoring exceptions) is active on
// the given weekday.
func (c *Calendar) RunsOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return c.Monday
	case time.Tuesday:
		return c.Tuesday
	case time.Wednesday:
		return c.Wednesday
	case time.Thursday:
		return c.Thursday
	case time.Friday:
		return c.Friday
	case time.Saturday:
		return c.Saturday
	case time.Sunday:
		return c.Sunday
	}

	return false
}

const (
	CalendarExceptionAdded   = 1
	CalendarExceptionRemoved = 2
)

type CalendarDate struct {
	ServiceID     string `bson:"service_id" json:"service_id"`
	Date          string `bson:"date" json:"date"` // YYYYMMDD
	ExceptionType int    `bson:"exception_type" json:"exception_type"`
}

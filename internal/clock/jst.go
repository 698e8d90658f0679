package clock

import (
	"fmt"
	"time"
)

// TokyoZone is the IANA name every date computation is anchored to.
const TokyoZone = "Asia/Tokyo"

const dateLayout = "2006-01-02"

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// StartIn returns midnight of d in loc.
func (d Date) StartIn(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays moves d by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// JST derives "now" and "today" in Asia/Tokyo regardless of the host timezone.
type JST struct {
	loc *time.Location
	now func() time.Time
}

// New returns a clock backed by time.Now.
func New() *JST {
	return NewWithNow(time.Now)
}

// NewWithNow returns a clock reading wall time from now.
func NewWithNow(now func() time.Time) *JST {
	return &JST{loc: tokyo(), now: now}
}

func tokyo() *time.Location {
	loc, err := time.LoadLocation(TokyoZone)
	if err != nil {
		// Japan has no DST, a fixed offset is exact.
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

func (c *JST) Location() *time.Location {
	return c.loc
}

// Now is the current instant expressed in JST.
func (c *JST) Now() time.Time {
	return c.now().In(c.loc)
}

// Today is the JST calendar date of Now.
func (c *JST) Today() Date {
	return DateOf(c.Now())
}

func (c *JST) IsToday(d Date) bool {
	return c.Today() == d
}

// Format renders t in JST the way logs and status payloads show it.
func (c *JST) Format(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02 15:04:05 MST")
}

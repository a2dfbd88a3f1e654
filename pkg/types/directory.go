package types

import (
	"fmt"
	"time"
)

// Birthday window bounds, in days after the reference time.
const (
	windowStartDays = 1
	windowEndDays   = 8
)

// Weekdays lists the five bucket names returned by BirthdaysPerWeek, in order.
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// Directory holds Records keyed by contact name. Iteration follows insertion
// order; overwriting a name keeps its original position.
// A Directory is not safe for concurrent use.
type Directory struct {
	records map[string]*Record
	order   []string
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{records: make(map[string]*Record)}
}

// AddRecord stores r under its name, replacing any record with that name.
func (d *Directory) AddRecord(r *Record) {
	name := r.Name()
	if _, ok := d.records[name]; !ok {
		d.order = append(d.order, name)
	}
	d.records[name] = r
}

// Delete removes the record for name.
// Returns ErrNotFound if no record has that name.
func (d *Directory) Delete(name string) error {
	if _, ok := d.records[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(d.records, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

// Find returns the record for name and whether it exists.
func (d *Directory) Find(name string) (*Record, bool) {
	r, ok := d.records[name]
	return r, ok
}

// Len returns the number of records.
func (d *Directory) Len() int {
	return len(d.order)
}

// Records returns the records in directory order.
func (d *Directory) Records() []*Record {
	out := make([]*Record, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.records[name])
	}
	return out
}

// BirthdayBucket is one weekday and the contacts whose birthday falls on it.
type BirthdayBucket struct {
	Day   string   `json:"day"`
	Names []string `json:"names"`
}

// BirthdayWeek is the result of BirthdaysPerWeek: always five buckets,
// Monday through Friday.
type BirthdayWeek []BirthdayBucket

// Names returns the names in the bucket for day ("Monday".."Friday").
// Returns nil for any other day.
func (w BirthdayWeek) Names(day string) []string {
	for _, b := range w {
		if b.Day == day {
			return b.Names
		}
	}
	return nil
}

// BirthdaysPerWeek groups the contacts whose birthday falls within the seven
// days after now by business weekday.
//
// The window is [now+1 day, now+8 days) compared against the birthday
// projected onto now's year at midnight in now's location. February 29 maps to
// February 28 when now's year is not divisible by four. Birthdays on Saturday
// or Sunday are listed under Monday. Records without a birthday are skipped.
func (d *Directory) BirthdaysPerWeek(now time.Time) BirthdayWeek {
	start := now.AddDate(0, 0, windowStartDays)
	end := now.AddDate(0, 0, windowEndDays)

	week := make(BirthdayWeek, len(Weekdays))
	index := make(map[time.Weekday]int, len(Weekdays))
	for i, wd := range Weekdays {
		week[i] = BirthdayBucket{Day: wd.String(), Names: []string{}}
		index[wd] = i
	}

	for _, name := range d.order {
		r := d.records[name]
		b, ok := r.Birthday()
		if !ok {
			continue
		}
		projected := projectBirthday(b.Date(), now)
		if projected.Before(start) || !projected.Before(end) {
			continue
		}
		wd := projected.Weekday()
		if isWeekend(wd) {
			wd = time.Monday
		}
		i := index[wd]
		week[i].Names = append(week[i].Names, name)
	}
	return week
}

// projectBirthday moves birthday onto now's year, at midnight in now's
// location.
func projectBirthday(birthday, now time.Time) time.Time {
	year := now.Year()
	month, day := birthday.Month(), birthday.Day()
	// Only divisibility by four is checked; century years are not special.
	if month == time.February && day == 29 && year%4 != 0 {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}

func isWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}

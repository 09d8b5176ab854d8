package planting

import "fmt"

// monthDays is the fixed non-leap-year calendar; October and December
// have 31 days.
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a (month, day) pair. Month 13 and later is what Advance produces
// once it runs off the end of the year; such a date is never before frost.
type Date struct {
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%d/%d", d.Month, d.Day)
}

// DaysInMonth returns the length of month (1-12), or 0 outside the year.
func DaysInMonth(month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return monthDays[month-1]
}

// Valid reports whether d is a real calendar date.
func (d Date) Valid() bool {
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Month)
}

// Advance moves d forward by days, rolling over month lengths. Once the month
// passes 12 it stops rolling and the leftover days stay in Day.
func (d Date) Advance(days int) Date {
	month, day := d.Month, d.Day+days
	for month <= 12 && day > monthDays[month-1] {
		day -= monthDays[month-1]
		month++
	}
	return Date{Month: month, Day: day}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

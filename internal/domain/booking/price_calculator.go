package booking

import (
	"time"
)

// PriceCalculator turns a stay into billable months and a price.
// Every room shares one monthly rate.
type PriceCalculator struct {
	monthlyRate Money
}

func NewPriceCalculator(monthlyRate int64) (*PriceCalculator, error) {
	rate, err := NewMoney(monthlyRate)
	if err != nil {
		return nil, err
	}
	return &PriceCalculator{monthlyRate: rate}, nil
}

func (pc *PriceCalculator) MonthlyRate() Money {
	return pc.monthlyRate
}

// MonthsBetween counts calendar months between the two dates, never less than 1.
// A check-out day earlier than the check-in day does not reduce the count, so
// 2024-01-31 -> 2024-03-01 is 2 months.
func (pc *PriceCalculator) MonthsBetween(checkIn, checkOut time.Time) int {
	return MonthsBetween(checkIn, checkOut)
}

func (pc *PriceCalculator) CheckOutFrom(checkIn time.Time, months int) time.Time {
	return CheckOutFrom(checkIn, months)
}

func (pc *PriceCalculator) TotalPrice(months int) Money {
	return pc.monthlyRate.Times(months)
}

func (pc *PriceCalculator) ValidateCheckOut(checkIn, checkOut time.Time, months int) bool {
	return Date(checkOut).Equal(CheckOutFrom(checkIn, months))
}

func MonthsBetween(checkIn, checkOut time.Time) int {
	in, out := Date(checkIn), Date(checkOut)
	if in.Year() == out.Year() && in.Month() == out.Month() {
		return 1
	}
	months := (out.Year()-in.Year())*12 + int(out.Month()) - int(in.Month())
	// TODO: confirm with product whether a check-out day before the check-in day should drop a month.
	if months < 1 {
		return 1
	}
	return months
}

// CheckOutFrom adds months keeping the day of month, clamped to the target month's last day
// (2024-01-31 + 1 -> 2024-02-29).
func CheckOutFrom(checkIn time.Time, months int) time.Time {
	in := Date(checkIn)
	first := time.Date(in.Year(), in.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	day := in.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// Date truncates t to a UTC calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

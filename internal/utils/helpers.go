package utils

import (
	"math"

	"github.com/dustin/go-humanize"
)

// SalaryBand groups annual salaries for colouring
type SalaryBand int

const (
	BandLow     SalaryBand = iota // under $100K
	BandMid                       // $100K to $300K
	BandHigh                      // $300K to $400K
	BandTop                       // $400K and above
)

// BandOf returns the band an annual USD salary falls in
func BandOf(salary float64) SalaryBand {
	switch {
	case salary >= 400000:
		return BandTop
	case salary >= 300000:
		return BandHigh
	case salary >= 100000:
		return BandMid
	default:
		return BandLow
	}
}

// FormatSalary renders an amount as whole dollars with thousands separators, e.g. $150,000
func FormatSalary(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "Not Available"
	}
	if v < 0 {
		return "-$" + humanize.Comma(int64(-v+0.5))
	}
	return "$" + humanize.Comma(int64(v+0.5))
}

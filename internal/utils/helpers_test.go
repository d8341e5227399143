package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSalary(t *testing.T) {
	assert.Equal(t, "$150,000", FormatSalary(150000))
	assert.Equal(t, "$0", FormatSalary(0))
	assert.Equal(t, "$1,235", FormatSalary(1234.6))
	assert.Equal(t, "-$2,000", FormatSalary(-2000))
	assert.Equal(t, "Not Available", FormatSalary(math.NaN()))
}

func TestBandOf(t *testing.T) {
	tests := map[float64]SalaryBand{
		0:        BandLow,
		99999:    BandLow,
		100000:   BandMid,
		299999.5: BandMid,
		300000:   BandHigh,
		400000:   BandTop,
		1e7:      BandTop,
	}
	for salary, want := range tests {
		assert.Equal(t, want, BandOf(salary), salary)
	}
}

package watchlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"1952", Date{Year: 1952}},
		{"1952-10-07", Date{Year: 1952, Month: 10, Day: 7}},
		{"1952-1-7", Date{Year: 1952, Month: 1, Day: 7}},
		{"07 Oct 1952", Date{Year: 1952, Month: 10, Day: 7}},
		{"7 October 1952", Date{Year: 1952, Month: 10, Day: 7}},
		{"circa 1960", Date{Year: 1960}},
		{"c. 1960", Date{Year: 1960}},
		{"approximately 1960", Date{Year: 1960}},
		{"  1952  ", Date{Year: 1952}},
		{"", Date{}},
		{"unknown", Date{}},
		{"1952-13-40", Date{}},
		{"31 Foo 1952", Date{}},
		{"sometime in the 1950s", Date{}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseDate(tc.in))
		})
	}
}

func TestDate(t *testing.T) {
	assert.True(t, Date{}.IsZero())
	assert.False(t, Date{Year: 1952}.IsZero())

	assert.False(t, Date{Year: 1952}.Complete())
	assert.True(t, Date{Year: 1952, Month: 10, Day: 7}.Complete())

	assert.Equal(t, "", Date{}.String())
	assert.Equal(t, "1952", Date{Year: 1952}.String())
	assert.Equal(t, "1952-10-07", Date{Year: 1952, Month: 10, Day: 7}.String())
}

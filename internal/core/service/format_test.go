package service

import "testing"

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{5_000, "5s"},
		{59_999, "59s"},
		{60_000, "1m"},
		{45 * 60 * 1000, "45m"},
		{90 * 60 * 1000, "1.5h"},
		{23*60*60*1000 + 30*60*1000, "23.5h"},
		{24 * 60 * 60 * 1000, "1d"},
		{5 * 24 * 60 * 60 * 1000, "5d"},
	}

	for _, c := range cases {
		if got := FormatDuration(c.ms); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.ms, got, c.want)
		}
	}
}

func TestFormatHourWindow(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, "12 AM-2 AM"},
		{10, "10 AM-12 PM"},
		{11, "11 AM-1 PM"},
		{12, "12 PM-2 PM"},
		{14, "2 PM-4 PM"},
		{22, "10 PM-12 AM"},
		{23, "11 PM-1 AM"},
	}

	for _, c := range cases {
		if got := FormatHourWindow(c.hour); got != c.want {
			t.Errorf("FormatHourWindow(%d) = %q, want %q", c.hour, got, c.want)
		}
	}
}

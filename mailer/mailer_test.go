package mailer

import "testing"

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{50, "50"},
		{599, "599"},
		{1250, "1,250"},
		{2999, "2,999"},
		{1234567, "1,234,567"},
	}
	for _, c := range cases {
		if got := FormatAmount(c.in); got != c.want {
			t.Fatalf("FormatAmount(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

package api

import "testing"

func TestParseInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "valid", in: "7", want: 7},
		{name: "empty", in: "", want: 5},
		{name: "malformed", in: "x1", want: 5},
		{name: "zero", in: "0", want: 5},
		{name: "negative", in: "-4", want: 5},
		{name: "capped", in: "184467440737095516", want: maxQueryInt},
		{name: "overflow", in: "99999999999999999999999", want: 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := parseInt(tc.in, 5); got != tc.want {
				t.Errorf("parseInt(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

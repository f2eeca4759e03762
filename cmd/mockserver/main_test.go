package main

import "testing"

func TestResolvePort(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want int
	}{
		{"no args", nil, 8000},
		{"valid port", []string{"9001"}, 9001},
		{"non-integer keeps default", []string{"eight"}, 8000},
		{"extra args ignored", []string{"9001", "junk"}, 9001},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolvePort(tc.args, 8000); got != tc.want {
				t.Errorf("resolvePort(%v) = %d, want %d", tc.args, got, tc.want)
			}
		})
	}
}

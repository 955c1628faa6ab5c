package main

import (
	"flag"
	"io"
	"testing"
)

func TestParseArgs(t *testing.T) {
	var cases = []struct {
		help      string
		args      []string
		profile   string
		threshold int
		ok        bool
		err       bool
	}{
		{"flags only", []string{"-s", "scopus"}, "scopus", 0, false, false},
		{"number last", []string{"-s", "scopus", "2"}, "scopus", 2, true, false},
		{"number first", []string{"2", "-s", "scopus"}, "scopus", 2, true, false},
		{"number between flags", []string{"-a", "3", "-s", "scopus"}, "scopus", 3, true, false},
		{"last number wins", []string{"2", "-s", "scopus", "4"}, "scopus", 4, true, false},
		{"not a number", []string{"-s", "scopus", "two"}, "", 0, false, true},
		{"unknown flag", []string{"2", "-x"}, "", 0, false, true},
	}
	for _, c := range cases {
		fs := flag.NewFlagSet("collabnet", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		profile := fs.String("s", "wos", "")
		fs.Bool("a", false, "")
		threshold, ok, err := parseArgs(fs, c.args)
		if c.err {
			if err == nil {
				t.Errorf("%s: expected error", c.help)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", c.help, err)
		}
		if *profile != c.profile || threshold != c.threshold || ok != c.ok {
			t.Errorf("%s: got (%s, %d, %v), want (%s, %d, %v)",
				c.help, *profile, threshold, ok, c.profile, c.threshold, c.ok)
		}
	}
}

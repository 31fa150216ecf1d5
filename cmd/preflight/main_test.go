package main

import "testing"

func TestMalformedPeers(t *testing.T) {
	cases := []struct {
		in      string
		wantBad int
	}{
		{"us-east-1=https://us.checker.example", 0},
		{"us-east-1=https://us.checker.example,ap-south-1=http://ap.checker.example", 0},
		{"bad-entry", 1},
		{"=https://x", 1},
		{"us-east-1=ftp://nope", 1},
		{"bad-entry, us-east-1=https://us.checker.example", 1},
		{"bad-one,bad-two", 2},
		{" , ", 0}, // empty entries are skipped, not malformed
	}
	for _, c := range cases {
		if got := malformedPeers(c.in); len(got) != c.wantBad {
			t.Fatalf("malformedPeers(%q)=%v want %d entries", c.in, got, c.wantBad)
		}
	}
}

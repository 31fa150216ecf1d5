// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	region := strings.TrimSpace(os.Getenv("REGION"))
	peers := strings.TrimSpace(os.Getenv("PEER_REGIONS"))
	addr := strings.TrimSpace(os.Getenv("ADDR"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cachePath := strings.TrimSpace(os.Getenv("CACHE_PATH"))

	if region == "" {
		warn("REGION is empty; results will report the region as \"local\".")
	} else {
		ok("REGION=" + region)
	}

	if peers == "" {
		warn("PEER_REGIONS empty — global checks will cover this region only.")
	} else if bad := malformedPeers(peers); len(bad) > 0 {
		// A malformed entry is silently dropped at runtime, so the region it
		// names would never be checked. Refuse to pass.
		fail("PEER_REGIONS entries malformed (want region=endpoint): " + strings.Join(bad, ", "))
	} else {
		ok("PEER_REGIONS parsed cleanly")
	}

	if addr == "" {
		warn("ADDR is empty; default in your app may be used.")
	} else {
		ok("ADDR=" + addr)
	}

	if db == "" && cachePath == "" {
		warn("DATABASE_URL and CACHE_PATH both empty — external-check cache will be in-memory only.")
	} else if db != "" && cachePath != "" {
		warn("DATABASE_URL and CACHE_PATH both set — postgres wins, CACHE_PATH ignored.")
	} else {
		ok("cache backend configured")
	}

	ok("preflight passed")
}

// malformedPeers returns the PEER_REGIONS entries that will not survive
// config parsing.
func malformedPeers(peers string) []string {
	var bad []string
	for _, part := range strings.Split(peers, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, endpoint, found := strings.Cut(part, "=")
		if !found || name == "" || !strings.HasPrefix(endpoint, "http") {
			bad = append(bad, part)
		}
	}
	return bad
}

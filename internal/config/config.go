package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Peer is one sibling deployment in another region.
type Peer struct {
	Region   string // e.g. "eu-west-1"
	Endpoint string // base URL of that region's API, e.g. https://eu.checker.example
}

type Config struct {
	Addr        string        // API bind address, e.g., "127.0.0.1:8080" (Windows) or ":8080" (Docker)
	LogDir      string        // logs directory
	Region      string        // identifier reported in check results
	Peers       []Peer        // sibling regions for the global check
	DatabaseURL string        // postgres cache store; empty means no postgres
	CachePath   string        // leveldb cache store; empty means no leveldb
	Resolvers   []string      // public resolver endpoints for the DNS probe
	PeerTimeout time.Duration // per-peer invocation timeout
	CacheFresh  time.Duration // cache read freshness window
	CacheTTL    time.Duration // cache write lifetime
}

func FromEnv() Config {
	// Bind address (Windows-friendly default)
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	region := os.Getenv("REGION")
	if region == "" {
		region = "local"
	}

	// PEER_REGIONS: comma-separated region=endpoint pairs, e.g.
	// eu-west-1=https://eu.checker.example,ap-south-1=https://ap.checker.example
	var peers []Peer
	for _, part := range strings.Split(os.Getenv("PEER_REGIONS"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, endpoint, ok := strings.Cut(part, "=")
		if !ok || name == "" || endpoint == "" {
			continue
		}
		peers = append(peers, Peer{Region: name, Endpoint: strings.TrimRight(endpoint, "/")})
	}

	resolvers := []string{"8.8.8.8:53", "1.1.1.1:53", "208.67.222.222:53"}
	if v := os.Getenv("RESOLVERS"); v != "" {
		resolvers = resolvers[:0]
		for _, r := range strings.Split(v, ",") {
			if r = strings.TrimSpace(r); r != "" {
				resolvers = append(resolvers, r)
			}
		}
	}

	peerTimeout := 15 * time.Second
	if ms := envMS("PEER_TIMEOUT_MS"); ms > 0 {
		peerTimeout = ms
	}

	cacheFresh := 5 * time.Minute
	if ms := envMS("CACHE_FRESHNESS_MS"); ms > 0 {
		cacheFresh = ms
	}

	cacheTTL := 10 * time.Minute
	if ms := envMS("CACHE_TTL_MS"); ms > 0 {
		cacheTTL = ms
	}

	return Config{
		Addr:        addr,
		LogDir:      logDir,
		Region:      region,
		Peers:       peers,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CachePath:   os.Getenv("CACHE_PATH"),
		Resolvers:   resolvers,
		PeerTimeout: peerTimeout,
		CacheFresh:  cacheFresh,
		CacheTTL:    cacheTTL,
	}
}

func envMS(name string) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

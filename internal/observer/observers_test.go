package observer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/statuswatch/statuswatch/internal/domain"
)

func TestJustMe_PatternMatching(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{"<p>It's just you. The site is up.</p>", domain.ObserverUp},
		{"<p>It's not just you! The site is down.</p>", domain.ObserverDown},
		{"<p>something unrelated</p>", domain.ObserverUnknown},
	}
	for _, c := range cases {
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.URL.RawQuery, "domain=example.com") {
				t.Errorf("domain missing from query: %s", r.URL.RawQuery)
			}
			w.Write([]byte(c.body))
		}))
		o := NewJustMe()
		o.BaseURL = s.URL
		got := o.Observe(context.Background(), "example.com")
		s.Close()
		if got.Status != c.want {
			t.Fatalf("body %q: want %s, got %+v", c.body, c.want, got)
		}
	}
}

func TestJustMe_ConnectionFailureIsErrorEntry(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	o := NewJustMe()
	o.BaseURL = s.URL
	s.Close()

	got := o.Observe(context.Background(), "example.com")
	if got.Status != domain.ObserverError || got.Error == "" {
		t.Fatalf("want error entry, got %+v", got)
	}
}

func TestRightNow_StatusThreshold(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{200, domain.ObserverUp},
		{399, domain.ObserverUp},
		{403, domain.ObserverDown},
		{503, domain.ObserverDown},
	}
	for _, c := range cases {
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodHead {
				t.Errorf("want HEAD, got %s", r.Method)
			}
			w.WriteHeader(c.code)
		}))
		o := NewRightNow()
		got := o.Observe(context.Background(), strings.TrimPrefix(s.URL, "http://"))
		s.Close()
		if got.Status != c.want || got.StatusCode != c.code {
			t.Fatalf("code %d: want %s, got %+v", c.code, c.want, got)
		}
	}
}

func TestRightNow_ConnectionFailureIsDown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	host := strings.TrimPrefix(s.URL, "http://")
	s.Close()

	o := NewRightNow()
	got := o.Observe(context.Background(), host)
	if got.Status != domain.ObserverDown {
		t.Fatalf("want down on connection failure, got %+v", got)
	}
}

func TestPlanet_UpWhenAnyProtocolAnswers(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer s.Close()
	host := strings.TrimPrefix(s.URL, "http://")

	// https against the plain listener fails; http succeeds — still up.
	o := NewPlanet()
	got := o.Observe(context.Background(), host)
	if got.Status != domain.ObserverUp {
		t.Fatalf("want up, got %+v", got)
	}
	if len(got.Protocols) != 2 {
		t.Fatalf("want per-protocol detail for both schemes, got %+v", got.Protocols)
	}
	byProto := map[string]domain.ProtocolResult{}
	for _, pr := range got.Protocols {
		byProto[pr.Protocol] = pr
	}
	if byProto["http"].Status != domain.ObserverUp || byProto["https"].Status != domain.ObserverDown {
		t.Fatalf("protocol split wrong: %+v", byProto)
	}
}

func TestPlanet_DownWhenNothingAnswers(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	host := strings.TrimPrefix(s.URL, "http://")
	s.Close()

	o := NewPlanet()
	got := o.Observe(context.Background(), host)
	if got.Status != domain.ObserverDown {
		t.Fatalf("want down, got %+v", got)
	}
	for _, pr := range got.Protocols {
		if pr.Status != domain.ObserverDown {
			t.Fatalf("want every protocol down, got %+v", got.Protocols)
		}
	}
}

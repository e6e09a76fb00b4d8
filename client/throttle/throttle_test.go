package throttle

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewRoundTripper_Validation(t *testing.T) {
	testCases := map[string]struct {
		cfg    Config
		expErr error
	}{
		"zeroRPS":       {cfg: Config{RPS: 0, Burst: 10}, expErr: ErrMustNotBeZero},
		"negativeRPS":   {cfg: Config{RPS: -5, Burst: 10}, expErr: ErrMustNotBeZero},
		"zeroBurst":     {cfg: Config{RPS: 10, Burst: 0}, expErr: ErrMustNotBeZero},
		"negativeBurst": {cfg: Config{RPS: 10, Burst: -5}, expErr: ErrMustNotBeZero},
		"valid":         {cfg: Config{RPS: 10, Burst: 20}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			rt, err := NewRoundTripper(tc.cfg, nil, http.DefaultTransport)
			if tc.expErr != nil {
				if !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got: %v", tc.expErr, err)
				}
				return
			}
			if err != nil {
				t.Errorf("exp nil err, got: %v", err)
			}
			if rt == nil {
				t.Error("exp non-nil RoundTripper")
			}
		})
	}
}

func TestThrottle_SlowsAfterBurst(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rt, err := NewRoundTripper(Config{RPS: 10, Burst: 2}, nil, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}
	hc := &http.Client{Transport: rt}

	start := time.Now()
	for range 4 {
		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, nil)
		if err != nil {
			t.Fatal(err)
		}
		resp, err := hc.Do(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp.Body.Close()
	}

	// Two requests ride the burst, the other two wait ~100ms each.
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("expected throttling to slow requests down, took %v", elapsed)
	}
	if got := calls.Load(); got != 4 {
		t.Errorf("expected 4 server calls, got %d", got)
	}
}

func TestThrottle_WaitTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rt, err := NewRoundTripper(Config{RPS: 1, Burst: 1}, nil, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}
	hc := &http.Client{Transport: rt}

	first, _ := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, nil)
	resp, err := hc.Do(first)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	second, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if _, err := hc.Do(second); !errors.Is(err, ErrWaitingFailed) {
		t.Errorf("expected ErrWaitingFailed, got: %v", err)
	}
}

func TestThrottle_PreCancelledContext(t *testing.T) {
	rt, err := NewRoundTripper(Config{RPS: 10, Burst: 10}, nil, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://127.0.0.1:1", nil)
	_, err = rt.RoundTrip(req)
	if !errors.Is(err, ErrContextEnded) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected ErrContextEnded wrapping context.Canceled, got: %v", err)
	}
}

func TestThrottle_BurstDoesNotWait(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	const burst = 3
	rt, err := NewRoundTripper(Config{RPS: 1, Burst: burst}, func() *slog.Logger { return logger }, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}
	hc := &http.Client{Transport: rt}

	start := time.Now()
	for range burst {
		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, nil)
		if err != nil {
			t.Fatal(err)
		}
		resp, err := hc.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Errorf("burst of %d took %v, expected no wait", burst, elapsed)
	}
	if strings.Contains(logs.String(), "tokens exhausted") {
		t.Errorf("unexpected throttle log within burst:\n%s", logs.String())
	}
}

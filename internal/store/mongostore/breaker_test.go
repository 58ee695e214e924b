// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package mongostore

import (
	"errors"
	"fmt"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/splatfolio/internal/store"
)

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	b := newBreaker(t.Name(), 3, time.Hour)
	boom := errors.New("connection refused")

	for i := 0; i < 3; i++ {
		if err := exec(b, func() error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d error = %v, want %v", i, err, boom)
		}
	}

	called := false
	err := exec(b, func() error {
		called = true
		return nil
	})
	if called {
		t.Error("breaker let a call through while open")
	}
	if !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("open breaker error = %v, want ErrUnavailable", err)
	}
	if b.cb.State() != gobreaker.StateOpen {
		t.Errorf("state = %v, want open", b.cb.State())
	}
}

func TestBreakerIgnoresLookupMisses(t *testing.T) {
	t.Parallel()

	b := newBreaker(t.Name(), 2, time.Hour)
	misses := []error{
		store.ErrNotFound,
		fmt.Errorf("%w: %q", store.ErrInvalidID, "zz"),
		store.ErrNotFound,
		store.ErrNotFound,
	}
	for _, miss := range misses {
		_ = exec(b, func() error { return miss })
	}
	if b.cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed after lookup misses", b.cb.State())
	}
}

func TestRunReturnsTypedResult(t *testing.T) {
	t.Parallel()

	b := newBreaker(t.Name(), 1, time.Hour)
	n, err := run(b, func() (int64, error) { return 42, nil })
	if err != nil || n != 42 {
		t.Errorf("run = %d, %v; want 42, nil", n, err)
	}

	p, err := run(b, func() (*assetDoc, error) { return nil, nil })
	if err != nil || p != nil {
		t.Errorf("run with nil pointer = %v, %v; want nil, nil", p, err)
	}
}

func TestStateToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		want  float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.want {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

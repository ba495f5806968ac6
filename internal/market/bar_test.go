package market

import (
	"errors"
	"testing"
	"time"
)

func mkBar(ts time.Time, o, h, l, c, v float64) Bar {
	return Bar{Ts: ts, Open: o, High: h, Low: l, Close: c, Volume: v}
}

func TestBarValidateAcceptsWellFormed(t *testing.T) {
	b := mkBar(time.Unix(1700000000, 0), 100, 105, 98, 103, 12.5)
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestBarValidateRejectsHighBelowLow(t *testing.T) {
	b := mkBar(time.Unix(1700000000, 0), 100, 97, 98, 97.5, 1)
	if err := b.Validate(); err == nil {
		t.Fatalf("expected error for high below low")
	}
}

func TestBarValidateRejectsBrokenBody(t *testing.T) {
	// High below close violates the OHLC relationship.
	b := mkBar(time.Unix(1700000000, 0), 100, 101, 99, 102, 1)
	if err := b.Validate(); err == nil {
		t.Fatalf("expected error for high below close")
	}
	// Low above open.
	b = mkBar(time.Unix(1700000000, 0), 100, 103, 101, 102, 1)
	if err := b.Validate(); err == nil {
		t.Fatalf("expected error for low above open")
	}
}

func TestBarValidateRejectsNegativeVolume(t *testing.T) {
	b := mkBar(time.Unix(1700000000, 0), 100, 105, 98, 103, -1)
	if err := b.Validate(); err == nil {
		t.Fatalf("expected error for negative volume")
	}
}

func TestBarIntersects(t *testing.T) {
	b := mkBar(time.Unix(1700000000, 0), 100, 105, 98, 103, 1)
	if !b.Intersects(97, 99) {
		t.Fatalf("expected intersection with band below")
	}
	if !b.Intersects(104, 110) {
		t.Fatalf("expected intersection with band above")
	}
	if b.Intersects(90, 97.9) {
		t.Fatalf("expected no intersection below the range")
	}
	if b.Intersects(105.1, 110) {
		t.Fatalf("expected no intersection above the range")
	}
	// Band edge equal to bar edge still counts as a touch.
	if !b.Intersects(105, 110) {
		t.Fatalf("expected inclusive edge intersection")
	}
}

func TestSeriesAppendRejectsDuplicateTimestamp(t *testing.T) {
	s := &Series{Timeframe: "1m"}
	ts := time.Unix(1700000000, 0)
	if err := s.Append(mkBar(ts, 1, 2, 0.5, 1.5, 1)); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	err := s.Append(mkBar(ts, 1, 2, 0.5, 1.5, 1))
	if !errors.Is(err, ErrNonMonotonic) {
		t.Fatalf("expected ErrNonMonotonic, got %v", err)
	}
}

func TestSeriesAppendRejectsBackwardsTimestamp(t *testing.T) {
	s := &Series{Timeframe: "1m"}
	ts := time.Unix(1700000000, 0)
	if err := s.Append(mkBar(ts, 1, 2, 0.5, 1.5, 1)); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	err := s.Append(mkBar(ts.Add(-time.Minute), 1, 2, 0.5, 1.5, 1))
	if !errors.Is(err, ErrNonMonotonic) {
		t.Fatalf("expected ErrNonMonotonic, got %v", err)
	}
}

func TestCheckOrdered(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	good := []Bar{
		mkBar(ts, 1, 2, 0.5, 1.5, 1),
		mkBar(ts.Add(time.Minute), 1, 2, 0.5, 1.5, 1),
	}
	if err := CheckOrdered("1m", good); err != nil {
		t.Fatalf("expected ordered feed to pass: %v", err)
	}
	bad := []Bar{good[1], good[0]}
	if err := CheckOrdered("1m", bad); !errors.Is(err, ErrNonMonotonic) {
		t.Fatalf("expected ErrNonMonotonic, got %v", err)
	}
}

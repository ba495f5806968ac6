package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/EmilianoGerez/algorithmic-sub002/internal/market"
)

func TestEMASeedsWithSMA(t *testing.T) {
	ema := NewEMA(3)
	ema.Update(10)
	if ema.Ready() {
		t.Fatalf("EMA ready before full seed")
	}
	ema.Update(20)
	ema.Update(30)
	if !ema.Ready() {
		t.Fatalf("EMA not ready after %d samples", 3)
	}
	if ema.Value() != 20 {
		t.Fatalf("expected SMA seed 20, got %.4f", ema.Value())
	}
}

func TestEMAFoldsNewCloses(t *testing.T) {
	ema := NewEMA(3)
	for _, c := range []float64{10, 20, 30} {
		ema.Update(c)
	}
	ema.Update(40)
	// k = 2/(3+1) = 0.5, so 20 + 0.5*(40-20) = 30
	if math.Abs(ema.Value()-30) > 1e-9 {
		t.Fatalf("expected 30, got %.4f", ema.Value())
	}
}

func TestATRAveragesTrueRange(t *testing.T) {
	atr := NewATR(2)
	ts := time.Unix(1700000000, 0)
	bars := []market.Bar{
		{Ts: ts, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1},
		{Ts: ts.Add(time.Minute), Open: 100, High: 103, Low: 100, Close: 102, Volume: 1},
		{Ts: ts.Add(2 * time.Minute), Open: 102, High: 104, Low: 101, Close: 103, Volume: 1},
	}
	atr.Update(bars[0])
	if atr.Ready() {
		t.Fatalf("ATR ready with no true ranges")
	}
	atr.Update(bars[1]) // TR = max(3, |103-100|, |100-100|) = 3
	atr.Update(bars[2]) // TR = max(3, |104-102|, |101-102|) = 3
	if !atr.Ready() {
		t.Fatalf("ATR not ready after full period")
	}
	if math.Abs(atr.Value()-3) > 1e-9 {
		t.Fatalf("expected ATR 3, got %.4f", atr.Value())
	}
}

func TestATRUsesGapFromPreviousClose(t *testing.T) {
	atr := NewATR(1)
	ts := time.Unix(1700000000, 0)
	atr.Update(market.Bar{Ts: ts, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1})
	// Gap down: TR = max(2, |91-100|, |89-100|) = 11, dominated by |low - prevClose|.
	atr.Update(market.Bar{Ts: ts.Add(time.Minute), Open: 90, High: 91, Low: 89, Close: 90, Volume: 1})
	if math.Abs(atr.Value()-11) > 1e-9 {
		t.Fatalf("expected TR 11 from gap, got %.4f", atr.Value())
	}
}

func TestVolumeBaselineRatio(t *testing.T) {
	vb := NewVolumeBaseline(2)
	vb.Update(10)
	if vb.Ready() {
		t.Fatalf("baseline ready too early")
	}
	vb.Update(30)
	if !vb.Ready() {
		t.Fatalf("baseline not ready after full period")
	}
	// mean = 20
	if r := vb.Ratio(40); math.Abs(r-2) > 1e-9 {
		t.Fatalf("expected ratio 2, got %.4f", r)
	}
}

func TestVolumeBaselineRollsWindow(t *testing.T) {
	vb := NewVolumeBaseline(2)
	vb.Update(10)
	vb.Update(30)
	vb.Update(50) // window is now {30, 50}, mean 40
	if r := vb.Ratio(40); math.Abs(r-1) > 1e-9 {
		t.Fatalf("expected ratio 1 after roll, got %.4f", r)
	}
}

func TestVolumeBaselineDegenerateMean(t *testing.T) {
	vb := NewVolumeBaseline(2)
	vb.Update(0)
	vb.Update(0)
	if r := vb.Ratio(5); r != 0 {
		t.Fatalf("expected 0 ratio on zero baseline, got %.4f", r)
	}
}

// Package fvg detects fair value gap zones on structural timeframe bars.
package fvg

import (
	"fmt"
	"time"

	"github.com/EmilianoGerez/algorithmic-sub002/internal/market"
)

// Direction marks which side of price a zone favors.
type Direction string

const (
	// Bullish zones form below price; a later dip into the band is a touch.
	Bullish Direction = "bullish"
	// Bearish zones form above price; a later rally into the band is a touch.
	Bearish Direction = "bearish"
)

// Zone is an immutable fair value gap record. Only its Candidate evolves.
type Zone struct {
	ID          string           `json:"id"`
	Timeframe   market.Timeframe `json:"timeframe"`
	Direction   Direction        `json:"direction"`
	Low         float64          `json:"low"`
	High        float64          `json:"high"`
	GapSize     float64          `json:"gap_size"`
	GapPct      float64          `json:"gap_pct"`
	GapATR      float64          `json:"gap_atr"`
	VolumeRatio float64          `json:"volume_ratio"`
	FormedAt    time.Time        `json:"formed_at"`
}

// zoneID derives a deterministic identifier from timeframe, direction, and formation time.
// A bullish and bearish gap cannot form on the same three bars, so the triple is unique.
func zoneID(tf market.Timeframe, dir Direction, formedAt time.Time) string {
	return fmt.Sprintf("%s-%s-%d", tf, dir, formedAt.Unix())
}

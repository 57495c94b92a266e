package reporting

import (
	"fmt"
	"time"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/audience"
)

// Completion holds a broadcast's progress against its resolved audience.
type Completion struct {
	AudienceSize   int
	CompletedCount int
	FullyDone      bool
}

// DeriveCompletion intersects a resolved audience with the acknowledgement
// set. Acknowledgement ids outside the audience are ignored; they belong to
// recipients of an earlier roster state or to unrelated rows and must not
// push a broadcast past fully-done. An empty audience is never fully done.
func DeriveCompletion(aud map[string]struct{}, acks []string) Completion {
	c := Completion{AudienceSize: len(aud)}
	for _, id := range audience.NormalizeIDs(acks) {
		if _, ok := aud[id]; ok {
			c.CompletedCount++
		}
	}
	c.FullyDone = c.AudienceSize > 0 && c.CompletedCount >= c.AudienceSize
	return c
}

// WithAudienceSize pins the completion to the audience size captured at send
// time and re-derives fully-done against it, keeping the invariant
// fullyDone ⇒ completedCount >= audienceSize when the live roster has
// drifted from the historical audience. Non-positive sizes leave the live
// derivation untouched.
func (c Completion) WithAudienceSize(size int) Completion {
	if size <= 0 {
		return c
	}
	c.AudienceSize = size
	c.FullyDone = c.CompletedCount >= size
	return c
}

// DisplayStatus is the coarse list-view state of a broadcast, derived from
// read and action counts alone. Escalation is monotonic: any action implies
// the read state display-wise even when the data lacks a read receipt.
type DisplayStatus string

const (
	StatusQueued   DisplayStatus = "queued"
	StatusRead     DisplayStatus = "read"
	StatusActioned DisplayStatus = "actioned"
)

// DeriveDisplayStatus maps read/action counts to the display status.
func DeriveDisplayStatus(readCount, actionCount int) DisplayStatus {
	switch {
	case actionCount > 0:
		return StatusActioned
	case readCount > 0:
		return StatusRead
	default:
		return StatusQueued
	}
}

// DeltaSeconds returns the whole seconds between baseline and event,
// clamped at zero. Device clock skew produces event timestamps before the
// baseline; those report as zero, never negative.
func DeltaSeconds(event, baseline time.Time) int64 {
	d := event.Sub(baseline)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

// FormatDelta renders a second count in human units: seconds under a
// minute, minutes and seconds under an hour, hours and minutes beyond.
func FormatDelta(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	}
}

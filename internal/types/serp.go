package types

import "time"

// Engine identifies a search engine column in a ranking report.
type Engine string

const (
	EngineGoogle Engine = "google"
	EngineBing   Engine = "bing"
	EngineYahoo  Engine = "yahoo"
)

// Engines lists the report columns in display order.
var Engines = []Engine{EngineGoogle, EngineBing, EngineYahoo}

// SerpSnapshotRow is one ranking report entry. A nil position means the
// keyword was not ranked on that engine when the snapshot was captured.
type SerpSnapshotRow struct {
	KeywordText string          `json:"keywordText"`
	Positions   map[Engine]*int `json:"positions"`
}

// Position returns the recorded position for an engine, or nil when the
// keyword was unranked there.
func (r SerpSnapshotRow) Position(engine Engine) *int {
	if r.Positions == nil {
		return nil
	}
	return r.Positions[engine]
}

// SerpSnapshot is one full ranking report captured at a point in time.
type SerpSnapshot struct {
	ReportID   string            `json:"reportId"`
	CapturedAt time.Time         `json:"capturedAt"`
	Rows       []SerpSnapshotRow `json:"rows"`
}

// SerpHistory is a series of snapshots ordered by capture timestamp.
type SerpHistory []SerpSnapshot

// Baseline returns the earliest snapshot in the history, the reference
// point for movement arithmetic. Returns nil for an empty history.
func (h SerpHistory) Baseline() *SerpSnapshot {
	return h.pick(func(a, b time.Time) bool { return a.Before(b) })
}

// Latest returns the most recent snapshot, or nil for an empty history.
func (h SerpHistory) Latest() *SerpSnapshot {
	return h.pick(func(a, b time.Time) bool { return a.After(b) })
}

func (h SerpHistory) pick(better func(a, b time.Time) bool) *SerpSnapshot {
	if len(h) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(h); i++ {
		if better(h[i].CapturedAt, h[best].CapturedAt) {
			best = i
		}
	}
	return &h[best]
}

// MovementResult is the signed rank delta for one engine. Positive means
// the keyword improved (moved to a lower-numbered position or newly
// started ranking); negative means decline or drop-out.
type MovementResult struct {
	Engine Engine `json:"engine"`
	Delta  int    `json:"delta"`
}

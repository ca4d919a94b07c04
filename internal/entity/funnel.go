package entity

import (
	"bytes"
	"encoding/json"
)

// WeeklyStats maps a workflow state name to the number of applicants in that state.
type WeeklyStats map[string]int

// StateCount is one row of a group-by over workflow_state.
type StateCount struct {
	State string
	Count int
}

// NewWeeklyStats folds grouped rows into a stats map. It returns nil for no rows.
func NewWeeklyStats(rows []StateCount) WeeklyStats {
	if len(rows) == 0 {
		return nil
	}
	stats := make(WeeklyStats, len(rows))
	for _, r := range rows {
		stats[r.State] += r.Count
	}
	return stats
}

type WeekReport struct {
	Key   string
	Stats WeeklyStats
}

// FunnelReport holds per-week stats ordered by week start.
type FunnelReport struct {
	Weeks []WeekReport
}

func (r *FunnelReport) Add(key string, stats WeeklyStats) {
	r.Weeks = append(r.Weeks, WeekReport{Key: key, Stats: stats})
}

func (r *FunnelReport) Keys() []string {
	keys := make([]string, 0, len(r.Weeks))
	for _, w := range r.Weeks {
		keys = append(keys, w.Key)
	}
	return keys
}

func (r *FunnelReport) Get(key string) (WeeklyStats, bool) {
	for _, w := range r.Weeks {
		if w.Key == key {
			return w.Stats, true
		}
	}
	return nil, false
}

func (r *FunnelReport) Len() int {
	return len(r.Weeks)
}

// MarshalJSON writes the report as a JSON object whose keys keep week order.
func (r *FunnelReport) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, w := range r.Weeks {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(w.Key)
		if err != nil {
			return nil, err
		}
		stats, err := json.Marshal(w.Stats)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(stats)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

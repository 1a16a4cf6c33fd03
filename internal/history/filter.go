package history

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

type Range string

const (
	RangeAll   Range = "all"
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

func ParseRange(raw string) (Range, error) {
	switch r := Range(strings.ToLower(strings.TrimSpace(raw))); r {
	case "", RangeAll:
		return RangeAll, nil
	case RangeToday, RangeWeek, RangeMonth:
		return r, nil
	default:
		return "", fmt.Errorf("unknown range %q", raw)
	}
}

// Query selects history entries. Zero values match everything; set criteria
// are combined with AND.
type Query struct {
	// ItemType of "" or "all" matches every type.
	ItemType model.ItemType
	Range    Range
	Search   string
}

// Filter returns the entries matching q, in input order. "today" is the
// calendar day of now in now's location; week and month are the last 7 and
// 30 days.
func Filter(entries []model.HistoryEntry, q Query, now time.Time) []model.HistoryEntry {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]model.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		if q.ItemType != "" && q.ItemType != "all" && entry.ItemType != q.ItemType {
			continue
		}
		if !inRange(entry.Timestamp, q.Range, now) {
			continue
		}
		if needle != "" && !matchesSearch(entry, needle) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func inRange(ts time.Time, r Range, now time.Time) bool {
	switch r {
	case RangeToday:
		return sameDay(ts.In(now.Location()), now)
	case RangeWeek:
		return !ts.Before(now.Add(-7 * 24 * time.Hour))
	case RangeMonth:
		return !ts.Before(now.Add(-30 * 24 * time.Hour))
	default:
		return true
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func matchesSearch(entry model.HistoryEntry, needle string) bool {
	for _, field := range []string{entry.ItemName, entry.Details, entry.UserName, ActionLabel(entry.Action)} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// SortNewestFirst returns a copy of entries ordered by descending timestamp.
// Entries with equal timestamps keep their relative order.
func SortNewestFirst(entries []model.HistoryEntry) []model.HistoryEntry {
	out := append([]model.HistoryEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

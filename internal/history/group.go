package history

import (
	"time"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

// DayLayout formats the day key of a group, e.g. "Mon Jan 02 2006".
const DayLayout = "Mon Jan 02 2006"

type DayGroup struct {
	Day     string
	Entries []model.HistoryEntry
}

// GroupByDay buckets entries by calendar day in loc. Groups appear in order of
// their first entry and keep the input order inside each group.
func GroupByDay(entries []model.HistoryEntry, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.Local
	}
	index := map[string]int{}
	groups := []DayGroup{}
	for _, entry := range entries {
		day := entry.Timestamp.In(loc).Format(DayLayout)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Entries = append(groups[i].Entries, entry)
	}
	return groups
}

// RelativeTime renders ts as "Today at 15:04", "Yesterday at 15:04" or "Jan 2, 15:04".
func RelativeTime(ts, now time.Time) string {
	local := ts.In(now.Location())
	switch {
	case sameDay(local, now):
		return "Today at " + local.Format("15:04")
	case sameDay(local, now.AddDate(0, 0, -1)):
		return "Yesterday at " + local.Format("15:04")
	default:
		return local.Format("Jan 2, 15:04")
	}
}

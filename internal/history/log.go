package history

import (
	"time"

	"github.com/micro-ha/smarthome-dashboard/internal/localcache"
	"github.com/micro-ha/smarthome-dashboard/internal/model"
	"github.com/micro-ha/smarthome-dashboard/internal/pkg/utils"
)

const (
	fallbackUserName = "User"
	fallbackUserID   = "demo-user"
)

// ActorFunc reports who is performing the current action. An empty name or id
// selects the anonymous attribution.
type ActorFunc func() (name string, id string)

// Log is the persisted, newest-first activity history.
type Log struct {
	entries *localcache.Handle[[]model.HistoryEntry]
	actor   ActorFunc
	now     func() time.Time
}

func NewLog(entries *localcache.Handle[[]model.HistoryEntry], actor ActorFunc, now func() time.Time) *Log {
	if now == nil {
		now = utils.NowUTC
	}
	if actor == nil {
		actor = func() (string, string) { return "", "" }
	}
	return &Log{entries: entries, actor: actor, now: now}
}

// Append completes the entry with id, timestamp and attribution, then records
// it in front of all existing entries.
func (l *Log) Append(entry model.HistoryEntry) model.HistoryEntry {
	entry.ID = utils.NewID()
	entry.Timestamp = l.now().UTC()
	if entry.UserName == "" || entry.UserID == "" {
		name, id := l.actor()
		if entry.UserName == "" {
			entry.UserName = name
		}
		if entry.UserID == "" {
			entry.UserID = id
		}
	}
	if entry.UserName == "" {
		entry.UserName = fallbackUserName
	}
	if entry.UserID == "" {
		entry.UserID = fallbackUserID
	}
	if entry.ItemType == "" {
		entry.ItemType = model.ItemDevice
	}

	l.entries.Update(func(current []model.HistoryEntry) []model.HistoryEntry {
		next := make([]model.HistoryEntry, 0, len(current)+1)
		next = append(next, entry)
		return append(next, current...)
	})
	return entry
}

func (l *Log) Entries() []model.HistoryEntry {
	return l.entries.Get()
}

func (l *Log) Clear() {
	l.entries.Set([]model.HistoryEntry{})
}

package history

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/micro-ha/smarthome-dashboard/internal/localcache"
	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

func newTestLog(t *testing.T, actor ActorFunc, now func() time.Time) (*Log, *localcache.Cache) {
	t.Helper()
	cache := localcache.New(localcache.NewMemoryStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	handle := localcache.NewHandle(cache, localcache.KeyActivityHistory, []model.HistoryEntry{})
	return NewLog(handle, actor, now), cache
}

func TestAppendPrependsAndFillsDefaults(t *testing.T) {
	clock := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	log, _ := newTestLog(t, nil, func() time.Time { return clock })

	first := log.Append(model.HistoryEntry{ItemName: "Lamp", Action: model.ActionDeviceToggled, Details: "Device turned on"})
	clock = clock.Add(time.Minute)
	second := log.Append(model.HistoryEntry{ItemType: model.ItemRoom, ItemName: "Office", Action: model.ActionRoomAdded})

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Fatalf("entries not newest first: %+v", entries)
	}
	if first.UserName != "User" || first.UserID != "demo-user" {
		t.Fatalf("attribution = %q/%q, want User/demo-user", first.UserName, first.UserID)
	}
	if first.ItemType != model.ItemDevice {
		t.Fatalf("ItemType = %q, want device", first.ItemType)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("ids not unique: %q %q", first.ID, second.ID)
	}
	if !first.Timestamp.Equal(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("Timestamp = %v, want clock time", first.Timestamp)
	}
}

func TestAppendUsesActor(t *testing.T) {
	log, _ := newTestLog(t, func() (string, string) { return "Demo User", "u-1" }, nil)
	entry := log.Append(model.HistoryEntry{Action: model.ActionUserLogin})
	if entry.UserName != "Demo User" || entry.UserID != "u-1" {
		t.Fatalf("attribution = %q/%q, want Demo User/u-1", entry.UserName, entry.UserID)
	}
}

func TestClear(t *testing.T) {
	log, cache := newTestLog(t, nil, nil)
	log.Append(model.HistoryEntry{Action: model.ActionDeviceAdded})
	log.Clear()
	if got := log.Entries(); len(got) != 0 {
		t.Fatalf("Entries() after Clear = %d, want 0", len(got))
	}
	other := localcache.NewHandle[[]model.HistoryEntry](cache, localcache.KeyActivityHistory, nil)
	if got := other.Get(); len(got) != 0 {
		t.Fatalf("persisted history after Clear = %d, want 0", len(got))
	}
}

func TestFilter(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	entries := []model.HistoryEntry{
		{ID: "today", Timestamp: now.Add(-time.Hour), ItemType: model.ItemDevice, ItemName: "Main Lights", Action: model.ActionDeviceToggled, Details: "Device turned on", UserName: "Demo User"},
		{ID: "3d", Timestamp: now.Add(-72 * time.Hour), ItemType: model.ItemRoom, ItemName: "Office", Action: model.ActionRoomAdded, Details: `Room "Office" added`, UserName: "Amalia"},
		{ID: "20d", Timestamp: now.Add(-20 * 24 * time.Hour), ItemType: model.ItemScene, ItemName: "Movie Night", Action: model.ActionSceneActivated, Details: "created", UserName: "Demo User"},
		{ID: "40d", Timestamp: now.Add(-40 * 24 * time.Hour), ItemType: model.ItemDevice, ItemName: "Old Fan", Action: model.ActionDeviceRemoved, Details: "Device removed from Bathroom", UserName: "Demo User"},
	}

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "all", query: Query{}, want: []string{"today", "3d", "20d", "40d"}},
		{name: "type all keyword", query: Query{ItemType: "all"}, want: []string{"today", "3d", "20d", "40d"}},
		{name: "type device", query: Query{ItemType: model.ItemDevice}, want: []string{"today", "40d"}},
		{name: "today", query: Query{Range: RangeToday}, want: []string{"today"}},
		{name: "week", query: Query{Range: RangeWeek}, want: []string{"today", "3d"}},
		{name: "month", query: Query{Range: RangeMonth}, want: []string{"today", "3d", "20d"}},
		{name: "search details", query: Query{Search: "BATHROOM"}, want: []string{"40d"}},
		{name: "search user", query: Query{Search: "amalia"}, want: []string{"3d"}},
		{name: "search action label", query: Query{Search: "scene activated"}, want: []string{"20d"}},
		{name: "combined", query: Query{ItemType: model.ItemDevice, Range: RangeMonth, Search: "lights"}, want: []string{"today"}},
		{name: "no match", query: Query{ItemType: model.ItemAutomation}, want: []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(entries, tt.query, now)
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("Filter() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestFilterSearchIsSubsetOfUnfiltered(t *testing.T) {
	now := time.Now()
	entries := DemoEntries(now)
	all := Filter(entries, Query{}, now)
	narrowed := Filter(entries, Query{Search: "device"}, now)
	if len(narrowed) > len(all) {
		t.Fatalf("search produced %d entries, more than unfiltered %d", len(narrowed), len(all))
	}
}

func TestSortNewestFirstAndGroupByDay(t *testing.T) {
	base := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	entries := []model.HistoryEntry{
		{ID: "a", Timestamp: base.Add(-24 * time.Hour)},
		{ID: "b", Timestamp: base},
		{ID: "c", Timestamp: base.Add(time.Hour)},
		{ID: "d", Timestamp: base.Add(-23 * time.Hour)},
	}
	sorted := SortNewestFirst(entries)
	if sorted[0].ID != "c" || sorted[1].ID != "b" || sorted[2].ID != "d" || sorted[3].ID != "a" {
		t.Fatalf("SortNewestFirst() order = %v", sorted)
	}
	if entries[0].ID != "a" {
		t.Fatal("SortNewestFirst() modified its input")
	}

	groups := GroupByDay(sorted, time.UTC)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if groups[0].Day != "Tue Jan 02 2024" || groups[1].Day != "Mon Jan 01 2024" {
		t.Fatalf("group days = %q, %q", groups[0].Day, groups[1].Day)
	}
	if groups[0].Entries[0].ID != "c" || groups[0].Entries[1].ID != "b" {
		t.Fatalf("first group order = %+v", groups[0].Entries)
	}
	if groups[1].Entries[0].ID != "d" || groups[1].Entries[1].ID != "a" {
		t.Fatalf("second group order = %+v", groups[1].Entries)
	}
}

func TestActionLabel(t *testing.T) {
	if got := ActionLabel(model.ActionSceneActivated); got != "Scene Activated" {
		t.Fatalf("ActionLabel(scene_activated) = %q", got)
	}
	if got := ActionLabel("energy_report_sent"); got != "Energy Report Sent" {
		t.Fatalf("ActionLabel(unknown) = %q, want %q", got, "Energy Report Sent")
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	if got := RelativeTime(now.Add(-time.Hour), now); got != "Today at 11:00" {
		t.Fatalf("RelativeTime(today) = %q", got)
	}
	if got := RelativeTime(now.Add(-20*time.Hour), now); got != "Yesterday at 16:00" {
		t.Fatalf("RelativeTime(yesterday) = %q", got)
	}
	if got := RelativeTime(now.Add(-72*time.Hour), now); got != "May 7, 12:00" {
		t.Fatalf("RelativeTime(older) = %q", got)
	}
}

func TestExportJSONAndYAML(t *testing.T) {
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	entries := DemoEntries(now)

	var jsonBuf bytes.Buffer
	if err := Export(&jsonBuf, entries, FormatJSON); err != nil {
		t.Fatalf("Export(json) error: %v", err)
	}
	var decoded []model.HistoryEntry
	if err := json.Unmarshal(jsonBuf.Bytes(), &decoded); err != nil {
		t.Fatalf("json export not decodable: %v", err)
	}
	if len(decoded) != 3 || decoded[1].Details != "Brightness adjusted to 75%" {
		t.Fatalf("json export = %+v", decoded)
	}
	if !strings.Contains(jsonBuf.String(), "\n  {") {
		t.Fatalf("json export is not indented: %q", jsonBuf.String())
	}

	var yamlBuf bytes.Buffer
	if err := Export(&yamlBuf, entries, FormatYAML); err != nil {
		t.Fatalf("Export(yaml) error: %v", err)
	}
	var docs []map[string]any
	if err := yaml.Unmarshal(yamlBuf.Bytes(), &docs); err != nil {
		t.Fatalf("yaml export not decodable: %v", err)
	}
	if len(docs) != 3 || docs[0]["itemName"] != "Smart Thermostat" {
		t.Fatalf("yaml export = %+v", docs)
	}

	if err := Export(io.Discard, entries, Format("csv")); err == nil {
		t.Fatal("Export(csv) error = nil, want non-nil")
	}
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)
	if got := ExportFileName(now, FormatJSON); got != "smart-home-history-2024-12-31.json" {
		t.Fatalf("ExportFileName() = %q", got)
	}
	if got := ExportFileName(now, FormatYAML); got != "smart-home-history-2024-12-31.yaml" {
		t.Fatalf("ExportFileName(yaml) = %q", got)
	}
}

func TestParseRangeAndFormat(t *testing.T) {
	if r, err := ParseRange("Week"); err != nil || r != RangeWeek {
		t.Fatalf("ParseRange(Week) = %q, %v", r, err)
	}
	if _, err := ParseRange("year"); err == nil {
		t.Fatal("ParseRange(year) error = nil, want non-nil")
	}
	if f, err := ParseFormat("yml"); err != nil || f != FormatYAML {
		t.Fatalf("ParseFormat(yml) = %q, %v", f, err)
	}
}

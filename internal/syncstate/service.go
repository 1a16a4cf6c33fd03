package syncstate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/micro-ha/smarthome-dashboard/internal/history"
	"github.com/micro-ha/smarthome-dashboard/internal/localcache"
	"github.com/micro-ha/smarthome-dashboard/internal/model"
	"github.com/micro-ha/smarthome-dashboard/internal/pkg/utils"
	"github.com/micro-ha/smarthome-dashboard/internal/remote"
)

// RemoteStore is the subset of the backend client the state layer calls.
type RemoteStore interface {
	Login(ctx context.Context, email, password string) (remote.AuthResult, error)
	Register(ctx context.Context, email, password, name string) (remote.AuthResult, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) (remote.Ack, error)
	DeleteAccount(ctx context.Context) (remote.Ack, error)
	Logout()
	CreateDevice(ctx context.Context, in remote.DeviceInput) (remote.DeviceRecord, error)
}

type Options struct {
	// Seed selects the demo collections as initial values for empty keys.
	Seed bool
	Now  func() time.Time
	// Location is the calendar used for "today", day groups and relative
	// times. Timestamps are stored in UTC regardless. Defaults to time.Local.
	Location *time.Location
}

// Service owns every client-side collection and the mutations over them.
// Mutations are serialized; each commits its collection change and its
// history entry before returning.
type Service struct {
	mu     sync.Mutex
	remote RemoteStore
	logger *slog.Logger
	now    func() time.Time
	loc    *time.Location

	currentUser *localcache.Handle[*model.User]
	devices     *localcache.Handle[[]model.Device]
	rooms       *localcache.Handle[[]model.Room]
	categories  *localcache.Handle[[]model.Category]
	favourites  *localcache.Handle[[]string]
	scenes      *localcache.Handle[[]model.Scene]
	automations *localcache.Handle[[]model.Automation]
	history     *history.Log
}

func New(cache *localcache.Cache, rs RemoteStore, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = utils.NowUTC
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	devices := []model.Device{}
	rooms := []model.Room{}
	categories := model.DefaultCategories()
	entries := []model.HistoryEntry{}
	if opts.Seed {
		devices = demoDevices(now())
		rooms = demoRooms()
		entries = history.DemoEntries(now())
	}

	s := &Service{
		remote:      rs,
		logger:      logger.With("component", "syncstate"),
		now:         now,
		loc:         loc,
		currentUser: localcache.NewHandle[*model.User](cache, localcache.KeyCurrentUser, nil),
		devices:     localcache.NewHandle(cache, localcache.KeyDevices, devices),
		rooms:       localcache.NewHandle(cache, localcache.KeyRooms, rooms),
		categories:  localcache.NewHandle(cache, localcache.KeyCategories, categories),
		favourites:  localcache.NewHandle(cache, localcache.KeyFavouriteDevices, []string{}),
		scenes:      localcache.NewHandle(cache, localcache.KeyScenes, []model.Scene{}),
		automations: localcache.NewHandle(cache, localcache.KeyAutomations, []model.Automation{}),
	}
	s.history = history.NewLog(
		localcache.NewHandle(cache, localcache.KeyActivityHistory, entries),
		s.actor,
		now,
	)
	return s
}

func (s *Service) actor() (string, string) {
	user := s.currentUser.Get()
	if user == nil {
		return "", ""
	}
	return user.DisplayName(), user.ID
}

func (s *Service) record(itemType model.ItemType, itemID, itemName string, action model.HistoryAction, details string) {
	s.history.Append(model.HistoryEntry{
		ItemType: itemType,
		ItemID:   itemID,
		ItemName: itemName,
		Action:   action,
		Details:  details,
	})
}

func (s *Service) History() []model.HistoryEntry {
	return s.history.Entries()
}

// FilterHistory applies q and orders the result newest first.
func (s *Service) FilterHistory(q history.Query) []model.HistoryEntry {
	return history.SortNewestFirst(history.Filter(s.history.Entries(), q, s.Now()))
}

// ClearHistory empties the log. Callers confirm with the user first.
func (s *Service) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear()
}

func (s *Service) Categories() []model.Category {
	return s.categories.Get()
}

// Now is the current time on the user's calendar.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

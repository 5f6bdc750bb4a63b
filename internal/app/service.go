// Package service provides the aggregation engine behind the HTTP API: it
// owns the snapshot cache, the reload path, and the synchronous query
// surface over players, statistics, and chart data.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/chestboard/internal/adapters/snapstore"
	"github.com/okian/chestboard/internal/adapters/source"
	"github.com/okian/chestboard/internal/domain/chart"
	"github.com/okian/chestboard/internal/domain/filter"
	"github.com/okian/chestboard/internal/domain/model"
	"github.com/okian/chestboard/internal/domain/stats"
	"github.com/okian/chestboard/pkg/logger"
	"github.com/okian/chestboard/pkg/metrics"
)

// Default engine configuration constants.
const (
	defaultMaxAge             = time.Hour
	defaultFetchTimeout       = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// ReloadCallback observes the snapshot installed by a successful reload.
type ReloadCallback func(snap *model.Snapshot)

// ErrorCallback observes every error the engine reports: failed reloads,
// unknown chart kinds, snapshot store trouble.
type ErrorCallback func(err error)

// Service implements the aggregation engine and its query surface.
//
// The snapshot is replaced by reference on reload and never mutated, so
// readers either see the previous complete snapshot or the new one. Queries
// recompute from scratch on every call; the dataset is small by contract.
type Service struct {
	mu sync.RWMutex

	// Core state
	snapshot *model.Snapshot
	src      source.Source
	store    snapstore.Store

	// Configuration
	maxAge        time.Duration
	fetchTimeout  time.Duration
	reloadOnStart bool

	// State
	started   bool
	reloading bool

	// Caller-owned observers
	onReload []ReloadCallback
	onError  []ErrorCallback

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets the data source the engine reloads from.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.src = src
		}
	}
}

// WithStore sets the snapshot persistence store.
func WithStore(store snapstore.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithMaxAge sets the snapshot staleness window.
func WithMaxAge(maxAge time.Duration) Option {
	return func(s *Service) {
		if maxAge > 0 {
			s.maxAge = maxAge
		}
	}
}

// WithFetchTimeout sets the timeout applied to sources built by SetDataSource.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.fetchTimeout = timeout
		}
	}
}

// WithReloadOnStart controls whether Start fetches the dataset when no
// usable persisted snapshot exists.
func WithReloadOnStart(reload bool) Option {
	return func(s *Service) {
		s.reloadOnStart = reload
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:         snapstore.NewMemoryStore(),
		maxAge:        defaultMaxAge,
		fetchTimeout:  defaultFetchTimeout,
		reloadOnStart: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start brings the engine up: it rehydrates the persisted snapshot if one
// exists and is still fresh, otherwise performs the initial reload. A failed
// initial reload leaves the engine running with an empty cache; the failure
// is reported but does not prevent startup.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting aggregation engine",
		logger.String("source", s.sourceID()),
		logger.Any("maxAge", s.maxAge),
	)

	if s.rehydrate(ctx) {
		return nil
	}
	if s.reloadOnStart && s.src != nil {
		if err := s.Reload(ctx); err != nil {
			s.logger.Warn(ctx, "initial reload failed; starting with empty cache", logger.Error(err))
		}
	}
	return nil
}

// Stop shuts the engine down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "aggregation engine stopped")
}

// rehydrate restores a fresh persisted snapshot. Returns true when the
// restored snapshot is usable.
func (s *Service) rehydrate(ctx context.Context) bool {
	start := time.Now()
	snap, ok, err := s.store.Load(ctx)
	metrics.RecordStoreLatency("load", float64(time.Since(start).Nanoseconds())/nanosecondsPerMillisecond)
	if err != nil {
		metrics.RecordStoreError()
		s.reportError(ctx, "snapstore", err)
		return false
	}
	if !ok {
		return false
	}
	if snap.StaleAt(time.Now(), s.maxAge) {
		s.logger.Info(ctx, "persisted snapshot is stale; discarding",
			logger.Any("lastUpdated", snap.LastUpdated),
		)
		return false
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
	s.publishSnapshotMetrics(snap)
	s.logger.Info(ctx, "snapshot rehydrated from store",
		logger.Int("players", len(snap.Players)),
		logger.Any("lastUpdated", snap.LastUpdated),
	)
	return true
}

// Reload fetches the raw dataset, normalizes it, and atomically installs the
// new snapshot. The previous snapshot stays in place on any failure. Only one
// reload may be in flight at a time; overlapping calls fail fast with
// ErrReloadInFlight rather than queueing.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	if s.reloading {
		s.mu.Unlock()
		return ErrReloadInFlight
	}
	src := s.src
	s.reloading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.reloading = false
		s.mu.Unlock()
	}()

	if src == nil {
		metrics.RecordReloadFailure()
		return ErrNoDataSource
	}

	reloadID := uuid.NewString()
	start := time.Now()
	s.logger.Info(ctx, "reloading dataset",
		logger.String("reloadID", reloadID),
		logger.String("source", src.Identifier()),
	)

	doc, err := src.Fetch(ctx)
	if err != nil {
		metrics.RecordReloadFailure()
		s.reportError(ctx, "source", err)
		s.logger.Error(ctx, "reload failed; cache unchanged",
			logger.String("reloadID", reloadID),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}

	players := model.Normalize(doc.Players)
	snap := model.NewSnapshot(players, time.Now())

	s.mu.Lock()
	s.snapshot = snap
	callbacks := append([]ReloadCallback(nil), s.onReload...)
	s.mu.Unlock()

	s.persist(ctx, snap)

	durationMs := float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond
	metrics.RecordReload()
	metrics.RecordReloadDuration(durationMs)
	s.publishSnapshotMetrics(snap)

	s.logger.Info(ctx, "reload complete",
		logger.String("reloadID", reloadID),
		logger.Int("players", len(snap.Players)),
		logger.Int("alliances", len(snap.Alliances)),
		logger.Int("servers", len(snap.Servers)),
		logger.Float64("durationMs", durationMs),
	)

	for _, fn := range callbacks {
		fn(snap)
	}
	return nil
}

// persist saves the snapshot best-effort: a store failure is reported but
// never fails the reload that produced the snapshot.
func (s *Service) persist(ctx context.Context, snap *model.Snapshot) {
	start := time.Now()
	err := s.store.Save(ctx, snap)
	metrics.RecordStoreLatency("save", float64(time.Since(start).Nanoseconds())/nanosecondsPerMillisecond)
	if err != nil {
		metrics.RecordStoreError()
		s.reportError(ctx, "snapstore", err)
		s.logger.Warn(ctx, "snapshot persistence failed", logger.Error(err))
	}
}

// current returns the live snapshot, or an empty one before the first load.
func (s *Service) current() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return &model.Snapshot{}
	}
	return s.snapshot
}

// Players returns all loaded players.
func (s *Service) Players() []model.Player {
	snap := s.current()
	return append([]model.Player(nil), snap.Players...)
}

// FilteredPlayers returns the players matching spec, in load order.
func (s *Service) FilteredPlayers(spec filter.Spec) []model.Player {
	metrics.RecordFilterQuery()
	return filter.Apply(s.current().Players, spec)
}

// PlayerDetails returns a single player by id.
func (s *Service) PlayerDetails(id string) (model.Player, error) {
	p, ok := s.current().PlayerByID(id)
	if !ok {
		return model.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	return p, nil
}

// Alliances returns the sorted distinct alliance names.
func (s *Service) Alliances() []string {
	return append([]string(nil), s.current().Alliances...)
}

// Servers returns the sorted distinct server names.
func (s *Service) Servers() []string {
	return append([]string(nil), s.current().Servers...)
}

// Statistics computes the summary over the full snapshot.
func (s *Service) Statistics() stats.Summary {
	snap := s.current()
	return stats.Compute(snap.Players, snap.Alliances, snap.Servers)
}

// FilteredStatistics computes the summary over the filtered players while
// keeping breakdown rows for every alliance and server the full snapshot
// knows about.
func (s *Service) FilteredStatistics(spec filter.Spec) stats.Summary {
	snap := s.current()
	players := snap.Players
	if !spec.IsZero() {
		metrics.RecordFilterQuery()
		players = filter.Apply(players, spec)
	}
	return stats.Compute(players, snap.Alliances, snap.Servers)
}

// ChartData builds the chart shape for kind over the players matching spec.
// An unknown kind is reported through the error callbacks and returned as an
// error alongside the empty shape, so callers can keep rendering.
func (s *Service) ChartData(kind chart.Kind, spec filter.Spec, opts chart.Options) (chart.Data, error) {
	players := s.current().Players
	if !spec.IsZero() {
		players = filter.Apply(players, spec)
	}
	data, err := chart.Build(kind, players, opts)
	if err != nil {
		metrics.RecordChartError()
		s.reportError(context.Background(), "chart", err)
		return chart.Empty(), err
	}
	metrics.RecordChartRequest(string(kind))
	return data, nil
}

// ClearCache drops the in-memory snapshot and the persisted one.
func (s *Service) ClearCache(ctx context.Context) error {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()

	s.publishSnapshotMetrics(&model.Snapshot{})
	if err := s.store.Clear(ctx); err != nil {
		metrics.RecordStoreError()
		s.reportError(ctx, "snapstore", err)
		return err
	}
	s.logger.Info(ctx, "cache cleared")
	return nil
}

// SetDataSource switches the engine to a new dataset identifier. The change
// takes effect on the next reload; the current snapshot stays in place.
func (s *Service) SetDataSource(identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return ErrInvalidSourceID
	}
	src := source.New(identifier, source.WithTimeout(s.fetchTimeout))

	s.mu.Lock()
	s.src = src
	s.mu.Unlock()

	s.logger.Info(context.Background(), "data source switched", logger.String("source", identifier))
	return nil
}

// DataSource returns the current dataset identifier, if any.
func (s *Service) DataSource() string {
	return s.sourceID()
}

// OnReload registers a callback invoked after each successful reload.
func (s *Service) OnReload(fn ReloadCallback) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, fn)
}

// OnError registers a callback invoked for every reported engine error.
func (s *Service) OnError(fn ErrorCallback) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = append(s.onError, fn)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	snap := s.current()

	s.mu.RLock()
	started := s.started
	reloading := s.reloading
	s.mu.RUnlock()

	stale := snap.LastUpdated.IsZero() || snap.StaleAt(time.Now(), s.maxAge)
	out := map[string]interface{}{
		"started":     started,
		"reloading":   reloading,
		"source":      s.sourceID(),
		"players":     len(snap.Players),
		"alliances":   len(snap.Alliances),
		"servers":     len(snap.Servers),
		"lastUpdated": snap.LastUpdated,
		"stale":       stale,
	}
	s.publishSnapshotMetrics(snap)
	return out
}

func (s *Service) sourceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.src == nil {
		return ""
	}
	return s.src.Identifier()
}

func (s *Service) publishSnapshotMetrics(snap *model.Snapshot) {
	metrics.UpdateSnapshotPlayers(len(snap.Players))
	if snap.LastUpdated.IsZero() {
		metrics.UpdateSnapshotAge(0)
		return
	}
	metrics.UpdateSnapshotAge(time.Since(snap.LastUpdated).Seconds())
}

// reportError forwards an error to the registered error callbacks and the
// component error counter. The shared reporting path keeps rendering callers
// alive: they substitute a safe value and move on.
func (s *Service) reportError(ctx context.Context, component string, err error) {
	metrics.RecordErrorByComponent(component, "error")

	s.mu.RLock()
	l := s.logger
	callbacks := append([]ErrorCallback(nil), s.onError...)
	s.mu.RUnlock()
	if l != nil {
		l.Debug(ctx, "error reported", logger.String("component", component), logger.Error(err))
	}
	for _, fn := range callbacks {
		fn(err)
	}
}

// Package service wires the puzzle result pipeline together: intake and
// dedupe, the parsing workers, the per-game stores and the leaderboard
// queries the HTTP API exposes.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	subqueue "github.com/nytrack/puzzleboard/internal/adapters/mq/queue"
	workerpool "github.com/nytrack/puzzleboard/internal/adapters/mq/worker"
	"github.com/nytrack/puzzleboard/internal/adapters/persistence"
	"github.com/nytrack/puzzleboard/internal/adapters/repository"
	"github.com/nytrack/puzzleboard/internal/domain/almanac"
	"github.com/nytrack/puzzleboard/internal/domain/dedupe"
	"github.com/nytrack/puzzleboard/internal/domain/game"
	"github.com/nytrack/puzzleboard/internal/domain/model"
	"github.com/nytrack/puzzleboard/internal/domain/query"
	"github.com/nytrack/puzzleboard/internal/domain/stats"
	"github.com/nytrack/puzzleboard/internal/domain/submission"
	"github.com/nytrack/puzzleboard/pkg/logger"
	"github.com/nytrack/puzzleboard/pkg/metrics"
)

// engine bundles everything the service needs for one game variant.
type engine struct {
	cfg      game.Config
	resolver almanac.Resolver
	store    *repository.MemStore
	parser   *submission.Parser
	calc     *stats.Calculator
	ranker   *stats.Ranker
}

// Service implements the API dependencies for the puzzle leaderboard system.
type Service struct {
	mu sync.RWMutex

	engines map[game.Variant]*engine
	deduper dedupe.Deduper
	queue   subqueue.Queue
	pool    *workerpool.Pool
	archive persistence.Archive

	workerCount int
	queueSize   int
	dedupeSize  int
	maxRows     int
	loc         *time.Location
	now         func() time.Time

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of parsing workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxLeaderboardRows caps the rows returned by Leaderboard.
func WithMaxLeaderboardRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRows = n
		}
	}
}

// WithArchive sets the durable entry archive. Without one the service is
// memory-only.
func WithArchive(a persistence.Archive) Option {
	return func(s *Service) {
		s.archive = a
	}
}

// WithLocation sets the location used to decide what "today" means.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the wall clock. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		engines:     make(map[game.Variant]*engine),
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10000,
		dedupeSize:  50000,
		maxRows:     100,
		loc:         time.FixedZone("EST", -5*60*60),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the per-game engines, hydrates them from the archive
// and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting puzzle leaderboard service...")

	for _, cfg := range game.All() {
		s.engines[cfg.Variant] = &engine{
			cfg:      cfg,
			resolver: almanac.New(cfg),
			store:    repository.NewMemStore(cfg.Variant),
			parser:   submission.NewParser(cfg),
			calc:     stats.NewCalculator(cfg),
			ranker:   stats.NewRanker(cfg),
		}
	}

	if s.archive != nil {
		if err := s.hydrate(ctx); err != nil {
			return fmt.Errorf("hydrate from archive: %w", err)
		}
	}

	s.deduper = dedupe.New(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = subqueue.NewInMemoryQueue(subqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s, s)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "puzzle leaderboard service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// hydrate replays archived entries into the in-memory stores.
func (s *Service) hydrate(ctx context.Context) error {
	for variant, eng := range s.engines {
		entries, err := s.archive.LoadAll(ctx, variant)
		if err != nil {
			return fmt.Errorf("load %s entries: %w", variant, err)
		}
		for _, e := range entries {
			eng.store.Upsert(ctx, e)
		}
		s.logger.Info(ctx, "hydrated store",
			logger.String("game", variant.String()),
			logger.Int("entries", len(entries)),
		)
	}
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping puzzle leaderboard service...")

	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}
	if s.archive != nil {
		if err := s.archive.Close(); err != nil {
			s.logger.Error(ctx, "error closing archive", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "puzzle leaderboard service stopped")
}

// today returns the current calendar date in the configured location.
func (s *Service) today() time.Time {
	return s.now().In(s.loc)
}

// engineFor resolves a game name to its engine.
func (s *Service) engineFor(name string) (*engine, error) {
	cfg, err := game.Lookup(name)
	if err != nil {
		return nil, err
	}
	eng, ok := s.engines[cfg.Variant]
	if !ok {
		return nil, game.ErrUnknownVariant
	}
	return eng, nil
}

// SeenAndRecord atomically checks whether a submission id was seen before
// and records it if not.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordSubmissionDuplicate()
	}
	return seen
}

// Unrecord forgets a submission id so it can be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Submit queues a submission for asynchronous processing. The duplicate
// return distinguishes an already-seen id from a full queue.
func (s *Service) Submit(ctx context.Context, sub model.Submission) (queued, duplicate bool) {
	metrics.RecordSubmissionReceived()

	if s.SeenAndRecord(ctx, sub.ID) {
		s.logger.Debug(ctx, "duplicate submission",
			logger.String("submission_id", sub.ID),
			logger.String("player_id", sub.PlayerID),
		)
		return false, true
	}

	if !s.queue.Enqueue(ctx, sub) {
		// Undo the dedupe record so a later retry is not swallowed.
		s.Unrecord(ctx, sub.ID)
		return false, false
	}
	return true, false
}

// Record parses a submission and stores the resulting entry. It is called
// by the workers for queued submissions.
func (s *Service) Record(ctx context.Context, sub model.Submission) error {
	eng, ok := s.engines[sub.Game]
	if !ok {
		return fmt.Errorf("game %q: %w", sub.Game, game.ErrUnknownVariant)
	}

	entry, err := eng.parser.Parse(sub.PlayerID, sub.Title, sub.Body)
	if err != nil {
		metrics.RecordParseFailure(eng.cfg.Variant.String())
		return fmt.Errorf("parse %s submission: %w", eng.cfg.Variant, err)
	}

	s.store(ctx, eng, entry)
	return nil
}

// store upserts an entry and mirrors it to the archive. Archive failures
// are logged and counted but never lose the in-memory write.
func (s *Service) store(ctx context.Context, eng *engine, entry model.Entry) {
	eng.store.Upsert(ctx, entry)
	metrics.RecordEntryUpserted(eng.cfg.Variant.String())

	if s.archive != nil {
		if err := s.archive.Save(ctx, entry); err != nil {
			metrics.RecordPersistenceError()
			s.logger.Error(ctx, "archive save failed",
				logger.String("game", eng.cfg.Variant.String()),
				logger.String("player_id", entry.PlayerID),
				logger.Int("puzzle_id", entry.PuzzleID),
				logger.Error(err),
			)
		}
	}
}

// AddEntry parses and stores a submission synchronously, bypassing the
// queue. Parse and archive errors surface to the caller.
func (s *Service) AddEntry(ctx context.Context, gameName, playerID, title, body string) (model.Entry, error) {
	eng, err := s.engineFor(gameName)
	if err != nil {
		return model.Entry{}, err
	}

	entry, err := eng.parser.Parse(playerID, title, body)
	if err != nil {
		metrics.RecordParseFailure(eng.cfg.Variant.String())
		return model.Entry{}, err
	}

	eng.store.Upsert(ctx, entry)
	metrics.RecordEntryUpserted(eng.cfg.Variant.String())

	if s.archive != nil {
		if err := s.archive.Save(ctx, entry); err != nil {
			metrics.RecordPersistenceError()
			return model.Entry{}, fmt.Errorf("archive save: %w", err)
		}
	}
	return entry, nil
}

// RemoveEntry deletes a player's entry for a puzzle. A negative puzzleID
// targets today's puzzle. Returns false when no entry existed.
func (s *Service) RemoveEntry(ctx context.Context, gameName, playerID string, puzzleID int) (bool, error) {
	eng, err := s.engineFor(gameName)
	if err != nil {
		return false, err
	}

	if puzzleID < 0 {
		puzzleID = eng.resolver.PuzzleID(s.today())
	}

	removed := eng.store.Remove(ctx, playerID, puzzleID)
	if removed {
		metrics.RecordEntryRemoved(eng.cfg.Variant.String())
	}

	if s.archive != nil {
		if err := s.archive.Delete(ctx, eng.cfg.Variant, playerID, puzzleID); err != nil {
			metrics.RecordPersistenceError()
			return removed, fmt.Errorf("archive delete: %w", err)
		}
	}
	return removed, nil
}

// Leaderboard resolves a query mode into a puzzle window, aggregates every
// participating player over it and returns the ranked standing.
func (s *Service) Leaderboard(ctx context.Context, gameName, mode string) (*model.Leaderboard, error) {
	start := time.Now()
	defer func() {
		metrics.RecordQueryLatency(time.Since(start).Seconds())
	}()

	eng, err := s.engineFor(gameName)
	if err != nil {
		return nil, err
	}

	window, err := query.Resolve(mode, s.today(), eng.resolver, eng.store.PuzzleIDs(ctx))
	if err != nil {
		return nil, err
	}

	players := s.participants(ctx, eng, window)
	if len(players) == 0 {
		return nil, ErrNoEntries
	}

	list := make([]stats.PlayerStats, 0, len(players))
	for _, p := range players {
		list = append(list, eng.calc.Compute(ctx, p, window.PuzzleIDs, eng.store))
	}
	ranked := eng.ranker.Rank(list, window.Type)

	if len(ranked) > s.maxRows {
		ranked = ranked[:s.maxRows]
	}

	rows := make([]model.LeaderboardRow, len(ranked))
	for i, ps := range ranked {
		row := model.LeaderboardRow{
			Rank:     ps.Rank,
			PlayerID: ps.PlayerID,
			Played:   ps.Played,
			Missed:   ps.Missed,
			RawMean:  ps.RawMean,
			AdjMean:  ps.AdjMean,
		}
		if len(eng.cfg.FeatureNames) > 0 {
			row.Features = make(map[string]float64, len(eng.cfg.FeatureNames))
			for j, name := range eng.cfg.FeatureNames {
				row.Features[name] = ps.FeatureMeans[j]
			}
		}
		rows[i] = row
	}

	return &model.Leaderboard{
		Game:  eng.cfg.Variant.String(),
		Label: window.Label,
		Rows:  rows,
	}, nil
}

// participants lists the players eligible for a window: anyone with at
// least one entry inside it, or every known player for all-time queries.
func (s *Service) participants(ctx context.Context, eng *engine, window query.Window) []string {
	if window.Type == query.AllTime {
		return eng.store.PlayerIDs(ctx)
	}

	seen := make(map[string]struct{})
	var out []string
	for _, id := range window.PuzzleIDs {
		for _, p := range eng.store.PlayersForPuzzle(ctx, id) {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Entries returns a player's recorded entries for a game, oldest first.
func (s *Service) Entries(ctx context.Context, gameName, playerID string) ([]model.Entry, error) {
	eng, err := s.engineFor(gameName)
	if err != nil {
		return nil, err
	}
	return eng.store.EntriesForPlayer(ctx, playerID, nil), nil
}

// Missing lists the known players who have not posted the given puzzle.
// A negative puzzleID resolves to today's puzzle.
func (s *Service) Missing(ctx context.Context, gameName string, puzzleID int) ([]string, error) {
	eng, err := s.engineFor(gameName)
	if err != nil {
		return nil, err
	}

	if puzzleID < 0 {
		puzzleID = eng.resolver.PuzzleID(s.today())
	}
	posted := make(map[string]struct{})
	for _, p := range eng.store.PlayersForPuzzle(ctx, puzzleID) {
		posted[p] = struct{}{}
	}

	var out []string
	for _, p := range eng.store.PlayerIDs(ctx) {
		if _, ok := posted[p]; !ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	out := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		out["queueLength"] = s.queue.Len(ctx)
		games := make(map[string]int, len(s.engines))
		for variant, eng := range s.engines {
			games[variant.String()] = eng.store.Count(ctx)
		}
		out["entries"] = games
	}
	return out
}

// Size returns the current number of remembered submission ids.
func (s *Service) Size() int {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"aquafeed/internal/config"
	"aquafeed/internal/dashboard"
	"aquafeed/internal/logger"
	"aquafeed/internal/metrics"
	"aquafeed/internal/models"
	"aquafeed/internal/publisher"
	"aquafeed/internal/repository"
)

// sinkTimeout bounds one journal write or broker publish.
const sinkTimeout = 2 * time.Second

// MonitorDeps are the optional collaborators of a MonitorService.
// Nil fields fall back to defaults (no journal, no broker, no metrics).
type MonitorDeps struct {
	Random    dashboard.RandomSource
	Now       func() time.Time
	Journal   repository.EventRepo
	Publisher publisher.Publisher
	Metrics   *metrics.Metrics
	Log       *logger.Logger
}

// MonitorService owns the dashboard state. Ticks, feed completions,
// dismissals and snapshots are serialized under mu.
type MonitorService struct {
	mu     sync.Mutex
	state  *dashboard.State
	closed bool // no feeds start once set

	gen *dashboard.Generator
	rnd dashboard.RandomSource
	now func() time.Time

	feedLatency time.Duration
	successP    float64
	feeds       sync.WaitGroup

	subsMu sync.Mutex
	subs   map[chan struct{}]struct{}

	journal repository.EventRepo
	pub     publisher.Publisher
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewMonitorService seeds a fresh dashboard at the current time.
func NewMonitorService(sim config.SimulationConfig, deps MonitorDeps) *MonitorService {
	s := &MonitorService{
		rnd:         deps.Random,
		now:         deps.Now,
		feedLatency: sim.FeedLatency,
		successP:    sim.FeedSuccessProbability,
		journal:     deps.Journal,
		pub:         deps.Publisher,
		metrics:     deps.Metrics,
		log:         deps.Log,
		subs:        make(map[chan struct{}]struct{}),
	}
	if s.rnd == nil {
		s.rnd = dashboard.DefaultSource()
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.pub == nil {
		s.pub = publisher.Nop{}
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	s.gen = dashboard.NewGenerator(s.rnd)
	s.state = dashboard.Seed(s.gen, s.rnd, s.now())
	return s
}

// Run ticks at the given interval until ctx is canceled.
func (s *MonitorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()

	s.log.Infow("polling_started", "tick", tick.String())
	for {
		select {
		case <-ctx.Done():
			s.log.Infow("polling_stopped")
			return
		case <-t.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one generate, evaluate and apply step and returns the new
// reading together with the alerts it raised.
func (s *MonitorService) Tick(ctx context.Context) (models.SensorReading, []models.Alert) {
	s.mu.Lock()
	reading := s.gen.Generate(s.now())
	raised := s.state.ApplyReading(reading)
	active := s.state.ActiveAlerts()
	s.mu.Unlock()
	s.notify()

	s.metrics.Tick(reading, raised, active)
	s.log.Debugw("tick", "ph", reading.PH, "temperature", reading.Temperature, "alerts_raised", len(raised))

	sctx, cancel := sinkContext(ctx)
	defer cancel()

	s.journalEvent(sctx, models.DashboardEvent{
		OccurredAt:  reading.Timestamp,
		Type:        models.EventReading,
		Description: fmt.Sprintf("pH %.1f, temperature %.1f°F", reading.PH, reading.Temperature),
		Metadata:    reading,
	})
	s.publish(sctx, publisher.StreamReadings, "", reading)

	for _, a := range raised {
		s.journalEvent(sctx, models.DashboardEvent{
			OccurredAt:  a.Timestamp,
			Type:        models.EventAlert,
			Description: a.Message,
			Metadata:    a,
		})
		s.publish(sctx, publisher.StreamAlerts, a.ID, a)
	}
	return reading, raised
}

// Feed starts a manual feeding. The returned channel yields the record once
// the feeder settles and is then closed. The feed is not tied to ctx.
// Feeds are refused after Close.
func (s *MonitorService) Feed(ctx context.Context) (<-chan models.FeedingRecord, bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.metrics.FeedRefused()
		s.log.Infow("feed_refused", "reason", "closed")
		return nil, false
	}
	started := s.state.BeginFeeding()
	if started {
		s.feeds.Add(1)
	}
	s.mu.Unlock()

	if !started {
		s.metrics.FeedRefused()
		s.log.Infow("feed_refused", "reason", "already feeding")
		return nil, false
	}
	s.notify()

	s.log.Infow("feed_started", "latency", s.feedLatency.String())
	done := make(chan models.FeedingRecord, 1)
	go s.completeFeed(context.WithoutCancel(ctx), done)
	return done, true
}

func (s *MonitorService) completeFeed(ctx context.Context, done chan<- models.FeedingRecord) {
	defer s.feeds.Done()
	defer close(done)

	if s.feedLatency > 0 {
		t := time.NewTimer(s.feedLatency)
		<-t.C
	}

	s.mu.Lock()
	now := s.now()
	rec := models.FeedingRecord{
		ID:        feedingID(now, s.state),
		Timestamp: now,
		Kind:      models.FeedingManual,
		Outcome:   dashboard.DrawOutcome(s.rnd, s.successP),
	}
	s.state.RecordFeeding(rec)
	s.state.EndFeeding()
	s.mu.Unlock()
	s.notify()

	done <- rec

	s.metrics.Feeding(rec.Outcome)
	s.log.Infow("feed_completed", "id", rec.ID, "outcome", rec.Outcome)

	sctx, cancel := sinkContext(ctx)
	defer cancel()
	s.journalEvent(sctx, models.DashboardEvent{
		OccurredAt:  rec.Timestamp,
		Type:        models.EventFeeding,
		Description: fmt.Sprintf("%s feeding %s", rec.Kind, rec.Outcome),
		Metadata:    rec,
	})
	s.publish(sctx, publisher.StreamFeedings, rec.ID, rec)
}

// feedingID returns feed-<ms>, suffixed when the newest record already
// carries that id. Callers hold mu.
func feedingID(now time.Time, st *dashboard.State) string {
	id := fmt.Sprintf("feed-%d", now.UnixMilli())
	if last, ok := st.LatestFeeding(); ok && last.ID == id {
		id = fmt.Sprintf("%s-%d", id, now.UnixNano())
	}
	return id
}

// WaitFeeds blocks until every in-flight feed has settled.
func (s *MonitorService) WaitFeeds() {
	s.feeds.Wait()
}

// Close refuses further feeds and waits for the in-flight one to settle.
func (s *MonitorService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.feeds.Wait()
}

// Subscribe returns a channel signalled after every state change. Signals
// coalesce, so a slow reader still sees one after the last change. cancel
// releases the subscription and may be called more than once.
func (s *MonitorService) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.subsMu.Lock()
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, ch)
			s.subsMu.Unlock()
		})
	}
}

func (s *MonitorService) notify() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Feeding reports whether a feed is in progress.
func (s *MonitorService) Feeding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Feeding()
}

// Dismiss marks the alert with id as dismissed. Unknown ids return false
// and leave the state untouched.
func (s *MonitorService) Dismiss(ctx context.Context, id string) (models.Alert, bool) {
	s.mu.Lock()
	a, ok := s.state.Dismiss(id)
	active := s.state.ActiveAlerts()
	s.mu.Unlock()

	if !ok {
		return models.Alert{}, false
	}
	s.notify()

	s.metrics.AlertDismissed(active)
	s.log.Infow("alert_dismissed", "id", a.ID, "kind", a.Kind)

	sctx, cancel := sinkContext(ctx)
	defer cancel()
	s.journalEvent(sctx, models.DashboardEvent{
		OccurredAt:  s.now(),
		Type:        models.EventDismiss,
		Description: "Alert dismissed: " + a.Message,
		Metadata:    map[string]string{"alert_id": a.ID},
	})
	return a, true
}

// GetState returns a snapshot of the dashboard.
func (s *MonitorService) GetState(ctx context.Context) (models.DashboardSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.DashboardSnapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot(), nil
}

// ListAlerts returns all alerts, or only undismissed ones.
func (s *MonitorService) ListAlerts(ctx context.Context, activeOnly bool) []models.Alert {
	snap, err := s.GetState(ctx)
	if err != nil {
		return nil
	}
	if activeOnly {
		return snap.ActiveAlerts
	}
	return snap.Alerts
}

func (s *MonitorService) journalEvent(ctx context.Context, e models.DashboardEvent) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Append(ctx, e); err != nil {
		s.log.Errorw("journal_append_failed", "type", e.Type, "error", err)
	}
}

func (s *MonitorService) publish(ctx context.Context, stream publisher.Stream, key string, v any) {
	if err := s.pub.Publish(ctx, stream, key, v); err != nil {
		s.log.Warnw("publish_failed", "stream", stream, "error", err)
	}
}

// sinkContext detaches sinks from caller cancellation so the step that
// already mutated state is still recorded, but bounds them in time.
func sinkContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), sinkTimeout)
}

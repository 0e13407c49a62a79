// Package coordinator owns the per-badge lookup lifecycle: it debounces
// scanner input, issues sequenced portal lookups, applies the newest
// result, and gates submission on a resolved risk-free verdict. All state
// lives in a single goroutine; callers talk to it over an event channel.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/pathguard/internal/classify"
	"github.com/alexanderramin/pathguard/internal/domain"
	"github.com/alexanderramin/pathguard/internal/gateway"
	"github.com/alexanderramin/pathguard/internal/mpv"
	"github.com/alexanderramin/pathguard/internal/repository"
	"github.com/google/uuid"
)

// SubmissionSink is the physical kiosk form action. Invoked at most once
// per accepted scan.
type SubmissionSink interface {
	Submit(ctx context.Context, badgeID string) error
}

// Config holds coordinator tuning parameters.
type Config struct {
	// Debounce is the quiet period after the last badge keystroke before a
	// lookup fires.
	Debounce time.Duration
	// PendingMaxAge bounds how old a persisted pending lookup may be and
	// still be resumed or correlated with an out-of-band result.
	PendingMaxAge time.Duration
	// MaxMinutes is the restricted-path time ceiling. Zero means default.
	MaxMinutes float64
	// MinBadgeLen is the shortest badge input that qualifies for a lookup.
	MinBadgeLen int
	// ProbeAttempts is how many times a transiently unavailable portal is
	// re-probed before the lookup hard-fails.
	ProbeAttempts int
	ProbeInterval time.Duration
	// CacheQuickCheck shows a provisional verdict from the roster cache
	// while the portal lookup runs. Display only: scanned badge ids and
	// portal employee ids are not the same identifier space, so the cache
	// never gates submission. Requires UseRosterCache.
	CacheQuickCheck bool
}

func (c Config) withDefaults() Config {
	if c.Debounce <= 0 {
		c.Debounce = 150 * time.Millisecond
	}
	if c.PendingMaxAge <= 0 {
		c.PendingMaxAge = 30 * time.Second
	}
	if c.MinBadgeLen <= 0 {
		c.MinBadgeLen = 3
	}
	if c.ProbeAttempts <= 0 {
		c.ProbeAttempts = 3
	}
	if c.ProbeInterval <= 0 {
		c.ProbeInterval = 500 * time.Millisecond
	}
	return c
}

// Snapshot is a read-only copy of the coordinator's current state.
type Snapshot struct {
	BadgeID  string
	WorkCode string
	State    domain.LookupState
	Sequence uint64
	Verdict  *domain.Verdict
}

// Coordinator runs the lookup state machine. Create with New, then Start.
type Coordinator struct {
	cfg        Config
	portal     gateway.Portal
	classifier *classify.Classifier
	sink       SubmissionSink
	pending    repository.PendingLookupRepo
	recent     repository.RecentCodeRepo
	rosters    repository.RosterRepo
	observer   Observer
	now        func() time.Time

	events   chan event
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// New wires a coordinator. pending and recent must be non-nil; observer
// may be nil.
func New(
	cfg Config,
	portal gateway.Portal,
	classifier *classify.Classifier,
	sink SubmissionSink,
	pending repository.PendingLookupRepo,
	recent repository.RecentCodeRepo,
	observer Observer,
) *Coordinator {
	if classifier == nil {
		classifier = classify.Default()
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Coordinator{
		cfg:        cfg.withDefaults(),
		portal:     portal,
		classifier: classifier,
		sink:       sink,
		pending:    pending,
		recent:     recent,
		observer:   observer,
		now:        time.Now,
		events:     make(chan event, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

type event interface{ coordEvent() }

type scanEvent struct{ badge string }
type codeEvent struct{ code string }
type clearEvent struct{}
type gatewayEvent struct {
	seq    uint64
	badge  string
	report *domain.Report
	err    error
}
type deliverEvent struct {
	badge  string
	report *domain.Report
}
type quickEvent struct {
	seq     uint64
	badge   string
	verdict *domain.Verdict
}
type submitEvent struct {
	ctx   context.Context
	reply chan submitResult
}
type snapshotEvent struct{ reply chan Snapshot }

func (scanEvent) coordEvent()     {}
func (codeEvent) coordEvent()     {}
func (clearEvent) coordEvent()    {}
func (gatewayEvent) coordEvent()  {}
func (deliverEvent) coordEvent()  {}
func (quickEvent) coordEvent()    {}
func (submitEvent) coordEvent()   {}
func (snapshotEvent) coordEvent() {}

type submitResult struct {
	verdict *domain.Verdict
	err     error
}

// UseRosterCache attaches the roster cache consulted by the quick check.
// Must be called before Start.
func (c *Coordinator) UseRosterCache(repo repository.RosterRepo) {
	c.rosters = repo
}

// Start launches the coordinator goroutine. The context bounds all portal
// calls; cancelling it stops the loop.
func (c *Coordinator) Start(ctx context.Context) {
	go c.run(ctx)
}

// Stop shuts the coordinator down and waits for the loop to exit.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
}

// Scan reports a badge input change. Lookups fire after the debounce
// quiet period, so a hardware scanner's burst of keystrokes issues one.
func (c *Coordinator) Scan(badge string) {
	c.post(scanEvent{badge: badge})
}

// SetWorkCode records the work code the next verdict evaluates against.
func (c *Coordinator) SetWorkCode(code string) {
	c.post(codeEvent{code: code})
}

// Clear resets badge, work code and verdict.
func (c *Coordinator) Clear() {
	c.post(clearEvent{})
}

// Deliver injects an out-of-band portal result, correlated with the
// pending lookup by badge id and issuance age.
func (c *Coordinator) Deliver(badge string, report *domain.Report) {
	c.post(deliverEvent{badge: badge, report: report})
}

// Submit runs the fail-closed submission gate: await any in-flight
// lookup, trigger one on demand if none was issued, and refuse unless the
// resolved verdict is current and risk-free. Returns the gating verdict
// when one exists, alongside the outcome.
func (c *Coordinator) Submit(ctx context.Context) (*domain.Verdict, error) {
	reply := make(chan submitResult, 1)
	select {
	case c.events <- submitEvent{ctx: ctx, reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.stop:
		return nil, ErrStopped
	}
	select {
	case r := <-reply:
		return r.verdict, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return nil, ErrStopped
	}
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	reply := make(chan Snapshot, 1)
	select {
	case c.events <- snapshotEvent{reply: reply}:
	case <-c.stop:
		return Snapshot{State: domain.LookupIdle}
	}
	select {
	case s := <-reply:
		return s
	case <-c.done:
		return Snapshot{State: domain.LookupIdle}
	}
}

// SuggestCodes returns recently submitted work codes matching the prefix.
// Reads the repository directly; no loop round trip.
func (c *Coordinator) SuggestCodes(ctx context.Context, prefix string, limit int) ([]string, error) {
	return c.recent.Suggest(ctx, prefix, limit)
}

func (c *Coordinator) post(ev event) {
	select {
	case c.events <- ev:
	case <-c.stop:
	}
}

// loopState is owned exclusively by the run goroutine.
type loopState struct {
	badge    string
	code     string
	seq      uint64
	lookupID string
	issuedAt time.Time
	state    domain.LookupState
	verdict  *domain.Verdict
	waiter   *submitEvent
}

func (c *Coordinator) run(ctx context.Context) {
	defer close(c.done)

	st := &loopState{state: domain.LookupIdle}
	c.restorePending(ctx, st)

	var debounce *time.Timer
	var debounceC <-chan time.Time
	stopDebounce := func() {
		if debounce != nil {
			debounce.Stop()
			debounce, debounceC = nil, nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			c.failWaiter(st, ctx.Err())
			return
		case <-c.stop:
			c.failWaiter(st, ErrStopped)
			return

		case <-debounceC:
			debounce, debounceC = nil, nil
			c.issueLookup(ctx, st)

		case ev := <-c.events:
			switch ev := ev.(type) {
			case scanEvent:
				badge := strings.TrimSpace(ev.badge)
				if badge == st.badge {
					continue
				}
				stopDebounce()
				c.failWaiter(st, ErrSuperseded)
				c.deletePending(ctx, st)
				st.badge = badge
				st.verdict = nil
				st.state = domain.LookupIdle
				if len(badge) >= c.cfg.MinBadgeLen {
					debounce = time.NewTimer(c.cfg.Debounce)
					debounceC = debounce.C
				}

			case codeEvent:
				code := strings.TrimSpace(ev.code)
				if code == st.code {
					continue
				}
				st.code = code
				// A verdict is only as current as the code it was
				// evaluated against. An in-flight lookup picks the new
				// code up at resolution; a settled one must re-run, so
				// the submit gate falls back to an on-demand lookup.
				if st.state != domain.LookupInFlight {
					st.verdict = nil
					st.state = domain.LookupIdle
				}

			case clearEvent:
				stopDebounce()
				c.failWaiter(st, ErrSuperseded)
				c.deletePending(ctx, st)
				st.badge = ""
				st.code = ""
				st.verdict = nil
				st.state = domain.LookupIdle

			case gatewayEvent:
				if ev.seq != st.seq || ev.badge != st.badge || st.state != domain.LookupInFlight {
					c.observer.OnCoordinatorEvent(Event{
						Kind: EventLookupSuperseded, BadgeID: ev.badge, Sequence: ev.seq,
					})
					continue
				}
				if errors.Is(ev.err, gateway.ErrPending) {
					// The portal went into a slow navigation; the result
					// arrives through Deliver. The persisted pending row
					// keeps the correlation alive.
					c.observer.OnCoordinatorEvent(Event{
						Kind: EventLookupAwaiting, BadgeID: st.badge, Sequence: st.seq,
					})
					continue
				}
				c.resolve(ctx, st, ev.report, ev.err)

			case quickEvent:
				if ev.seq != st.seq || ev.badge != st.badge ||
					st.state != domain.LookupInFlight || st.verdict != nil {
					continue
				}
				st.verdict = ev.verdict

			case deliverEvent:
				if st.state != domain.LookupInFlight || ev.badge != st.badge ||
					c.now().Sub(st.issuedAt) > c.cfg.PendingMaxAge {
					c.observer.OnCoordinatorEvent(Event{
						Kind: EventStaleDropped, BadgeID: ev.badge,
					})
					continue
				}
				c.resolve(ctx, st, ev.report, nil)

			case submitEvent:
				c.handleSubmit(ctx, st, ev, stopDebounce)

			case snapshotEvent:
				snap := Snapshot{
					BadgeID:  st.badge,
					WorkCode: st.code,
					State:    st.state,
					Sequence: st.seq,
				}
				if st.verdict != nil {
					v := *st.verdict
					snap.Verdict = &v
				}
				ev.reply <- snap
			}
		}
	}
}

func (c *Coordinator) issueLookup(ctx context.Context, st *loopState) {
	if len(st.badge) < c.cfg.MinBadgeLen {
		return
	}
	st.seq++
	st.state = domain.LookupInFlight
	st.issuedAt = c.now()
	st.lookupID = uuid.New().String()

	req := &domain.LookupRequest{
		ID:             st.lookupID,
		BadgeID:        st.badge,
		WorkCode:       st.code,
		SequenceNumber: st.seq,
		IssuedAt:       st.issuedAt,
	}
	if err := c.pending.Save(ctx, req); err != nil {
		// Persistence is best effort; the lookup itself proceeds.
		c.observer.OnCoordinatorEvent(Event{
			Kind: EventLookupIssued, BadgeID: st.badge, Sequence: st.seq, Err: err,
		})
	} else {
		c.observer.OnCoordinatorEvent(Event{
			Kind: EventLookupIssued, BadgeID: st.badge, Sequence: st.seq,
		})
	}
	if c.cfg.CacheQuickCheck && c.rosters != nil {
		go c.quickCheck(ctx, st.seq, st.badge, st.code)
	}
	go c.fetch(ctx, st.seq, st.badge)
}

// quickCheck runs off-loop, like fetch: it reads the roster cache and
// posts a provisional verdict back as an event, applied only while the
// matching lookup is still in flight and nothing else has set one. The
// portal result always overwrites it, and submission never reads it:
// the gate only acts on a resolved lookup.
func (c *Coordinator) quickCheck(ctx context.Context, seq uint64, badge, code string) {
	target, _ := c.classifier.WorkCode(code)
	hits, err := c.rosters.FindBadge(ctx, badge)
	if err != nil {
		return
	}
	for _, hit := range hits {
		if hit.Path == target || hit.Entry.Minutes <= 0 {
			continue
		}
		v := domain.Verdict{
			Risk:         domain.RiskPathSwitch,
			TargetPath:   target,
			WorkedPaths:  []string{hit.Path},
			PathMinutes:  domain.PathTimeTotals{hit.Path: hit.Entry.Minutes},
			Detail:       fmt.Sprintf("Roster shows time on %s. Verifying with portal...", hit.Path),
			EmployeeName: hit.Entry.Name,
			FromCache:    true,
		}
		c.post(quickEvent{seq: seq, badge: badge, verdict: &v})
		return
	}
}

// fetch runs off-loop. A transiently unavailable portal is re-probed
// before the failure is reported.
func (c *Coordinator) fetch(ctx context.Context, seq uint64, badge string) {
	report, err := c.portal.FetchSessions(ctx, badge)
	for attempt := 0; errors.Is(err, gateway.ErrPortalUnavailable) && attempt < c.cfg.ProbeAttempts; attempt++ {
		select {
		case <-ctx.Done():
			c.post(gatewayEvent{seq: seq, badge: badge, err: ctx.Err()})
			return
		case <-c.stop:
			return
		case <-time.After(c.cfg.ProbeInterval):
		}
		if !c.portal.Available(ctx) {
			continue
		}
		report, err = c.portal.FetchSessions(ctx, badge)
	}
	c.post(gatewayEvent{seq: seq, badge: badge, report: report, err: err})
}

func (c *Coordinator) resolve(ctx context.Context, st *loopState, report *domain.Report, err error) {
	c.deletePending(ctx, st)

	if err != nil {
		// A hard failure clears any stale verdict so a block is never
		// silently assumed absent.
		st.state = domain.LookupFailed
		st.verdict = nil
		c.observer.OnCoordinatorEvent(Event{
			Kind: EventLookupFailed, BadgeID: st.badge, Sequence: st.seq, Err: err,
		})
		c.failWaiter(st, fmt.Errorf("%w: %v", ErrLookupFailed, err))
		return
	}

	verdict := mpv.Evaluate(mpv.Input{
		Sessions:       report.Sessions,
		TargetWorkCode: st.code,
		Classifier:     c.classifier,
		MaxMinutes:     c.cfg.MaxMinutes,
	})
	st.verdict = &verdict
	st.state = domain.LookupResolved
	c.observer.OnCoordinatorEvent(Event{
		Kind: EventLookupResolved, BadgeID: st.badge, Sequence: st.seq, Risk: verdict.Risk,
	})
	if st.waiter != nil {
		c.completeSubmit(ctx, st)
	}
}

func (c *Coordinator) handleSubmit(ctx context.Context, st *loopState, ev submitEvent, stopDebounce func()) {
	if len(st.badge) < c.cfg.MinBadgeLen {
		ev.reply <- submitResult{err: ErrBadgeTooShort}
		return
	}
	if st.waiter != nil {
		ev.reply <- submitResult{err: ErrSubmitInProgress}
		return
	}
	switch st.state {
	case domain.LookupInFlight:
		st.waiter = &ev
	case domain.LookupResolved:
		st.waiter = &ev
		c.completeSubmit(ctx, st)
	default:
		// No lookup was ever issued (or the last one failed): trigger one
		// on demand and await it.
		stopDebounce()
		st.waiter = &ev
		c.issueLookup(ctx, st)
	}
}

func (c *Coordinator) completeSubmit(ctx context.Context, st *loopState) {
	w := st.waiter
	st.waiter = nil

	if st.verdict == nil {
		w.reply <- submitResult{err: ErrNoVerdict}
		return
	}
	v := *st.verdict
	if v.Blocked() {
		c.observer.OnCoordinatorEvent(Event{
			Kind: EventSubmitBlocked, BadgeID: st.badge, Sequence: st.seq, Risk: v.Risk,
		})
		w.reply <- submitResult{verdict: &v, err: ErrSubmissionBlocked}
		return
	}

	if err := c.sink.Submit(w.ctx, st.badge); err != nil {
		w.reply <- submitResult{verdict: &v, err: fmt.Errorf("submitting: %w", err)}
		return
	}
	if st.code != "" {
		_ = c.recent.Record(ctx, st.code, c.now())
	}
	c.observer.OnCoordinatorEvent(Event{
		Kind: EventSubmitted, BadgeID: st.badge, Sequence: st.seq,
	})
	// A successful submission consumes the scan.
	st.badge = ""
	st.code = ""
	st.verdict = nil
	st.state = domain.LookupIdle
	w.reply <- submitResult{verdict: &v}
}

func (c *Coordinator) failWaiter(st *loopState, err error) {
	if st.waiter == nil {
		return
	}
	st.waiter.reply <- submitResult{err: err}
	st.waiter = nil
}

func (c *Coordinator) deletePending(ctx context.Context, st *loopState) {
	if st.lookupID == "" {
		return
	}
	_ = c.pending.Delete(ctx, st.lookupID)
	st.lookupID = ""
}

// restorePending resumes a lookup that was in flight when the process
// last stopped, provided it is still young enough to matter.
func (c *Coordinator) restorePending(ctx context.Context, st *loopState) {
	cutoff := c.now().Add(-c.cfg.PendingMaxAge)
	_, _ = c.pending.Prune(ctx, cutoff)

	l, err := c.pending.Latest(ctx)
	if err != nil {
		return
	}
	st.badge = l.BadgeID
	st.code = l.WorkCode
	st.seq = l.SequenceNumber
	st.lookupID = l.ID
	st.issuedAt = l.IssuedAt
	st.state = domain.LookupInFlight
	c.observer.OnCoordinatorEvent(Event{
		Kind: EventLookupResumed, BadgeID: st.badge, Sequence: st.seq,
	})
	go c.fetch(ctx, st.seq, st.badge)
}

package agent

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
	"github.com/apto-jkhatri/it-asset-management-app/internal/notify"
	"github.com/apto-jkhatri/it-asset-management-app/internal/store"
)

const (
	defaultRequestPoll    = 8 * time.Second
	defaultCollectionPoll = 60 * time.Second
)

// Poller keeps the store current without a push channel. Requests are polled
// on a fast cadence and diffed against the last observed message counts to
// raise notifications; the heavier collections are refetched wholesale on a
// slow cadence. A failed fetch leaves the previous snapshot in place and the
// next tick retries at the fixed interval.
type Poller struct {
	store    *store.Store
	remote   store.Remote
	identity store.IdentitySource
	notifier notify.Notifier
	log      zerolog.Logger

	requestInterval    time.Duration
	collectionInterval time.Duration

	mu            sync.Mutex
	lastSeen      map[string]int // request ID → last observed message count
	initialLoaded bool
	reqInFlight   bool
	collInFlight  bool
	canNotify     bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPoller(st *store.Store, remote store.Remote, identity store.IdentitySource, notifier notify.Notifier, log zerolog.Logger, requestInterval, collectionInterval time.Duration) *Poller {
	if requestInterval <= 0 {
		requestInterval = defaultRequestPoll
	}
	if collectionInterval <= 0 {
		collectionInterval = defaultCollectionPoll
	}
	return &Poller{
		store:              st,
		remote:             remote,
		identity:           identity,
		notifier:           notifier,
		log:                log,
		requestInterval:    requestInterval,
		collectionInterval: collectionInterval,
		lastSeen:           map[string]int{},
	}
}

// Start runs one suppressed pass to populate the store and the tracking map,
// then arms both tickers. Notification permission is requested exactly once.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	p.mu.Lock()
	p.canNotify = p.notifier.RequestPermission(ctx)
	p.mu.Unlock()

	p.pollRequests(ctx)
	p.pollCollections(ctx)

	p.wg.Add(2)
	go p.loop(ctx, p.requestInterval, p.pollRequests)
	go p.loop(ctx, p.collectionInterval, p.pollCollections)
}

// Stop cancels the timers, waits for in-flight work to settle, and clears all
// client state so nothing fires after logout.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.store.Wait()
	p.store.Clear()

	p.mu.Lock()
	p.lastSeen = map[string]int{}
	p.initialLoaded = false
	p.mu.Unlock()
}

func (p *Poller) loop(ctx context.Context, interval time.Duration, tick func(context.Context)) {
	defer p.wg.Done()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			tick(ctx)
		}
	}
}

type pending struct{ title, body string }

// pollRequests is the fast tick: fetch, diff, notify, publish.
func (p *Poller) pollRequests(ctx context.Context) {
	p.mu.Lock()
	if p.reqInFlight {
		p.mu.Unlock()
		return
	}
	p.reqInFlight = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.reqInFlight = false
		p.mu.Unlock()
	}()

	user := p.identity.CurrentUser()
	if user == nil {
		return
	}

	reqs, err := p.remote.Requests(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("request poll failed")
		return
	}

	p.mu.Lock()
	var raise []pending
	if p.initialLoaded {
		for _, q := range reqs {
			prev, seen := p.lastSeen[q.ID]
			switch {
			case !seen:
				if user.Role == models.RoleAdmin && q.Status == models.RequestPending {
					raise = append(raise, pending{
						title: "New asset request",
						body:  q.UserName + " requested: " + q.Category,
					})
				}
			case q.MessageCount > prev:
				// One notification per ticket per tick, whatever the delta.
				raise = append(raise, pending{
					title: "New reply",
					body:  "Ticket " + q.ID + " has new messages",
				})
			}
		}
	}
	seen := make(map[string]int, len(reqs))
	for _, q := range reqs {
		seen[q.ID] = q.MessageCount
	}
	p.lastSeen = seen
	p.initialLoaded = true
	canNotify := p.canNotify
	p.mu.Unlock()

	if canNotify {
		for _, n := range raise {
			p.notifier.Raise(n.title, n.body)
		}
	}
	p.store.ReplaceRequests(reqs)
}

// pollCollections is the slow tick: wholesale refetch, no diffing. Each fetch
// failure is logged and skipped independently.
func (p *Poller) pollCollections(ctx context.Context) {
	p.mu.Lock()
	if p.collInFlight {
		p.mu.Unlock()
		return
	}
	p.collInFlight = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.collInFlight = false
		p.mu.Unlock()
	}()

	user := p.identity.CurrentUser()
	if user == nil {
		return
	}

	if assets, err := p.remote.Assets(ctx); err != nil {
		p.log.Warn().Err(err).Msg("asset poll failed")
	} else {
		p.store.ReplaceAssets(assets)
	}

	if user.Role != models.RoleAdmin {
		return
	}

	if employees, err := p.remote.Employees(ctx); err != nil {
		p.log.Warn().Err(err).Msg("employee poll failed")
	} else {
		p.store.ReplaceEmployees(employees)
	}
	if assignments, err := p.remote.Assignments(ctx); err != nil {
		p.log.Warn().Err(err).Msg("assignment poll failed")
	} else {
		p.store.ReplaceAssignments(assignments)
	}
	if logs, err := p.remote.MaintenanceLogs(ctx); err != nil {
		p.log.Warn().Err(err).Msg("maintenance poll failed")
	} else {
		p.store.ReplaceMaintenanceLogs(logs)
	}
}

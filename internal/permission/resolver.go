package permission

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a resolved level stays valid without a fresh
// database lookup.
const DefaultCacheTTL = 10 * time.Minute

// Facts is the membership data a resolution is computed from. A nil *Facts
// means the user has no member record at all.
type Facts struct {
	Administrator bool
	OfficerStatus bool
	OfficerRole   OfficerRole // empty when not an officer
	Committees    []CommitteeSeat
	Projects      []ProjectSeat
}

type CommitteeSeat struct {
	CommitteeID string
	IsChair     bool
}

type ProjectSeat struct {
	ProjectID string
	IsLead    bool
}

// Source fetches membership facts for a Discord user ID. Implementations
// return (nil, nil) when no member record exists.
type Source interface {
	MembershipFacts(ctx context.Context, discordID string) (*Facts, error)
}

// Verdict is the outcome kind of a permission check.
type Verdict int

const (
	Authorized Verdict = iota
	Denied
	CheckFailed
)

// Decision is the result of Check. CheckFailed means the level could not be
// computed at all (lookup error); callers must treat it as a denial.
type Decision struct {
	Verdict  Verdict
	Level    Level // resolved level, valid unless Verdict == CheckFailed
	Required Level
	Err      error // set when Verdict == CheckFailed
}

type cacheEntry struct {
	level     Level
	expiresAt time.Time
}

// Resolver computes authorization levels with a TTL cache in front of the
// membership source. Safe for concurrent use; discordgo invokes handlers on
// separate goroutines.
type Resolver struct {
	src    Source
	owners map[string]struct{}
	ttl    time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// NewResolver builds a resolver. Owner IDs short-circuit to Administrator
// regardless of membership data. A non-positive ttl falls back to
// DefaultCacheTTL.
func NewResolver(src Source, owners []string, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	set := make(map[string]struct{}, len(owners))
	for _, id := range owners {
		set[id] = struct{}{}
	}
	return &Resolver{
		src:    src,
		owners: set,
		ttl:    ttl,
		now:    time.Now,
		cache:  make(map[string]cacheEntry),
	}
}

// Resolve returns the authorization level for a user. It never fails: any
// lookup error degrades to Guest so that a permission question always has
// an answer.
func (r *Resolver) Resolve(ctx context.Context, discordID string) Level {
	lvl, err := r.resolve(ctx, discordID)
	if err != nil {
		log.Printf("[WARN] Permission lookup for %s failed, treating as Guest: %v", discordID, err)
		return Guest
	}
	return lvl
}

// HasPermission reports whether the user's resolved level meets required.
func (r *Resolver) HasPermission(ctx context.Context, discordID string, required Level) bool {
	return r.Resolve(ctx, discordID) >= required
}

// Check resolves the user's level and compares it against required,
// distinguishing a normal denial from a failed lookup so callers can fail
// closed with an accurate message.
func (r *Resolver) Check(ctx context.Context, discordID string, required Level) Decision {
	lvl, err := r.resolve(ctx, discordID)
	if err != nil {
		return Decision{Verdict: CheckFailed, Required: required, Err: err}
	}
	if lvl < required {
		return Decision{Verdict: Denied, Level: lvl, Required: required}
	}
	return Decision{Verdict: Authorized, Level: lvl, Required: required}
}

// resolve is the cached computation. Errors are returned (not cached) so the
// next call retries the lookup.
func (r *Resolver) resolve(ctx context.Context, discordID string) (Level, error) {
	r.mu.RLock()
	entry, ok := r.cache[discordID]
	r.mu.RUnlock()
	if ok && entry.expiresAt.After(r.now()) {
		return entry.level, nil
	}

	lvl, err := r.compute(ctx, discordID)
	if err != nil {
		return Guest, err
	}

	r.mu.Lock()
	r.cache[discordID] = cacheEntry{level: lvl, expiresAt: r.now().Add(r.ttl)}
	r.mu.Unlock()
	return lvl, nil
}

// compute applies the priority ladder, most privileged first.
func (r *Resolver) compute(ctx context.Context, discordID string) (Level, error) {
	if _, ok := r.owners[discordID]; ok {
		return Administrator, nil
	}

	facts, err := r.src.MembershipFacts(ctx, discordID)
	if err != nil {
		return Guest, err
	}
	if facts == nil {
		return Guest, nil
	}

	switch {
	case facts.Administrator:
		return Administrator, nil
	case facts.OfficerStatus && facts.OfficerRole.Executive():
		return Executive, nil
	case facts.OfficerStatus:
		return Officer, nil
	}

	for _, seat := range facts.Committees {
		if seat.IsChair {
			return CommitteeChair, nil
		}
	}
	for _, seat := range facts.Projects {
		if seat.IsLead {
			return ProjectLead, nil
		}
	}
	if len(facts.Committees) > 0 {
		return CommitteeMember, nil
	}
	return Member, nil
}

// Invalidate drops a single cached entry, forcing a fresh lookup on the
// next resolution. Call after membership data changes for a user.
func (r *Resolver) Invalidate(discordID string) {
	r.mu.Lock()
	delete(r.cache, discordID)
	r.mu.Unlock()
}

// InvalidateAll clears the whole cache.
func (r *Resolver) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[string]cacheEntry)
	r.mu.Unlock()
}

// SweepExpired removes entries whose TTL has elapsed. Read-through eviction
// already ignores stale entries; the sweep bounds memory for users who never
// come back.
func (r *Resolver) SweepExpired() {
	now := r.now()
	r.mu.Lock()
	for id, entry := range r.cache {
		if !entry.expiresAt.After(now) {
			delete(r.cache, id)
		}
	}
	r.mu.Unlock()
}

// RunCacheSweeper sweeps the resolver cache on a fixed interval until ctx
// is done. Call from main.
func RunCacheSweeper(ctx context.Context, r *Resolver, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.SweepExpired()
		}
	}
}

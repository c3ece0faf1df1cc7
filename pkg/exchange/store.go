package exchange

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Store owns the current RateTable.
//
// Readers call Load and always get a complete snapshot. Writers never
// mutate a published table: they derive a new one and swap it in.
// Writes happen through an Update, one per fetch cycle, so the primary
// rates and the asset prices of that cycle can land in any order.
type Store struct {
	current atomic.Pointer[RateTable]

	mu     sync.Mutex
	assets map[string]struct{}
}

type assetQuote struct {
	rate   float64
	source string
}

// NewStore creates an empty store. assetCodes are the keys priced by the
// asset price source.
func NewStore(assetCodes ...string) *Store {
	s := &Store{
		assets: make(map[string]struct{}, len(assetCodes)),
	}
	for _, code := range assetCodes {
		s.assets[NormalizeCode(code)] = struct{}{}
	}
	return s
}

// Load returns the current table, or nil before the first successful fetch.
func (s *Store) Load() *RateTable {
	return s.current.Load()
}

// IsAsset reports whether code is priced by the asset price source.
func (s *Store) IsAsset(code string) bool {
	_, ok := s.assets[NormalizeCode(code)]
	return ok
}

// Begin starts the writes of one fetch cycle for base.
func (s *Store) Begin(base string) *Update {
	return &Update{
		store: s,
		base:  NormalizeCode(base),
		held:  make(map[string]assetQuote),
	}
}

// Update collects the writes of a single fetch cycle.
//
// Asset quotes that arrive before the primary rates are held and folded
// into the primary table. Quotes of a cycle whose primary fetch failed are
// discarded, as are quotes arriving after another base was installed.
// Held quotes never outlive their cycle.
type Update struct {
	store *Store
	base  string

	// guarded by store.mu
	installed bool
	failed    bool
	held      map[string]assetQuote
}

// InstallPrimary publishes a new table built from the primary rates.
// Every primary key is kept with its value. Asset keys missing from rates
// are carried over from the previous table of the same base, and asset
// quotes already received in this cycle replace the primary values.
// A zero asOf means now.
func (u *Update) InstallPrimary(rates map[string]float64, source string, asOf time.Time) *RateTable {
	s := u.store
	if asOf.IsZero() {
		asOf = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := &RateTable{
		ID:        uuid.New(),
		Base:      u.base,
		FetchedAt: asOf.UTC(),
		rates:     make(map[string]float64, len(rates)+len(s.assets)),
		sources:   make(map[string]string, len(rates)+len(s.assets)),
	}
	for code, rate := range rates {
		code = NormalizeCode(code)
		next.rates[code] = rate
		next.sources[code] = source
	}

	if prev := s.current.Load(); prev != nil && prev.Base == u.base {
		for code := range s.assets {
			if _, ok := next.rates[code]; ok {
				continue
			}
			if rate, ok := prev.rates[code]; ok {
				next.rates[code] = rate
				next.sources[code] = prev.sources[code]
			}
		}
	}
	for code, q := range u.held {
		next.rates[code] = q.rate
		next.sources[code] = q.source
	}
	clear(u.held)
	u.installed = true

	s.current.Store(next)
	return next
}

// Fail marks the primary fetch of the cycle as failed. The current table
// is left as it is and every asset quote of the cycle is discarded.
func (u *Update) Fail() {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.failed = true
	clear(u.held)
}

// SetAsset records one asset rate of the cycle. It returns the published
// table, or nil when the quote was held for the primary rates or discarded.
func (u *Update) SetAsset(code string, rate float64, source string) *RateTable {
	s := u.store
	code = NormalizeCode(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case u.failed:
		return nil
	case !u.installed:
		u.held[code] = assetQuote{rate: rate, source: source}
		return nil
	}

	prev := s.current.Load()
	if prev == nil || prev.Base != u.base {
		return nil
	}
	next := prev.clone()
	next.rates[code] = rate
	next.sources[code] = source
	s.current.Store(next)
	return next
}

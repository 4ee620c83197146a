// Package repository owns the in-memory collections of the dairy and keeps them
// persisted through the record store.
//
// Every write validates, mutates the live state, then writes all collections
// back (persistAll). Reads hand out copies. A single mutex serializes access so
// the repository can sit behind an HTTP server.
package repository

import (
	"context"
	"log"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/store"
)

// Collection keys in the record store.
const (
	KeyProducts       = "products"
	KeyStaff          = "staff"
	KeyDeliveries     = "deliveries"
	KeyDailyRecords   = "dailyRecords"
	KeyInvoices       = "invoices"
	KeyConversionLogs = "conversionLogs"
	KeyRoutes         = "deliveryRoutes"
	KeySalaryRecords  = "salaryRecords"
	KeyAdminPassword  = "adminPassword"
	KeyCounters       = "counters"
)

// DefaultAdminPassword is the credential seeded on first run.
const DefaultAdminPassword = "admin123"

// Counters holds the last issued sequence per id prefix.
type Counters map[string]int

// State is the complete set of collections.
type State struct {
	Products       []models.Product
	Staff          []models.Staff
	Deliveries     []models.Delivery
	DailyRecords   []models.DailyRecord
	Invoices       []models.Invoice
	ConversionLogs []models.ConversionLog
	Routes         []models.DeliveryRoute
	SalaryRecords  []models.SalaryRecord
	AdminPassword  string
	Counters       Counters
}

type Repository struct {
	mu     sync.Mutex
	store  *store.Store
	state  State
	now    func() time.Time
	rnd    *rand.Rand
	logger *log.Logger
}

type Option func(*Repository)

// WithClock replaces time.Now for dates stamped on new records.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithRand fixes the source used for seeded stock and daily figures.
func WithRand(rnd *rand.Rand) Option {
	return func(r *Repository) { r.rnd = rnd }
}

func WithLogger(l *log.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// Open loads every collection from s, seeding the ones that are missing or corrupt.
func Open(ctx context.Context, s *store.Store, opts ...Option) *Repository {
	r := &Repository{
		store:  s,
		now:    time.Now,
		rnd:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x64616972)),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.load(ctx)
	return r
}

func (r *Repository) load(ctx context.Context) {
	today := r.now()
	seeded, readFailed := false, false
	get := func(key string, dst any, seed func()) {
		found, err := r.store.Lookup(ctx, key, dst)
		if err != nil {
			readFailed = true
		}
		if !found {
			seed()
			seeded = true
		}
	}
	st := &r.state
	get(KeyProducts, &st.Products, func() { st.Products = seedProducts(r.rnd) })
	get(KeyStaff, &st.Staff, func() { st.Staff = seedStaff() })
	get(KeyDeliveries, &st.Deliveries, func() { st.Deliveries = seedDeliveries(st.Staff) })
	get(KeyDailyRecords, &st.DailyRecords, func() { st.DailyRecords = seedDailyRecords(r.rnd, today) })
	get(KeyInvoices, &st.Invoices, func() { st.Invoices = seedInvoices(today) })
	get(KeyConversionLogs, &st.ConversionLogs, func() { st.ConversionLogs = seedConversionLogs(today) })
	get(KeyRoutes, &st.Routes, func() { st.Routes = seedRoutes() })
	get(KeySalaryRecords, &st.SalaryRecords, func() { st.SalaryRecords = seedSalaryRecords(today) })
	get(KeyAdminPassword, &st.AdminPassword, func() { st.AdminPassword = DefaultAdminPassword })
	if st.Counters = store.Load(ctx, r.store, KeyCounters, Counters{}); st.Counters == nil {
		st.Counters = Counters{}
	}
	r.reconcileCounters()
	switch {
	case seeded && readFailed:
		// stored data may still exist behind the failed read; the next write persists
		r.logger.Printf("[repository] seeded default data after read errors, not persisting yet")
	case seeded:
		r.logger.Printf("[repository] seeded default data")
		r.persistAll(ctx)
	}
}

// reconcileCounters raises each counter to the highest sequence present in its collection.
func (r *Repository) reconcileCounters() {
	st := &r.state
	raise := func(prefix string, ids []string) {
		for _, id := range ids {
			if n, ok := models.ParseSeq(prefix, id); ok && n > st.Counters[prefix] {
				st.Counters[prefix] = n
			}
		}
	}
	raise(models.PrefixStaff, collectIDs(st.Staff, func(s models.Staff) string { return s.ID }))
	raise(models.PrefixDelivery, collectIDs(st.Deliveries, func(d models.Delivery) string { return d.ID }))
	raise(models.PrefixInvoice, collectIDs(st.Invoices, func(i models.Invoice) string { return i.ID }))
	raise(models.PrefixConversion, collectIDs(st.ConversionLogs, func(c models.ConversionLog) string { return c.ID }))
	raise(models.PrefixRoute, collectIDs(st.Routes, func(rt models.DeliveryRoute) string { return rt.ID }))
	raise(models.PrefixSalary, collectIDs(st.SalaryRecords, func(s models.SalaryRecord) string { return s.ID }))
}

func collectIDs[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

// persistAll writes every collection. Each key is written independently.
func (r *Repository) persistAll(ctx context.Context) {
	st := &r.state
	r.store.Set(ctx, KeyProducts, st.Products)
	r.store.Set(ctx, KeyStaff, st.Staff)
	r.store.Set(ctx, KeyDeliveries, st.Deliveries)
	r.store.Set(ctx, KeyDailyRecords, st.DailyRecords)
	r.store.Set(ctx, KeyInvoices, st.Invoices)
	r.store.Set(ctx, KeyConversionLogs, st.ConversionLogs)
	r.store.Set(ctx, KeyRoutes, st.Routes)
	r.store.Set(ctx, KeySalaryRecords, st.SalaryRecords)
	r.store.Set(ctx, KeyAdminPassword, st.AdminPassword)
	r.store.Set(ctx, KeyCounters, st.Counters)
}

// nextID issues the next id for prefix. Sequences never repeat, even after deletions.
func (r *Repository) nextID(prefix string) string {
	r.state.Counters[prefix]++
	return models.FormatID(prefix, r.state.Counters[prefix])
}

func (r *Repository) today() string {
	return models.Day(r.now())
}

// Tx is the live state handed to a Mutate callback.
type Tx struct {
	*State
	r *Repository
}

// NextID issues the next id for prefix.
func (tx *Tx) NextID(prefix string) string { return tx.r.nextID(prefix) }

// Today returns the current day label.
func (tx *Tx) Today() string { return tx.r.today() }

// FindStaff returns the staff member with id.
func (tx *Tx) FindStaff(id string) (models.Staff, bool) {
	i := slices.IndexFunc(tx.Staff, func(s models.Staff) bool { return s.ID == id })
	if i < 0 {
		return models.Staff{}, false
	}
	return tx.Staff[i], true
}

// PrependInvoice stores inv as the newest invoice.
func (tx *Tx) PrependInvoice(inv models.Invoice) {
	tx.Invoices = slices.Insert(tx.Invoices, 0, inv)
}

// PrependConversionLog stores c as the newest conversion log.
func (tx *Tx) PrependConversionLog(c models.ConversionLog) {
	tx.ConversionLogs = slices.Insert(tx.ConversionLogs, 0, c)
}

// Mutate runs fn against the live state and persists every collection when fn succeeds.
// fn must validate before it mutates: a returned error skips persistence but does not undo changes.
func (r *Repository) Mutate(ctx context.Context, fn func(tx *Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := fn(&Tx{State: &r.state, r: r}); err != nil {
		return err
	}
	r.persistAll(ctx)
	return nil
}

// View runs fn against the live state without persisting. fn must not mutate.
func (r *Repository) View(fn func(st *State)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.state)
}

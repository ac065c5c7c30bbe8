package generator

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

const (
	// DefaultUpdateProbability is the chance a record re-emits a known identifier.
	DefaultUpdateProbability = 0.20

	MinContacts = 10
	MaxContacts = 2000

	insertWindow         = 30 * 24 * time.Hour
	updateWindow         = 2 * 24 * time.Hour
	minUpdateSpan        = 5 * 24 * time.Hour
	maxUpdateSpan        = 30 * 24 * time.Hour
	maxInsertSkewSeconds = 59
)

// Rand is the random source the generator draws from. *rand.Rand from
// math/rand/v2 satisfies it; tests inject scripted sources.
type Rand interface {
	Float64() float64
	IntN(n int) int
	Int64N(n int64) int64
}

// NameSource produces workspace display names. *gofakeit.Faker satisfies it.
type NameSource interface {
	Company() string
}

// Options configures a Generator. Zero fields get defaults.
type Options struct {
	Rand  Rand
	Names NameSource
	Now   func() time.Time
	NewID func() string

	// UpdateProbability is the chance of update mode once History is non-empty.
	// Zero means DefaultUpdateProbability; a negative value disables updates.
	UpdateProbability float64

	// Seed seeds the default Rand and Names. Zero seeds from the clock.
	Seed uint64
}

func (o Options) withDefaults() Options {
	seed := o.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if o.Names == nil {
		o.Names = gofakeit.New(seed)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.New().String() }
	}
	if o.UpdateProbability == 0 {
		o.UpdateProbability = DefaultUpdateProbability
	}
	return o
}

// Generator synthesizes enrichment records with insert/update churn.
type Generator struct {
	mu      sync.Mutex
	history *History
	opts    Options
}

// New returns a Generator that records minted identifiers in history.
// A nil history gets a fresh one.
func New(history *History, opts Options) *Generator {
	if history == nil {
		history = NewHistory()
	}
	return &Generator{history: history, opts: opts.withDefaults()}
}

// History returns the identifier history the generator appends to.
func (g *Generator) History() *History {
	return g.history
}

// Generate returns exactly n records. n <= 0 yields an empty slice.
//
// Each record either inserts a new identifier or, with UpdateProbability once
// the history is non-empty, re-emits a random known one with a fresh
// updated_at and a created_at synthesized backwards from it.
func (g *Generator) Generate(n int) []models.EnrichmentRecord {
	if n <= 0 {
		return []models.EnrichmentRecord{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]models.EnrichmentRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.next())
	}
	return out
}

func (g *Generator) next() models.EnrichmentRecord {
	r := g.opts.Rand
	now := g.opts.Now()

	var rec models.EnrichmentRecord
	if g.history.Len() > 0 && r.Float64() < g.opts.UpdateProbability {
		rec.ID = g.history.At(r.IntN(g.history.Len()))
		rec.UpdatedAt = now.Add(-randDuration(r, updateWindow))
		span := minUpdateSpan + randDuration(r, maxUpdateSpan-minUpdateSpan)
		rec.CreatedAt = rec.UpdatedAt.Add(-span)
	} else {
		rec.ID = g.opts.NewID()
		g.history.Append(rec.ID)
		rec.CreatedAt = now.Add(-randDuration(r, insertWindow))
		rec.UpdatedAt = rec.CreatedAt.Add(time.Duration(r.IntN(maxInsertSkewSeconds+1)) * time.Second)
	}

	rec.WorkspaceID = g.opts.NewID()
	rec.WorkspaceName = g.opts.Names.Company()
	rec.TotalContacts = MinContacts + r.IntN(MaxContacts-MinContacts+1)
	rec.ContactType = models.ContactTypes[r.IntN(len(models.ContactTypes))]
	rec.Status = models.EnrichmentStatuses[r.IntN(len(models.EnrichmentStatuses))]
	return rec
}

// randDuration draws uniformly from [0, max].
func randDuration(r Rand, max time.Duration) time.Duration {
	return time.Duration(r.Int64N(int64(max) + 1))
}

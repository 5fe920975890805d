package categorize

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/insight-server/internal/finance"
)

const (
	learnedConfidence = 0.92
	maxConfidence     = 0.95
	scoreNormalizer   = 20.0
	maxAlternatives   = 2
	maxCorrections    = 40
	maxTokens         = 4
	minTokenLength    = 3
)

// Amount fallback thresholds, in whole units of the app's default currency.
var (
	smallAmountCeiling  = decimal.NewFromInt(2000)
	mediumAmountCeiling = decimal.NewFromInt(10000)
)

// CorrectionStore persists the learned-correction list. Load is called once at
// startup, Save rewrites the full list on every learning call.
type CorrectionStore interface {
	Load(ctx context.Context) ([]finance.CorrectionEntry, error)
	Save(ctx context.Context, entries []finance.CorrectionEntry) error
}

// Result is a category prediction for a single description+amount pair.
type Result struct {
	Category     finance.Category
	Confidence   float64
	Alternatives []finance.Category
}

// Engine maps a transaction description and amount to a predicted category.
// Keyword rules provide the baseline; user corrections learned at runtime take
// precedence over them. The correction list is the only mutable state; reads
// during Categorize and the read-modify-write in LearnFromCorrection are
// guarded by mu.
type Engine struct {
	rules []Rule
	store CorrectionStore
	log   *logrus.Logger
	now   func() time.Time

	mu          sync.RWMutex
	corrections []finance.CorrectionEntry
}

// NewEngine creates an Engine with the given rules and correction store.
func NewEngine(rules []Rule, store CorrectionStore, log *logrus.Logger) *Engine {
	return &Engine{
		rules: rules,
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// LoadCorrections restores the persisted correction list. A load failure is
// non-fatal: the engine continues with an empty list.
func (e *Engine) LoadCorrections(ctx context.Context) {
	entries, err := e.store.Load(ctx)
	if err != nil {
		e.log.WithError(err).Error("CategorizationEngine.LoadCorrections.load error")
		return
	}

	e.mu.Lock()
	e.corrections = entries
	e.mu.Unlock()
}

// Categorize predicts a category for the description and amount. Learned
// corrections win over keyword rules; when nothing matches, amount-based
// heuristics provide a low-confidence fallback. It never fails.
func (e *Engine) Categorize(description string, amount decimal.Decimal) Result {
	normalized := strings.ToLower(description)

	if learned, ok := e.learnedCategory(normalized); ok {
		return Result{Category: learned, Confidence: learnedConfidence}
	}

	type match struct {
		category finance.Category
		score    int
	}
	var matches []match

	for _, rule := range e.rules {
		score := 0
		for _, keyword := range rule.Keywords {
			if strings.Contains(normalized, strings.ToLower(keyword)) {
				score += rule.Priority
			}
		}
		if score > 0 {
			matches = append(matches, match{category: rule.Category, score: score})
		}
	}

	if len(matches) == 0 {
		return e.categorizeByAmount(amount)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	confidence := float64(matches[0].score) / scoreNormalizer
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	var alternatives []finance.Category
	for _, m := range matches[1:] {
		alternatives = append(alternatives, m.category)
		if len(alternatives) == maxAlternatives {
			break
		}
	}

	return Result{
		Category:     matches[0].category,
		Confidence:   confidence,
		Alternatives: alternatives,
	}
}

// categorizeByAmount guesses a category from the amount alone.
func (e *Engine) categorizeByAmount(amount decimal.Decimal) Result {
	if amount.LessThanOrEqual(smallAmountCeiling) {
		return Result{Category: finance.CategoryCoffee, Confidence: 0.3}
	}
	if amount.LessThanOrEqual(mediumAmountCeiling) {
		return Result{Category: finance.CategoryFood, Confidence: 0.4}
	}
	return Result{Category: finance.CategoryOther, Confidence: 0.2}
}

// LearnFromCorrection records that the user reassigned a transaction with this
// description from suggested to correct. No-op when the categories agree or
// the description yields no tokens. The new entry is prepended so it overrides
// older entries with overlapping tokens; an existing entry with the identical
// token-set+category pair is replaced, and the list is bounded at 40 entries.
// A persistence failure keeps the in-memory update and is logged, not
// propagated.
func (e *Engine) LearnFromCorrection(ctx context.Context, description string, suggested, correct finance.Category) {
	if description == "" || suggested == correct {
		return
	}

	tokens := extractTokens(description)
	if len(tokens) == 0 {
		return
	}

	entry := finance.CorrectionEntry{
		Tokens:    tokens,
		Category:  correct,
		UpdatedAt: e.now(),
	}
	key := strings.Join(tokens, "|")

	e.mu.Lock()
	updated := make([]finance.CorrectionEntry, 0, len(e.corrections)+1)
	updated = append(updated, entry)
	for _, existing := range e.corrections {
		if existing.Category == entry.Category && strings.Join(existing.Tokens, "|") == key {
			continue
		}
		updated = append(updated, existing)
	}
	if len(updated) > maxCorrections {
		updated = updated[:maxCorrections]
	}
	e.corrections = updated
	snapshot := make([]finance.CorrectionEntry, len(updated))
	copy(snapshot, updated)
	e.mu.Unlock()

	if err := e.store.Save(ctx, snapshot); err != nil {
		e.log.WithError(err).Error("CategorizationEngine.LearnFromCorrection.save error")
	}
}

// learnedCategory returns the category of the newest correction whose tokens
// match the normalized description. First substring match wins.
func (e *Engine) learnedCategory(normalized string) (finance.Category, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, entry := range e.corrections {
		for _, token := range entry.Tokens {
			if token != "" && strings.Contains(normalized, token) {
				return entry.Category, true
			}
		}
	}
	return "", false
}

// extractTokens lowercases the description, splits on non-alphanumeric runes,
// and keeps up to 4 tokens of at least 3 characters.
func extractTokens(description string) []string {
	fields := strings.FieldsFunc(strings.ToLower(description), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var tokens []string
	for _, field := range fields {
		if utf8.RuneCountInString(field) < minTokenLength {
			continue
		}
		tokens = append(tokens, field)
		if len(tokens) == maxTokens {
			break
		}
	}
	return tokens
}

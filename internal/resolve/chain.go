package resolve

import (
	"context"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	content "github.com/dseza/portal/internal/content"
	i18n "github.com/dseza/portal/internal/platform/i18n"
)

// Strategy identifies which fallback technique produced a result.
type Strategy string

const (
	StrategyDirectKey       Strategy = "direct-key"
	StrategyEmbeddedKey     Strategy = "embedded-key"
	StrategyHashMatch       Strategy = "hash-match"
	StrategyPathAlias       Strategy = "path-alias-match"
	StrategyTitleSimilarity Strategy = "title-similarity"
	StrategyNone            Strategy = "none"
)

// Gateway is the content lookup seam the chain depends on. The fuzzy
// strategies, alias matching included, work off the bulk listing rather
// than per-alias queries so one fetch serves the whole fallback phase.
type Gateway interface {
	FetchByKey(ctx context.Context, key string, lang i18n.Language) (content.Record, error)
	FetchAllSummaries(ctx context.Context, lang i18n.Language) ([]content.Summary, error)
}

// Result is the outcome of one resolution cycle.
type Result struct {
	// Record is nil exactly when Strategy is StrategyNone.
	Record   *content.Record
	Strategy Strategy
	// CanonicalURL is empty when the requested URL already is the
	// record's canonical location; otherwise it is the redirect target.
	CanonicalURL string
	// Attempted lists the strategies tried, in order. Diagnostics only.
	Attempted []Strategy
}

// Resolver runs the ordered fallback strategies for one identifier. Order is
// a cost/precision trade-off: the direct key is the cheapest and most common
// case, the embedded key covers legacy slugs carrying a key suffix, and the
// listing-backed fuzzy strategies run last because they need a bulk fetch
// and their match quality is weaker.
type Resolver struct {
	gateway Gateway
	tracer  trace.Tracer
}

// NewResolver returns a Resolver backed by the given gateway.
func NewResolver(gateway Gateway) *Resolver {
	return &Resolver{
		gateway: gateway,
		tracer:  otel.Tracer("resolve"),
	}
}

// cycleState threads per-cycle data through the strategy list. The bulk
// listing is fetched at most once per cycle and never retained across
// cycles.
type cycleState struct {
	raw           string
	lang          i18n.Language
	requestedPath string

	summaries    []content.Summary
	summariesOK  bool
	summariesErr error
}

type strategyFunc func(ctx context.Context, s *cycleState) (*Result, error)

type strategyStep struct {
	name Strategy
	fn   strategyFunc
}

// Resolve attempts each strategy in its fixed order and stops at the first
// success. Lookup failures, transport failures included, only fail that
// strategy; the chain continues. The error return is non-nil only when ctx
// ends, so a superseded or abandoned cycle is distinguishable from an
// exhausted one.
func (r *Resolver) Resolve(ctx context.Context, raw string, lang i18n.Language) (Result, error) {
	ctx, span := r.tracer.Start(ctx, "resolve.cycle", trace.WithAttributes(
		attribute.String("resolve.identifier", raw),
		attribute.String("resolve.language", lang.String()),
	))
	defer span.End()

	state := &cycleState{
		raw:           raw,
		lang:          lang,
		requestedPath: "/" + lang.String() + "/" + strings.TrimLeft(raw, "/"),
	}

	steps := []strategyStep{
		{StrategyDirectKey, r.directKey},
		{StrategyEmbeddedKey, r.embeddedKey},
		{StrategyHashMatch, r.hashMatch},
		{StrategyPathAlias, r.pathAlias},
		{StrategyTitleSimilarity, r.titleSimilarity},
	}

	var attempted []Strategy
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return Result{Strategy: StrategyNone, Attempted: attempted}, err
		}
		attempted = append(attempted, step.name)
		result, err := step.fn(ctx, state)
		if err != nil {
			return Result{Strategy: StrategyNone, Attempted: attempted}, err
		}
		if result != nil {
			result.Attempted = attempted
			span.SetAttributes(attribute.String("resolve.strategy", string(result.Strategy)))
			return *result, nil
		}
	}

	span.SetAttributes(attribute.String("resolve.strategy", string(StrategyNone)))
	return Result{Strategy: StrategyNone, Attempted: attempted}, nil
}

// directKey resolves identifiers that are a content key in their entirety.
// The keyed canonical shape "article/<key>" counts as direct so canonical
// URLs resolve as a fixed point.
func (r *Resolver) directKey(ctx context.Context, s *cycleState) (*Result, error) {
	key := s.raw
	if rest, ok := strings.CutPrefix(s.raw, ArticleSegment+"/"); ok {
		key = rest
	}
	if !IsDirectKey(key) {
		return nil, nil
	}
	rec, err := r.gateway.FetchByKey(ctx, key, s.lang)
	if err != nil {
		return nil, ctx.Err()
	}
	return s.resultFor(rec, StrategyDirectKey), nil
}

// embeddedKey resolves slugs that carry a content key as a substring. The
// requested URL is non-canonical by construction, so a redirect is always
// produced.
func (r *Resolver) embeddedKey(ctx context.Context, s *cycleState) (*Result, error) {
	key := ExtractEmbeddedKey(s.raw)
	if key == "" || key == s.raw {
		return nil, nil
	}
	rec, err := r.gateway.FetchByKey(ctx, key, s.lang)
	if err != nil {
		return nil, ctx.Err()
	}
	return s.resultFor(rec, StrategyEmbeddedKey), nil
}

// hashMatch scans the bulk listing for a summary containing the
// identifier's trailing hash fingerprint.
func (r *Resolver) hashMatch(ctx context.Context, s *cycleState) (*Result, error) {
	hash := ExtractTrailingHash(s.raw)
	if hash == "" {
		return nil, nil
	}
	summaries, err := r.loadSummaries(ctx, s)
	if err != nil {
		return nil, ctx.Err()
	}
	needle := strings.ToLower(hash)
	for _, summary := range summaries {
		if containsFold(summary.PathAlias, needle) ||
			containsFold(summary.Key, needle) ||
			containsFold(summary.Title, needle) {
			return r.fetchMatch(ctx, s, summary, StrategyHashMatch)
		}
	}
	return nil, nil
}

// pathAlias matches the identifier, normalized to a leading slash, exactly
// against a summary's stored alias.
func (r *Resolver) pathAlias(ctx context.Context, s *cycleState) (*Result, error) {
	summaries, err := r.loadSummaries(ctx, s)
	if err != nil {
		return nil, ctx.Err()
	}
	wanted := "/" + strings.TrimLeft(s.raw, "/")
	for _, summary := range summaries {
		if summary.PathAlias == wanted {
			return r.fetchMatch(ctx, s, summary, StrategyPathAlias)
		}
	}
	return nil, nil
}

var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

// titleSimilarity accepts the first summary whose title contains any
// identifier token longer than three characters. A permissive last resort
// for legacy-URL recovery; first match in listing order wins, no scoring.
func (r *Resolver) titleSimilarity(ctx context.Context, s *cycleState) (*Result, error) {
	tokens := identifierTokens(s.raw)
	if len(tokens) == 0 {
		return nil, nil
	}
	summaries, err := r.loadSummaries(ctx, s)
	if err != nil {
		return nil, ctx.Err()
	}
	for _, summary := range summaries {
		title := strings.ToLower(summary.Title)
		for _, token := range tokens {
			if strings.Contains(title, token) {
				return r.fetchMatch(ctx, s, summary, StrategyTitleSimilarity)
			}
		}
	}
	return nil, nil
}

// loadSummaries fetches the language's bulk listing at most once per cycle.
// A failed fetch is remembered so later fuzzy strategies do not retry it.
func (r *Resolver) loadSummaries(ctx context.Context, s *cycleState) ([]content.Summary, error) {
	if s.summariesOK || s.summariesErr != nil {
		return s.summaries, s.summariesErr
	}
	summaries, err := r.gateway.FetchAllSummaries(ctx, s.lang)
	if err != nil {
		s.summariesErr = err
		return nil, err
	}
	s.summaries = summaries
	s.summariesOK = true
	return summaries, nil
}

// fetchMatch completes a fuzzy match by loading the full record.
func (r *Resolver) fetchMatch(ctx context.Context, s *cycleState, summary content.Summary, strategy Strategy) (*Result, error) {
	rec, err := r.gateway.FetchByKey(ctx, summary.Key, s.lang)
	if err != nil {
		return nil, ctx.Err()
	}
	return s.resultFor(rec, strategy), nil
}

// resultFor assembles a success result. The canonical URL is always
// computed and compared against the requesting path; it is only carried
// when the two differ, which is what keeps redirects loop-free.
func (s *cycleState) resultFor(rec content.Record, strategy Strategy) *Result {
	result := &Result{Record: &rec, Strategy: strategy}
	if canonical := BuildCanonicalURL(s.lang, rec); canonical != s.requestedPath {
		result.CanonicalURL = canonical
	}
	return result
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

func identifierTokens(raw string) []string {
	var tokens []string
	for _, token := range tokenSplitPattern.Split(strings.ToLower(raw), -1) {
		if len(token) > 3 {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

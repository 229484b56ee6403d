package resolve

import (
	"context"
	"testing"

	content "github.com/dseza/portal/internal/content"
	i18n "github.com/dseza/portal/internal/platform/i18n"
)

const (
	keyA = "abcdefab-1111-2222-3333-444455556666"
	keyB = "bbbbbbbb-1111-2222-3333-444455556666"
)

type fakeGateway struct {
	records        map[string]content.Record
	summaries      []content.Summary
	summariesErr   error
	keyCalls       int
	summariesCalls int
}

func (g *fakeGateway) FetchByKey(_ context.Context, key string, lang i18n.Language) (content.Record, error) {
	g.keyCalls++
	rec, ok := g.records[key]
	if !ok {
		return content.Record{}, content.ErrNotFound
	}
	rec.Language = lang
	return rec, nil
}

func (g *fakeGateway) FetchAllSummaries(_ context.Context, _ i18n.Language) ([]content.Summary, error) {
	g.summariesCalls++
	if g.summariesErr != nil {
		return nil, g.summariesErr
	}
	return g.summaries, nil
}

func TestDirectKeyResolvesWithCanonicalRedirect(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{records: map[string]content.Record{
		keyA: {Key: keyA, PathAlias: "/tin-abc", Title: "Tin ABC"},
	}}
	resolver := NewResolver(gateway)

	result, err := resolver.Resolve(context.Background(), keyA, i18n.Vietnamese)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Strategy != StrategyDirectKey {
		t.Fatalf("strategy = %v", result.Strategy)
	}
	if result.CanonicalURL != "/vi/tin-abc" {
		t.Fatalf("canonical = %q", result.CanonicalURL)
	}
	if result.Record == nil || result.Record.Key != keyA {
		t.Fatalf("record = %+v", result.Record)
	}
}

func TestCanonicalURLIsAFixedPoint(t *testing.T) {
	t.Parallel()

	// Keyed canonical shape: the record has no alias, so its canonical
	// location is the keyed article path.
	gateway := &fakeGateway{records: map[string]content.Record{
		keyA: {Key: keyA, Title: "Tin ABC"},
	}}
	resolver := NewResolver(gateway)

	result, err := resolver.Resolve(context.Background(), ArticleSegment+"/"+keyA, i18n.Vietnamese)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Strategy != StrategyDirectKey {
		t.Fatalf("strategy = %v", result.Strategy)
	}
	if result.CanonicalURL != "" {
		t.Fatalf("canonical = %q, want empty for fixed point", result.CanonicalURL)
	}

	// Alias canonical shape resolves through the listing with no further
	// redirect.
	gateway = &fakeGateway{
		records:   map[string]content.Record{keyA: {Key: keyA, PathAlias: "/tin-abc", Title: "Tin ABC"}},
		summaries: []content.Summary{{Key: keyA, Title: "Tin ABC", PathAlias: "/tin-abc"}},
	}
	resolver = NewResolver(gateway)

	result, err = resolver.Resolve(context.Background(), "tin-abc", i18n.Vietnamese)
	if err != nil {
		t.Fatalf("resolve alias: %v", err)
	}
	if result.Strategy != StrategyPathAlias {
		t.Fatalf("strategy = %v", result.Strategy)
	}
	if result.CanonicalURL != "" {
		t.Fatalf("canonical = %q, want empty for fixed point", result.CanonicalURL)
	}
}

func TestDirectKeyWinsOverAliasOfOtherRecord(t *testing.T) {
	t.Parallel()

	// keyA is simultaneously a valid key and the stored alias of another
	// record; the key addressee must win.
	gateway := &fakeGateway{
		records: map[string]content.Record{
			keyA: {Key: keyA, PathAlias: "/tin-abc", Title: "Addressed"},
			keyB: {Key: keyB, PathAlias: "/" + keyA, Title: "Alias squatter"},
		},
		summaries: []content.Summary{
			{Key: keyB, Title: "Alias squatter", PathAlias: "/" + keyA},
		},
	}
	resolver := NewResolver(gateway)

	result, err := resolver.Resolve(context.Background(), keyA, i18n.Vietnamese)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Strategy != StrategyDirectKey || result.Record.Key != keyA {
		t.Fatalf("result = %+v", result)
	}
	if gateway.summariesCalls != 0 {
		t.Fatalf("bulk listing fetched %d times for a direct key", gateway.summariesCalls)
	}
}

func TestEmbeddedKeyAlwaysRedirects(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{records: map[string]content.Record{
		keyA: {Key: keyA, PathAlias: "/tin-abc", Title: "Tin ABC"},
	}}
	resolver := NewResolver(gateway)

	raw := "some-human-title-" + keyA
	result, err := resolver.Resolve(context.Background(), raw, i18n.Vietnamese)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Strategy != StrategyEmbeddedKey {
		t.Fatalf("strategy = %v", result.Strategy)
	}
	if result.CanonicalURL == "" || result.CanonicalURL == "/vi/"+raw {
		t.Fatalf("canonical = %q, want redirect away from input", result.CanonicalURL)
	}
}

func TestHashMatchResolvesThroughListing(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		records: map[string]content.Record{
			keyB: {Key: keyB, PathAlias: "/chinh-sach-dc58d5a6", Title: "Chính sách mới"},
		},
		summaries: []content.Summary{
			{Key: keyA, Title: "Khác", PathAlias: "/khac"},
			{Key: keyB, Title: "Chính sách mới", PathAlias: "/chinh-sach-dc58d5a6"},
		},
	}
	resolver := NewResolver(gateway)

	result, err := resolver.Resolve(context.Background(), "policy-announcement-dc58d5a6", i18n.Vietnamese)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Strategy != StrategyHashMatch {
		t.Fatalf("strategy = %v", result.Strategy)
	}
	if result.CanonicalURL != "/vi/chinh-sach-dc58d5a6" {
		t.Fatalf("canonical = %q", result.CanonicalURL)
	}
}

func TestTitleSimilarityLastResort(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		records: map[string]content.Record{
			keyA: {Key: keyA, PathAlias: "/mo-rong-khu-cong-nghiep", Title: "Industrial expansion update"},
		},
		summaries: []content.Summary{
			{Key: keyA, Title: "Industrial expansion update", PathAlias: "/mo-rong-khu-cong-nghiep"},
		},
	}
	resolver := NewResolver(gateway)

	result, err := resolver.Resolve(context.Background(), "old-link-expansion-notice", i18n.English)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Strategy != StrategyTitleSimilarity {
		t.Fatalf("strategy = %v", result.Strategy)
	}
	if result.CanonicalURL != "/en/mo-rong-khu-cong-nghiep" {
		t.Fatalf("canonical = %q", result.CanonicalURL)
	}
}

func TestAllStrategiesExhausted(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{summaries: []content.Summary{
		{Key: keyA, Title: "Tin ABC", PathAlias: "/tin-abc"},
	}}
	resolver := NewResolver(gateway)

	result, err := resolver.Resolve(context.Background(), "totally-unknown-garbage-string", i18n.Vietnamese)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Record != nil || result.Strategy != StrategyNone {
		t.Fatalf("result = %+v", result)
	}
	if len(result.Attempted) != 5 {
		t.Fatalf("attempted = %v", result.Attempted)
	}
}

func TestBulkListingFetchedAtMostOnce(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{summaries: nil}
	resolver := NewResolver(gateway)

	// Trailing hash present, so all three fuzzy strategies need the
	// listing; it must still be fetched once.
	if _, err := resolver.Resolve(context.Background(), "legacy-slug-deadbeef", i18n.Vietnamese); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if gateway.summariesCalls != 1 {
		t.Fatalf("summaries fetched %d times, want 1", gateway.summariesCalls)
	}
}

func TestBulkListingFailureExhaustsQuietly(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{summariesErr: context.DeadlineExceeded}
	resolver := NewResolver(gateway)

	result, err := resolver.Resolve(context.Background(), "legacy-slug-deadbeef", i18n.Vietnamese)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Strategy != StrategyNone || result.Record != nil {
		t.Fatalf("result = %+v", result)
	}
	if gateway.summariesCalls != 1 {
		t.Fatalf("summaries fetched %d times, want 1", gateway.summariesCalls)
	}
}

func TestResolveStopsWhenContextEnds(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	resolver := NewResolver(&fakeGateway{})

	if _, err := resolver.Resolve(ctx, "anything", i18n.Vietnamese); err == nil {
		t.Fatal("expected context error")
	}
}

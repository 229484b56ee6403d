package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	i18n "github.com/dseza/portal/internal/platform/i18n"
)

// ErrNotFound reports that the repository holds no record for the lookup.
// It is a normal outcome for resolution callers, not a hard failure.
var ErrNotFound = errors.New("content: not found")

// DefaultUserAgent is sent with repository requests unless overridden.
const DefaultUserAgent = "dseza-portal/1.0"

const listPageSize = 50

// HTTPClient is the transport seam. Retries and timeouts are transport
// concerns and belong to the injected client, not to this package.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Config holds configuration for a Client.
type Config struct {
	// BaseURL is the repository root, without a trailing slash or
	// language segment.
	BaseURL string

	// HTTPClient is the underlying HTTP client. If nil,
	// http.DefaultClient is used.
	HTTPClient HTTPClient

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// Include is passed through on full-record fetches so the response
	// carries the sub-resources the renderer needs. Opaque to this
	// package.
	Include string
}

// Client performs language-scoped read-only lookups against the repository.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	userAgent  string
	include    string
	tracer     trace.Tracer
}

// New returns a Client for the given configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("content: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		userAgent:  userAgent,
		include:    strings.TrimSpace(cfg.Include),
		tracer:     otel.Tracer("content"),
	}, nil
}

// FetchByKey loads the full record addressed by key in one language.
func (c *Client) FetchByKey(ctx context.Context, key string, lang i18n.Language) (Record, error) {
	ctx, span := c.startSpan(ctx, "content.fetch_by_key", lang, attribute.String("content.key", key))
	defer span.End()

	endpoint := c.collectionURL(lang) + "/" + url.PathEscape(key)
	if c.include != "" {
		endpoint += "?include=" + url.QueryEscape(c.include)
	}
	doc, err := c.get(ctx, endpoint)
	if err != nil {
		return Record{}, err
	}
	resource, err := doc.singleResource()
	if err != nil {
		return Record{}, err
	}
	return resource.record(lang), nil
}

// FetchByPathAlias loads the record whose stored alias equals alias in one
// language. The alias is matched exactly, leading slash included.
func (c *Client) FetchByPathAlias(ctx context.Context, alias string, lang i18n.Language) (Record, error) {
	ctx, span := c.startSpan(ctx, "content.fetch_by_alias", lang, attribute.String("content.alias", alias))
	defer span.End()

	query := url.Values{}
	query.Set("filter[path.alias]", alias)
	query.Set("page[limit]", "1")
	doc, err := c.get(ctx, c.collectionURL(lang)+"?"+query.Encode())
	if err != nil {
		return Record{}, err
	}
	resources, err := doc.collectionResources()
	if err != nil {
		return Record{}, err
	}
	if len(resources) == 0 {
		return Record{}, ErrNotFound
	}
	return resources[0].record(lang), nil
}

// FetchByInternalID loads the language variant joined by the repository's
// internal sequence id. Used to locate a record's translation sibling.
func (c *Client) FetchByInternalID(ctx context.Context, id int64, lang i18n.Language) (Record, error) {
	ctx, span := c.startSpan(ctx, "content.fetch_by_internal_id", lang, attribute.Int64("content.internal_id", id))
	defer span.End()

	query := url.Values{}
	query.Set("filter[drupal_internal__nid]", strconv.FormatInt(id, 10))
	query.Set("page[limit]", "1")
	doc, err := c.get(ctx, c.collectionURL(lang)+"?"+query.Encode())
	if err != nil {
		return Record{}, err
	}
	resources, err := doc.collectionResources()
	if err != nil {
		return Record{}, err
	}
	if len(resources) == 0 {
		return Record{}, ErrNotFound
	}
	return resources[0].record(lang), nil
}

// FetchAllSummaries lists every published record's key, title, and alias in
// one language. Expensive; resolution only calls it after the cheaper
// strategies have failed.
func (c *Client) FetchAllSummaries(ctx context.Context, lang i18n.Language) ([]Summary, error) {
	ctx, span := c.startSpan(ctx, "content.fetch_all_summaries", lang)
	defer span.End()

	query := url.Values{}
	query.Set("fields[node--article]", "title,path,drupal_internal__nid")
	query.Set("page[limit]", strconv.Itoa(listPageSize))
	next := c.collectionURL(lang) + "?" + query.Encode()

	var summaries []Summary
	for next != "" {
		doc, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}
		resources, err := doc.collectionResources()
		if err != nil {
			return nil, err
		}
		for _, resource := range resources {
			summaries = append(summaries, Summary{
				Key:       resource.ID,
				Title:     resource.Attributes.Title,
				PathAlias: resource.Attributes.Path.Alias,
			})
		}
		next = doc.nextLink()
	}
	span.SetAttributes(attribute.Int("content.summary_count", len(summaries)))
	return summaries, nil
}

// FetchAllSummariesBoth prefetches both languages' listings concurrently.
func (c *Client) FetchAllSummariesBoth(ctx context.Context) (map[i18n.Language][]Summary, error) {
	group, ctx := errgroup.WithContext(ctx)
	results := make([]([]Summary), len(i18n.Supported()))
	for idx, lang := range i18n.Supported() {
		idx, lang := idx, lang
		group.Go(func() error {
			listing, err := c.FetchAllSummaries(ctx, lang)
			if err != nil {
				return err
			}
			results[idx] = listing
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	byLanguage := make(map[i18n.Language][]Summary, len(results))
	for idx, lang := range i18n.Supported() {
		byLanguage[lang] = results[idx]
	}
	return byLanguage, nil
}

// Ping checks the repository is reachable. It issues the smallest
// collection request the repository serves and treats any decodable
// response as healthy.
func (c *Client) Ping(ctx context.Context) error {
	endpoint := c.collectionURL(i18n.Default()) + "?" + url.Values{
		"page[limit]":           {"1"},
		"fields[node--article]": {"title"},
	}.Encode()
	if _, err := c.get(ctx, endpoint); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (c *Client) collectionURL(lang i18n.Language) string {
	return c.baseURL + "/" + lang.String() + "/jsonapi/node/article"
}

func (c *Client) startSpan(ctx context.Context, name string, lang i18n.Language, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("content.language", lang.String()))
	return c.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (c *Client) get(ctx context.Context, endpoint string) (*document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("content: build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.api+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content: unexpected status %d", resp.StatusCode)
	}

	var doc document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("content: decode response: %w", err)
	}
	return &doc, nil
}

type document struct {
	Data  json.RawMessage `json:"data"`
	Links struct {
		Next struct {
			Href string `json:"href"`
		} `json:"next"`
	} `json:"links"`
}

type resource struct {
	ID         string `json:"id"`
	Attributes struct {
		Title       string `json:"title"`
		InternalNID int64  `json:"drupal_internal__nid"`
		Path        struct {
			Alias string `json:"alias"`
		} `json:"path"`
		Body struct {
			Processed string `json:"processed"`
		} `json:"body"`
	} `json:"attributes"`
}

func (d *document) singleResource() (resource, error) {
	if len(d.Data) == 0 || string(d.Data) == "null" {
		return resource{}, ErrNotFound
	}
	var res resource
	if err := json.Unmarshal(d.Data, &res); err != nil {
		return resource{}, fmt.Errorf("content: decode resource: %w", err)
	}
	return res, nil
}

func (d *document) collectionResources() ([]resource, error) {
	if len(d.Data) == 0 || string(d.Data) == "null" {
		return nil, nil
	}
	var resources []resource
	if err := json.Unmarshal(d.Data, &resources); err != nil {
		return nil, fmt.Errorf("content: decode collection: %w", err)
	}
	return resources, nil
}

func (d *document) nextLink() string {
	return strings.TrimSpace(d.Links.Next.Href)
}

func (r resource) record(lang i18n.Language) Record {
	return Record{
		Key:                r.ID,
		InternalSequenceID: r.Attributes.InternalNID,
		Title:              r.Attributes.Title,
		PathAlias:          r.Attributes.Path.Alias,
		Language:           lang,
		Body:               r.Attributes.Body.Processed,
	}
}

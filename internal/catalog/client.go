package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

const (
	defaultTimeout             = 10 * time.Second
	errorBodyReadLimit   int64 = 1024
	responseBodyMaxBytes int64 = 16 << 20
)

var errBaseURLRequired = errors.New("catalog api url is required")

// Query is the filter set every catalog list endpoint accepts. Zero values are omitted.
type Query struct {
	Brand        string
	DeviceStatus enums.DeviceStatus
	Status       string
	InStock      bool
	SortBy       string
	SortOrder    string
	Limit        int
	Page         int
}

// Values encodes the query for the catalog API.
func (q Query) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("brand", q.Brand)
	set("deviceStatus", q.DeviceStatus.String())
	set("status", q.Status)
	if q.InStock {
		v.Set("inStock", "true")
	}
	set("sortBy", q.SortBy)
	set("sortOrder", q.SortOrder)
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

// Client talks to the remote catalog/admin API. It never retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.CatalogMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithMetrics records fetch duration and failures per section.
func WithMetrics(m *metrics.CatalogMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a catalog client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

func (c *Client) Phones(ctx context.Context, section Section, q Query) ([]RawDevice, error) {
	var resp struct {
		Items []RawDevice `json:"items"`
	}
	if err := c.getJSON(ctx, section, "phones", q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) UsedItems(ctx context.Context, q Query) ([]RawDevice, error) {
	var resp struct {
		Items []RawDevice `json:"items"`
	}
	if err := c.getJSON(ctx, SectionUsed, "used-items", q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) Speakers(ctx context.Context, q Query) ([]RawSpeaker, error) {
	var resp struct {
		Items []RawSpeaker `json:"items"`
	}
	if err := c.getJSON(ctx, SectionSpeakers, "speakers", q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) Coolers(ctx context.Context, q Query) ([]RawCooler, error) {
	var resp struct {
		Items []RawCooler `json:"items"`
	}
	if err := c.getJSON(ctx, SectionCoolers, "coolers", q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) Accessories(ctx context.Context, q Query) ([]RawAccessory, error) {
	var resp struct {
		Items []RawAccessory `json:"items"`
	}
	if err := c.getJSON(ctx, SectionAccessories, "accessories", q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) Brands(ctx context.Context, q Query) ([]RawBrand, error) {
	var resp struct {
		Brands []RawBrand `json:"brands"`
	}
	if err := c.getJSON(ctx, SectionBrands, "brands", q, &resp); err != nil {
		return nil, err
	}
	return resp.Brands, nil
}

func (c *Client) SpeakerBrands(ctx context.Context, q Query) ([]RawBrand, error) {
	var resp struct {
		Brands []RawBrand `json:"brands"`
	}
	if err := c.getJSON(ctx, SectionSpeakerBrands, "speaker-brands", q, &resp); err != nil {
		return nil, err
	}
	return resp.Brands, nil
}

// Phone fetches one device. The API answers either {item: {...}} or the bare item;
// a 404 or a null item is NOT_FOUND.
func (c *Client) Phone(ctx context.Context, id string) (*RawDevice, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	var raw json.RawMessage
	if err := c.getJSON(ctx, SectionProduct, "phones/"+url.PathEscape(trimmed), Query{}, &raw); err != nil {
		return nil, err
	}

	var wrapped struct {
		Item *RawDevice `json:"item"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Item != nil {
		return wrapped.Item, nil
	}

	var bare RawDevice
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, SectionProduct.FailureMessage())
	}
	if bare.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &bare, nil
}

func (c *Client) getJSON(ctx context.Context, section Section, path string, q Query, dest any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "catalog client not configured")
	}

	endpoint := c.buildURL(path)
	if encoded := q.Values().Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	start := time.Now()
	err := c.do(ctx, section, endpoint, dest)
	c.metrics.ObserveFetch(string(section), time.Since(start))
	if err != nil && !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		c.metrics.IncFailure(string(section))
	}
	return err
}

func (c *Client) do(ctx context.Context, section Section, endpoint string, dest any) error {
	failed := section.FailureMessage()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, failed)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, failed)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound && section == SectionProduct {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		cause := &pkgerrors.UpstreamError{Service: "catalog", Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, cause, failed).
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, responseBodyMaxBytes)).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, failed)
	}
	return nil
}

func (c *Client) buildURL(path string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
}

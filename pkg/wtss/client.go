// Package wtss is a client for the Web Time Series Service (WTSS), a REST
// service exposing time series extracted from spatio-temporal raster
// coverages. The client builds query URLs, performs synchronous HTTP GETs,
// and decodes the JSON responses into plain documents.
package wtss

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/giserh/wtss.py/pkg/httpclient"
)

const defaultTimeout = 15 * time.Second

// Client is a WTSS client bound to a single service base URL. The base URL
// is stored verbatim (no normalization, no trailing-slash handling) and is
// immutable after construction, so a Client is safe for serial or
// concurrent reuse.
type Client struct {
	host        string
	http        httpclient.Client
	checkStatus bool
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient injects the HTTP transport used for all requests.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout replaces the default transport with one using the given
// request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.http = httpclient.NewRestyClient(timeout) }
}

// WithoutStatusCheck makes the client decode response bodies without
// inspecting the HTTP status line, for servers that report errors as JSON
// documents on non-success statuses.
func WithoutStatusCheck() Option {
	return func(c *Client) { c.checkStatus = false }
}

// New creates a client attached to the given host address (a base URL such
// as "http://www.dpi.inpe.br/tws"). The host is not validated.
func New(host string, opts ...Option) *Client {
	c := &Client{
		host:        host,
		http:        httpclient.NewRestyClient(defaultTimeout),
		checkStatus: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Host returns the base URL the client was constructed with.
func (c *Client) Host() string { return c.host }

// ListCoverages returns the list of all coverages available in the service.
func (c *Client) ListCoverages(ctx context.Context) (CoverageList, error) {
	doc, err := c.get(ctx, c.host+"/wtss/list_coverages")
	if err != nil {
		return nil, err
	}
	return CoverageList(doc), nil
}

// DescribeCoverage returns the service-defined metadata document for the
// named coverage. The name is passed through as-is apart from URL escaping.
func (c *Client) DescribeCoverage(ctx context.Context, name string) (CoverageDescription, error) {
	uri := c.host + "/wtss/describe_coverage?name=" + url.QueryEscape(name)
	doc, err := c.get(ctx, uri)
	if err != nil {
		return nil, err
	}
	return CoverageDescription(doc), nil
}

// TimeSeries retrieves the time series for a location and optional time
// interval. Latitude and longitude are degrees in WGS84 (EPSG 4326). The
// start and end dates are transmitted verbatim, and only when both are
// non-empty; supplying just one of the two omits the interval entirely.
func (c *Client) TimeSeries(ctx context.Context, coverage string, attributes Attributes, latitude, longitude float64, startDate, endDate string) (TimeSeriesDocument, error) {
	if coverage == "" {
		return nil, invalidArgument("Missing coverage name.")
	}
	if attributes == nil {
		return nil, invalidArgument("attributes must be a list, tuple or string")
	}
	attrs, err := attributes.queryValue()
	if err != nil {
		return nil, err
	}
	if latitude < -90.0 || latitude > 90.0 {
		return nil, invalidArgument("latitude is out-of range!")
	}
	if longitude < -180.0 || longitude > 180.0 {
		return nil, invalidArgument("longitude is out-of range!")
	}

	var sb strings.Builder
	sb.WriteString(c.host)
	sb.WriteString("/wtss/time_series?coverage=")
	sb.WriteString(url.QueryEscape(coverage))
	sb.WriteString("&attributes=")
	sb.WriteString(url.QueryEscape(attrs))
	sb.WriteString("&latitude=")
	sb.WriteString(formatCoordinate(latitude))
	sb.WriteString("&longitude=")
	sb.WriteString(formatCoordinate(longitude))
	if startDate != "" && endDate != "" {
		sb.WriteString("&start=")
		sb.WriteString(startDate)
		sb.WriteString("&end=")
		sb.WriteString(endDate)
	}

	doc, err := c.get(ctx, sb.String())
	if err != nil {
		return nil, err
	}
	return TimeSeriesDocument(doc), nil
}

// get issues the GET request and decodes the JSON body.
func (c *Client) get(ctx context.Context, uri string) (Document, error) {
	resp, err := c.http.Get(ctx, uri)
	if err != nil {
		return nil, wrapError(KindNetwork, fmt.Sprintf("get %s", uri), err)
	}

	body := resp.Body()
	if c.checkStatus {
		if code := resp.StatusCode(); code < 200 || code > 299 {
			return nil, newError(KindService, fmt.Sprintf("service returned status %d body: %s", code, responseSnippet(body)))
		}
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, wrapError(KindDecode, "decode response body", err)
	}
	return doc, nil
}

// formatCoordinate renders a coordinate as plain decimal, never scientific
// notation.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

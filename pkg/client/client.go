// Package client reads synteny data from a running synbrowser server. A
// Client satisfies model.Source, so a browser can be fed remotely.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/handler"
	"github.com/yumyai/synbrowser/pkg/model"
	"github.com/yumyai/synbrowser/pkg/synteny"
)

const DefaultTimeout = 30 * time.Second

type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger
}

// New creates a client for the server at baseURL, e.g.
// "http://localhost:8080". A nil httpClient gets DefaultTimeout.
func New(baseURL string, httpClient *http.Client, log *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{base: u, http: httpClient, log: log}, nil
}

// StatusError is a non-200 answer from the server.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

func (c *Client) get(ctx context.Context, out any, parts ...string) error {
	u := c.base.JoinPath(append([]string{"api", "v1"}, parts...)...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.log.Debug("api request",
		zap.String("url", u.String()),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", resp.Header.Get("X-Request-ID")),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		var e handler.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&e)
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", u.Path, err)
	}
	return nil
}

func (c *Client) Blocks(ctx context.Context, refTaxon, compTaxon int, chr string) ([]synteny.Block, error) {
	var r handler.BlocksResponse
	err := c.get(ctx, &r, "blocks", strconv.Itoa(refTaxon), strconv.Itoa(compTaxon), chr)
	return r.Blocks, err
}

func (c *Client) Genes(ctx context.Context, refTaxon, compTaxon int, chr string) ([]model.GeneRecord, error) {
	var r handler.GenesResponse
	err := c.get(ctx, &r, "genes", strconv.Itoa(refTaxon), strconv.Itoa(compTaxon), chr)
	return r.Genes, err
}

func (c *Client) QTLs(ctx context.Context, taxon int, chr string) ([]feature.QTL, error) {
	var r handler.QTLsResponse
	err := c.get(ctx, &r, "qtls", strconv.Itoa(taxon), chr)
	return r.QTLs, err
}

func (c *Client) Species(ctx context.Context) ([]handler.SpeciesResponse, error) {
	var r []handler.SpeciesResponse
	err := c.get(ctx, &r, "species")
	return r, err
}

func (c *Client) ChromosomeColors(ctx context.Context) (map[string]string, error) {
	var r map[string]string
	err := c.get(ctx, &r, "chr-colors")
	return r, err
}

var _ model.Source = (*Client)(nil)

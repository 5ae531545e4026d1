// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/staranto/citectl/internal/cacheutil"
)

// DefaultURL lists the independent styles of the CSL styles repository. The
// git trees endpoint is used because the contents endpoint stops at 1,000
// entries per directory.
const DefaultURL = "https://api.github.com/repos/citation-style-language/styles/git/trees/master"

const (
	defaultTimeout    = 10 * time.Second
	defaultCacheHours = 24
	styleExt          = ".csl"
)

var cacheSubdirs = []string{"catalog"}

// Remote fetches the style index over HTTP. Responses are cached on disk for
// CacheHours; a stale cache entry is used when the fetch fails.
type Remote struct {
	URL        string
	CacheHours int
	Client     *retryablehttp.Client
}

// NewRemote returns a Remote with a retrying client. Zero values pick the
// defaults.
func NewRemote(url string, timeout time.Duration, cacheHours int) *Remote {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if cacheHours == 0 {
		cacheHours = defaultCacheHours
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = timeout
	client.Logger = leveledLogger{}

	return &Remote{
		URL:        url,
		CacheHours: cacheHours,
		Client:     client,
	}
}

func (r *Remote) Styles(ctx context.Context) (Set, error) {
	maxAge := time.Duration(r.CacheHours) * time.Hour
	if entry, ok := cacheutil.ReadFresh(cacheSubdirs, r.URL, maxAge); ok {
		if s, err := parseIndex(entry.Data); err == nil {
			log.Debugf("cache hit: %s, written %s", entry.Path, humanize.Time(entry.ModTime))
			return s, nil
		}
	}

	doc, err := r.fetch(ctx)
	if err != nil {
		if entry, ok := cacheutil.Read(cacheSubdirs, r.URL); ok {
			if s, perr := parseIndex(entry.Data); perr == nil {
				log.WithError(err).Warnf("using stale style index written %s", humanize.Time(entry.ModTime))
				return s, nil
			}
		}
		return nil, err
	}

	s, err := parseIndex(doc)
	if err != nil {
		return nil, unavailable(err, "parsing index from %s", r.URL)
	}

	if err := cacheutil.Write(cacheSubdirs, r.URL, doc); err != nil {
		log.WithError(err).Warn("failed to write style index to cache")
	}

	return s, nil
}

func (r *Remote) fetch(ctx context.Context) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, unavailable(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, unavailable(err, "failed to execute request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unavailable(nil, "GET %s: %s", r.URL, resp.Status)
	}

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, unavailable(err, "failed to read response")
	}
	return doc.Bytes(), nil
}

// parseIndex accepts a JSON array of style ids, a GitHub contents listing or
// a GitHub git tree. The *.csl file names of a listing or tree become ids.
func parseIndex(data []byte) (Set, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("index is not valid JSON")
	}
	root := gjson.ParseBytes(data)

	var ids []string
	switch {
	case root.IsArray():
		root.ForEach(func(_, v gjson.Result) bool {
			switch {
			case v.Type == gjson.String:
				ids = append(ids, v.String())
			case v.Get("type").String() == "file":
				ids = append(ids, styleID(v.Get("name").String()))
			}
			return true
		})
	case root.Get("tree").IsArray():
		if root.Get("truncated").Bool() {
			log.Warn("style index tree is truncated")
		}
		for _, p := range root.Get(`tree.#(type=="blob")#.path`).Array() {
			ids = append(ids, styleID(p.String()))
		}
	default:
		return nil, fmt.Errorf("index is neither a JSON array nor a git tree")
	}

	return NewSet(ids...), nil
}

// styleID strips the extension from a top-level *.csl name. Anything else
// yields "", which NewSet drops.
func styleID(name string) string {
	if !strings.HasSuffix(name, styleExt) || strings.Contains(name, "/") {
		return ""
	}
	return strings.TrimSuffix(name, styleExt)
}

// leveledLogger routes retryablehttp logging through apex/log.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) { entry(kv).Error(msg) }
func (leveledLogger) Info(msg string, kv ...interface{})  { entry(kv).Debug(msg) }
func (leveledLogger) Debug(msg string, kv ...interface{}) { entry(kv).Debug(msg) }
func (leveledLogger) Warn(msg string, kv ...interface{})  { entry(kv).Warn(msg) }

func entry(kv []interface{}) *log.Entry {
	fields := log.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return log.WithFields(fields)
}

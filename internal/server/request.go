package server

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/dmitrymomot/slug/pkg/sanitizer"
	"github.com/dmitrymomot/slug/pkg/slug"
)

// params are the per-request slug settings shared by GET and POST.
type params struct {
	Replacement *string `json:"replacement,omitempty"`
	Lower       *bool   `json:"lower,omitempty"`
	Trim        *bool   `json:"trim,omitempty"`
	Remove      *string `json:"remove,omitempty"`
	Mode        string  `json:"mode,omitempty"`
	StripHTML   bool    `json:"strip_html,omitempty"`
}

type batchRequest struct {
	params
	Texts []string `json:"texts"`
}

type slugResponse struct {
	Slug string `json:"slug"`
}

type batchResponse struct {
	Slugs []string `json:"slugs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// paramsFromQuery reads params from a query string. Absent keys keep the
// preset values; present but malformed booleans are rejected.
func paramsFromQuery(q url.Values) (params, error) {
	p := params{Mode: q.Get("mode")}
	if q.Has("replacement") {
		v := q.Get("replacement")
		p.Replacement = &v
	}
	if q.Has("remove") {
		v := q.Get("remove")
		p.Remove = &v
	}

	var err error
	if p.Lower, err = boolParam(q, "lower"); err != nil {
		return params{}, err
	}
	if p.Trim, err = boolParam(q, "trim"); err != nil {
		return params{}, err
	}
	strip, err := boolParam(q, "strip_html")
	if err != nil {
		return params{}, err
	}
	p.StripHTML = strip != nil && *strip
	return p, nil
}

func boolParam(q url.Values, key string) (*bool, error) {
	if !q.Has(key) {
		return nil, nil
	}
	v, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a boolean", errBadRequest, key)
	}
	return &v, nil
}

// options converts params into slug options.
func (p params) options() ([]slug.Option, error) {
	var opts []slug.Option
	if p.Mode != "" {
		opts = append(opts, slug.WithMode(slug.Mode(p.Mode)))
	}
	if p.Replacement != nil {
		opts = append(opts, slug.Replacement(*p.Replacement))
	}
	if p.Lower != nil {
		opts = append(opts, slug.Lowercase(*p.Lower))
	}
	if p.Trim != nil {
		opts = append(opts, slug.Trim(*p.Trim))
	}
	if p.Remove != nil && *p.Remove != "" {
		re, err := regexp.Compile(*p.Remove)
		if err != nil {
			return nil, fmt.Errorf("%w: remove: %v", errBadRequest, err)
		}
		opts = append(opts, slug.Remove(re))
	}
	return opts, nil
}

// prepare applies input-side processing before slugging.
func (p params) prepare(text string) string {
	if p.StripHTML {
		return sanitizer.StripHTML(text)
	}
	return text
}

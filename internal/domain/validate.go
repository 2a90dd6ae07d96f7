package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/multierr"
)

// ValidationError describes one violation found in a sidebar.
// Index is the entry position inside Section, or -1 for section-level problems.
type ValidationError struct {
	Section string
	Index   int
	Reason  string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Section == "" && e.Index < 0:
		return e.Reason
	case e.Index < 0:
		return fmt.Sprintf("section %q: %s", e.Section, e.Reason)
	default:
		return fmt.Sprintf("section %q entry %d: %s", e.Section, e.Index, e.Reason)
	}
}

// Validate checks the static properties every sidebar must hold and
// returns all violations combined, or nil. Use multierr.Errors to split them.
func (s *SidebarSpec) Validate() error {
	var errs error

	if s == nil {
		return &ValidationError{Index: -1, Reason: "sidebar is nil"}
	}
	if strings.TrimSpace(s.Name) == "" {
		errs = multierr.Append(errs, &ValidationError{Index: -1, Reason: "sidebar name is empty"})
	}
	if len(s.Sections) == 0 {
		errs = multierr.Append(errs, &ValidationError{Index: -1, Reason: "sidebar has no sections"})
	}

	seen := make(map[string]bool, len(s.Sections))
	for _, sec := range s.Sections {
		key := strings.TrimSpace(sec.Name)
		if key == "" {
			errs = multierr.Append(errs, &ValidationError{Section: sec.Name, Index: -1, Reason: "section name is empty"})
		} else if seen[key] {
			errs = multierr.Append(errs, &ValidationError{Section: sec.Name, Index: -1, Reason: "duplicate section name"})
		}
		seen[key] = true

		if len(sec.Entries) == 0 {
			errs = multierr.Append(errs, &ValidationError{Section: sec.Name, Index: -1, Reason: "section has no entries"})
		}
		for i, e := range sec.Entries {
			if reason := checkEntry(e); reason != "" {
				errs = multierr.Append(errs, &ValidationError{Section: sec.Name, Index: i, Reason: reason})
			}
		}
	}

	return errs
}

// Violations flattens the error returned by Validate, also when it was wrapped.
func Violations(err error) []*ValidationError {
	if err == nil {
		return nil
	}

	errs := []error{err}
	var group interface{ Errors() []error }
	if errors.As(err, &group) {
		errs = group.Errors()
	}

	var out []*ValidationError
	for _, e := range errs {
		var ve *ValidationError
		if errors.As(e, &ve) {
			out = append(out, ve)
		}
	}
	return out
}

func checkEntry(e Entry) string {
	switch e.Kind {
	case KindDoc:
		return checkSlug(e.Doc)
	case KindLink:
		if strings.TrimSpace(e.Label) == "" {
			return "link label is empty"
		}
		return checkHref(e.Href)
	default:
		return fmt.Sprintf("unknown entry kind %q", e.Kind)
	}
}

func checkSlug(slug string) string {
	switch {
	case slug == "":
		return "document slug is empty"
	case strings.TrimSpace(slug) != slug:
		return fmt.Sprintf("document slug %q has surrounding whitespace", slug)
	case strings.HasPrefix(slug, "/"):
		return fmt.Sprintf("document slug %q must be relative", slug)
	case strings.Contains(slug, "://"):
		return fmt.Sprintf("document slug %q looks like a URL, use a link entry", slug)
	}
	for _, part := range strings.Split(slug, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Sprintf("document slug %q has an empty or relative path segment", slug)
		}
	}
	return ""
}

func checkHref(href string) string {
	if href == "" {
		return "link href is empty"
	}
	u, err := url.Parse(href)
	if err != nil {
		return fmt.Sprintf("link href %q is not a valid URL: %v", href, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Sprintf("link href %q is not an absolute URL", href)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Sprintf("link href %q has unsupported scheme %q", href, u.Scheme)
	}
	return ""
}

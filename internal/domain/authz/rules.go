// Package authz holds the request-level authorization policy: an ordered,
// immutable list of rules mapping method and path patterns to an access level.
package authz

import (
	"net/http"
	"strings"

	"pharmacy/internal/errors"
)

// Access is the level of authentication a route requires.
type Access int

const (
	// AccessAuthenticated requires a valid bearer token.
	AccessAuthenticated Access = iota
	// AccessPublic lets anonymous callers through.
	AccessPublic
)

// String returns the string representation of the Access.
func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AnyMethod matches every HTTP method.
const AnyMethod = "*"

// Rule maps a method and a path pattern to an access level.
//
// Pattern segments are matched literally except for "*" and "{name}", which
// match exactly one segment, and a trailing "**", which matches any remainder
// including nothing.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
}

type compiledRule struct {
	method   string
	segments []string
	tail     bool
	access   Access
}

// RuleSet evaluates rules top to bottom; the first match wins and unmatched
// requests get the fallback. It is read-only after construction.
type RuleSet struct {
	rules    []compiledRule
	fallback Access
}

// NewRuleSet compiles the rules in order.
func NewRuleSet(fallback Access, rules ...Rule) (*RuleSet, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for i, rule := range rules {
		cr, err := compile(rule)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %d", i)
		}
		compiled = append(compiled, cr)
	}

	return &RuleSet{rules: compiled, fallback: fallback}, nil
}

// Resolve returns the access level for the request. Pre-flight OPTIONS
// requests are always public.
func (rs *RuleSet) Resolve(method, path string) Access {
	if method == http.MethodOptions {
		return AccessPublic
	}

	segments := splitPath(path)
	for _, rule := range rs.rules {
		if rule.matches(method, segments) {
			return rule.access
		}
	}

	return rs.fallback
}

func compile(rule Rule) (compiledRule, error) {
	if !strings.HasPrefix(rule.Pattern, "/") {
		return compiledRule{}, errors.Errorf("pattern %q must start with '/'", rule.Pattern)
	}

	method := strings.ToUpper(strings.TrimSpace(rule.Method))
	if method == "" {
		method = AnyMethod
	}

	segments := splitPath(rule.Pattern)
	tail := false
	for i, segment := range segments {
		if segment != "**" {
			continue
		}
		if i != len(segments)-1 {
			return compiledRule{}, errors.Errorf("pattern %q: '**' is only allowed as the last segment", rule.Pattern)
		}
		tail = true
		segments = segments[:i]
	}

	return compiledRule{
		method:   method,
		segments: segments,
		tail:     tail,
		access:   rule.Access,
	}, nil
}

func (r compiledRule) matches(method string, path []string) bool {
	if r.method != AnyMethod && r.method != method {
		return false
	}

	if r.tail {
		if len(path) < len(r.segments) {
			return false
		}
	} else if len(path) != len(r.segments) {
		return false
	}

	for i, segment := range r.segments {
		if isWildcard(segment) {
			continue
		}
		if segment != path[i] {
			return false
		}
	}

	return true
}

func isWildcard(segment string) bool {
	return segment == "*" || (strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}"))
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}

package authz

import "net/http"

// DefaultRules returns the catalog's rule set. When openRegistration is set,
// creating a user is public so that new accounts can sign up; every other
// user endpoint still requires a token.
func DefaultRules(openRegistration bool) (*RuleSet, error) {
	rules := []Rule{
		{Method: AnyMethod, Pattern: "/api/auth/**", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/api/drugs/{id}", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/api/drugs", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/health", Access: AccessPublic},
	}
	if openRegistration {
		rules = append(rules, Rule{Method: http.MethodPost, Pattern: "/api/users", Access: AccessPublic})
	}
	rules = append(rules,
		Rule{Method: http.MethodPost, Pattern: "/api/drugs", Access: AccessAuthenticated},
		Rule{Method: AnyMethod, Pattern: "/api/users/**", Access: AccessAuthenticated},
	)

	return NewRuleSet(AccessAuthenticated, rules...)
}

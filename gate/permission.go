package gate

import "strings"

// Permission is "resource:action", e.g. "delivery:update".
// Either half may be "*".
type Permission string

const (
	Wildcard  = "*"
	SuperUser Permission = "*:*"
)

func NewPermission(resourceType string, action Action) Permission {
	return Permission(resourceType + ":" + string(action))
}

// Parse splits p; both halves are empty when p is malformed.
func (p Permission) Parse() (resourceType string, action Action) {
	res, act, ok := strings.Cut(string(p), ":")
	if !ok || res == "" || act == "" {
		return "", ""
	}
	return res, Action(act)
}

// Matches reports whether holding p grants requested.
func (p Permission) Matches(requested Permission) bool {
	if p == SuperUser || p == requested {
		return true
	}
	res, act := p.Parse()
	reqRes, reqAct := requested.Parse()
	if res == "" || reqRes == "" {
		return false
	}
	return (res == Wildcard || res == reqRes) && (string(act) == Wildcard || act == reqAct)
}

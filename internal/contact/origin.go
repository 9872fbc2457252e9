package contact

import "strings"

// OriginPolicy decides which Origin headers may post the form.
type OriginPolicy struct {
	allowed map[string]struct{}
	enforce bool
}

func NewOriginPolicy(origins []string, enforce bool) *OriginPolicy {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o = normalizeOrigin(o); o != "" {
			allowed[o] = struct{}{}
		}
	}
	return &OriginPolicy{allowed: allowed, enforce: enforce}
}

// Allowed reports whether a request with this Origin may post. Everything
// passes while enforcement is off.
func (p *OriginPolicy) Allowed(origin string) bool {
	if !p.enforce {
		return true
	}
	_, ok := p.allowed[normalizeOrigin(origin)]
	return ok
}

func (p *OriginPolicy) Enforced() bool {
	return p.enforce
}

func normalizeOrigin(o string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
}

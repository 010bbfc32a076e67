package dto

// ListParams holds common token-pagination parameters.
type ListParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// DefaultListLimit caps unpaginated list requests.
const DefaultListLimit = 50

// EffectiveLimit returns the requested limit clamped to a sane default.
func (p ListParams) EffectiveLimit() int {
	if p.Limit <= 0 || p.Limit > 200 {
		return DefaultListLimit
	}
	return p.Limit
}

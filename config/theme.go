package config

// Theme token names understood by the renderers.
const (
	TokenSeriesA    = "series_a"
	TokenSeriesB    = "series_b"
	TokenDifference = "difference"
	TokenAxis       = "axis"
	TokenBorder     = "border"
	TokenTitle      = "title"
)

// Theme maps token names to colour strings ("#1f77b4", "75", ...).
type Theme map[string]string

// Token returns the colour for name. ok is false when the token is unset.
func (t Theme) Token(name string) (string, bool) {
	v, ok := t[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// With returns a copy of t where tokens missing from t are taken from
// defaults.
func (t Theme) With(defaults Theme) Theme {
	out := make(Theme, len(t)+len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range t {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

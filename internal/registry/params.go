package registry

import (
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Typed accessors for manifest params blocks. Params are loosely typed cty
// values; each accessor falls back to the given default when the key is
// absent or not convertible, since a misconfigured param should degrade the
// same way an omitted one does.

// StringParam returns the params value for key as a string.
func StringParam(params map[string]cty.Value, key, fallback string) string {
	v, ok := params[key]
	if !ok || v.IsNull() {
		return fallback
	}
	converted, err := convert.Convert(v, cty.String)
	if err != nil || converted.IsNull() {
		return fallback
	}
	return converted.AsString()
}

// BoolParam returns the params value for key as a bool.
func BoolParam(params map[string]cty.Value, key string, fallback bool) bool {
	v, ok := params[key]
	if !ok || v.IsNull() {
		return fallback
	}
	converted, err := convert.Convert(v, cty.Bool)
	if err != nil || converted.IsNull() {
		return fallback
	}
	var out bool
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return fallback
	}
	return out
}

// DurationParam returns the params value for key parsed as a time.Duration.
func DurationParam(params map[string]cty.Value, key string, fallback time.Duration) time.Duration {
	raw := StringParam(params, key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

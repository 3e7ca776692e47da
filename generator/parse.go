package generator

import (
	"errors"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

var (
	errNotJSON   = errors.New("not valid JSON")
	errNotObject = errors.New("top-level value is not an object")
	errNotUTF8   = errors.New("not valid UTF-8")
)

// ParseStrategy decodes raw model output into a MarketingStrategy.
// Field values are returned exactly as decoded; nothing is trimmed or rewritten.
// A response missing any field is rejected as a whole. If a key repeats, the
// last occurrence wins.
func ParseStrategy(raw string) (MarketingStrategy, error) {
	// the decoder would swap bad bytes for U+FFFD
	if !utf8.ValidString(raw) {
		return MarketingStrategy{}, &ShapeError{Kind: ShapeMalformed, Err: errNotUTF8}
	}
	if !gjson.Valid(raw) {
		return MarketingStrategy{}, &ShapeError{Kind: ShapeMalformed, Err: errNotJSON}
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return MarketingStrategy{}, &ShapeError{Kind: ShapeMalformed, Err: errNotObject}
	}

	found := make(map[string]gjson.Result, len(RequiredFields))
	doc.ForEach(func(key, value gjson.Result) bool {
		found[key.String()] = value
		return true
	})

	values := make(map[string]string, len(RequiredFields))
	for _, f := range RequiredFields {
		v := found[f]
		// empty strings count as missing, same as an absent key
		if v.Type != gjson.String || v.Str == "" {
			return MarketingStrategy{}, &ShapeError{Kind: ShapeIncomplete, Field: f}
		}
		values[f] = v.Str
	}

	return MarketingStrategy{
		MarketingCopy:  values[FieldMarketingCopy],
		VisualStrategy: values[FieldVisualStrategy],
		TargetAudience: values[FieldTargetAudience],
	}, nil
}

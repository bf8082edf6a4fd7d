package infer

import (
	"github.com/JonMunkholm/csvschema/internal/schema"
)

// discoverFormat finds the catalog format that parses every value.
//
// The first value narrows the catalog to the formats it parses under; the
// survivors are then checked against the whole column in catalog order.
// Formats the first value rejects are never tried against the rest.
func (e *Engine) discoverFormat(kind schema.Kind, values []string, catalog []schema.Format) (schema.Format, bool) {
	if len(values) == 0 || len(catalog) == 0 {
		return schema.Format{}, false
	}

	first := values[0]
	var candidates []schema.Format
	for _, f := range catalog {
		if parses(first, f.Layout) {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return schema.Format{}, false
	}

	labels := make([]string, len(candidates))
	for i, f := range candidates {
		labels[i] = f.Label
	}
	e.logger.Info("date formats", "kind", kind.String(), "formats", labels)

	for _, f := range candidates {
		if allMatch(values[1:], func(v string) bool { return parses(v, f.Layout) }) {
			return f, true
		}
	}
	return schema.Format{}, false
}

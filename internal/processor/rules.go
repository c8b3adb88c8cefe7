// Package processor rewrites district GeoJSON files into their
// compact on-disk form.
package processor

// Rule decides what happens to one property key: rename it to Short,
// or drop the property entirely when Remove is set.
type Rule struct {
	Short  string
	Remove bool
}

// propertyRules is the fixed rename table. Two long keys may share a
// short key on purpose: the catalog exports use different column
// names for the same attribute, and the features never carry both.
var propertyRules = map[string]Rule{
	"Nombre científico": {Short: "sn"}, // scientific name
	"CODIGO_ESP":        {Short: "cn"}, // common name
	"diameter":          {Short: "d"},
	"height":            {Short: "h"},
	"NBRE_DTO":          {Short: "dt"}, // district
	"NBRE_BARRI":        {Short: "nb"}, // neighborhood
	"species":           {Short: "sn"},
	"common_name":       {Short: "cn"},
	"ASSETNUM":          {Remove: true}, // internal asset ID, not displayed
	"NUM_DTO":           {Remove: true}, // duplicate of dt
	"NUM_BARRIO":        {Remove: true}, // internal barrio number
}

// CompressProperties returns a new mapping with null and empty-string
// values dropped and keys rewritten through the rename table. Keys
// absent from the table pass through unchanged. The result is never
// nil, even for nil input.
func CompressProperties(props map[string]interface{}) map[string]interface{} {
	compressed := make(map[string]interface{}, len(props))

	for key, value := range props {
		if value == nil || value == "" {
			continue
		}

		if rule, ok := propertyRules[key]; ok {
			if rule.Remove {
				continue
			}
			key = rule.Short
		}

		compressed[key] = value
	}

	return compressed
}

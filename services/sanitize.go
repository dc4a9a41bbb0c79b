package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Denylisted field names, matched case- and separator-insensitively at every
// nesting depth. Anything on this list is cost- or margin-bearing, or AI
// provenance that must never reach a client-facing artifact.
var denylist = map[string]bool{
	"cost":                 true,
	"costs":                true,
	"totalcost":            true,
	"unitcost":             true,
	"costbasis":            true,
	"breakdown":            true,
	"categories":           true,
	"categorycosttotals":   true,
	"margin":               true,
	"margins":              true,
	"marginpercent":        true,
	"marginpercentage":     true,
	"desiredmargin":        true,
	"ancmargin":            true,
	"blendedmargin":        true,
	"blendedmarginpercent": true,
	"markup":               true,
	"bondrate":             true,
	"borate":               true,
	"salestaxrate":         true,
	"taxrate":              true,
	"laborrate":            true,
	"laborratesqft":        true,
	"structurerate":        true,
	"structuralrate":       true,
	"structurepct":         true,
	"hardwarerate":         true,
	"vendorcost":           true,
	"vendorquote":          true,
	"internalaudit":        true,
	"rounding":             true,
	"extractionconfidence": true,
	"confidence":           true,
	"aiprovenance":         true,
	"sourcemodel":          true,
	"sourcetype":           true,
	"sourcepage":           true,
}

// scanNames are the serialized key spellings ValidateSanitized looks for.
var scanNames = []string{
	"cost", "costs", "totalCost", "total_cost", "unitCost", "unit_cost",
	"margin", "margins", "marginPercentage", "margin_percentage",
	"desiredMargin", "desired_margin", "ancMargin", "anc_margin",
	"bondRate", "bond_rate", "laborRate", "labor_rate",
	"extractionConfidence", "extraction_confidence", "sourceModel", "source_model",
}

// Line items in these categories are removed outright: a zeroed-but-present
// structural row would still leak the line's existence and quantity.
var structuralCategory = regexp.MustCompile(`(?i)structural|steel`)

// Placeholder substitutions for zero/missing display fields. An explicit
// placeholder is less ambiguous than a zero on a client document.
var placeholders = map[string]string{
	"price": "[COST BASIS]",
	"size":  "[PER SPEC]",
}

// SanitizeForClient deep-copies data destined for a client-facing artifact,
// stripping every denylisted key at any depth and dropping structural line
// items. The input is never mutated, and the transform is idempotent:
// stripped keys cannot reappear.
func SanitizeForClient(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if denylist[normalizeKey(k)] {
				continue
			}
			out[k] = SanitizeForClient(child)
		}
		applyPlaceholders(out)
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			if isStructuralLineItem(item) {
				continue
			}
			out = append(out, SanitizeForClient(item))
		}
		return out
	default:
		// Scalars (strings, numbers, decimals, times) copy by value.
		return v
	}
}

// ValidateSanitized re-serializes data and scans for leaked denylist field
// names. It is a heuristic string scan for use in tests, not a structural
// guarantee; production redaction is SanitizeForClient itself.
func ValidateSanitized(v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	lower := strings.ToLower(string(raw))
	for _, name := range scanNames {
		if strings.Contains(lower, `"`+strings.ToLower(name)+`"`) {
			return false
		}
	}
	return true
}

func normalizeKey(k string) string {
	k = strings.ToLower(k)
	k = strings.ReplaceAll(k, "_", "")
	k = strings.ReplaceAll(k, "-", "")
	k = strings.ReplaceAll(k, " ", "")
	return k
}

func isStructuralLineItem(item any) bool {
	m, ok := item.(map[string]any)
	if !ok {
		return false
	}
	for _, field := range []string{"category", "label", "description"} {
		if s, ok := m[field].(string); ok && structuralCategory.MatchString(s) {
			return true
		}
	}
	return false
}

func applyPlaceholders(m map[string]any) {
	for field, placeholder := range placeholders {
		v, present := m[field]
		if !present {
			continue
		}
		if isZeroValue(v) {
			m[field] = placeholder
		}
	}
}

func isZeroValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return val == 0
	case int:
		return val == 0
	case int64:
		return val == 0
	case decimal.Decimal:
		return val.IsZero()
	default:
		return false
	}
}

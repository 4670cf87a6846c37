package evidence

// Ingestion-boundary normalization. Upstream systems disagree on payload
// field naming (snake_case and camelCase duplicates of the same concept);
// everything is folded into the canonical Payload here, once, so no
// downstream component special-cases field-name variants.

var (
	destinationCodeKeys = []string{
		"destination_country_code", "destinationCountryCode",
		"country_code", "countryCode",
	}
	destinationNameKeys = []string{
		"destination_country", "destinationCountry",
		"destination", "country",
	}
	dataCategoryKeys = []string{
		"data_categories", "dataCategories",
		"data_category", "dataCategory",
	}
	severityKeys = []string{"severity"}
	decisionKeys = []string{"decision", "verification_decision", "verificationDecision"}
)

// NormalizePayload folds a raw payload map into the canonical Payload.
// Keys consumed by a canonical field are removed from Extra; everything else
// (including hash-chain fields) is carried through untouched.
func NormalizePayload(raw map[string]any) Payload {
	p := Payload{
		DestinationCode: firstString(raw, destinationCodeKeys),
		DestinationName: firstString(raw, destinationNameKeys),
		DataCategories:  stringList(raw, dataCategoryKeys),
		Severity:        firstString(raw, severityKeys),
		Decision:        firstString(raw, decisionKeys),
	}
	if len(raw) == 0 {
		return p
	}
	consumed := make(map[string]bool)
	for _, keys := range [][]string{destinationCodeKeys, destinationNameKeys, dataCategoryKeys, severityKeys, decisionKeys} {
		for _, k := range keys {
			consumed[k] = true
		}
	}
	p.Extra = make(map[string]any, len(raw))
	for k, v := range raw {
		if !consumed[k] {
			p.Extra[k] = v
		}
	}
	return p
}

// firstString returns the first non-empty string value among keys, honoring
// the declared precedence order rather than map iteration order.
func firstString(raw map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// stringList collects the first key that yields either a string slice or a
// single string value.
func stringList(raw map[string]any, keys []string) []string {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case []string:
			if len(v) > 0 {
				out := make([]string, len(v))
				copy(out, v)
				return out
			}
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out
			}
		case string:
			if v != "" {
				return []string{v}
			}
		}
	}
	return nil
}

package countries

// Alias maps one free-text spelling of a country to its ISO 3166-1 alpha-2
// code. The table is built once and injected into a Resolver; it is never
// mutated at resolve time.
type Alias struct {
	Name string
	Code string
}

// DefaultAliases covers the spellings observed in upstream evidence payloads
// and SCC registry records: official names, common short forms, and a few
// abbreviations. Bare two-letter codes are deliberately absent - the resolver
// passes those through without a table lookup.
func DefaultAliases() []Alias {
	return []Alias{
		// EU / EEA
		{"austria", "AT"},
		{"belgium", "BE"},
		{"bulgaria", "BG"},
		{"croatia", "HR"},
		{"cyprus", "CY"},
		{"czech republic", "CZ"},
		{"czechia", "CZ"},
		{"denmark", "DK"},
		{"estonia", "EE"},
		{"finland", "FI"},
		{"france", "FR"},
		{"germany", "DE"},
		{"greece", "GR"},
		{"hungary", "HU"},
		{"iceland", "IS"},
		{"ireland", "IE"},
		{"italy", "IT"},
		{"latvia", "LV"},
		{"liechtenstein", "LI"},
		{"lithuania", "LT"},
		{"luxembourg", "LU"},
		{"malta", "MT"},
		{"netherlands", "NL"},
		{"the netherlands", "NL"},
		{"norway", "NO"},
		{"poland", "PL"},
		{"portugal", "PT"},
		{"romania", "RO"},
		{"slovakia", "SK"},
		{"slovenia", "SI"},
		{"spain", "ES"},
		{"sweden", "SE"},

		// Adequacy-decision jurisdictions
		{"andorra", "AD"},
		{"argentina", "AR"},
		{"canada", "CA"},
		{"faroe islands", "FO"},
		{"guernsey", "GG"},
		{"isle of man", "IM"},
		{"israel", "IL"},
		{"japan", "JP"},
		{"jersey", "JE"},
		{"new zealand", "NZ"},
		{"south korea", "KR"},
		{"republic of korea", "KR"},
		{"korea", "KR"},
		{"switzerland", "CH"},
		{"united kingdom", "GB"},
		{"great britain", "GB"},
		{"uk", "GB"},
		{"uruguay", "UY"},

		// Frequent third-country destinations
		{"united states", "US"},
		{"united states of america", "US"},
		{"usa", "US"},
		{"u.s.", "US"},
		{"u.s.a.", "US"},
		{"america", "US"},
		{"australia", "AU"},
		{"brazil", "BR"},
		{"china", "CN"},
		{"people's republic of china", "CN"},
		{"hong kong", "HK"},
		{"india", "IN"},
		{"indonesia", "ID"},
		{"malaysia", "MY"},
		{"mexico", "MX"},
		{"philippines", "PH"},
		{"singapore", "SG"},
		{"south africa", "ZA"},
		{"taiwan", "TW"},
		{"thailand", "TH"},
		{"turkey", "TR"},
		{"ukraine", "UA"},
		{"united arab emirates", "AE"},
		{"uae", "AE"},
		{"vietnam", "VN"},

		// Restricted destinations
		{"belarus", "BY"},
		{"cuba", "CU"},
		{"iran", "IR"},
		{"north korea", "KP"},
		{"democratic people's republic of korea", "KP"},
		{"russia", "RU"},
		{"russian federation", "RU"},
		{"syria", "SY"},
	}
}

package countries

// Category is the regulatory bucket a destination country falls into.
type Category string

const (
	CategoryEuEea       Category = "EU_EEA"
	CategoryAdequate    Category = "ADEQUATE"
	CategorySccRequired Category = "SCC_REQUIRED"
	CategoryBlocked     Category = "BLOCKED"
)

// Legal basis tags name the article that justifies a transfer to a
// destination in the matching category.
const (
	LegalBasisAdequacy   = "Art. 45"
	LegalBasisProhibited = "Art. 44"
	LegalBasisSafeguards = "Art. 46"
)

// Classification is the derived regulatory view of a single country code.
// It is computed on demand and never persisted.
type Classification struct {
	Category   Category
	LegalBasis string
}

var euEEA = map[string]bool{
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true, "CZ": true,
	"DK": true, "EE": true, "FI": true, "FR": true, "DE": true, "GR": true,
	"HU": true, "IE": true, "IT": true, "LV": true, "LT": true, "LU": true,
	"MT": true, "NL": true, "PL": true, "PT": true, "RO": true, "SK": true,
	"SI": true, "ES": true, "SE": true,
	// EEA members outside the EU
	"IS": true, "LI": true, "NO": true,
}

var blocked = map[string]bool{
	"BY": true, "CU": true, "IR": true, "KP": true, "RU": true, "SY": true,
}

var sccRequired = map[string]bool{
	"AE": true, "AU": true, "BR": true, "CN": true, "HK": true, "ID": true,
	"IN": true, "MX": true, "MY": true, "PH": true, "SG": true, "TH": true,
	"TR": true, "TW": true, "UA": true, "US": true, "VN": true, "ZA": true,
}

var adequate = map[string]bool{
	"AD": true, "AR": true, "CA": true, "CH": true, "FO": true, "GB": true,
	"GG": true, "IL": true, "IM": true, "JE": true, "JP": true, "KR": true,
	"NZ": true, "UY": true,
}

// Classify maps an ISO-2 code to its regulatory classification.
// This is pure domain logic - no I/O, no side effects.
// Rule priority (first match wins):
//  1. EU/EEA membership - intra-area transfer, no safeguard needed
//  2. Blocked list - transfer prohibited outright
//  3. SCC-required list - known third country needing contractual safeguards
//  4. Explicit adequacy decision - transfer permitted as-is
//  5. Default: SCC required. Unknown destinations fail safe toward requiring
//     a safeguard, never toward free transfer or automatic blocking.
func Classify(code string) Classification {
	switch {
	case euEEA[code]:
		return Classification{Category: CategoryEuEea, LegalBasis: LegalBasisAdequacy}
	case blocked[code]:
		return Classification{Category: CategoryBlocked, LegalBasis: LegalBasisProhibited}
	case sccRequired[code]:
		return Classification{Category: CategorySccRequired, LegalBasis: LegalBasisSafeguards}
	case adequate[code]:
		return Classification{Category: CategoryAdequate, LegalBasis: LegalBasisAdequacy}
	default:
		return Classification{Category: CategorySccRequired, LegalBasis: LegalBasisSafeguards}
	}
}

// EuEeaCodes returns the membership set for tests and aggregation sweeps.
func EuEeaCodes() []string {
	codes := make([]string, 0, len(euEEA))
	for code := range euEEA {
		codes = append(codes, code)
	}
	return codes
}

package extract

import "regexp"

// Core patterns used across the extractor.
var (
	// codePattern matches candidate 3-letter airport codes. Text is not
	// upper-cased first, so ordinary lowercase words never match.
	codePattern = regexp.MustCompile(`\b[A-Z]{3}\b`)

	// routeArrowPattern matches "BOM-BLR", "BOM → BLR", "BOM->BLR", "BOM to BLR".
	routeArrowPattern = regexp.MustCompile(`\b([A-Z]{3})\s*(?:-|–|—|→|->|>|/|\s[Tt][Oo]\s)\s*([A-Z]{3})\b`)

	// routeParenPattern matches "Mumbai (BOM) ... Bengaluru (BLR)".
	routeParenPattern = regexp.MustCompile(`\(([A-Z]{3})\)[^()]{0,120}?\(([A-Z]{3})\)`)

	// clockPattern matches 24h or 12h clock times: "06:15", "6:15 PM", "18:40h".
	clockPattern = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)(?:\s*([AaPp])\.?[Mm]\.?)?`)

	// clockHourPattern matches hour-only 12h times: "7 PM", "11am".
	clockHourPattern = regexp.MustCompile(`\b(1[0-2]|0?[1-9])\s*([AaPp])\.?[Mm]\b\.?`)

	// durationPattern matches "2h 15m", "2 hr 15 min", "2 hours 5 minutes".
	durationPattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s*h(?:ours?|rs?)?\s*(\d{1,2})\s*m(?:in(?:ute)?s?)?\b`)

	// registrationPattern matches common civil registrations: VT-ISA, N12345, G-EUPT.
	registrationPattern = regexp.MustCompile(`\b([A-Z]{1,2}-[A-Z0-9]{3,5}|N\d{1,5}[A-Z]{0,2})\b`)

	// departureCue and arrivalCue mark the role of a nearby airport code.
	departureCue = regexp.MustCompile(`(?i)\b(?:depart(?:s|ed|ing|ure)?|dep|leaves|leaving|from|origin)\b`)
	arrivalCue   = regexp.MustCompile(`(?i)\b(?:arriv(?:e|es|ed|ing|al)|arr|lands?|landing|to|destination)\b`)
)

// cueWindow is how far before a code a cue word may sit.
const cueWindow = 32

// zoneLabels are time-zone abbreviations that collide with real airport
// codes (IST is Istanbul). They only count as airports in an arrow-form
// route such as "IST-LHR".
var zoneLabels = map[string]bool{
	"IST": true, "SGT": true, "HKT": true, "MSK": true, "KST": true,
	"PHT": true, "WIB": true, "ICT": true, "AET": true, "NZT": true,
}

// noiseBlocklist rejects 3-letter tokens that show up in provider text but
// are never route endpoints, even if a future reference table carries them.
var noiseBlocklist = map[string]bool{
	// Time zones and time labels.
	"UTC": true, "GMT": true, "EST": true, "EDT": true, "PST": true, "PDT": true,
	"CST": true, "CET": true, "BST": true, "AST": true, "JST": true,
	"ETA": true, "ETD": true, "STD": true, "STA": true, "ATD": true, "ATA": true,
	// Currencies.
	"USD": true, "EUR": true, "INR": true, "GBP": true, "AED": true, "JPY": true,
	// Markup and web.
	"CSS": true, "API": true, "PDF": true, "FAQ": true, "URL": true, "SVG": true,
	"DIV": true, "XML": true, "RSS": true,
	// Common words and labels.
	"THE": true, "AND": true, "FOR": true, "NEW": true, "ALL": true, "ARR": true,
	"DEP": true, "AIR": true, "PNR": true, "NOT": true, "YES": true, "WAS": true,
	"MAP": true, "APP": true, "OUT": true, "OFF": true,
}

// statusKeywords are checked in priority order; the first hit wins.
var statusKeywords = []struct {
	re     *regexp.Regexp
	status string
}{
	{regexp.MustCompile(`(?i)\bcancel+ed\b`), "cancelled"},
	{regexp.MustCompile(`(?i)\b(?:landed|arrived)\b`), "landed"},
	{regexp.MustCompile(`(?i)\b(?:en[\s-]?route|airborne|in[\s-]?air|in flight)\b`), "airborne"},
	{regexp.MustCompile(`(?i)\bdeparted\b`), "departed"},
	{regexp.MustCompile(`(?i)\bdelayed\b`), "delayed"},
	{regexp.MustCompile(`(?i)\bboarding\b`), "boarding"},
	{regexp.MustCompile(`(?i)\b(?:scheduled|on[\s-]?time|expected)\b`), "scheduled"},
}

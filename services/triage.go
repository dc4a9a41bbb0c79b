package services

import (
	"math"
	"regexp"
	"strings"
)

// Recommendation values for a triaged RFP page.
const (
	RecommendKeep    = "keep"
	RecommendMaybe   = "maybe"
	RecommendDiscard = "discard"
	RecommendReview  = "review"
)

// minTextLength is the cutoff below which a page is treated as a drawing:
// plan sheets and elevations carry almost no extractable text.
const minTextLength = 50

// keepScoreThreshold marks a text page as worth sending to extraction.
const keepScoreThreshold = 0.3

// KeywordBank returns the category -> keywords map used to score RFP pages.
// Categories can be disabled per request; custom keywords go in under their
// own category.
func KeywordBank() map[string][]string {
	return map[string][]string{
		"display_hardware": {
			"led display", "led screen", "led wall", "video display", "video wall",
			"video board", "scoreboard", "ribbon board", "fascia", "marquee",
			"digital signage", "display system", "led module", "led panel",
			"led cabinet", "direct view led", "dvled", "fine pitch",
			"narrow pixel pitch", "transparent led", "curved display",
			"outdoor led", "indoor led",
		},
		"specs": {
			"pixel pitch", "pixel density", "resolution", "brightness", "nit",
			"contrast ratio", "refresh rate", "viewing angle", "viewing distance",
			"color depth", "ip rating", "ip65", "operating temperature",
			"power consumption", "cabinet size", "aspect ratio", "uniformity",
			"mtbf", "lifespan", "luminance",
		},
		"electrical": {
			"electrical", "power distribution", "power supply", "pdu",
			"circuit breaker", "amperage", "voltage", "120v", "208v", "480v",
			"single phase", "three phase", "conduit", "junction box",
			"disconnect", "transformer", "ups", "cat6", "fiber optic",
			"data cable", "network switch", "video processor", "media player",
			"content management", "cms", "receiving card", "sending card",
		},
		"structural": {
			"structural", "steel", "mounting", "bracket", "unistrut",
			"framing", "sub-structure", "rigging", "truss", "hoist",
			"dead load", "live load", "wind load", "seismic", "anchor bolt",
			"welding", "galvanized", "pe stamp", "structural engineer",
			"structural calculation", "cantilever",
		},
		"installation": {
			"installation", "install", "labor", "man hours", "crew",
			"mobilization", "scaffolding", "boom lift", "scissor lift", "crane",
			"fall protection", "osha", "commissioning", "alignment",
			"calibration", "training", "warranty", "maintenance",
			"punch list", "substantial completion", "closeout",
			"shop drawing", "submittal",
		},
		"control_data": {
			"control system", "control room", "noc", "scheduling software",
			"novastar", "brompton", "colorlight", "video processor",
			"media server", "crestron", "extron", "remote monitoring",
			"redundancy", "failover",
		},
		"permits_logistics": {
			"permit", "building permit", "electrical permit", "inspection",
			"code compliance", "building code", "fire code", "ada",
			"shipping", "freight", "crating", "staging", "laydown area",
			"receiving dock", "delivery schedule", "lead time",
			"production schedule",
		},
		"commercial": {
			"bid form", "bid bond", "performance bond", "payment bond",
			"surety", "insurance", "liquidated damages", "retainage",
			"change order", "rfi", "addendum", "scope of work",
			"division 11", "division 26", "prevailing wage",
			"base bid", "alternate", "allowance", "unit price", "lump sum",
			"guaranteed maximum price", "schedule of values", "net 30",
		},
		"manufacturers": {
			"daktronics", "watchfire", "absen", "leyard", "planar",
			"unilumin", "roe visual", "barco", "christie", "lighthouse",
			"sna displays", "nanolumens", "formetco", "infiled", "aoto",
		},
	}
}

// PageText is the raw text of one RFP page.
type PageText struct {
	PageNum int    `json:"pageNum"`
	Text    string `json:"text"`
}

// TriagedPage is the scoring result for one page.
type TriagedPage struct {
	PageNum           int      `json:"pageNum"`
	Classification    string   `json:"classification"` // "text" or "drawing"
	Score             float64  `json:"score"`
	TextLength        int      `json:"textLength"`
	MatchedKeywords   []string `json:"matchedKeywords"`
	MatchedCategories []string `json:"matchedCategories"`
	Snippet           string   `json:"snippet"`
	Recommended       string   `json:"recommended"`
}

// TriageResult summarizes a triaged document.
type TriageResult struct {
	TotalPages   int           `json:"totalPages"`
	TextPages    int           `json:"textPages"`
	DrawingPages int           `json:"drawingPages"`
	Pages        []TriagedPage `json:"pages"`
}

// TriagePages scores every page of an RFP against the keyword bank.
// Categories named in disabled are skipped.
func TriagePages(pages []PageText, bank map[string][]string, disabled map[string]bool) TriageResult {
	result := TriageResult{TotalPages: len(pages)}
	for _, page := range pages {
		scored := ScorePage(page.Text, bank, disabled)
		scored.PageNum = page.PageNum
		scored.Recommended = Recommend(scored.Score, scored.Classification)
		if scored.Classification == "text" {
			result.TextPages++
		} else {
			result.DrawingPages++
		}
		result.Pages = append(result.Pages, scored)
	}
	return result
}

// ScorePage scores one page's text against the keyword bank. Pages with
// less than minTextLength characters of text classify as drawings. Score is
// keyword hits normalized by sqrt of text length, so dense spec pages beat
// long boilerplate pages with a stray match.
func ScorePage(text string, bank map[string][]string, disabled map[string]bool) TriagedPage {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minTextLength {
		return TriagedPage{
			Classification:    "drawing",
			MatchedKeywords:   []string{},
			MatchedCategories: []string{},
		}
	}

	normalized := normalizeText(text)
	hits := 0
	var matchedKeywords []string
	matchedCategories := map[string]bool{}

	for category, keywords := range bank {
		if disabled[category] {
			continue
		}
		for _, kw := range keywords {
			pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`)
			count := len(pattern.FindAllStringIndex(normalized, -1))
			if count > 0 {
				hits += count
				matchedKeywords = append(matchedKeywords, kw)
				matchedCategories[category] = true
			}
		}
	}

	score := 0.0
	if len(normalized) > 0 {
		score = float64(hits) / math.Sqrt(float64(len(normalized)))
	}

	categories := make([]string, 0, len(matchedCategories))
	for c := range matchedCategories {
		categories = append(categories, c)
	}
	if matchedKeywords == nil {
		matchedKeywords = []string{}
	}

	return TriagedPage{
		Classification:    "text",
		Score:             math.Round(score*10000) / 10000,
		TextLength:        len(normalized),
		MatchedKeywords:   matchedKeywords,
		MatchedCategories: categories,
		Snippet:           snippet(trimmed, 200),
	}
}

// Recommend maps a page's score and classification to a triage action.
// Drawings always go to human review; they may hold display callouts the
// text scorer cannot see.
func Recommend(score float64, classification string) string {
	if classification == "drawing" {
		return RecommendReview
	}
	if score >= keepScoreThreshold {
		return RecommendKeep
	}
	if score > 0 {
		return RecommendMaybe
	}
	return RecommendDiscard
}

// normalizeText lowercases, strips punctuation, and collapses whitespace.
func normalizeText(text string) string {
	text = strings.ToLower(text)
	text = nonWord.ReplaceAllString(text, " ")
	text = spaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

var (
	nonWord = regexp.MustCompile(`[^\w\s]`)
	spaces  = regexp.MustCompile(`\s+`)
)

func snippet(s string, n int) string {
	if len(s) > n {
		s = s[:n]
	}
	return strings.ReplaceAll(s, "\n", " ")
}

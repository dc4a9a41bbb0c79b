package services

import (
	"regexp"
	"strconv"
	"strings"
)

// ExtractedScreen is a display specification pulled out of RFP text. Fields
// mirror what the spec-form parser can recover; Confidence reflects how many
// independent signals agreed.
type ExtractedScreen struct {
	Name          string  `json:"screenName"`
	WidthFt       float64 `json:"sizeWidthFt"`
	HeightFt      float64 `json:"sizeHeightFt"`
	PitchMm       float64 `json:"pixelPitchMm"`
	Quantity      int     `json:"quantity"`
	IndoorOutdoor string  `json:"indoorOutdoor"`
	NitsBright    int     `json:"nitsBrightness"`
	SourcePage    int     `json:"sourcePage"`
	Confidence    float64 `json:"confidence"`
	RawNotes      string  `json:"rawNotes"`
}

var (
	// 40' x 22', 40ft x 22ft, 40 x 22 feet
	dimensionsRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:'|ft|feet)?\s*[x×]\s*(\d+(?:\.\d+)?)\s*(?:'|ft|feet)?`)
	// P4, P2.5
	pitchShortRe = regexp.MustCompile(`(?i)\bp(\d+(?:\.\d+)?)\b`)
	// 4mm pitch, pixel pitch of 10mm, 10 mm
	pitchMmRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*mm\b`)
	quantityRe = regexp.MustCompile(`(?i)\b(?:qty|quantity)\s*(?:[:=]\s*|of\s+)?(\d+)\b`)
	nitsRe     = regexp.MustCompile(`(?i)\b(\d{3,6})\s*nits?\b`)

	// Block headers that name a display.
	screenNameRe = regexp.MustCompile(`(?i)\b((?:main |center |north |south |east |west |upper |lower )?(?:videoboard|video board|video wall|scoreboard|ribbon board|fascia board|marquee|led display|led wall|led screen|digital signage))\b`)
)

// ExtractScreens scans RFP page text for display specifications. The text is
// split into blank-line blocks; each block that names a display yields one
// ExtractedScreen with whatever specs appear in the same block. Heuristic
// only — results land in the proposal as draft screens for a salesperson to
// confirm.
func ExtractScreens(text string, sourcePage int) []ExtractedScreen {
	var screens []ExtractedScreen

	for _, block := range strings.Split(text, "\n\n") {
		nameMatch := screenNameRe.FindStringSubmatch(block)
		if nameMatch == nil {
			continue
		}

		screen := ExtractedScreen{
			Name:       titleCase(nameMatch[1]),
			Quantity:   1,
			SourcePage: sourcePage,
			Confidence: 0.3,
			RawNotes:   snippet(strings.TrimSpace(block), 200),
		}

		if m := dimensionsRe.FindStringSubmatch(block); m != nil {
			screen.WidthFt, _ = strconv.ParseFloat(m[1], 64)
			screen.HeightFt, _ = strconv.ParseFloat(m[2], 64)
			screen.Confidence += 0.25
		}

		if m := pitchShortRe.FindStringSubmatch(block); m != nil {
			screen.PitchMm, _ = strconv.ParseFloat(m[1], 64)
			screen.Confidence += 0.2
		} else if m := pitchMmRe.FindStringSubmatch(block); m != nil {
			screen.PitchMm, _ = strconv.ParseFloat(m[1], 64)
			screen.Confidence += 0.2
		}

		if m := quantityRe.FindStringSubmatch(block); m != nil {
			if q, err := strconv.Atoi(m[1]); err == nil && q > 0 {
				screen.Quantity = q
				screen.Confidence += 0.1
			}
		}

		lower := strings.ToLower(block)
		switch {
		case strings.Contains(lower, "outdoor"):
			screen.IndoorOutdoor = "outdoor"
			screen.Confidence += 0.1
		case strings.Contains(lower, "indoor"):
			screen.IndoorOutdoor = "indoor"
			screen.Confidence += 0.1
		}

		if m := nitsRe.FindStringSubmatch(block); m != nil {
			screen.NitsBright, _ = strconv.Atoi(m[1])
			screen.Confidence += 0.05
		}

		if screen.Confidence > 1.0 {
			screen.Confidence = 1.0
		}
		screens = append(screens, screen)
	}

	return screens
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

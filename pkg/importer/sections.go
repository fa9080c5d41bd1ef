package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The source page labels its sections with fixed element ids. Section
// text arrives mixed with serialized component payloads, so everything
// read out of the DOM goes through cleanSectionText.
var descriptionSections = []struct {
	id    string
	title string
}{
	{"pool", "สระว่ายน้ำ"},
	{"facilities", "ฟังก์ชั่นที่พัก"},
	{"park", "ที่จอดรถ"},
	{"numberBeds", "จำนวนที่นอน"},
	{"Kitchenware", "อุปกรณ์ในครัว"},
}

const (
	maxSectionRunes     = 8000
	maxDescSectionRunes = 1500
	maxLocationRunes    = 300
	maxTitleNameRunes   = 80
	maxLocationLine     = 200
)

var (
	htmlTagRe       = regexp.MustCompile(`<[^>]+>`)
	namedEntityRe   = regexp.MustCompile(`(?i)&(nbsp|amp|lt|gt|quot);`)
	numericEntityRe = regexp.MustCompile(`&#(\d+);`)
	trailingJunkRe  = regexp.MustCompile(`\s*[\]"}\[,].*$`)
	leadingJunkRe   = regexp.MustCompile(`^.*?["$\\]+\s*`)
	suspectJSONRe   = regexp.MustCompile(`["{}\[\]]`)
	braceTailRe     = regexp.MustCompile(`\s*\}.*$`)
	bracketTailRe   = regexp.MustCompile(`\s*\[.*$`)
	locationLineRe  = regexp.MustCompile(`\s*\n\s*`)

	propertyCodeRe = regexp.MustCompile(`รหัสที่พัก\s*:\s*([^\s\n]+)`)
	bedsRe         = regexp.MustCompile(`(\d+)\s*ห้องนอน`)
	bathsRe        = regexp.MustCompile(`(\d+)\s*ห้องน้ำ`)
	youtubeIDRe    = regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]+)`)
)

// facts holds everything the structured-field extractor pulls from the
// DOM, with defaults already applied where a matcher found nothing.
type facts struct {
	name        string
	location    string
	beds        int
	baths       int
	description *string
	videoID     *string
}

// cleanSectionText strips markup and leaked serialized data out of a
// section's raw text: tags, a fixed set of HTML entities, collapsed
// whitespace, then heuristic cuts at the first sign of residual JSON.
func cleanSectionText(text string) string {
	t := htmlTagRe.ReplaceAllString(text, " ")
	t = namedEntityRe.ReplaceAllStringFunc(t, func(m string) string {
		switch strings.ToLower(m) {
		case "&nbsp;":
			return " "
		case "&amp;":
			return "&"
		case "&lt;":
			return "<"
		case "&gt;":
			return ">"
		default:
			return `"`
		}
	})
	t = numericEntityRe.ReplaceAllStringFunc(t, func(m string) string {
		n, err := strconv.Atoi(numericEntityRe.FindStringSubmatch(m)[1])
		if err != nil {
			return m
		}
		return string(rune(n))
	})
	t = strings.Join(strings.Fields(t), " ")
	t = trailingJunkRe.ReplaceAllString(t, "")
	t = leadingJunkRe.ReplaceAllString(t, "")
	if suspectJSONRe.MatchString(t) && runeLen(t) > 100 {
		t = braceTailRe.ReplaceAllString(t, "")
		t = bracketTailRe.ReplaceAllString(t, "")
	}
	return truncateRunes(t, maxSectionRunes)
}

// sectionText returns the cleaned visible text of the element with the
// given id, with script/style/button subtrees removed first. Missing
// sections yield "".
func sectionText(doc *goquery.Document, id string) string {
	sel := doc.Find("#" + id)
	if sel.Length() == 0 {
		return ""
	}
	sel.Find("script, style, button").Remove()
	return cleanSectionText(sel.Text())
}

// locationOnly extracts a short human-readable address fragment from
// the location section. It drops the section's label line and stops as
// soon as a line looks like serialized noise or runs too long.
func locationOnly(doc *goquery.Document) string {
	sel := doc.Find("#location")
	if sel.Length() == 0 {
		return defaultLocation
	}
	sel.Find("script, style, button").Remove()
	text := strings.TrimSpace(strings.Join(strings.Fields(sel.Text()), " "))

	var kept []string
	for _, line := range locationLineRe.Split(text, -1) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "โลเคชั่น" {
			continue
		}
		if strings.ContainsAny(trimmed, "\"]},[$\\") {
			break
		}
		if runeLen(trimmed) > maxLocationLine {
			break
		}
		kept = append(kept, trimmed)
	}
	if len(kept) == 0 {
		return defaultLocation
	}
	return strings.Join(kept, " ")
}

// extractFacts runs the structured-field extraction over a parsed
// document. Every matcher is individually fallible; nothing here
// returns an error.
func extractFacts(doc *goquery.Document) facts {
	accommodation := sectionText(doc, "accommodation")

	f := facts{beds: 1, baths: 1}
	if m := bedsRe.FindStringSubmatch(accommodation); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			f.beds = n
		}
	}
	if m := bathsRe.FindStringSubmatch(accommodation); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			f.baths = n
		}
	}

	f.name = defaultName
	if m := propertyCodeRe.FindStringSubmatch(accommodation); m != nil {
		f.name = fmt.Sprintf("%s | %d ห้องนอน %d ห้องน้ำ", strings.TrimSpace(m[1]), f.beds, f.baths)
	} else if title := strings.TrimSpace(doc.Find("title").Text()); title != "" {
		if seg := strings.TrimSpace(strings.SplitN(title, "|", 2)[0]); seg != "" {
			f.name = truncateRunes(seg, maxTitleNameRunes)
		}
	}

	f.location = locationOnly(doc)

	parts := []string{
		fmt.Sprintf("【ห้องนอน / ห้องน้ำ】\n%d ห้องนอน %d ห้องน้ำ", f.beds, f.baths),
		"【โลเคชั่น】\n" + f.location,
	}
	for _, s := range descriptionSections {
		text := sectionText(doc, s.id)
		if text == "" {
			continue
		}
		parts = append(parts, "【"+s.title+"】\n"+truncateRunes(text, maxDescSectionRunes))
	}
	desc := strings.Join(parts, "\n\n")
	f.description = &desc

	doc.Find(`#accommodationVideos iframe[src*="youtube.com/embed/"]`).Each(func(_ int, s *goquery.Selection) {
		if f.videoID != nil {
			return
		}
		src, _ := s.Attr("src")
		if m := youtubeIDRe.FindStringSubmatch(src); m != nil {
			id := m[1]
			f.videoID = &id
		}
	})

	return f
}

func runeLen(s string) int {
	return len([]rune(s))
}

// truncateRunes bounds s to n runes. Limits match the admin form's
// column widths, counted in characters rather than bytes.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

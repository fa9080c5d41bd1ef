package importer

import (
	"regexp"
	"strings"
)

// Gallery group labels as shown in the admin UI.
const (
	accommodationLabel = "รูปที่พัก"
	reviewLabel        = "รูปรีวิว"

	// In-page anchor preceding the review photo block, used by the
	// fallback split when no zone-tagged pairs exist.
	reviewAnchor = "ดูรูปรีวิว"
)

var (
	scriptBlockRe  = regexp.MustCompile(`(?is)<script[^>]*>(.*?)</script>`)
	bareImageURLRe = regexp.MustCompile(`(?i)https?://[^\s"'<>)\]]+\.(?:jpe?g|png|webp|gif)(?:\?[^\s"'<>)\]]*)?`)
	excludedURLRe  = regexp.MustCompile(`(?i)logo|icon|avatar|favicon|pixel|1x1|spacer`)

	// Server-side component serialization escapes the payload's quotes,
	// so both "image_url":"..." and \"image_url\":\"...\" must match.
	zonedImageRe = regexp.MustCompile(
		`\\?"image_url\\?":\s*\\?"(https?://[^"\\]+\.(?:jpe?g|png|webp|gif)[^"\\]*)\\?"[^}]*?\\?"image_zone\\?":\s*\\?"([^"\\]+)\\?"`)
	zonedImageReverseRe = regexp.MustCompile(
		`\\?"image_zone\\?":\s*\\?"([^"\\]+)\\?"[^}]*?\\?"image_url\\?":\s*\\?"(https?://[^"\\]+\.(?:jpe?g|png|webp|gif)[^"\\]*)\\?"`)
)

// reviewZones are the image_zone values classified as guest-review
// photos; every other zone (inside/outside/bedroom/...) counts as an
// accommodation photo.
var reviewZones = map[string]bool{"review": true}

// extractGallery scans every <script> body for image_url/image_zone
// pairs and classifies them into accommodation and review photo sets.
// When no structured pairs exist it falls back to a generic image-URL
// scan split at the review anchor phrase.
func extractGallery(html string) (accommodation, review []string) {
	var blocks []string
	for _, m := range scriptBlockRe.FindAllStringSubmatch(html, -1) {
		blocks = append(blocks, m[0])
	}
	script := strings.Join(blocks, "\n")

	add := func(urls *[]string, u string) {
		for _, existing := range *urls {
			if existing == u {
				return
			}
		}
		*urls = append(*urls, u)
	}
	classify := func(u, zone string) {
		if reviewZones[strings.ToLower(zone)] {
			add(&review, u)
		} else {
			add(&accommodation, u)
		}
	}

	for _, m := range zonedImageRe.FindAllStringSubmatch(script, -1) {
		classify(m[1], m[2])
	}
	if len(accommodation) == 0 && len(review) == 0 {
		for _, m := range zonedImageReverseRe.FindAllStringSubmatch(script, -1) {
			classify(m[2], m[1])
		}
	}

	if len(accommodation) == 0 && len(review) == 0 {
		all := imageURLs(script)
		if len(all) >= 2 {
			if idx := strings.Index(script, reviewAnchor); idx >= 0 {
				accommodation = imageURLs(script[:idx])
				review = imageURLs(script[idx:])
			} else {
				accommodation = all
			}
		}
	}

	return accommodation, review
}

// imageURLs returns the deduplicated image-file URLs in a text block,
// in first-seen order, excluding logo/icon-type assets.
func imageURLs(block string) []string {
	var urls []string
	seen := make(map[string]bool)
	for _, u := range bareImageURLRe.FindAllString(block, -1) {
		if excludedURLRe.MatchString(u) || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}

// buildGallery orders the groups for the final record: accommodation
// photos first, review photos second, empty groups omitted.
func buildGallery(accommodation, review []string) []GalleryGroup {
	gallery := make([]GalleryGroup, 0, 2)
	if len(accommodation) > 0 {
		gallery = append(gallery, GalleryGroup{Label: accommodationLabel, Area: "accommodation", ImageURLs: accommodation})
	}
	if len(review) > 0 {
		gallery = append(gallery, GalleryGroup{Label: reviewLabel, Area: "review", ImageURLs: review})
	}
	return gallery
}

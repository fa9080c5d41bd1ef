package importer

import (
	"regexp"
	"strconv"
)

// The booking calendar lives in the page's script payloads as escaped
// JSON. It is reconstructed with plain textual matching: no schema
// validation, and absent substrings silently yield zero results.
var (
	bookingRe = regexp.MustCompile(
		`book_checkin.*?(\d{4}-\d{2}-\d{2}).*?book_checkout.*?(\d{4}-\d{2}-\d{2})`)
	holidayRe = regexp.MustCompile(
		`holiday_start.*?(\d{4}-\d{2}-\d{2}).*?holiday_end.*?(\d{4}-\d{2}-\d{2}).*?holiday_price.*?(\d+)`)
	basePriceRe = regexp.MustCompile(
		`"base_price":\s*\{[^}]*"price_sun":(\d+)[^}]*"price_mon":(\d+)[^}]*"price_tue":(\d+)[^}]*"price_wed":(\d+)[^}]*"price_thu":(\d+)[^}]*"price_fri":(\d+)[^}]*"price_sat":(\d+)`)
)

// fallbackBasePrice is substituted when the page carries no parsable
// pricing block, so an import always produces revenue figures. Indexed
// by weekday, Sunday first; Saturday is the weekend rate.
var fallbackBasePrice = [7]int64{10900, 10900, 10900, 10900, 10900, 10900, 18900}

// parseBookings extracts check-in/check-out pairs, deduplicated by
// exact pair equality. Overlapping but non-identical intervals are
// kept as-is; the day-set union in the aggregator collapses shared
// dates.
func parseBookings(html string) []booking {
	var out []booking
	seen := make(map[booking]bool)
	for _, m := range bookingRe.FindAllStringSubmatch(html, -1) {
		b := booking{checkin: m[1], checkout: m[2]}
		if seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}

// parseHolidays extracts holiday override ranges. No deduplication:
// the pricing lookup takes the first enclosing range either way.
func parseHolidays(html string) []holiday {
	var out []holiday
	for _, m := range holidayRe.FindAllStringSubmatch(html, -1) {
		price, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			continue
		}
		out = append(out, holiday{start: m[1], end: m[2], price: price})
	}
	return out
}

// parseBasePrice extracts the weekday price table from the single
// structured base_price block. ok is false when the block is absent.
func parseBasePrice(html string) (prices [7]int64, ok bool) {
	m := basePriceRe.FindStringSubmatch(html)
	if m == nil {
		return prices, false
	}
	for i := 0; i < 7; i++ {
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return prices, false
		}
		prices[i] = n
	}
	return prices, true
}

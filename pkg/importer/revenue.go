package importer

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Month labels are rendered in Thai with Buddhist Era years, matching
// the listing site's own accounting display.
var thaiMonthNames = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

const buddhistEraOffset = 543

// reconstructRevenue replays the page's pricing calendar against its
// booked date ranges and aggregates into a monthly revenue series plus
// an annualized estimate (nil when no booked night could be priced).
func reconstructRevenue(html string) ([]MonthlyRevenue, *int64) {
	bookings := parseBookings(html)
	holidays := parseHolidays(html)
	prices, ok := parseBasePrice(html)
	if !ok {
		prices = fallbackBasePrice
	}
	return aggregateRevenue(bookings, holidays, prices)
}

// aggregateRevenue prices every distinct booked day and groups the
// totals by calendar month, sorted chronologically.
func aggregateRevenue(bookings []booking, holidays []holiday, prices [7]int64) ([]MonthlyRevenue, *int64) {
	type monthKey struct {
		year  int
		month time.Month
	}

	totals := make(map[monthKey]int64)
	for _, d := range bookedDays(bookings) {
		totals[monthKey{d.Year(), d.Month()}] += priceFor(d, prices, holidays)
	}
	if len(totals) == 0 {
		// Empty, not nil: the admin UI treats the summary as a list and
		// absence of revenue is distinct from a failed import.
		return []MonthlyRevenue{}, nil
	}

	keys := make([]monthKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	summary := make([]MonthlyRevenue, 0, len(keys))
	var total int64
	years := make(map[int]bool)
	for _, k := range keys {
		revenue := totals[k]
		summary = append(summary, MonthlyRevenue{
			Period:  fmt.Sprintf("%s %d", thaiMonthNames[k.month-1], k.year+buddhistEraOffset),
			Revenue: revenue,
			Profit:  revenue,
		})
		total += revenue
		years[k.year] = true
	}

	// Averaged across the calendar years that actually have data, not
	// extrapolated over twelve months.
	estimate := int64(math.Round(float64(total) / float64(len(years))))
	return summary, &estimate
}

// bookedDays expands every booking into the whole days of
// [checkin, checkout) and unions them into a sorted distinct set. A
// zero-night booking contributes nothing; unparsable dates drop the
// booking rather than failing the import.
func bookedDays(bookings []booking) []time.Time {
	seen := make(map[string]time.Time)
	for _, b := range bookings {
		start, err := time.Parse(dateLayout, b.checkin)
		if err != nil {
			continue
		}
		end, err := time.Parse(dateLayout, b.checkout)
		if err != nil {
			continue
		}
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			seen[d.Format(dateLayout)] = d
		}
	}

	dates := make([]string, 0, len(seen))
	for ds := range seen {
		dates = append(dates, ds)
	}
	sort.Strings(dates)

	days := make([]time.Time, 0, len(dates))
	for _, ds := range dates {
		days = append(days, seen[ds])
	}
	return days
}

// priceFor returns the nightly rate for a day: the first enclosing
// holiday override (inclusive bounds) wins over the weekday base
// price.
func priceFor(d time.Time, prices [7]int64, holidays []holiday) int64 {
	ds := d.Format(dateLayout)
	for _, h := range holidays {
		if h.start <= ds && ds <= h.end {
			return h.price
		}
	}
	return prices[int(d.Weekday())]
}

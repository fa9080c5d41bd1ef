package importer

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// --- bookedDays Tests ---

func TestBookedDays_HalfOpenInterval(t *testing.T) {
	days := bookedDays([]booking{{checkin: "2024-03-01", checkout: "2024-03-04"}})

	want := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	if len(days) != len(want) {
		t.Fatalf("len(days) = %d, want %d", len(days), len(want))
	}
	for i, d := range days {
		if got := d.Format(dateLayout); got != want[i] {
			t.Errorf("days[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestBookedDays_ZeroNights(t *testing.T) {
	if days := bookedDays([]booking{{checkin: "2024-05-01", checkout: "2024-05-01"}}); len(days) != 0 {
		t.Errorf("zero-night booking produced %d days", len(days))
	}
}

func TestBookedDays_OverlapUnion(t *testing.T) {
	days := bookedDays([]booking{
		{checkin: "2024-03-01", checkout: "2024-03-04"},
		{checkin: "2024-03-03", checkout: "2024-03-05"},
	})

	if len(days) != 4 {
		t.Fatalf("len(days) = %d, want 4", len(days))
	}
	for i := 1; i < len(days); i++ {
		if !days[i-1].Before(days[i]) {
			t.Errorf("days not strictly ascending at %d: %v, %v", i, days[i-1], days[i])
		}
	}
}

func TestBookedDays_SkipsUnparsableDates(t *testing.T) {
	days := bookedDays([]booking{
		{checkin: "2024-13-99", checkout: "2024-03-04"},
		{checkin: "2024-03-01", checkout: "2024-03-02"},
	})
	if len(days) != 1 {
		t.Errorf("len(days) = %d, want 1", len(days))
	}
}

// --- priceFor Tests ---

func TestPriceFor_WeekdayRate(t *testing.T) {
	prices := [7]int64{1000, 2000, 3000, 4000, 5000, 6000, 7000}

	// 2024-03-02 is a Saturday, 2024-03-03 a Sunday.
	if got := priceFor(mustDate(t, "2024-03-02"), prices, nil); got != 7000 {
		t.Errorf("saturday price = %d, want 7000", got)
	}
	if got := priceFor(mustDate(t, "2024-03-03"), prices, nil); got != 1000 {
		t.Errorf("sunday price = %d, want 1000", got)
	}
}

func TestPriceFor_HolidayPrecedence(t *testing.T) {
	prices := fallbackBasePrice
	holidays := []holiday{
		{start: "2024-04-12", end: "2024-04-16", price: 30000},
		{start: "2024-04-14", end: "2024-04-14", price: 99999},
	}

	tests := []struct {
		name string
		day  string
		want int64
	}{
		{"inside_range", "2024-04-13", 30000},
		{"inclusive_start", "2024-04-12", 30000},
		{"inclusive_end", "2024-04-16", 30000},
		{"first_match_wins", "2024-04-14", 30000},
		{"outside_range_wednesday", "2024-04-17", 10900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := priceFor(mustDate(t, tt.day), prices, holidays); got != tt.want {
				t.Errorf("priceFor(%s) = %d, want %d", tt.day, got, tt.want)
			}
		})
	}
}

// --- aggregateRevenue Tests ---

func TestAggregateRevenue_MonthlyGrouping(t *testing.T) {
	// 2023-12-30 Sat, 2023-12-31 Sun, 2024-01-01 Mon.
	bookings := []booking{{checkin: "2023-12-30", checkout: "2024-01-02"}}
	prices := [7]int64{1, 2, 3, 4, 5, 6, 7}

	summary, estimate := aggregateRevenue(bookings, nil, prices)

	if len(summary) != 2 {
		t.Fatalf("len(summary) = %d, want 2", len(summary))
	}
	if summary[0].Period != "ธันวาคม 2566" || summary[0].Revenue != 8 {
		t.Errorf("summary[0] = %+v, want ธันวาคม 2566 / 8", summary[0])
	}
	if summary[1].Period != "มกราคม 2567" || summary[1].Revenue != 2 {
		t.Errorf("summary[1] = %+v, want มกราคม 2567 / 2", summary[1])
	}
	if summary[0].Profit != summary[0].Revenue {
		t.Errorf("Profit = %d, want Revenue %d", summary[0].Profit, summary[0].Revenue)
	}

	// Two calendar years with data: (8+2)/2.
	if estimate == nil {
		t.Fatal("estimate is nil")
	}
	if *estimate != 5 {
		t.Errorf("estimate = %d, want 5", *estimate)
	}
}

func TestAggregateRevenue_EstimateRoundsHalfUp(t *testing.T) {
	bookings := []booking{
		{checkin: "2023-06-01", checkout: "2023-06-02"},
		{checkin: "2024-06-01", checkout: "2024-06-02"},
	}
	holidays := []holiday{
		{start: "2023-06-01", end: "2023-06-01", price: 10},
		{start: "2024-06-01", end: "2024-06-01", price: 15},
	}

	_, estimate := aggregateRevenue(bookings, holidays, fallbackBasePrice)
	if estimate == nil {
		t.Fatal("estimate is nil")
	}
	if *estimate != 13 {
		t.Errorf("estimate = %d, want 13 (25/2 rounded)", *estimate)
	}
}

func TestAggregateRevenue_Empty(t *testing.T) {
	summary, estimate := aggregateRevenue(nil, nil, fallbackBasePrice)

	if summary == nil {
		t.Fatal("summary is nil, want empty slice")
	}
	if len(summary) != 0 {
		t.Errorf("len(summary) = %d, want 0", len(summary))
	}
	if estimate != nil {
		t.Errorf("estimate = %d, want nil", *estimate)
	}
}

// --- reconstructRevenue Tests ---

func TestReconstructRevenue_FallbackPrices(t *testing.T) {
	// Friday + Saturday + Sunday nights, no pricing block on the page.
	html := `{"book_checkin":"2024-03-01","book_checkout":"2024-03-04"}`

	summary, estimate := reconstructRevenue(html)

	if len(summary) != 1 {
		t.Fatalf("len(summary) = %d, want 1", len(summary))
	}
	want := int64(10900 + 18900 + 10900)
	if summary[0].Period != "มีนาคม 2567" || summary[0].Revenue != want {
		t.Errorf("summary[0] = %+v, want มีนาคม 2567 / %d", summary[0], want)
	}
	if estimate == nil || *estimate != want {
		t.Errorf("estimate = %v, want %d", estimate, want)
	}
}

func TestReconstructRevenue_NoBookings(t *testing.T) {
	summary, estimate := reconstructRevenue("<html><body></body></html>")

	if len(summary) != 0 {
		t.Errorf("summary = %v, want empty", summary)
	}
	if estimate != nil {
		t.Errorf("estimate = %d, want nil", *estimate)
	}
}

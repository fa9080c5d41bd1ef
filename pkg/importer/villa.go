// Package importer turns a competitor villa listing page into a
// structured record: accommodation facts, photo galleries, and a
// monthly revenue history reconstructed from the page's booking
// calendar.
package importer

// ImportedVilla is the final result of one import. It is assembled in
// a single pass and never mutated afterwards.
type ImportedVilla struct {
	Name                   string           `json:"name"`
	Location               string           `json:"location"`
	Beds                   int              `json:"beds"`
	Baths                  int              `json:"baths"`
	Description            *string          `json:"description"`
	MainVideoID            *string          `json:"mainVideoId"`
	Gallery                []GalleryGroup   `json:"gallery"`
	AccountingSummary      []MonthlyRevenue `json:"accountingSummary"`
	EstimatedAnnualRevenue *int64           `json:"estimatedAnnualRevenue"`
	SourceURL              string           `json:"sourceUrl"`
}

// GalleryGroup is an ordered, deduplicated set of image URLs sharing a
// classification ("รูปที่พัก" accommodation photos, "รูปรีวิว" review photos).
type GalleryGroup struct {
	Label     string   `json:"label"`
	Area      string   `json:"area"`
	ImageURLs []string `json:"imageUrls"`
}

// MonthlyRevenue is one month of reconstructed booking revenue.
// Period is a Thai "month year" label in Buddhist Era (+543).
// Profit equals Revenue: there is no expense model at this stage, the
// figure is a gross estimate.
type MonthlyRevenue struct {
	Period  string `json:"period"`
	Revenue int64  `json:"revenue"`
	Profit  int64  `json:"profit"`
}

// Defaults applied when a section is missing from the source page.
// Partial data is always preferred over failing the import; the admin
// edits the record by hand afterwards.
const (
	defaultName     = "บ้านจากลิงก์"
	defaultLocation = "พัทยา"
)

// booking is a half-open stay interval; the checkout date itself is
// not a booked night.
type booking struct {
	checkin  string
	checkout string
}

// holiday is an inclusive date range priced at a fixed override rate
// regardless of weekday.
type holiday struct {
	start string
	end   string
	price int64
}

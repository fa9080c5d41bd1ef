package importer

import (
	"reflect"
	"testing"
)

// --- extractGallery Tests ---

func TestExtractGallery_ZonedPairs(t *testing.T) {
	html := `<html><body><script>self.__next_f.push([1,"{\"images\":[` +
		`{\"image_url\":\"https://cdn.example.com/a.jpg\",\"image_order\":1,\"image_zone\":\"inside\"},` +
		`{\"image_url\":\"https://cdn.example.com/b.webp\",\"image_order\":2,\"image_zone\":\"outside\"},` +
		`{\"image_url\":\"https://cdn.example.com/r.jpg\",\"image_order\":3,\"image_zone\":\"review\"},` +
		`{\"image_url\":\"https://cdn.example.com/a.jpg\",\"image_order\":4,\"image_zone\":\"inside\"}` +
		`]}"])</script></body></html>`

	accommodation, review := extractGallery(html)

	wantAcc := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.webp"}
	if !reflect.DeepEqual(accommodation, wantAcc) {
		t.Errorf("accommodation = %v, want %v", accommodation, wantAcc)
	}
	wantRev := []string{"https://cdn.example.com/r.jpg"}
	if !reflect.DeepEqual(review, wantRev) {
		t.Errorf("review = %v, want %v", review, wantRev)
	}
}

func TestExtractGallery_UnescapedJSON(t *testing.T) {
	html := `<script type="application/json">{"images":[` +
		`{"image_url":"https://cdn.example.com/one.png","image_zone":"bedroom"}]}</script>`

	accommodation, review := extractGallery(html)

	if len(accommodation) != 1 || accommodation[0] != "https://cdn.example.com/one.png" {
		t.Errorf("accommodation = %v", accommodation)
	}
	if len(review) != 0 {
		t.Errorf("review = %v, want empty", review)
	}
}

func TestExtractGallery_ZoneBeforeURL(t *testing.T) {
	html := `<script>{"images":[` +
		`{"image_zone":"review","image_order":1,"image_url":"https://cdn.example.com/r1.jpg"},` +
		`{"image_zone":"inside","image_order":2,"image_url":"https://cdn.example.com/a1.jpg"}` +
		`]}</script>`

	accommodation, review := extractGallery(html)

	if len(accommodation) != 1 || accommodation[0] != "https://cdn.example.com/a1.jpg" {
		t.Errorf("accommodation = %v", accommodation)
	}
	if len(review) != 1 || review[0] != "https://cdn.example.com/r1.jpg" {
		t.Errorf("review = %v", review)
	}
}

func TestExtractGallery_FallbackSplitAtAnchor(t *testing.T) {
	html := `<script>
		var photos = ["https://cdn.example.com/p1.jpg", "https://cdn.example.com/p2.jpg"];
		var logo = "https://cdn.example.com/logo.png";
		// ดูรูปรีวิว
		var reviews = ["https://cdn.example.com/rv1.jpg"];
	</script>`

	accommodation, review := extractGallery(html)

	wantAcc := []string{"https://cdn.example.com/p1.jpg", "https://cdn.example.com/p2.jpg"}
	if !reflect.DeepEqual(accommodation, wantAcc) {
		t.Errorf("accommodation = %v, want %v", accommodation, wantAcc)
	}
	wantRev := []string{"https://cdn.example.com/rv1.jpg"}
	if !reflect.DeepEqual(review, wantRev) {
		t.Errorf("review = %v, want %v", review, wantRev)
	}
}

func TestExtractGallery_FallbackWithoutAnchor(t *testing.T) {
	html := `<script>
		var photos = ["https://cdn.example.com/p1.jpg", "https://cdn.example.com/p2.jpg"];
	</script>`

	accommodation, review := extractGallery(html)

	if len(accommodation) != 2 {
		t.Errorf("accommodation = %v, want 2 URLs", accommodation)
	}
	if len(review) != 0 {
		t.Errorf("review = %v, want empty", review)
	}
}

func TestExtractGallery_FallbackNeedsTwoImages(t *testing.T) {
	html := `<script>var hero = "https://cdn.example.com/only.jpg";</script>`

	accommodation, review := extractGallery(html)

	if len(accommodation) != 0 || len(review) != 0 {
		t.Errorf("got %v / %v, want empty sets for a single bare image", accommodation, review)
	}
}

func TestExtractGallery_NoScripts(t *testing.T) {
	accommodation, review := extractGallery(`<html><body><img src="https://cdn.example.com/a.jpg"></body></html>`)

	if len(accommodation) != 0 || len(review) != 0 {
		t.Errorf("got %v / %v, want empty sets", accommodation, review)
	}
}

// --- imageURLs Tests ---

func TestImageURLs_ExcludesAssets(t *testing.T) {
	block := `"https://cdn.example.com/a.jpg" "https://cdn.example.com/logo.png"
		"https://cdn.example.com/favicon.ico.png" "https://cdn.example.com/pixel-1x1.gif"
		"https://cdn.example.com/a.jpg"`

	got := imageURLs(block)
	want := []string{"https://cdn.example.com/a.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("imageURLs() = %v, want %v", got, want)
	}
}

// --- buildGallery Tests ---

func TestBuildGallery_Groups(t *testing.T) {
	gallery := buildGallery(
		[]string{"https://cdn.example.com/a.jpg"},
		[]string{"https://cdn.example.com/r.jpg"},
	)

	if len(gallery) != 2 {
		t.Fatalf("len(gallery) = %d, want 2", len(gallery))
	}
	if gallery[0].Label != accommodationLabel || gallery[0].Area != "accommodation" {
		t.Errorf("group 0 = %q/%q", gallery[0].Label, gallery[0].Area)
	}
	if gallery[1].Label != reviewLabel || gallery[1].Area != "review" {
		t.Errorf("group 1 = %q/%q", gallery[1].Label, gallery[1].Area)
	}
}

func TestBuildGallery_OmitsEmptyGroups(t *testing.T) {
	gallery := buildGallery(nil, []string{"https://cdn.example.com/r.jpg"})
	if len(gallery) != 1 || gallery[0].Label != reviewLabel {
		t.Errorf("gallery = %v, want single review group", gallery)
	}

	gallery = buildGallery(nil, nil)
	if gallery == nil {
		t.Fatal("gallery is nil, want empty slice")
	}
	if len(gallery) != 0 {
		t.Errorf("len(gallery) = %d, want 0", len(gallery))
	}
}

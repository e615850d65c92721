package gpx

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/tourdrop/tourdrop/internal/komoot"
)

func ptr(v float64) *float64 { return &v }

func makeTour(name string, coords ...komoot.Coordinate) *komoot.Tour {
	tour := &komoot.Tour{ID: 1, Name: name}
	tour.Embedded.Coordinates.Items = coords
	return tour
}

// Minimal GPX shape for parse-back assertions.
type gpxDoc struct {
	XMLName xml.Name `xml:"gpx"`
	Trk     struct {
		Name   string `xml:"name"`
		Trkseg struct {
			Trkpt []struct {
				Lat  string `xml:"lat,attr"`
				Lon  string `xml:"lon,attr"`
				Ele  string `xml:"ele"`
				Time string `xml:"time"`
			} `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

func TestFromTour_Basic(t *testing.T) {
	tour := makeTour("Morning Ride",
		komoot.Coordinate{Lat: ptr(47.1), Lng: ptr(11.25), Alt: 1900.5, T: 1705310400000},
		komoot.Coordinate{Lat: ptr(47.2), Lng: ptr(11.3), T: 1705310460000},
	)

	out := FromTour(tour)

	var doc gpxDoc
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not well-formed XML: %v\n%s", err, out)
	}
	if doc.Trk.Name != "Morning Ride" {
		t.Errorf("track name = %q", doc.Trk.Name)
	}
	pts := doc.Trk.Trkseg.Trkpt
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}
	if pts[0].Lat != "47.1" || pts[0].Lon != "11.25" || pts[0].Ele != "1900.5" {
		t.Errorf("unexpected first point %+v", pts[0])
	}
	if pts[1].Ele != "0" {
		t.Errorf("absent elevation should default to 0, got %q", pts[1].Ele)
	}
}

// Epoch milliseconds are converted with a real UTC conversion before the Z
// suffix is applied.
func TestFromTour_TimestampIsUTC(t *testing.T) {
	// 2024-01-15T10:00:00Z
	tour := makeTour("t", komoot.Coordinate{Lat: ptr(1), Lng: ptr(2), T: 1705312800000})
	out := FromTour(tour)
	if !strings.Contains(out, "<time>2024-01-15T10:00:00Z</time>") {
		t.Errorf("expected UTC timestamp 2024-01-15T10:00:00Z in output:\n%s", out)
	}
}

func TestFromTour_EscapesName(t *testing.T) {
	name := `Tom & Jerry's <Grand> "Tour"`
	out := FromTour(makeTour(name))

	var doc gpxDoc
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output with special characters is not well-formed: %v", err)
	}
	// Round trip: escaping then parsing recovers the original name.
	if doc.Trk.Name != name {
		t.Errorf("round-tripped name = %q, want %q", doc.Trk.Name, name)
	}
	if strings.Contains(out, "<name>"+name) {
		t.Errorf("name was interpolated unescaped")
	}
}

func TestFromTour_EmptySegment(t *testing.T) {
	out := FromTour(makeTour("empty"))

	var doc gpxDoc
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("empty tour should still be valid XML: %v", err)
	}
	if len(doc.Trk.Trkseg.Trkpt) != 0 {
		t.Errorf("expected empty segment, got %d points", len(doc.Trk.Trkseg.Trkpt))
	}
	if !strings.Contains(out, "<trkseg>") {
		t.Errorf("segment element must be present even when empty")
	}
}

func TestFromTour_SkipsSamplesWithoutPosition(t *testing.T) {
	tour := makeTour("gaps",
		komoot.Coordinate{Lat: ptr(47.1), Lng: ptr(11.2), T: 1},
		komoot.Coordinate{Lng: ptr(11.3), T: 2},          // no lat
		komoot.Coordinate{Lat: ptr(47.3), T: 3},          // no lng
		komoot.Coordinate{Lat: ptr(47.4), Lng: ptr(11.5), T: 4},
	)
	out := FromTour(tour)

	var doc gpxDoc
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Trk.Trkseg.Trkpt) != 2 {
		t.Errorf("expected positionless samples to be skipped, got %d points", len(doc.Trk.Trkseg.Trkpt))
	}
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean", "Morning Ride", "Morning Ride"},
		{"slashes", "Tour de/France\\2024", "Tour de_France_2024"},
		{"all unsafe", `<>:"/\|?*`, "_________"},
		{"mixed", `Ride: "fast" <or> slow?`, "Ride_ _fast_ _or_ slow_"},
		{"umlauts kept", "Tour über die Höhe", "Tour über die Höhe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeFileName(tt.in); got != tt.want {
				t.Errorf("SafeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSafeFileName_Properties(t *testing.T) {
	long := strings.Repeat("ä<", 300)
	got := SafeFileName(long)
	if n := len([]rune(got)); n > 200 {
		t.Errorf("length %d exceeds 200 runes", n)
	}
	if strings.ContainsAny(got, unsafe) {
		t.Errorf("output still contains unsafe characters: %q", got)
	}
}

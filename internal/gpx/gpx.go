// Package gpx renders tour detail records as GPX 1.1 documents and derives
// safe file names for them.
package gpx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tourdrop/tourdrop/internal/komoot"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="tourdrop" xmlns="http://www.topografix.com/GPX/1/1" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://www.topografix.com/GPX/1/1 http://www.topografix.com/GPX/1/1/gpx.xsd">
`

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// FromTour renders one tour as a GPX document with a single track and
// segment. Samples without a position are skipped; point timestamps are the
// epoch-millisecond values converted to UTC and formatted RFC3339.
func FromTour(tour *komoot.Tour) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("  <trk>\n")
	fmt.Fprintf(&b, "    <name>%s</name>\n", xmlEscaper.Replace(tour.Name))
	b.WriteString("    <trkseg>\n")

	for _, c := range tour.Embedded.Coordinates.Items {
		if c.Lat == nil || c.Lng == nil {
			continue
		}
		ts := time.UnixMilli(c.T).UTC().Format(time.RFC3339)
		fmt.Fprintf(&b, "      <trkpt lat=\"%s\" lon=\"%s\">\n        <ele>%s</ele>\n        <time>%s</time>\n      </trkpt>\n",
			formatCoord(*c.Lat), formatCoord(*c.Lng), formatCoord(c.Alt), ts)
	}

	b.WriteString("    </trkseg>\n  </trk>\n</gpx>")
	return b.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// unsafe covers the characters that are problematic in file names and
// object keys across backends.
const unsafe = `<>:"/\|?*`

// SafeFileName maps an arbitrary tour name to a name usable as a file or
// object key: each unsafe character becomes an underscore and the result is
// cut to 200 runes. Deterministic, no collision avoidance.
func SafeFileName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafe, r) {
			return '_'
		}
		return r
	}, name)

	runes := []rune(mapped)
	if len(runes) > 200 {
		return string(runes[:200])
	}
	return mapped
}

// Package geo extracts geographic coordinates from free-form chat text.
package geo

import (
	"regexp"
	"strconv"
	"strings"
)

// Ecuador continental bounding box. Values outside it are treated as noise
// (house numbers, phone fragments) rather than coordinates.
const (
	MinLat = -5
	MaxLat = 2
	MinLng = -82
	MaxLng = -75
)

var numberPattern = regexp.MustCompile(`-?\d+\.?\d*`)

// Point is a latitude/longitude pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Parse extracts the first two numeric tokens from text as lat/lng.
// Degree symbols are stripped and commas treated as separators, so inputs
// like "-2.1234°, -79.9876" and shared-location dumps both work.
// The second return is false when the text holds no in-range pair.
func Parse(text string) (Point, bool) {
	cleaned := strings.ReplaceAll(text, "°", "")
	cleaned = strings.ReplaceAll(cleaned, ",", " ")

	tokens := numberPattern.FindAllString(cleaned, -1)
	if len(tokens) < 2 {
		return Point{}, false
	}

	lat, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return Point{}, false
	}
	lng, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return Point{}, false
	}

	if lat < MinLat || lat > MaxLat || lng < MinLng || lng > MaxLng {
		return Point{}, false
	}

	return Point{Lat: lat, Lng: lng}, true
}

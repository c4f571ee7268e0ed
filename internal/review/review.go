// Package review derives placeholder ratings for catalog entries that carry no
// real review data. The values depend only on the entry identifier, so a given
// book shows the same rating on every device and in every run.
package review

import (
	"fmt"
	"unicode/utf16"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	minReviewCount  = 1000
	reviewCountSpan = 49000
	ratingSteps     = 20
)

var printer = message.NewPrinter(language.English)

// Review is the synthesized rating shown in list views.
type Review struct {
	Rating      string `json:"rating"`
	ReviewCount string `json:"review_count"`
}

// Seed returns |h| where h is the 31-multiplier polynomial hash of id over its
// UTF-16 code units, wrapped to a signed 32-bit integer.
func Seed(id string) int64 {
	var h int32
	for _, unit := range utf16.Encode([]rune(id)) {
		h = h*31 + int32(unit)
	}
	seed := int64(h)
	if seed < 0 {
		seed = -seed
	}
	return seed
}

// Count returns the synthesized review count for id, in [1000, 50000).
func Count(id string) int64 {
	return Seed(id)%reviewCountSpan + minReviewCount
}

// Rating returns the synthesized rating for id, in [3.0, 5.0) with one decimal.
func Rating(id string) string {
	tenths := Seed(id)%ratingSteps + 30
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}

// Synthesize returns the placeholder rating and review count for id.
func Synthesize(id string) Review {
	return Review{
		Rating:      Rating(id),
		ReviewCount: FormatCount(Count(id)),
	}
}

// FormatCount renders n with a comma every three digits.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

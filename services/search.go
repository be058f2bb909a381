package services

import (
	"strings"

	"ngi/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const nameSimilarityThreshold = 0.7

// normalizeInput folds accents and case so "Aarav" matches "aarav" and "Zoë" matches "zoe"
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// MatchBooking reports whether query hits the guest's name, email, phone or
// reference. Names match on substring or on a close word.
func MatchBooking(query string, b *models.Booking) bool {
	q := normalizeInput(query)
	if q == "" {
		return true
	}

	name := normalizeInput(b.Name)
	if strings.Contains(name, q) {
		return true
	}
	for _, word := range strings.Fields(name) {
		if calculateSimilarity(q, word) >= nameSimilarityThreshold {
			return true
		}
	}

	for _, field := range []string{b.Email, b.Phone, b.Reference} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// FilterBookings keeps the matching bookings in their original order
func FilterBookings(query string, bookings []models.Booking) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for i := range bookings {
		if MatchBooking(query, &bookings[i]) {
			out = append(out, bookings[i])
		}
	}
	return out
}

// SuggestName returns the closest known guest name for a query that found
// nothing, or "" when there is no candidate
func SuggestName(query string, bookings []models.Booking) string {
	seen := make(map[string]bool)
	var names []string
	for _, b := range bookings {
		n := normalizeInput(b.Name)
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return closestmatch.New(names, []int{2, 3}).Closest(normalizeInput(query))
}

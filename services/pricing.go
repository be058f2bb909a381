package services

import (
	"strconv"
	"strings"
	"time"

	"ngi/utils"
)

// GuestTier is the guest-count band that drives the nightly price
type GuestTier int

const (
	TierBelow10 GuestTier = iota + 1
	Tier10To15
	Tier15To20
	Tier20Plus
)

var tierLabels = map[GuestTier]string{
	TierBelow10: "below 10",
	Tier10To15:  "10-15",
	Tier15To20:  "15-20",
	Tier20Plus:  "20+",
}

// Prices in rupees. 20+ on a weekday is charged like 15-20.
var (
	weekendPrices = map[GuestTier]int{TierBelow10: 12000, Tier10To15: 14000, Tier15To20: 16000, Tier20Plus: 18000}
	weekdayPrices = map[GuestTier]int{TierBelow10: 9000, Tier10To15: 10000, Tier15To20: 11000, Tier20Plus: 11000}
)

// Tiers lists the four bands in order
func Tiers() []GuestTier {
	return []GuestTier{TierBelow10, Tier10To15, Tier15To20, Tier20Plus}
}

func (t GuestTier) Valid() bool {
	_, ok := tierLabels[t]
	return ok
}

func (t GuestTier) Label() string {
	if l, ok := tierLabels[t]; ok {
		return l
	}
	return tierLabels[TierBelow10]
}

// ParseGuestTier accepts "1".."4" or a label. Anything else is 0.
func ParseGuestTier(s string) GuestTier {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if t := GuestTier(n); t.Valid() {
			return t
		}
		return 0
	}
	for t, l := range tierLabels {
		if strings.EqualFold(l, s) {
			return t
		}
	}
	return 0
}

// IsWeekend reports Saturday or Sunday for dateKey parsed in loc.
// An empty or unparseable key falls back to today.
func IsWeekend(dateKey string, today time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	day, ok := utils.ParseDateKey(dateKey, loc)
	if !ok {
		day = today.In(loc)
	}
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ComputePrice returns the nightly price. Unknown tiers are priced as tier 1.
func ComputePrice(tier GuestTier, dateKey string, today time.Time, loc *time.Location) int {
	if !tier.Valid() {
		tier = TierBelow10
	}
	if IsWeekend(dateKey, today, loc) {
		return weekendPrices[tier]
	}
	return weekdayPrices[tier]
}

// Quote is a price with the facts it was derived from
type Quote struct {
	Date    string    `json:"date"`
	Tier    GuestTier `json:"tier"`
	Label   string    `json:"label"`
	Weekend bool      `json:"weekend"`
	Price   int       `json:"price"`
}

// QuoteFor prices dateKey for tier; the key falls back to today when invalid
func QuoteFor(tier GuestTier, dateKey string, now time.Time, loc *time.Location) Quote {
	if !tier.Valid() {
		tier = TierBelow10
	}
	if _, ok := utils.ParseDateKey(dateKey, loc); !ok {
		dateKey = utils.TodayKey(now, loc)
	}
	return Quote{
		Date:    dateKey,
		Tier:    tier,
		Label:   tier.Label(),
		Weekend: IsWeekend(dateKey, now, loc),
		Price:   ComputePrice(tier, dateKey, now, loc),
	}
}

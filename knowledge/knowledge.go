// Package knowledge holds the static reference data for the restaurant chain:
// outlet directory, buffet menu and FAQ bank. All tables are loaded once at
// process start and are read-only afterwards, so a single Store is shared by
// every conversation without locking.
package knowledge

import (
	"fmt"
	"strings"
)

// Store exposes lookup and search operations over the static tables.
type Store struct {
	locations map[string]Location
	order     []string
	menu      []MenuItem
	faqs      []FAQ
}

// NewStore builds a store from the built-in tables.
func NewStore() *Store {
	s := &Store{locations: make(map[string]Location)}
	for _, loc := range locationTable {
		s.locations[strings.ToLower(loc.Key)] = loc
		s.order = append(s.order, strings.ToLower(loc.Key))
	}
	s.menu = menuTable
	s.faqs = faqTable
	return s
}

// FindLocation looks up an outlet by key. The match is case-insensitive and
// also accepts a city name, in which case the first outlet of that city wins.
func (s *Store) FindLocation(key string) (Location, bool) {
	needle := strings.ToLower(strings.TrimSpace(key))
	if needle == "" {
		return Location{}, false
	}
	if loc, ok := s.locations[needle]; ok {
		return loc, true
	}
	for _, k := range s.order {
		loc := s.locations[k]
		if strings.ToLower(loc.City) == needle || strings.Contains(strings.ToLower(loc.Name), needle) {
			return loc, true
		}
	}
	return Location{}, false
}

// MatchLocation reports whether free text mentions a known outlet or city.
func (s *Store) MatchLocation(text string) (Location, bool) {
	needle := strings.ToLower(text)
	for _, k := range s.order {
		loc := s.locations[k]
		if strings.Contains(needle, strings.ToLower(loc.City)) || strings.Contains(needle, k) {
			return loc, true
		}
	}
	return Location{}, false
}

// SearchMenu returns menu items whose name or category contains the query,
// case-insensitive, in table order. An empty query returns nothing.
func (s *Store) SearchMenu(query string) []MenuItem {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}
	var out []MenuItem
	for _, item := range s.menu {
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Category), needle) {
			out = append(out, item)
		}
	}
	return out
}

// SearchFAQ matches the query against question, answer and tags.
func (s *Store) SearchFAQ(query string) []FAQ {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}
	var out []FAQ
	for _, faq := range s.faqs {
		if faq.matches(needle) {
			out = append(out, faq)
		}
	}
	return out
}

// FAQsByTags returns every FAQ carrying at least one of the given tags.
func (s *Store) FAQsByTags(tags []string) []FAQ {
	var out []FAQ
	for _, faq := range s.faqs {
		if faq.hasAnyTag(tags) {
			out = append(out, faq)
		}
	}
	return out
}

func (f FAQ) matches(needle string) bool {
	if strings.Contains(strings.ToLower(f.Question), needle) ||
		strings.Contains(strings.ToLower(f.Answer), needle) {
		return true
	}
	for _, tag := range f.Tags {
		if strings.Contains(tag, needle) {
			return true
		}
	}
	return false
}

func (f FAQ) hasAnyTag(tags []string) bool {
	for _, want := range tags {
		want = strings.ToLower(want)
		for _, tag := range f.Tags {
			if tag == want {
				return true
			}
		}
	}
	return false
}

// Enquiry option tokens, matching the DISCOVER menu.
const (
	EnquiryMenu       = "1"
	EnquiryOffers     = "2"
	EnquiryTimings    = "3"
	EnquiryDirections = "4"
)

// EnquiryResponse assembles the answer for an information request against a
// specific outlet. Unknown locations and enquiry types get an apology rather
// than an error; the dialogue layer shows the text either way.
func (s *Store) EnquiryResponse(enquiryType, locationKey string) string {
	loc, ok := s.FindLocation(locationKey)
	if !ok {
		return "I apologize, but I couldn't find information for this location. Please try again."
	}

	switch enquiryType {
	case EnquiryMenu:
		return "Our unlimited buffet includes a wide variety of veg and non-veg starters, main course, and desserts. Please visit us to know the current pricing."
	case EnquiryOffers:
		return loc.offerSummary()
	case EnquiryTimings:
		return loc.timingSummary()
	case EnquiryDirections:
		return loc.directionSummary()
	default:
		return "I apologize, but I couldn't understand which information you're looking for. Could you please select from the options provided?"
	}
}

func (l Location) offerSummary() string {
	var offers []string
	if l.Offers.ComplimentaryDrinks != "" {
		offers = append(offers, l.Offers.ComplimentaryDrinks)
	}
	if l.Offers.FoodFestival {
		offers = append(offers, "Ongoing food festival")
	}
	if l.Offers.EarlyBird {
		offers = append(offers, "Early bird discounts available")
	}
	if l.Offers.BuffetOffer {
		offers = append(offers, "Special buffet offers")
	}
	if l.Offers.ArmyOffer {
		offers = append(offers, "Special discounts for army personnel")
	}
	if l.Offers.DrinksOffer {
		offers = append(offers, "Special drinks packages available")
	}
	if len(offers) == 0 {
		return "Currently, we don't have any ongoing special offers."
	}
	return strings.Join(offers, ". ")
}

func (l Location) timingSummary() string {
	var b strings.Builder
	b.WriteString("Our timings are:")
	for _, t := range l.Timings {
		fmt.Fprintf(&b, "\n%s:\nLunch: %s - %s (Last entry: %s)\nDinner: %s - %s (Last entry: %s)",
			t.Days,
			t.Lunch.Opening, t.Lunch.Closing, t.Lunch.LastEntry,
			t.Dinner.Opening, t.Dinner.Closing, t.Dinner.LastEntry)
	}
	return b.String()
}

func (l Location) directionSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "We are located at: %s", l.Address)
	if len(l.NearestOutlets) > 0 {
		b.WriteString("\n\nNearest outlets:")
		for _, o := range l.NearestOutlets {
			fmt.Fprintf(&b, "\n%s (%s)", o.Name, o.Distance)
		}
	}
	return b.String()
}

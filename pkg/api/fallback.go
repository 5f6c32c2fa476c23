package api

import "strings"

// Built-in fallback datasets. The client substitutes these when every
// request to the remote API fails, so the UI always has something to render.
var fallbackArtists = []Artist{
	{
		ID:        "artist-001",
		Name:      "The Midnight Owls",
		Genre:     "Indie Rock",
		Listeners: 184200,
		URL:       "https://themidnightowls.example.com",
	},
	{
		ID:        "artist-002",
		Name:      "Luna Vale",
		Genre:     "Synth Pop",
		Listeners: 96500,
		URL:       "https://lunavale.example.com",
	},
	{
		ID:        "artist-003",
		Name:      "Static Bloom",
		Genre:     "Shoegaze",
		Listeners: 42300,
		URL:       "https://staticbloom.example.com",
	},
	{
		ID:        "artist-004",
		Name:      "Copper Canyon",
		Genre:     "Folk",
		Listeners: 28750,
		URL:       "https://coppercanyon.example.com",
	},
}

var fallbackEvents = []Event{
	{
		ID:       "event-001",
		Name:     "The Midnight Owls - Autumn Tour",
		ArtistID: "artist-001",
		Venue:    "Paradiso",
		City:     "Amsterdam",
		Date:     "2026-10-14",
	},
	{
		ID:       "event-002",
		Name:     "Luna Vale Live",
		ArtistID: "artist-002",
		Venue:    "Berghain Kantine",
		City:     "Berlin",
		Date:     "2026-11-02",
	},
}

// FallbackArtists returns a copy of the built-in artist dataset.
func FallbackArtists() []Artist {
	out := make([]Artist, len(fallbackArtists))
	copy(out, fallbackArtists)
	return out
}

// FallbackEvents returns a copy of the built-in event dataset.
func FallbackEvents() []Event {
	out := make([]Event, len(fallbackEvents))
	copy(out, fallbackEvents)
	return out
}

// FallbackStats returns the record counts of the built-in datasets.
func FallbackStats() Stats {
	return Stats{
		Artists: len(fallbackArtists),
		Events:  len(fallbackEvents),
	}
}

// FilterArtists performs the client-side search substitute: a
// case-insensitive substring match on artist name and genre.
func FilterArtists(query string) []Artist {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return FallbackArtists()
	}

	var out []Artist
	for _, a := range fallbackArtists {
		if strings.Contains(strings.ToLower(a.Name), q) ||
			strings.Contains(strings.ToLower(a.Genre), q) {
			out = append(out, a)
		}
	}
	return out
}

// FilterEvents performs the client-side search substitute: a
// case-insensitive substring match on event name, venue and city.
func FilterEvents(query string) []Event {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return FallbackEvents()
	}

	var out []Event
	for _, e := range fallbackEvents {
		if strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Venue), q) ||
			strings.Contains(strings.ToLower(e.City), q) {
			out = append(out, e)
		}
	}
	return out
}

// FindArtist looks up an artist by ID in the fallback dataset.
// Returns nil if the ID is not present.
func FindArtist(id string) *Artist {
	for i := range fallbackArtists {
		if fallbackArtists[i].ID == id {
			a := fallbackArtists[i]
			return &a
		}
	}
	return nil
}

// FindEvent looks up an event by ID in the fallback dataset.
// Returns nil if the ID is not present.
func FindEvent(id string) *Event {
	for i := range fallbackEvents {
		if fallbackEvents[i].ID == id {
			e := fallbackEvents[i]
			return &e
		}
	}
	return nil
}

package services

import (
	"context"
	"log"
	"strings"
)

// minimum length for substring matching; short fragments like "EU"
// match far too much
const minSubstringLen = 3

// TripLinkService matches passengers to trips by the trip name their
// opportunity carries. Exact name matches win; otherwise the longest
// trip name containing (or contained in) the passenger's trip name is
// chosen, so "Tuscany" still lands on "Tuscany Food Tour".
type TripLinkService struct {
	trips      TripStore
	passengers PassengerStore
}

func NewTripLinkService(trips TripStore, passengers PassengerStore) *TripLinkService {
	return &TripLinkService{trips: trips, passengers: passengers}
}

// LinkAll resolves every unlinked passenger. It returns the number
// linked and the distinct trip names that matched nothing.
func (s *TripLinkService) LinkAll(ctx context.Context) (int, []string, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return 0, nil, err
	}
	type candidate struct {
		id   int
		name string
	}
	var candidates []candidate
	for _, t := range trips {
		if t.Name != nil && *t.Name != "" {
			candidates = append(candidates, candidate{t.ID, *t.Name})
		}
	}

	passengers, err := s.passengers.ListUnlinked(ctx)
	if err != nil {
		return 0, nil, err
	}

	linked := 0
	unmatchedSet := map[string]bool{}
	var unmatched []string
	for _, p := range passengers {
		want := strings.TrimSpace(*p.TripName)
		lowered := strings.ToLower(want)

		bestID := 0
		bestName := ""
		// names below the minimum never match, not even exactly
		if len(lowered) >= minSubstringLen {
			for _, c := range candidates {
				cl := strings.ToLower(c.name)
				if cl == lowered {
					bestID, bestName = c.id, c.name
					break
				}
				if len(cl) < minSubstringLen {
					continue
				}
				if !strings.Contains(cl, lowered) && !strings.Contains(lowered, cl) {
					continue
				}
				if betterMatch(c.name, bestName) {
					bestID, bestName = c.id, c.name
				}
			}
		}

		if bestID == 0 {
			if !unmatchedSet[want] {
				unmatchedSet[want] = true
				unmatched = append(unmatched, want)
			}
			continue
		}
		if err := s.passengers.SetTripID(ctx, p.ID, bestID); err != nil {
			return linked, unmatched, err
		}
		log.Printf("[TripLink] passenger %s -> trip %d (%s)", p.ID, bestID, bestName)
		linked++
	}
	return linked, unmatched, nil
}

// betterMatch prefers the longer trip name, then lexicographic order,
// so repeated runs pick the same trip.
func betterMatch(name, best string) bool {
	if best == "" {
		return true
	}
	if len(name) != len(best) {
		return len(name) > len(best)
	}
	return name < best
}

package services

import "rendezvous_server/models"

// DefaultMinOverlapMinutes is the shortest common window worth proposing.
const DefaultMinOverlapMinutes = 30

// Intersect returns the first common window of slotsA and slotsB, scanning A in
// the outer loop and B in the inner loop, whose overlap is at least
// minOverlapMinutes. Slots on different dates never intersect. The first
// qualifying pair wins even if a later pair overlaps longer.
func Intersect(slotsA, slotsB []models.TimeSlot, minOverlapMinutes int) (*models.TimeSlot, bool) {
	for _, a := range slotsA {
		for _, b := range slotsB {
			start, end, ok := overlap(a, b)
			if ok && end-start >= minOverlapMinutes {
				return &models.TimeSlot{
					Date:      a.Date,
					StartTime: models.FormatClock(start),
					EndTime:   models.FormatClock(end),
				}, true
			}
		}
	}
	return nil, false
}

// overlap returns the common window of a and b in minutes. ok is false for
// different dates, malformed slots or an empty intersection.
func overlap(a, b models.TimeSlot) (start, end int, ok bool) {
	if a.Date != b.Date {
		return 0, 0, false
	}
	startA, endA, err := a.Minutes()
	if err != nil {
		return 0, 0, false
	}
	startB, endB, err := b.Minutes()
	if err != nil {
		return 0, 0, false
	}
	start, end = max(startA, startB), min(endA, endB)
	if end <= start {
		return 0, 0, false
	}
	return start, end, true
}

package booking

import (
	"regexp"
	"testing"
)

var bookingIDPattern = regexp.MustCompile(`^BK\d{8}\d{3}$`)

func TestGenerateBookingID_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := GenerateBookingID()
		if !bookingIDPattern.MatchString(id) {
			t.Fatalf("GenerateBookingID() = %q, want BK + 8 time digits + 3 random digits", id)
		}
	}
}

func TestGenerateBookingID_MostlyUnique(t *testing.T) {
	seen := make(map[string]bool)
	dupes := 0
	for i := 0; i < 1000; i++ {
		id := GenerateBookingID()
		if seen[id] {
			dupes++
		}
		seen[id] = true
	}
	// Collisions are possible by design but should be rare even in a tight
	// loop sharing one millisecond tick.
	if dupes > 900 {
		t.Errorf("generator produced %d duplicates out of 1000", dupes)
	}
}

package booking

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

const bookingIDPrefix = "BK"

// GenerateBookingID produces a candidate booking ID: the "BK" prefix, the
// last 8 digits of the current unix-millisecond clock, and 3 random digits.
// Collisions are possible but statistically rare; the creation path checks
// the store and retries, and the unique index is the final backstop.
func GenerateBookingID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}
	return fmt.Sprintf("%s%s%03d", bookingIDPrefix, ts, rand.Intn(1000))
}

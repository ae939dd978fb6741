package order

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

const orderIDPrefix = "GNZ"

// NewOrderID returns a short human-legible order identifier: a fixed
// prefix, a random 4-digit segment and the last 4 digits of the current
// unix-millisecond clock.
func NewOrderID() string {
	random := 1000 + rand.IntN(9000)
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return fmt.Sprintf("%s-%d-%s", orderIDPrefix, random, millis[len(millis)-4:])
}

// NextOrderID generates a fresh identifier, re-rolling until it differs
// from the previous one so consecutive submissions never share an ID.
func NextOrderID(previous string) string {
	id := NewOrderID()
	for id == previous {
		id = NewOrderID()
	}
	return id
}

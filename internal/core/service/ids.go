package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

// randSuffix returns 8 uppercase hex characters from crypto/rand.
func randSuffix() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("%08X", b)
}

// newBallotID returns a unique ballot id in the format BLT-XXXXXXXX.
func newBallotID() string {
	return "BLT-" + randSuffix()
}

// newDemoVoterKey synthesizes a single-use demo voter identity.
func newDemoVoterKey() string {
	return "DEMO_USER_" + randSuffix()
}

// newVoterToken returns a one-time voter token in the format VOTER_XXXXXXXX.
func newVoterToken() string {
	return "VOTER_" + randSuffix()
}

// newSessionID returns an opaque session identifier.
func newSessionID() string {
	return "SES-" + randSuffix() + randSuffix()
}

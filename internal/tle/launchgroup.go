package tle

import (
	"fmt"
	"strconv"
)

// UnknownLaunchGroup is the sentinel label used when the international
// designator cannot be parsed. A garbled designator never fails a satellite.
const UnknownLaunchGroup = "Unknown"

// LaunchGroup derives a "{year}-Launch-{seq}" label from the international
// designator in line1 columns 10-17 (0-indexed 9..17): two-digit launch year
// followed by a three-digit launch number.
func LaunchGroup(line1 string) string {
	if len(line1) < 17 {
		return UnknownLaunchGroup
	}
	designator := line1[9:17]

	yy, err := strconv.Atoi(designator[:2])
	if err != nil {
		return UnknownLaunchGroup
	}
	seq := designator[2:5]
	if _, err := strconv.Atoi(seq); err != nil {
		return UnknownLaunchGroup
	}

	return fmt.Sprintf("%d-Launch-%s", fullYear(yy), seq)
}

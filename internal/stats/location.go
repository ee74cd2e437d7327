package stats

import (
	"fmt"
	"time"
)

// DefaultLocation is the club's display zone (UTC+9, no daylight saving).
var DefaultLocation = time.FixedZone("KST", 9*60*60)

// LoadLocation resolves a configured zone name. An empty name yields
// DefaultLocation. "Local" is rejected so the year boundary never depends
// on the host's settings.
func LoadLocation(name string) (*time.Location, error) {
	switch name {
	case "":
		return DefaultLocation, nil
	case "Local":
		return nil, fmt.Errorf("display timezone must be explicit, got %q", name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load display timezone %q: %w", name, err)
	}
	return loc, nil
}

package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single node name.
var segmentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidName reports whether name can be used as a single address segment.
func ValidName(name string) bool {
	return segmentRegex.MatchString(name)
}

// Parse creates a new Address by parsing its canonical string representation.
func Parse(rawID string) (*Address, error) {
	if rawID == "" {
		return nil, fmt.Errorf("identifier cannot be empty")
	}

	addr := &Address{}
	for _, segment := range strings.Split(rawID, ".") {
		if segment == "" {
			return nil, fmt.Errorf("identifier path contains empty segment")
		}
		if !ValidName(segment) {
			return nil, fmt.Errorf("invalid node name: %q", segment)
		}
		addr.Path = append(addr.Path, segment)
	}

	return addr, nil
}

package texture

import (
	"fmt"
	"strings"
)

// Capability is a bitset of compressed-texture capabilities reported by a render device.
// A Candidate requires a Capability; a device supports a Capability. Selection is a subset test.
type Capability uint32

const (
	// CapabilityNone is the empty set. Every device supports it, so uncompressed encodings require it.
	CapabilityNone Capability = 0

	// CapabilityASTC marks support for ASTC LDR block compression.
	CapabilityASTC Capability = 1 << (iota - 1)

	// CapabilityBC marks support for BC1-BC7 block compression.
	CapabilityBC

	// CapabilityETC2 marks support for ETC2/EAC block compression.
	CapabilityETC2
)

// capabilityNames lists every named bit in declaration order. Used by String and ParseCapability.
var capabilityNames = []struct {
	bit  Capability
	name string
}{
	{CapabilityASTC, "ASTC"},
	{CapabilityBC, "BC"},
	{CapabilityETC2, "ETC2"},
}

// Contains reports whether every bit in other is also set in c.
// CapabilityNone is contained in every set, including the empty one.
//
// Parameters:
//   - other: the required capability set
//
// Returns:
//   - bool: true if other is a subset of c
func (c Capability) Contains(other Capability) bool {
	return c&other == other
}

// Union returns the set of bits present in either c or other.
func (c Capability) Union(other Capability) Capability {
	return c | other
}

func (c Capability) String() string {
	if c == CapabilityNone {
		return "NONE"
	}
	parts := make([]string, 0, len(capabilityNames))
	rest := c
	for _, n := range capabilityNames {
		if c&n.bit != 0 {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseCapability converts a capability name ("NONE", "ASTC", "BC", "ETC2", case-insensitive)
// or a "|"-separated list of names into a Capability.
//
// Parameters:
//   - s: the capability name or list
//
// Returns:
//   - Capability: the parsed set
//   - error: error if any name is unknown
func ParseCapability(s string) (Capability, error) {
	var c Capability
	for _, part := range strings.Split(s, "|") {
		name := strings.ToUpper(strings.TrimSpace(part))
		if name == "" || name == "NONE" {
			continue
		}
		found := false
		for _, n := range capabilityNames {
			if n.name == name {
				c = c.Union(n.bit)
				found = true
				break
			}
		}
		if !found {
			return CapabilityNone, fmt.Errorf("unknown texture capability %q", part)
		}
	}
	return c, nil
}

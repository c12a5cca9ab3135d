package texture

import "fmt"

// Candidate is one encoding of a logical texture together with the capability it needs.
type Candidate struct {
	// Path is the asset identifier passed to the asset server.
	Path string

	// Requires is the capability set the device must support to sample this encoding.
	Requires Capability
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s (requires %s)", c.Path, c.Requires)
}

// CandidateTable is an ordered, immutable list of candidate encodings.
// Indices into the table are the unit of selection.
type CandidateTable []Candidate

// DefaultCubemapCandidates is the reference cubemap table: an uncompressed baseline followed
// by three hardware-compressed encodings of the same stacked cubemap.
var DefaultCubemapCandidates = CandidateTable{
	{Path: "textures/Ryfjallet_cubemap.png", Requires: CapabilityNone},
	{Path: "textures/Ryfjallet_cubemap_astc4x4.ktx2", Requires: CapabilityASTC},
	{Path: "textures/Ryfjallet_cubemap_bc7.ktx2", Requires: CapabilityBC},
	{Path: "textures/Ryfjallet_cubemap_etc2.ktx2", Requires: CapabilityETC2},
}

// Len returns the number of candidates.
func (t CandidateTable) Len() int {
	return len(t)
}

// Valid reports whether index is a position in the table.
func (t CandidateTable) Valid(index int) bool {
	return index >= 0 && index < len(t)
}

// Clone returns a copy of the table so callers cannot mutate a shared slice.
func (t CandidateTable) Clone() CandidateTable {
	out := make(CandidateTable, len(t))
	copy(out, t)
	return out
}

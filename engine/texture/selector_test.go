package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testTable = CandidateTable{
	{Path: "a.png", Requires: CapabilityNone},
	{Path: "b.ktx2", Requires: CapabilityASTC},
	{Path: "c.ktx2", Requires: CapabilityBC},
}

func TestSelectNextSkipsUnsupported(t *testing.T) {
	var skipped []int
	got := SelectNext(testTable, 0, CapabilityBC, func(i int, _ Candidate) {
		skipped = append(skipped, i)
	})
	assert.Equal(t, 2, got)
	assert.Equal(t, []int{1}, skipped)
}

func TestSelectNextWrapsAround(t *testing.T) {
	got := SelectNext(testTable, 2, CapabilityBC, nil)
	assert.Equal(t, 0, got)
}

func TestSelectNextNoEligibleCandidate(t *testing.T) {
	var skipped []int
	got := SelectNext(testTable, 0, CapabilityNone, func(i int, _ Candidate) {
		skipped = append(skipped, i)
	})
	assert.Equal(t, 0, got)
	assert.Equal(t, []int{1, 2}, skipped)
}

func TestSelectNextStableWhenOnlyCurrentMatches(t *testing.T) {
	table := CandidateTable{
		{Path: "astc", Requires: CapabilityASTC},
		{Path: "bc", Requires: CapabilityBC},
		{Path: "etc2", Requires: CapabilityETC2},
	}
	for range 10 {
		calls := 0
		got := SelectNext(table, 1, CapabilityBC, func(int, Candidate) { calls++ })
		assert.Equal(t, 1, got)
		assert.LessOrEqual(t, calls, len(table))
	}
}

func TestSelectNextResultIsAlwaysSupported(t *testing.T) {
	sets := []Capability{
		CapabilityNone,
		CapabilityASTC,
		CapabilityBC,
		CapabilityETC2,
		CapabilityASTC | CapabilityBC,
		CapabilityASTC | CapabilityBC | CapabilityETC2,
	}
	for _, supported := range sets {
		for current := range DefaultCubemapCandidates {
			got := SelectNext(DefaultCubemapCandidates, current, supported, nil)
			if got == current {
				continue
			}
			assert.True(t, supported.Contains(DefaultCubemapCandidates[got].Requires),
				"index %d selected for %s", got, supported)
		}
	}
}

func TestSelectNextDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0, SelectNext(nil, 0, CapabilityBC, nil))
	assert.Equal(t, 7, SelectNext(testTable, 7, CapabilityBC, nil))
	assert.Equal(t, 0, SelectNext(testTable[:1], 0, CapabilityBC, nil))
}

func TestEligible(t *testing.T) {
	assert.Equal(t, []int{0, 2}, Eligible(testTable, CapabilityBC))
	assert.Equal(t, []int{0}, Eligible(testTable, CapabilityNone))
}

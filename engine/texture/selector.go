package texture

// SelectNext finds the next candidate after current whose required capability is contained in
// supported. The scan starts at current+1, wraps around the table, and examines at most
// len(table) entries. Every skipped candidate is passed to onSkip (which may be nil).
//
// If no other candidate qualifies, or the scan lands back on current, current is returned and
// the caller should treat the attempt as a no-op. An empty table or an out-of-range current
// index also returns current unchanged.
//
// Parameters:
//   - table: the ordered candidate table
//   - current: the index of the candidate currently in use
//   - supported: the device's supported capability set
//   - onSkip: called with the index and candidate of each unsupported entry (nil safe)
//
// Returns:
//   - int: the selected index, or current if nothing new is eligible
func SelectNext(table CandidateTable, current int, supported Capability, onSkip func(index int, c Candidate)) int {
	n := len(table)
	if n == 0 || !table.Valid(current) {
		return current
	}

	index := current
	for range n {
		index = (index + 1) % n
		if index == current {
			return current
		}
		if supported.Contains(table[index].Requires) {
			return index
		}
		if onSkip != nil {
			onSkip(index, table[index])
		}
	}
	return current
}

// Eligible returns the indices of every candidate the supported set can sample, in table order.
//
// Parameters:
//   - table: the ordered candidate table
//   - supported: the device's supported capability set
//
// Returns:
//   - []int: eligible candidate indices
func Eligible(table CandidateTable, supported Capability) []int {
	out := make([]int, 0, len(table))
	for i, c := range table {
		if supported.Contains(c.Requires) {
			out = append(out, i)
		}
	}
	return out
}

package model

// SmallestFreeID returns the smallest positive integer absent from ids.
// Linear probe from 1 upward: freed ids are recycled rather than growing
// the key space. O(n) per allocation, which is fine at personal-library
// scale.
func SmallestFreeID(ids []int) int {
	used := make(map[int]bool, len(ids))
	for _, id := range ids {
		used[id] = true
	}
	next := 1
	for used[next] {
		next++
	}
	return next
}

// NextID allocates a new surrogate key for an id-keyed table. The value
// is unique at the moment of return under the single-writer assumption.
func (t *TableSet) NextID(table string) int {
	return SmallestFreeID(t.tableIDs(table))
}

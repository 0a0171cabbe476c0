package column

import (
	"sort"

	"github.com/arloliu/objcol/internal/strcol"
)

// Entry is one (path, encoded-value) pair of a shared-data row.
type Entry struct {
	Path  string
	Value []byte
}

// SharedDataStore is the per-row overflow area: paths beyond the typed
// and dynamic-path capacity are spilled here as a sorted, null-free run
// of (path, encoded-value) pairs per row. It is logically a
// sequence<sorted_map<path, bytes>>, stored as two parallel string
// columns (paths, values) plus a row-offsets index, mirroring how an
// array-of-tuples column would be laid out on disk.
type SharedDataStore struct {
	paths   *strcol.Column
	values  *strcol.Column
	offsets []int // offsets[r] is the end index (exclusive) of row r
}

// NewSharedDataStore creates an empty store.
func NewSharedDataStore() *SharedDataStore {
	return &SharedDataStore{paths: strcol.New(), values: strcol.New()}
}

// Len returns the row count.
func (s *SharedDataStore) Len() int { return len(s.offsets) }

func (s *SharedDataStore) rowStart(r int) int {
	if r == 0 {
		return 0
	}

	return s.offsets[r-1]
}

func (s *SharedDataStore) rowEnd(r int) int { return s.offsets[r] }

// RowLen returns the number of entries in row r.
func (s *SharedDataStore) RowLen(r int) int { return s.rowEnd(r) - s.rowStart(r) }

// AppendRow appends one row. entries must already be sorted by Path and
// contain no null-encoded values; callers are responsible for both
// (invariant 3 and invariant 5 are enforced by ObjectColumn, which is the
// only caller that knows a value's nullness).
func (s *SharedDataStore) AppendRow(entries []Entry) {
	for _, e := range entries {
		s.paths.Append([]byte(e.Path))
		s.values.Append(e.Value)
	}
	s.offsets = append(s.offsets, s.paths.Len())
}

// AppendRowFrom copies row `row` of src verbatim, preserving sort order.
func (s *SharedDataStore) AppendRowFrom(src *SharedDataStore, row int) {
	s.AppendRow(src.RowEntries(row))
}

// AppendRangeFrom copies rows [start, start+length) of src verbatim.
func (s *SharedDataStore) AppendRangeFrom(src *SharedDataStore, start, length int) {
	for r := start; r < start+length; r++ {
		s.AppendRowFrom(src, r)
	}
}

// InsertManyDefaults appends n empty rows.
func (s *SharedDataStore) InsertManyDefaults(n int) {
	for i := 0; i < n; i++ {
		s.offsets = append(s.offsets, s.paths.Len())
	}
}

// PopBack removes the last n rows.
func (s *SharedDataStore) PopBack(n int) {
	if n <= 0 {
		return
	}

	keep := len(s.offsets) - n
	newLen := 0
	if keep > 0 {
		newLen = s.offsets[keep-1]
	}
	s.offsets = s.offsets[:keep]
	s.paths.PopBack(s.paths.Len() - newLen)
	s.values.PopBack(s.values.Len() - newLen)
}

// RowKeys returns the raw path bytes of row r, in sorted order.
func (s *SharedDataStore) RowKeys(r int) [][]byte {
	start, end := s.rowStart(r), s.rowEnd(r)
	out := make([][]byte, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, s.paths.At(i))
	}

	return out
}

// RowValues returns the raw encoded value bytes of row r, aligned with
// RowKeys.
func (s *SharedDataStore) RowValues(r int) [][]byte {
	start, end := s.rowStart(r), s.rowEnd(r)
	out := make([][]byte, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, s.values.At(i))
	}

	return out
}

// RowEntries returns row r as a slice of Entry, sorted order preserved.
func (s *SharedDataStore) RowEntries(r int) []Entry {
	start, end := s.rowStart(r), s.rowEnd(r)
	out := make([]Entry, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, Entry{Path: string(s.paths.At(i)), Value: s.values.At(i)})
	}

	return out
}

// LowerBound returns the first index within row r whose key is >= path,
// via binary search directly over the backing string column: O(log k)
// where k is the row's entry count.
func (s *SharedDataStore) LowerBound(r int, path []byte) int {
	start, end := s.rowStart(r), s.rowEnd(r)

	return strcol.LowerBound(s.paths, start, end, path)
}

// Filter keeps only rows whose mask element is true.
func (s *SharedDataStore) Filter(mask []bool) *SharedDataStore {
	out := NewSharedDataStore()
	for r, keep := range mask {
		if keep {
			out.AppendRow(s.RowEntries(r))
		}
	}

	return out
}

// Permute reorders rows according to perm, stopping after limit rows (0
// or >len(perm) means all).
func (s *SharedDataStore) Permute(perm []int, limit int) *SharedDataStore {
	if limit <= 0 || limit > len(perm) {
		limit = len(perm)
	}
	out := NewSharedDataStore()
	for i := 0; i < limit; i++ {
		out.AppendRow(s.RowEntries(perm[i]))
	}

	return out
}

// Index gathers rows at the given indexes.
func (s *SharedDataStore) Index(idx []int, limit int) *SharedDataStore {
	return s.Permute(idx, limit)
}

// Replicate repeats row i counts[i] times.
func (s *SharedDataStore) Replicate(counts []int) *SharedDataStore {
	out := NewSharedDataStore()
	for r, n := range counts {
		entries := s.RowEntries(r)
		for ; n > 0; n-- {
			out.AppendRow(entries)
		}
	}

	return out
}

// Scatter splits rows into k shards according to selector.
func (s *SharedDataStore) Scatter(k int, selector []int) []*SharedDataStore {
	shards := make([]*SharedDataStore, k)
	for i := range shards {
		shards[i] = NewSharedDataStore()
	}
	for r, dest := range selector {
		shards[dest].AppendRow(s.RowEntries(r))
	}

	return shards
}

// ByteSize returns the number of data bytes the store occupies.
func (s *SharedDataStore) ByteSize() int {
	return s.paths.ByteSize() + s.values.ByteSize() + len(s.offsets)*8
}

// AllocatedBytes returns the store's total memory footprint.
func (s *SharedDataStore) AllocatedBytes() int {
	return s.paths.AllocatedBytes() + s.values.AllocatedBytes() + cap(s.offsets)*8
}

// CloneEmpty returns a new, empty store.
func (s *SharedDataStore) CloneEmpty() *SharedDataStore { return NewSharedDataStore() }

// MergeRowSorted interleaves the source's row r entries with spill
// (already sorted by Path, null-free) in sorted position, producing one
// sorted run. It runs in O(k+m) where k = len(source row), m =
// len(spill): a single merge-join pass, not a sort. Spill entries whose
// Path collides with an existing source entry are dropped (invariant 4:
// a path cannot legally appear in both shared-data and a spill list from
// the same row, but ties break in favor of the existing shared-data
// entry defensively).
func MergeRowSorted(sourceRow []Entry, spill []Entry) []Entry {
	out := make([]Entry, 0, len(sourceRow)+len(spill))
	i, j := 0, 0
	for i < len(sourceRow) && j < len(spill) {
		switch {
		case sourceRow[i].Path < spill[j].Path:
			out = append(out, sourceRow[i])
			i++
		case sourceRow[i].Path > spill[j].Path:
			out = append(out, spill[j])
			j++
		default:
			out = append(out, sourceRow[i])
			i++
			j++
		}
	}
	out = append(out, sourceRow[i:]...)
	out = append(out, spill[j:]...)

	return out
}

// SortEntries sorts entries by Path in place, used when a caller cannot
// guarantee sorted insertion order (ObjectColumn.Insert's contract
// requires it for safety even though the common case arrives presorted).
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
}

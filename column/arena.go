package column

import (
	"github.com/arloliu/objcol/endian"
	"github.com/arloliu/objcol/errs"
	"github.com/arloliu/objcol/internal/arena"
	"github.com/arloliu/objcol/value"
)

// arenaEndian is the byte order every arena header field is written and
// read with. Fixed at little-endian since arena buffers are process-local
// and never persisted across a byte-order boundary.
var arenaEndian = endian.GetLittleEndianEngine()

// writePathHeader writes a length-prefixed path name and returns the
// bytes written.
func writePathHeader(a *arena.Arena, path string) int {
	header := make([]byte, 8)
	arenaEndian.PutUint64(header, uint64(len(path)))
	a.Write(header)
	a.Write([]byte(path))

	return 8 + len(path)
}

func readPathHeader(buf []byte) (path string, consumed int, err error) {
	if len(buf) < 8 {
		return "", 0, errs.ErrTruncatedArenaEntry
	}
	n := int(arenaEndian.Uint64(buf[:8]))
	if len(buf) < 8+n {
		return "", 0, errs.ErrTruncatedArenaEntry
	}

	return string(buf[8 : 8+n]), 8 + n, nil
}

// writeValueEntry writes the (value_len, ValueCodec-encoded bytes) framing
// shared by dynamic-path and shared-data arena entries.
func writeValueEntry(a *arena.Arena, v value.Value) (int, error) {
	encoded, err := value.DefaultCodec.EncodeToBytes(v)
	if err != nil {
		return 0, err
	}
	header := make([]byte, 8)
	arenaEndian.PutUint64(header, uint64(len(encoded)))
	a.Write(header)
	a.Write(encoded)

	return 8 + len(encoded), nil
}

func readValueEntry(buf []byte) (value.Value, int, error) {
	if len(buf) < 8 {
		return value.Value{}, 0, errs.ErrTruncatedArenaEntry
	}
	n := int(arenaEndian.Uint64(buf[:8]))
	if len(buf) < 8+n {
		return value.Value{}, 0, errs.ErrTruncatedArenaEntry
	}
	v, err := value.DefaultCodec.DecodeBytes(buf[8 : 8+n])
	if err != nil {
		return value.Value{}, 0, err
	}

	return v, 8 + n, nil
}

// SerializeRowIntoArena writes row n's self-describing arena encoding
// into a and returns its span:
//
//	u64 num_paths
//	typed_entry*   (typed-path iteration order): u64 path_len, path_bytes, <column's own serialized span>
//	dynamic_entry* (dynamic-path iteration order): u64 path_len, path_bytes, u64 value_len, encoded value
//	shared_entry*  (shared-data sorted order):    u64 path_len, path_bytes, u64 value_len, bytes
//
// Dynamic and shared entries share one wire format deliberately: the
// deserializer resolves a path against its own typed/dynamic tables
// before it knows which group an entry originally came from, so the
// framing for anything that isn't a typed path must be identical
// regardless of origin.
func (c *ObjectColumn) SerializeRowIntoArena(n int, a *arena.Arena) (start, length int, err error) {
	numPaths := uint64(c.typedPaths.Len() + c.dynamicPaths.Len() + c.sharedData.RowLen(n))
	header := make([]byte, 8)
	arenaEndian.PutUint64(header, numPaths)
	start = a.Write(header)
	length = len(header)

	for i := 0; i < c.typedPaths.Len(); i++ {
		path, col := c.typedPaths.At(i)
		length += writePathHeader(a, path)
		_, valLen := col.SerializeAt(n, a)
		length += valLen
	}

	for i := 0; i < c.dynamicPaths.Len(); i++ {
		path, col := c.dynamicPaths.At(i)
		length += writePathHeader(a, path)
		valLen, err := writeValueEntry(a, col.ReadAt(n))
		if err != nil {
			return start, length, err
		}
		length += valLen
	}

	for _, e := range c.sharedData.RowEntries(n) {
		length += writePathHeader(a, e.Path)
		valHeader := make([]byte, 8)
		arenaEndian.PutUint64(valHeader, uint64(len(e.Value)))
		a.Write(valHeader)
		a.Write(e.Value)
		length += 8 + len(e.Value)
	}

	return start, length, nil
}

// DeserializeAndInsertFromArena reads one arena-encoded row from the
// front of buf and appends it as a new row, returning the bytes consumed.
// Entries whose path resolves to neither a typed nor a dynamic column are
// allocated a new dynamic column while there is spare capacity, else
// collected into the shared-data row (nulls dropped there, per invariant
// 5; a deserialized dynamic entry that happens to be null is still
// inserted into its dynamic column, which carries its own null bit).
func (c *ObjectColumn) DeserializeAndInsertFromArena(buf []byte) (consumed int, err error) {
	n := c.Size()
	if len(buf) < 8 {
		return 0, errs.ErrTruncatedArenaEntry
	}
	numPaths := int(arenaEndian.Uint64(buf[:8]))
	pos := 8

	written := make(map[string]bool, numPaths)
	var deferred []Entry

	for i := 0; i < numPaths; i++ {
		path, consumedPath, err := readPathHeader(buf[pos:])
		if err != nil {
			return 0, err
		}
		pos += consumedPath

		if col, ok := c.typedPaths.Get(path); ok {
			consumedVal, err := col.DeserializeAndInsert(buf[pos:])
			if err != nil {
				return 0, err
			}
			pos += consumedVal
			written[path] = true

			continue
		}

		if col, ok := c.dynamicPaths.Get(path); ok {
			v, consumedVal, err := readValueEntry(buf[pos:])
			if err != nil {
				return 0, err
			}
			pos += consumedVal
			if err := col.Insert(v); err != nil {
				return 0, err
			}
			written[path] = true

			continue
		}

		v, consumedVal, err := readValueEntry(buf[pos:])
		if err != nil {
			return 0, err
		}
		pos += consumedVal

		if c.dynamicPaths.Len() < c.maxDynamicPaths {
			newCol := c.newDynamicColumn()
			newCol.InsertManyDefaults(n)
			if err := newCol.Insert(v); err != nil {
				return 0, err
			}
			c.dynamicPaths.Set(path, newCol)
			written[path] = true

			continue
		}

		if !v.IsNull() {
			encoded, err := value.DefaultCodec.EncodeToBytes(v)
			if err != nil {
				return 0, err
			}
			deferred = append(deferred, Entry{Path: path, Value: encoded})
		}
	}

	SortEntries(deferred)
	c.sharedData.AppendRow(deferred)
	c.padUnwritten(written)

	return pos, nil
}

// SkipSerializedRow walks one arena-encoded row without materializing
// state, used to advance a cursor over a buffer of many rows.
func (c *ObjectColumn) SkipSerializedRow(buf []byte) (consumed int, err error) {
	if len(buf) < 8 {
		return 0, errs.ErrTruncatedArenaEntry
	}
	numPaths := int(arenaEndian.Uint64(buf[:8]))
	pos := 8

	for i := 0; i < numPaths; i++ {
		path, consumedPath, err := readPathHeader(buf[pos:])
		if err != nil {
			return 0, err
		}
		pos += consumedPath

		if col, ok := c.typedPaths.Get(path); ok {
			pos += col.SkipSerialized(buf[pos:])

			continue
		}

		if len(buf[pos:]) < 8 {
			return 0, errs.ErrTruncatedArenaEntry
		}
		n := int(arenaEndian.Uint64(buf[pos : pos+8]))
		pos += 8 + n
	}

	return pos, nil
}

// Package tile defines the cell symbol of Tiled maps.
//
// A [Tile] is either absent (an empty cell) or present with a tileset index
// and optional flip flags. The zero Tile is absent. Tiles convert to and from
// Tiled global IDs (GIDs) with a first GID of 1, so GID 0 is the empty cell
// and GID n+1 is index n. The top three GID bits carry the flip flags.
package tile

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Flip is a bitmask of Tiled flip flags, stored in the high bits of a GID.
type Flip uint32

const (
	FlipH Flip = 0x80000000
	FlipV Flip = 0x40000000
	FlipD Flip = 0x20000000

	flipMask = uint32(FlipH | FlipV | FlipD)
)

// MaxIndex is the largest tileset index whose GID does not overlap the
// flip bits.
const MaxIndex = ^flipMask - 1

// Tile is one map cell.
type Tile struct {
	index uint32
	flip  Flip
	valid bool
}

// Present returns the tile at tileset index i with no flip flags.
func Present(i uint32) Tile { return Tile{index: i, valid: true} }

// Absent returns the empty tile. It equals the zero Tile.
func Absent() Tile { return Tile{} }

// FromGID decodes a Tiled GID. A GID whose index bits are zero is absent.
func FromGID(gid uint32) Tile {
	id := gid &^ flipMask
	if id == 0 {
		return Tile{}
	}
	return Tile{index: id - 1, flip: Flip(gid & flipMask), valid: true}
}

// GID encodes t as a Tiled GID.
func (t Tile) GID() uint32 {
	if !t.valid {
		return 0
	}
	return (t.index + 1) | uint32(t.flip)
}

// Index returns the tileset index and whether the tile is present.
func (t Tile) Index() (uint32, bool) { return t.index, t.valid }

// IsAbsent reports whether t is the empty tile.
func (t Tile) IsAbsent() bool { return !t.valid }

// Flip returns the flip flags.
func (t Tile) Flip() Flip { return t.flip }

// WithFlip returns t with the given flags set. It is a no-op on an absent tile.
func (t Tile) WithFlip(f Flip) Tile {
	if !t.valid {
		return t
	}
	t.flip = f & Flip(flipMask)
	return t
}

func (t Tile) String() string {
	if !t.valid {
		return "absent"
	}
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(t.index), 10))
	if t.flip&FlipH != 0 {
		b.WriteByte('h')
	}
	if t.flip&FlipV != 0 {
		b.WriteByte('v')
	}
	if t.flip&FlipD != 0 {
		b.WriteByte('d')
	}
	return b.String()
}

// MarshalJSON encodes t as its GID.
func (t Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.GID())
}

// UnmarshalJSON decodes a GID.
func (t *Tile) UnmarshalJSON(data []byte) error {
	var gid uint32
	if err := json.Unmarshal(data, &gid); err != nil {
		return err
	}
	*t = FromGID(gid)
	return nil
}

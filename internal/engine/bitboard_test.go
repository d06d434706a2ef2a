package engine

import "testing"

func TestShiftsClearFileWraparound(t *testing.T) {
	// A pawn on h4 shifted east must not reappear on the a-file.
	h4 := SquareMask(MakeSquare(3, 7))
	if got := shiftEast(h4); got != 0 {
		t.Fatalf("shiftEast(h4) = %#x, want 0 (no wraparound)", uint64(got))
	}
	a4 := SquareMask(MakeSquare(3, 0))
	if got := shiftWest(a4); got != 0 {
		t.Fatalf("shiftWest(a4) = %#x, want 0 (no wraparound)", uint64(got))
	}

	d4 := SquareMask(MakeSquare(3, 3))
	if got := shiftEast(d4); got != SquareMask(MakeSquare(3, 4)) {
		t.Fatalf("shiftEast(d4) = %#x, want e4", uint64(got))
	}
}

func TestPopLSBDrainsEveryBit(t *testing.T) {
	bb := Bitboard(0)
	want := map[Square]bool{}
	for _, sq := range []Square{0, 5, 17, 63} {
		bb |= SquareMask(sq)
		want[sq] = true
	}
	got := map[Square]bool{}
	for bb != 0 {
		got[bb.PopLSB()] = true
	}
	if len(got) != len(want) {
		t.Fatalf("PopLSB drained %d squares, want %d", len(got), len(want))
	}
	for sq := range want {
		if !got[sq] {
			t.Errorf("PopLSB missed square %v", sq)
		}
	}
	if bb != 0 {
		t.Fatalf("bitboard not empty after draining: %#x", uint64(bb))
	}
}

func TestCountAndMultiple(t *testing.T) {
	one := SquareMask(4)
	if one.Multiple() {
		t.Fatal("single-bit board reports Multiple")
	}
	two := SquareMask(4) | SquareMask(9)
	if !two.Multiple() {
		t.Fatal("two-bit board doesn't report Multiple")
	}
	if two.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", two.Count())
	}
}

func TestFileFillBothSpansWholeFile(t *testing.T) {
	d4 := SquareMask(MakeSquare(3, 3))
	got := fileFillBoth(d4)
	if got != FileMask(3) {
		t.Fatalf("fileFillBoth(d4) = %#x, want the whole d-file", uint64(got))
	}
}

func TestRelativeUpIsSideDependent(t *testing.T) {
	d4 := SquareMask(MakeSquare(3, 3))
	if relativeUp(White, d4) != SquareMask(MakeSquare(4, 3)) {
		t.Fatal("relativeUp(White, d4) should be d5")
	}
	if relativeUp(Black, d4) != SquareMask(MakeSquare(2, 3)) {
		t.Fatal("relativeUp(Black, d4) should be d3")
	}
}

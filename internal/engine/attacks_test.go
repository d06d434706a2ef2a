package engine

import "testing"

func TestKnightAttacksCorner(t *testing.T) {
	// a1's only knight moves are b3 and c2.
	want := SquareMask(MakeSquare(2, 1)) | SquareMask(MakeSquare(1, 2))
	if got := getKnightAttacks(MakeSquare(0, 0)); got != want {
		t.Fatalf("getKnightAttacks(a1) = %#x, want %#x", uint64(got), uint64(want))
	}
}

func TestKnightAttacksCenterHasEight(t *testing.T) {
	if c := getKnightAttacks(MakeSquare(4, 4)).Count(); c != 8 {
		t.Fatalf("knight on e5 has %d attacks, want 8", c)
	}
}

func TestKingAttacksCornerHasThree(t *testing.T) {
	if c := getKingAttacks(MakeSquare(0, 0)).Count(); c != 3 {
		t.Fatalf("king on a1 has %d attacks, want 3", c)
	}
}

func TestPawnAttacksAreCaptureOnly(t *testing.T) {
	// White pawn on e4 attacks d5 and f5 only.
	e4 := MakeSquare(3, 4)
	want := SquareMask(MakeSquare(4, 3)) | SquareMask(MakeSquare(4, 5))
	if got := getPawnAttacks(e4, White); got != want {
		t.Fatalf("white pawn attacks from e4 = %#x, want %#x", uint64(got), uint64(want))
	}

	// Black pawn on e4 attacks d3 and f3.
	want = SquareMask(MakeSquare(2, 3)) | SquareMask(MakeSquare(2, 5))
	if got := getPawnAttacks(e4, Black); got != want {
		t.Fatalf("black pawn attacks from e4 = %#x, want %#x", uint64(got), uint64(want))
	}
}

func TestRookAttacksStopAtBlocker(t *testing.T) {
	// Rook on a1, blocker on a4: attacks a2, a3, a4 (not beyond), plus the
	// whole open first rank.
	a1 := MakeSquare(0, 0)
	occ := SquareMask(MakeSquare(3, 0))
	attacks := getRookAttacks(a1, occ)

	if !attacks.Has(MakeSquare(2, 0)) || !attacks.Has(MakeSquare(3, 0)) {
		t.Fatal("rook should attack up to and including the blocker")
	}
	if attacks.Has(MakeSquare(4, 0)) {
		t.Fatal("rook attack leaked past the blocker")
	}
	if !attacks.Has(MakeSquare(0, 7)) {
		t.Fatal("rook should sweep the entire open rank")
	}
}

func TestBishopAttacksStopAtBlocker(t *testing.T) {
	d4 := MakeSquare(3, 3)
	occ := SquareMask(MakeSquare(5, 5)) // f6 blocks the a1-h8 diagonal beyond d4
	attacks := getBishopAttacks(d4, occ)

	if !attacks.Has(MakeSquare(5, 5)) {
		t.Fatal("bishop should attack up to and including the blocker")
	}
	if attacks.Has(MakeSquare(6, 6)) {
		t.Fatal("bishop attack leaked past the blocker")
	}
	if !attacks.Has(MakeSquare(0, 0)) {
		t.Fatal("bishop should see all the way down the open a1-h8 diagonal")
	}
}

func TestQueenAttacksUnionRookAndBishop(t *testing.T) {
	d4 := MakeSquare(3, 3)
	occ := Bitboard(0)
	want := getRookAttacks(d4, occ) | getBishopAttacks(d4, occ)
	if got := getQueenAttacks(d4, occ); got != want {
		t.Fatalf("queen attacks != rook | bishop attacks")
	}
}

func TestRayBetweenSameRank(t *testing.T) {
	a1, h1 := MakeSquare(0, 0), MakeSquare(0, 7)
	got := RayBetween(a1, h1)
	for f := 1; f < 7; f++ {
		if !got.Has(MakeSquare(0, f)) {
			t.Errorf("RayBetween(a1,h1) missing %v", MakeSquare(0, f))
		}
	}
	if got.Has(a1) || got.Has(h1) {
		t.Fatal("RayBetween must exclude its endpoints")
	}
}

func TestRayBetweenUnrelatedSquaresIsEmpty(t *testing.T) {
	if got := RayBetween(MakeSquare(0, 0), MakeSquare(1, 2)); got != 0 {
		t.Fatalf("RayBetween(a1,c2) = %#x, want 0 (no shared line)", uint64(got))
	}
}

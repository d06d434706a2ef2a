package engine

import "testing"

func drainOrderedMoves(o *OrderedMoves) []Move {
	var out []Move
	for {
		m, ok := o.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

// TestOrderedMovesNeverDuplicatesOrYieldsNull checks the staged iterator's
// core invariant: it never yields the same move twice and never yields
// NullMove.
func TestOrderedMovesNeverDuplicatesOrYieldsNull(t *testing.T) {
	p := newStartPosition()
	if !p.LoadFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1") {
		t.Fatal("failed to load FEN")
	}
	all := GenerateAll(p)
	hash := all[0]
	killer := all[1]
	counter := all[2]

	o := NewOrderedMoves(p, hash, killer, counter, false, nil)
	seen := map[Move]bool{}
	for _, m := range drainOrderedMoves(o) {
		if m.IsNull() {
			t.Fatal("staged iterator yielded NullMove")
		}
		if seen[m] {
			t.Fatalf("staged iterator yielded %s twice", m)
		}
		seen[m] = true
	}
}

func TestOrderedMovesCoverExactlyGenerateAll(t *testing.T) {
	p := newStartPosition()
	all := GenerateAll(p)
	allSet := map[Move]bool{}
	for _, m := range all {
		allSet[m] = true
	}

	o := NewOrderedMoves(p, NullMove, NullMove, NullMove, false, nil)
	got := drainOrderedMoves(o)
	if len(got) != len(all) {
		t.Fatalf("staged iterator yielded %d moves, GenerateAll has %d", len(got), len(all))
	}
	for _, m := range got {
		if !allSet[m] {
			t.Errorf("staged iterator yielded %s, not present in GenerateAll", m)
		}
	}
}

func TestOrderedMovesHashMoveFirst(t *testing.T) {
	p := newStartPosition()
	all := GenerateAll(p)
	hash := all[len(all)-1]

	o := NewOrderedMoves(p, hash, NullMove, NullMove, false, nil)
	first, ok := o.Next()
	if !ok || first != hash {
		t.Fatalf("first move = %v (ok=%v), want hash move %s", first, ok, hash)
	}
}

func TestQuiescenceStopsAfterGoodNoisy(t *testing.T) {
	p := newStartPosition()
	if !p.LoadFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1") {
		t.Fatal("failed to load FEN")
	}
	o := NewOrderedMoves(p, NullMove, NullMove, NullMove, true, nil)
	for _, m := range drainOrderedMoves(o) {
		if m.Type() != MoveEnPassant && p.Boards().PieceAt(m.Dst()).IsNone() && m.Type() != MovePromotion {
			t.Errorf("quiescence mode yielded a quiet move: %s", m)
		}
	}
}

// TestFirstNoisyMoveIsQueenCapture checks that on a tactical position with a
// queen-takes-queen capture available, the first move after the hash move
// is that capture, as a good noisy move.
func TestFirstNoisyMoveIsQueenCapture(t *testing.T) {
	// White queen on d1 attacks black queen on d8 with nothing else on the
	// d-file; clearly the best noisy move available.
	p := newStartPosition()
	if !p.LoadFEN("3qk3/8/8/8/8/8/8/3QK3 w - - 0 1") {
		t.Fatal("failed to load FEN")
	}
	qxq, ok := p.ParseUCIMove("d1d8")
	if !ok {
		t.Fatal("failed to parse d1d8")
	}

	o := NewOrderedMoves(p, NullMove, NullMove, NullMove, false, nil)
	first, ok := o.Next()
	if !ok {
		t.Fatal("iterator produced no moves")
	}
	if first != qxq {
		t.Fatalf("first move = %s, want queen capture %s", first, qxq)
	}
}

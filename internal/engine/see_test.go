package engine

import "testing"

// TestSEENonCaptureIsNeverPositive checks that SEE of a non-capture move
// with a non-promoting source yields a score ≤ 0.
func TestSEENonCaptureIsNeverPositive(t *testing.T) {
	p := newStartPosition()
	for _, m := range GenerateQuiet(p) {
		if m.Type() == MovePromotion || m.Type() == MoveEnPassant {
			continue
		}
		if !SEE(p, m, 1) {
			continue // SEE(m, 1) == false is consistent with score <= 0
		}
		t.Errorf("non-capture %s reported SEE >= 1", m)
	}
}

func TestSEEWinningCapture(t *testing.T) {
	// White rook on d1, black queen on d8, nothing else on the file: Rxd8
	// wins a free queen.
	p := newStartPosition()
	if !p.LoadFEN("3qk3/8/8/8/8/8/8/3RK3 w - - 0 1") {
		t.Fatal("failed to load FEN")
	}
	m, ok := p.ParseUCIMove("d1d8")
	if !ok {
		t.Fatal("failed to parse d1d8")
	}
	if !SEE(p, m, 0) {
		t.Fatal("Rxd8 winning a free queen should pass SEE(0)")
	}
	if !SEE(p, m, 400) {
		t.Fatal("Rxd8 should still pass a SEE threshold well below a queen's value")
	}
}

func TestSEELosingCapture(t *testing.T) {
	// White queen captures a pawn defended by a rook: Qxd8 loses the queen
	// for a pawn and a rook's worth of exchange.
	p := newStartPosition()
	if !p.LoadFEN("3rk3/3p4/8/8/8/8/8/3QK3 w - - 0 1") {
		t.Fatal("failed to load FEN")
	}
	m, ok := p.ParseUCIMove("d1d7")
	if !ok {
		t.Fatal("failed to parse d1d7")
	}
	if SEE(p, m, 0) {
		t.Fatal("Qxd7 walking into a defended pawn should fail SEE(0)")
	}
}

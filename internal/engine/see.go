package engine

// Static exchange evaluation. Grounded on original_source/src/see.h (itself
// noted there as ported from Ethereal/Weiss): a negamax gain-array walk over
// the attacker/defender stack on the destination square, with an early
// cutoff once the running score can no longer cross the threshold.
//
// seeValues deliberately differs from the main evaluation's pieceValues —
// this module keeps see.h's own scale (and its Pawn/Knight/Bishop/Rook/Queen
// LVA order, not the main evaluator's Knight-above-Bishop quirk) since SEE's
// only job is ranking exchanges against each other, not matching eval.go.
var seeValues = [6]int32{100, 450, 450, 650, 1250, 0}

func seeValue(bp BasePiece) int32 { return seeValues[bp] }

// seeGain is the material swing of playing move before any recapture:
// the value of whatever sits on the destination square, plus a promotion's
// value delta over the pawn it replaces. Castling never gains material;
// en passant's victim isn't on the destination square, so it's scored as a
// plain pawn capture.
func seeGain(b *PositionBoards, m Move) int32 {
	switch m.Type() {
	case MoveCastling:
		return 0
	case MoveEnPassant:
		return seeValue(Pawn)
	}

	score := int32(0)
	if victim := b.PieceAt(m.Dst()); !victim.IsNone() {
		score = seeValue(victim.Base())
	}
	if m.Type() == MovePromotion {
		score += seeValue(m.PromoTarget()) - seeValue(Pawn)
	}
	return score
}

// popLeastValuable removes and returns the cheapest attacker of color by
// from occ, in Pawn/Knight/Bishop/Rook/Queen/King order.
func popLeastValuable(b *PositionBoards, occ *Bitboard, attackers Bitboard, by Color) BasePiece {
	for _, bp := range [6]BasePiece{Pawn, Knight, Bishop, Rook, Queen, King} {
		board := attackers & b.PieceBBFor(bp, by)
		if board != 0 {
			*occ &^= Bitboard(1) << uint(board.LSB())
			return bp
		}
	}
	return NoBasePiece
}

// SEE reports whether the net material swing of playing move on pos is at
// least threshold, once every attacker and defender on the destination
// square has been exchanged in ascending value order.
func SEE(pos *Position, m Move, threshold int32) bool {
	b := pos.Boards()
	color := pos.ToMove()

	score := seeGain(b, m) - threshold
	if score < 0 {
		return false
	}

	var next BasePiece
	if m.Type() == MovePromotion {
		next = m.PromoTarget()
	} else {
		next = b.PieceAt(m.Src()).Base()
	}
	score -= seeValue(next)
	if score >= 0 {
		return true
	}

	square := m.Dst()
	occ := b.Occupancy() &^ SquareMask(m.Src()) &^ SquareMask(square)

	queens := b.Queens()
	bishops := queens | b.Bishops()
	rooks := queens | b.Rooks()

	attackers := allAttackersTo(b, square, occ)
	us := color.Opponent()

	for {
		ourAttackers := attackers & b.ColorBB(us)
		if ourAttackers.Empty() {
			break
		}

		next = popLeastValuable(b, &occ, ourAttackers, us)

		if next == Pawn || next == Bishop || next == Queen {
			attackers |= getBishopAttacks(square, occ) & bishops
		}
		if next == Rook || next == Queen {
			attackers |= getRookAttacks(square, occ) & rooks
		}
		attackers &= occ

		score = -score - 1 - seeValue(next)
		us = us.Opponent()

		if score >= 0 {
			// Our only attacker left was our king, but the opponent can
			// still recapture — the exchange doesn't actually end here.
			if next == King && attackers&b.ColorBB(us) != 0 {
				us = us.Opponent()
			}
			break
		}
	}

	return color != us
}

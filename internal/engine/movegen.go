package engine

// Pseudo-legal move generation, grounded on original_source/src/movegen.cpp:
// noisy and quiet moves are generated separately so the staged move orderer
// can interleave them, using a destination-square mask that collapses to the
// checkers bitboard (plus the blocking ray) under single check and to "king
// moves only" under double check. Legality is never checked here — callers
// apply the move and look at Checkers() afterward, the way the rest of this
// package's incremental bookkeeping assumes.

const (
	offsetUp      = 8
	offsetUpLeft  = 7
	offsetUpRight = 9
)

func relativeOffset(c Color, offset int) int {
	if c == White {
		return offset
	}
	return -offset
}

func promotionRankFor(c Color) Bitboard {
	if c == White {
		return Rank8
	}
	return Rank1
}

func thirdRankFor(c Color) Bitboard {
	if c == White {
		return RankMask(2)
	}
	return RankMask(5)
}

func pushPawns(dst *[]Move, board Bitboard, offset int, typ MoveType) {
	for board != 0 {
		d := board.PopLSB()
		s := Square(int(d) - offset)
		*dst = append(*dst, NewMove(s, d, typ))
	}
}

func pushPromotions(dst *[]Move, board Bitboard, offset int, targets []BasePiece) {
	for board != 0 {
		d := board.PopLSB()
		s := Square(int(d) - offset)
		for _, t := range targets {
			*dst = append(*dst, NewPromotion(s, d, t))
		}
	}
}

func pushFromSquare(dst *[]Move, src Square, board Bitboard, typ MoveType) {
	for board != 0 {
		d := board.PopLSB()
		*dst = append(*dst, NewMove(src, d, typ))
	}
}

var queenOnly = []BasePiece{Queen}

func underpromotionTargets(opts *Options) []BasePiece {
	if opts.Underpromotions {
		return []BasePiece{Knight, Rook, Bishop}
	}
	return []BasePiece{Knight}
}

func generatePawnsNoisy(dst *[]Move, b *PositionBoards, c Color, enPassant Square, dstMask Bitboard) {
	them := c.Opponent()
	theirs := b.ColorBB(them)
	pawns := b.PieceBBFor(Pawn, c)
	promoRank := promotionRankFor(c)

	upLeftOff := relativeOffset(c, offsetUpLeft)
	upRightOff := relativeOffset(c, offsetUpRight)
	upOff := relativeOffset(c, offsetUp)

	leftAttacks := relativeUpLeft(c, pawns) & dstMask
	rightAttacks := relativeUpRight(c, pawns) & dstMask

	pushPromotions(dst, leftAttacks&theirs&promoRank, upLeftOff, queenOnly)
	pushPromotions(dst, rightAttacks&theirs&promoRank, upRightOff, queenOnly)

	forwardDstMask := dstMask & promoRank &^ theirs
	forwards := relativeUp(c, pawns) & forwardDstMask
	pushPromotions(dst, forwards, upOff, queenOnly)

	pushPawns(dst, leftAttacks&theirs&^promoRank, upLeftOff, MoveStandard)
	pushPawns(dst, rightAttacks&theirs&^promoRank, upRightOff, MoveStandard)

	if enPassant != NoSquare {
		epMask := SquareMask(enPassant)
		pushPawns(dst, leftAttacks&epMask, upLeftOff, MoveEnPassant)
		pushPawns(dst, rightAttacks&epMask, upRightOff, MoveEnPassant)
	}
}

func generatePawnsQuiet(dst *[]Move, b *PositionBoards, c Color, opts *Options, dstMask, occ Bitboard) {
	them := c.Opponent()
	theirs := b.ColorBB(them)
	pawns := b.PieceBBFor(Pawn, c)
	promoRank := promotionRankFor(c)
	thirdRank := thirdRankFor(c)

	upLeftOff := relativeOffset(c, offsetUpLeft)
	upRightOff := relativeOffset(c, offsetUpRight)
	upOff := relativeOffset(c, offsetUp)

	underTargets := underpromotionTargets(opts)

	leftAttacks := relativeUpLeft(c, pawns) & dstMask
	rightAttacks := relativeUpRight(c, pawns) & dstMask

	pushPromotions(dst, leftAttacks&theirs&promoRank, upLeftOff, underTargets)
	pushPromotions(dst, rightAttacks&theirs&promoRank, upRightOff, underTargets)

	forwardDstMask := dstMask &^ theirs
	forwards := relativeUp(c, pawns) &^ occ

	singles := forwards & forwardDstMask
	pushPromotions(dst, singles&promoRank, upOff, underTargets)
	singles &^= promoRank

	forwards &= thirdRank
	doubles := relativeUp(c, forwards) & forwardDstMask
	pushPawns(dst, doubles, 2*upOff, MoveStandard)
	pushPawns(dst, singles, upOff, MoveStandard)
}

func generateKnights(dst *[]Move, b *PositionBoards, c Color, dstMask Bitboard) {
	for bb := b.PieceBBFor(Knight, c); bb != 0; {
		src := bb.PopLSB()
		pushFromSquare(dst, src, getKnightAttacks(src)&dstMask, MoveStandard)
	}
}

func generateSliders(dst *[]Move, b *PositionBoards, c Color, dstMask Bitboard) {
	occ := b.Occupancy()
	queens := b.PieceBBFor(Queen, c)

	for bb := queens | b.PieceBBFor(Rook, c); bb != 0; {
		src := bb.PopLSB()
		pushFromSquare(dst, src, getRookAttacks(src, occ)&dstMask, MoveStandard)
	}
	for bb := queens | b.PieceBBFor(Bishop, c); bb != 0; {
		src := bb.PopLSB()
		pushFromSquare(dst, src, getBishopAttacks(src, occ)&dstMask, MoveStandard)
	}
}

const (
	whiteShortOcc Bitboard = 0x60
	whiteLongOcc  Bitboard = 0x0E
	blackShortOcc Bitboard = 0x6000000000000000
	blackLongOcc  Bitboard = 0x0E00000000000000
)

// generateFrcCastling mirrors generateFrcCastling in movegen.cpp exactly:
// the squares strictly between king and rook (in both directions) plus both
// final squares must be empty (aside from the king/rook themselves), and
// every square the king passes through or lands on must be safe.
func generateFrcCastling(dst *[]Move, pos *Position, occ Bitboard, king, kingDst, rook, rookDst Square) {
	toKingDst := RayBetween(king, kingDst)
	toRook := RayBetween(king, rook)

	occWithoutMovers := occ &^ SquareMask(king) &^ SquareMask(rook)

	if (occWithoutMovers & (toKingDst | toRook | SquareMask(kingDst) | SquareMask(rookDst))) != 0 {
		return
	}
	if anyAttacked(pos.Boards(), toKingDst|SquareMask(kingDst), pos.ToMove().Opponent()) {
		return
	}
	*dst = append(*dst, NewCastling(king, rook))
}

func generateCastling(dst *[]Move, pos *Position) {
	if pos.IsCheck() {
		return
	}

	b := pos.Boards()
	occ := b.Occupancy()
	c := pos.ToMove()
	rooks := pos.CastlingRooks()
	king := pos.King(c)
	opts := pos.Options()

	if opts.Chess960 {
		if c == White {
			if rooks[White][wingShort] != NoSquare {
				generateFrcCastling(dst, pos, occ, king, MakeSquare(0, 6), rooks[White][wingShort], MakeSquare(0, 5))
			}
			if rooks[White][wingLong] != NoSquare {
				generateFrcCastling(dst, pos, occ, king, MakeSquare(0, 2), rooks[White][wingLong], MakeSquare(0, 3))
			}
		} else {
			if rooks[Black][wingShort] != NoSquare {
				generateFrcCastling(dst, pos, occ, king, MakeSquare(7, 6), rooks[Black][wingShort], MakeSquare(7, 5))
			}
			if rooks[Black][wingLong] != NoSquare {
				generateFrcCastling(dst, pos, occ, king, MakeSquare(7, 2), rooks[Black][wingLong], MakeSquare(7, 3))
			}
		}
		return
	}

	if c == White {
		if rooks[White][wingShort] != NoSquare && occ&whiteShortOcc == 0 && !isAttacked(b, MakeSquare(0, 5), Black) {
			*dst = append(*dst, NewCastling(king, MakeSquare(0, 7)))
		}
		if rooks[White][wingLong] != NoSquare && occ&whiteLongOcc == 0 && !isAttacked(b, MakeSquare(0, 3), Black) {
			*dst = append(*dst, NewCastling(king, MakeSquare(0, 0)))
		}
	} else {
		if rooks[Black][wingShort] != NoSquare && occ&blackShortOcc == 0 && !isAttacked(b, MakeSquare(7, 5), White) {
			*dst = append(*dst, NewCastling(king, MakeSquare(7, 7)))
		}
		if rooks[Black][wingLong] != NoSquare && occ&blackLongOcc == 0 && !isAttacked(b, MakeSquare(7, 3), White) {
			*dst = append(*dst, NewCastling(king, MakeSquare(7, 0)))
		}
	}
}

func generateKings(dst *[]Move, pos *Position, dstMask Bitboard, withCastling bool) {
	c := pos.ToMove()
	src := pos.King(c)
	pushFromSquare(dst, src, getKingAttacks(src)&dstMask, MoveStandard)

	if withCastling {
		generateCastling(dst, pos)
	}
}

// GenerateNoisy yields captures, queen promotions, and en-passant captures.
func GenerateNoisy(pos *Position) []Move {
	moves := make([]Move, 0, 32)
	b := pos.Boards()
	c := pos.ToMove()
	them := c.Opponent()

	kingDstMask := b.ColorBB(them)
	dstMask := kingDstMask

	var epMask, epPawn Bitboard
	ep := pos.EnPassant()
	if ep != NoSquare {
		epMask = SquareMask(ep)
		if c == Black {
			epPawn = shiftNorth(epMask)
		} else {
			epPawn = shiftSouth(epMask)
		}
	}

	ours := b.ColorBB(c)
	promos := ^ours & promotionRankFor(c)
	pawnDstMask := kingDstMask | epMask | promos

	if pos.IsCheck() {
		if pos.Checkers().Multiple() {
			generateKings(&moves, pos, kingDstMask, false)
			return moves
		}
		checkerSq := pos.Checkers().LSB()
		dstMask = pos.Checkers()
		pawnDstMask = pos.Checkers() | (promos & RayBetween(pos.King(c), checkerSq))
		if pos.Checkers()&epPawn != 0 {
			pawnDstMask |= epMask
		}
	}

	generateSliders(&moves, b, c, dstMask)
	generatePawnsNoisy(&moves, b, c, ep, pawnDstMask)
	generateKnights(&moves, b, c, dstMask)
	generateKings(&moves, pos, kingDstMask, false)
	return moves
}

// GenerateQuiet yields every non-capturing, non-promotion move plus every
// underpromotion (capturing or not), including castling.
func GenerateQuiet(pos *Position) []Move {
	moves := make([]Move, 0, 48)
	b := pos.Boards()
	c := pos.ToMove()
	them := c.Opponent()

	occ := b.ColorBB(c) | b.ColorBB(them)
	kingDstMask := ^occ

	dstMask := kingDstMask
	pawnDstMask := kingDstMask

	if pos.IsCheck() {
		if pos.Checkers().Multiple() {
			generateKings(&moves, pos, kingDstMask, false)
			return moves
		}
		checkerSq := pos.Checkers().LSB()
		dstMask = RayBetween(pos.King(c), checkerSq)
		pawnDstMask = dstMask | (pos.Checkers() & promotionRankFor(c))
	} else {
		pawnDstMask |= promotionRankFor(c)
	}

	generateSliders(&moves, b, c, dstMask)
	generatePawnsQuiet(&moves, b, c, pos.Options(), pawnDstMask, occ)
	generateKnights(&moves, b, c, dstMask)
	generateKings(&moves, pos, kingDstMask, true)
	return moves
}

// GenerateAll is the convenience union of GenerateNoisy and GenerateQuiet,
// for callers (tests, perft) that don't need the noisy/quiet split.
func GenerateAll(pos *Position) []Move {
	moves := make([]Move, 0, 64)
	b := pos.Boards()
	c := pos.ToMove()

	kingDstMask := ^b.ColorBB(c)
	dstMask := kingDstMask

	var epMask, epPawn Bitboard
	ep := pos.EnPassant()
	if ep != NoSquare {
		epMask = SquareMask(ep)
		if c == Black {
			epPawn = shiftNorth(epMask)
		} else {
			epPawn = shiftSouth(epMask)
		}
	}

	pawnDstMask := kingDstMask

	if pos.IsCheck() {
		if pos.Checkers().Multiple() {
			generateKings(&moves, pos, kingDstMask, false)
			return moves
		}
		checkerSq := pos.Checkers().LSB()
		dstMask = pos.Checkers() | RayBetween(pos.King(c), checkerSq)
		pawnDstMask = dstMask
		if pos.Checkers()&epPawn != 0 {
			pawnDstMask |= epMask
		}
	}

	generateSliders(&moves, b, c, dstMask)
	generatePawnsNoisy(&moves, b, c, ep, pawnDstMask)
	generatePawnsQuiet(&moves, b, c, pos.Options(), dstMask, b.Occupancy())
	generateKnights(&moves, b, c, dstMask)
	generateKings(&moves, pos, kingDstMask, true)
	return moves
}

// IsPseudolegal reports whether m is among GenerateAll's output — used by
// the staged orderer to validate a hash move cheaply. Generate-and-match
// rather than a standalone geometry check: cheaper to keep in sync with
// movegen.go's dst-mask/check-evasion rules than a second legality path.
// Named after original_source/src/position/position.h's declared
// isPseudolegal, whose contract (not its geometry-check implementation) this
// follows.
func (p *Position) IsPseudolegal(m Move) bool {
	if m.IsNull() {
		return false
	}
	for _, gm := range GenerateAll(p) {
		if gm == m {
			return true
		}
	}
	return false
}

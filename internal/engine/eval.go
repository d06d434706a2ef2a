package engine

// Piece values and PST tables, grounded verbatim on the teacher's
// constants: Knight valued above Bishop (320 vs 300) is the teacher's own
// choice, kept rather than "corrected".
var pieceValues = [6]int32{100, 320, 300, 500, 900, 20000}
var piecePhaseWeight = [6]int{0, 1, 1, 2, 4, 0}

var pst [2][6][64]int32
var pstEnd [2][6][64]int32

const tempoBonus = 20

func init() {
	initAttacks()
	initMagicBitboards()
	initLineBB()
	initZobrist()
	initPST()
}

// relSquare maps a square onto "as seen by white", so every evaluation term
// below can be written once and used for both colors — the symmetry the
// mirror-evaluation test exercises end to end.
func relSquare(c Color, sq Square) Square {
	if c == White {
		return sq
	}
	return sq.Mirror()
}

func relRank(c Color, rank int) int {
	if c == White {
		return rank
	}
	return 7 - rank
}

func initPST() {
	whitePawn := [64]int32{
		0, 0, 0, 0, 0, 0, 0, 0,
		-5, 10, 10, -20, -20, 10, 10, -5,
		0, 0, -10, 5, 5, 0, 0, 0,
		0, -10, 10, 20, 20, 10, 5, 0,
		10, 10, 15, 25, 25, 15, 10, 10,
		15, 15, 20, 30, 30, 20, 15, 15,
		30, 30, 30, 40, 40, 30, 30, 30,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	whiteKnight := [64]int32{
		-30, -20, -10, -10, -10, -10, -20, -30,
		-20, -10, 5, 5, 5, 5, -10, -20,
		-20, 5, 15, 15, 15, 15, 5, -20,
		-10, 5, 15, 20, 20, 15, 5, -10,
		-10, 5, 15, 25, 25, 15, 5, -10,
		-20, 5, 10, 15, 15, 10, 5, -20,
		-20, 0, 0, 0, 0, 0, 0, -20,
		-30, -10, -10, -10, -10, -10, -20, -30,
	}
	whiteBishop := [64]int32{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 10, 5, 5, 5, 5, 10, -10,
		-10, 5, 5, 15, 15, 5, 5, -10,
		-10, 5, 5, 15, 15, 5, 5, -10,
		-10, 5, 10, 20, 20, 10, 5, -10,
		-10, 10, 10, 15, 15, 10, 10, -10,
		-10, 10, 5, 5, 5, 5, 10, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	whiteRook := [64]int32{
		0, 0, 5, 10, 10, 5, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		10, 15, 15, 20, 20, 15, 15, 10,
		0, 0, 0, 5, 5, 0, 0, 0,
	}
	whiteQueen := [64]int32{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 5, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}
	whiteKing := [64]int32{
		30, 20, 5, -10, -10, 5, 20, 30,
		10, 10, -15, -30, -30, -15, 10, 10,
		-20, -20, -20, -20, -20, -20, -20, -20,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	}

	whitePawnEG := [64]int32{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		10, 10, 10, 10, 10, 10, 10, 10,
		20, 20, 20, 20, 20, 20, 20, 20,
		30, 30, 30, 30, 30, 30, 30, 30,
		40, 40, 40, 40, 40, 40, 40, 40,
		60, 60, 60, 60, 60, 60, 60, 60,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	whiteKnightEG := [64]int32{
		-20, -10, -5, -5, -5, -5, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 5, -10,
		-5, 5, 5, 10, 10, 5, 5, -5,
		-5, 5, 5, 10, 10, 5, 5, -5,
		-10, 5, 5, 5, 5, 5, 5, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -5, -5, -5, -5, -10, -20,
	}
	whiteBishopEG := [64]int32{
		-10, -5, -5, -5, -5, -5, -5, -10,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-10, -5, -5, -5, -5, -5, -5, -10,
	}
	whiteRookEG := [64]int32{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		15, 20, 20, 25, 25, 20, 20, 15,
		10, 10, 10, 10, 10, 10, 10, 10,
	}
	whiteQueenEG := [64]int32{}
	whiteKingEG := [64]int32{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 10, 20, 20, 10, 0, -10,
		-10, 0, 10, 30, 30, 10, 0, -10,
		-10, 0, 10, 30, 30, 10, 0, -10,
		-10, 0, 10, 20, 20, 10, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}

	mg := [6][64]int32{whitePawn, whiteKnight, whiteBishop, whiteRook, whiteQueen, whiteKing}
	eg := [6][64]int32{whitePawnEG, whiteKnightEG, whiteBishopEG, whiteRookEG, whiteQueenEG, whiteKingEG}

	for bp := 0; bp < 6; bp++ {
		for sq := 0; sq < 64; sq++ {
			pst[White][bp][sq] = mg[bp][sq]
			pstEnd[White][bp][sq] = eg[bp][sq]
			pst[Black][bp][sq] = mg[bp][Square(sq).Mirror()]
			pstEnd[Black][bp][sq] = eg[bp][Square(sq).Mirror()]
		}
	}
}

// pieceTaperedValue is the flat piece value plus its piece-square term,
// signed white-positive/black-negative — this module folds PST into the
// incrementally tracked "material" field (see DESIGN.md for why) rather
// than recomputing PST from scratch on every static_eval call, and signs it
// at the source so every call site can just Add/Sub without re-deriving the
// white-minus-black convention the rest of the evaluation uses.
func pieceTaperedValue(p Piece, sq Square) TaperedScore {
	bp := p.Base()
	c := p.Color()
	unsigned := TaperedScore{
		MG: pieceValues[bp] + pst[c][bp][sq],
		EG: pieceValues[bp] + pstEnd[c][bp][sq],
	}
	return signed(c, unsigned)
}

const (
	isolatedPawnPenalty     = 15
	doubledPawnPenalty      = 10
	bonusBishopPair         = 30
	bonusRookOpenFile       = 20
	bonusRookSemiOpenFile   = 8
	bonusPawnShield         = 10
	penaltyPawnStorm        = 5
	bonusKnightOutpost      = 20
	penaltyKingTropism      = 2
	penaltyKingOpenFile     = 15
	bonusPasserDefended     = 10
	bonusMinorBehindPawn    = 5
	bonusPawnAttackMinor    = 15
	bonusPawnAttackRook     = 25
	bonusMinorAttackMajor   = 20
	bonusRookSupportsPasser = 15
)

var passedPawnBonus = [8]int32{0, 10, 20, 40, 70, 110, 160, 0}
var phalanxBonus = [8]int32{0, 0, 5, 8, 12, 20, 30, 0}

// blockedPasserPenalty grows the closer a blocked passer already is to
// queening — a pawn stopped on the 7th has far more invested in the block
// than one stopped on the 3rd.
var blockedPasserPenalty = [8]int32{0, 4, 5, 6, 8, 12, 18, 0}

var mobilityBonus = [4][]int32{
	{-20, -10, 0, 10, 15, 20, 25, 30, 35},
	{-20, -10, 0, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60},
	{-20, -10, 0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60},
	{-40, -20, 0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115, 120, 125},
}

func mobilityTerm(pieceIdx int, count int) int32 {
	table := mobilityBonus[pieceIdx]
	if count >= len(table) {
		count = len(table) - 1
	}
	if count < 0 {
		count = 0
	}
	return table[count]
}

// evalPawnStructure computes the white-minus-black tapered pawn score and
// passer bitboards, cached by pawn key. Grounded on the teacher's
// evalPawns, generalized to be exactly symmetric between colors via
// relRank so the mirror-evaluation test holds.
func evalPawnStructure(b *PositionBoards, cache *PawnCache, pawnKey uint64) (TaperedScore, [2]Bitboard) {
	if cache != nil {
		if e, ok := cache.probe(pawnKey); ok {
			return e.score, e.passers
		}
	}

	var total TaperedScore
	var passers [2]Bitboard

	for _, c := range [2]Color{White, Black} {
		ourPawns := b.PieceBBFor(Pawn, c)
		theirPawns := b.PieceBBFor(Pawn, c.Opponent())

		bb := ourPawns
		for bb != 0 {
			sq := bb.PopLSB()
			file := sq.File()
			rank := relRank(c, sq.Rank())

			fileMask := FileMask(file)
			doubled := (ourPawns & fileMask).Multiple()
			if doubled {
				total = total.Add(signed(c, TaperedScore{-doubledPawnPenalty, -doubledPawnPenalty}))
			}

			isolated := (ourPawns & adjacentFiles(fileMask)).Empty()
			if isolated {
				total = total.Add(signed(c, TaperedScore{-isolatedPawnPenalty, -isolatedPawnPenalty}))
			}

			// Phalanx: a friendly pawn directly beside this one on the same rank.
			east := sq + 1
			if sq.File() < 7 && ourPawns.Has(east) {
				total = total.Add(signed(c, TaperedScore{phalanxBonus[rank], phalanxBonus[rank]}))
			}

			// Passed: no enemy pawn on this file or an adjacent file, ahead
			// of this pawn from c's perspective.
			frontSpan := (fileMask | adjacentFiles(fileMask)) & relativeFileFillAhead(c, SquareMask(sq)) &^ SquareMask(sq)
			if (theirPawns & frontSpan).Empty() {
				passers[c] |= SquareMask(sq)
				total = total.Add(signed(c, TaperedScore{passedPawnBonus[rank], passedPawnBonus[rank] * 2}))

				if getPawnAttacks(sq, c.Opponent())&ourPawns != 0 {
					total = total.Add(signed(c, TaperedScore{bonusPasserDefended, bonusPasserDefended}))
				}
			}
		}
	}

	total = total.Add(passerSupportAndBlockingTerms(b, passers))

	if cache != nil {
		cache.store(pawnKey, total, passers)
	}
	return total, passers
}

// passerSupportAndBlockingTerms covers the rest of the passed-pawn family
// that needs more than a single pawn's own file to evaluate: a
// blocked passer (any piece sits directly in its path) is worth much
// less than a free one, a rook parked behind its own passer on the same
// file supports its advance, and a passer outside the defending king's
// "square of the pawn" queens uncontested once the board has been cleared
// of everything but kings and pawns.
func passerSupportAndBlockingTerms(b *PositionBoards, passers [2]Bitboard) TaperedScore {
	var total TaperedScore
	occ := b.Occupancy()

	for _, c := range [2]Color{White, Black} {
		opp := c.Opponent()
		enemyHasPieces := !(b.MinorsFor(opp) | b.MajorsFor(opp)).Empty()

		for bb := passers[c]; bb != 0; {
			sq := bb.PopLSB()
			file := sq.File()

			stopSquare := relativeUp(c, SquareMask(sq))
			if stopSquare&occ != 0 {
				penalty := blockedPasserPenalty[relRank(c, sq.Rank())]
				total = total.Add(signed(c, TaperedScore{-penalty, -penalty}))
			}

			behindMask := FileMask(file) &^ relativeFileFillAhead(c, SquareMask(sq))
			if (behindMask & b.PieceBBFor(Rook, c)) != 0 {
				total = total.Add(signed(c, TaperedScore{bonusRookSupportsPasser, bonusRookSupportsPasser}))
			}

			if !enemyHasPieces {
				enemyKing := b.PieceBBFor(King, opp).LSB()
				if enemyKing != NoSquare && !kingCanCatchPawn(c, sq, enemyKing) {
					total = total.Add(signed(c, TaperedScore{0, passedPawnBonus[relRank(c, sq.Rank())]}))
				}
			}
		}
	}
	return total
}

// kingCanCatchPawn implements the classic "square of the pawn" rule: the
// defending king catches the pawn if it can reach the queening square no
// later than the pawn does, measured in Chebyshev distance (the side to
// move isn't tracked here, so this is the side-to-move-agnostic version —
// a one-ply pessimistic approximation that favors the attacker slightly).
func kingCanCatchPawn(c Color, pawn, defenderKing Square) bool {
	queeningRank := 7
	if c == Black {
		queeningRank = 0
	}
	queeningSq := MakeSquare(queeningRank, pawn.File())
	pawnDist := abs(queeningRank - pawn.Rank())
	kingDist := chebyshevDistance(defenderKing, queeningSq)
	return kingDist <= pawnDist
}

// signed returns s for white, its negation for black — the idiom every
// per-side term below uses to accumulate a white-minus-black total without
// branching on sign at every call site.
func signed(c Color, s TaperedScore) TaperedScore {
	if c == White {
		return s
	}
	return s.Neg()
}

// mobilityAndMinorTerms folds mobility, bishop pair, rook files, knight
// outposts, minor-behind-pawn, and the cross-piece attack bonuses into one
// pass per side, grounded on the teacher's evalMobility/evalBishopPair/
// evalRooksOnFiles/evalOutposts.
func mobilityAndMinorTerms(b *PositionBoards, c Color) TaperedScore {
	var total TaperedScore
	opp := c.Opponent()
	own := b.ColorBB(c)
	occ := b.Occupancy()
	enemyPawnAttacks := pawnAttackSpan(b, opp)

	available := ^own &^ enemyPawnAttacks

	knights := b.PieceBBFor(Knight, c)
	for bb := knights; bb != 0; {
		sq := bb.PopLSB()
		total = total.Add(TaperedScore{mobilityTerm(0, (getKnightAttacks(sq) & available).Count()), mobilityTerm(0, (getKnightAttacks(sq) & available).Count())})

		if relativeFileFillAhead(c, SquareMask(sq))&b.PieceBBFor(Pawn, c) != 0 {
			total = total.Add(TaperedScore{bonusMinorBehindPawn, bonusMinorBehindPawn})
		}
		// Outpost: no enemy pawn can ever attack this square, and a
		// friendly pawn defends it now.
		enemyPawns := b.PieceBBFor(Pawn, opp)
		neverAttacked := (relativeFileFillAhead(c, relativeUpLeft(c, SquareMask(sq))|relativeUpRight(c, SquareMask(sq))) & enemyPawns).Empty()
		defended := getPawnAttacks(sq, opp)&b.PieceBBFor(Pawn, c) != 0
		if neverAttacked && defended {
			total = total.Add(TaperedScore{bonusKnightOutpost, bonusKnightOutpost})
		}
	}

	xrayOcc := occ &^ b.PieceBBFor(Bishop, c) &^ b.PieceBBFor(Queen, c)
	bishops := b.PieceBBFor(Bishop, c)
	for bb := bishops; bb != 0; {
		sq := bb.PopLSB()
		attacks := getBishopAttacks(sq, xrayOcc) & available
		total = total.Add(TaperedScore{mobilityTerm(1, attacks.Count()), mobilityTerm(1, attacks.Count())})
		if relativeFileFillAhead(c, SquareMask(sq))&b.PieceBBFor(Pawn, c) != 0 {
			total = total.Add(TaperedScore{bonusMinorBehindPawn, bonusMinorBehindPawn})
		}
	}
	if bishops.Count() >= 2 && !(bishops & LightSquares).Empty() && !(bishops & DarkSquares).Empty() {
		total = total.Add(TaperedScore{bonusBishopPair, bonusBishopPair})
	}

	xrayOccR := occ &^ b.PieceBBFor(Rook, c) &^ b.PieceBBFor(Queen, c)
	rooks := b.PieceBBFor(Rook, c)
	for bb := rooks; bb != 0; {
		sq := bb.PopLSB()
		attacks := getRookAttacks(sq, xrayOccR) & available
		total = total.Add(TaperedScore{mobilityTerm(2, attacks.Count()), mobilityTerm(2, attacks.Count())})

		file := FileMask(sq.File())
		ownPawnsOnFile := file & b.PieceBBFor(Pawn, c)
		enemyPawnsOnFile := file & b.PieceBBFor(Pawn, opp)
		if ownPawnsOnFile.Empty() && enemyPawnsOnFile.Empty() {
			total = total.Add(TaperedScore{bonusRookOpenFile, bonusRookOpenFile})
		} else if ownPawnsOnFile.Empty() {
			total = total.Add(TaperedScore{bonusRookSemiOpenFile, bonusRookSemiOpenFile})
		}
	}

	xrayOccQ := occ &^ b.PieceBBFor(Bishop, c) &^ b.PieceBBFor(Rook, c) &^ b.PieceBBFor(Queen, c)
	queens := b.PieceBBFor(Queen, c)
	for bb := queens; bb != 0; {
		sq := bb.PopLSB()
		attacks := (getBishopAttacks(sq, xrayOccQ) | getRookAttacks(sq, xrayOccQ)) & available
		total = total.Add(TaperedScore{mobilityTerm(3, attacks.Count()), mobilityTerm(3, attacks.Count())})
	}

	return total
}

func pawnAttackSpan(b *PositionBoards, c Color) Bitboard {
	pawns := b.PieceBBFor(Pawn, c)
	return relativeUpLeft(c, pawns) | relativeUpRight(c, pawns)
}

// kingSafetyTerms covers pawn shelter/storm and king tropism/open-file
// penalties; hanging-piece and full attacker-weight king-safety terms are
// deliberately left stubbed (see DESIGN.md).
func kingSafetyTerms(b *PositionBoards, c Color) TaperedScore {
	var total TaperedScore
	opp := c.Opponent()
	kingSq := b.PieceBBFor(King, c).LSB()
	if kingSq == NoSquare {
		return total
	}

	file := FileMask(kingSq.File())
	ownPawnsOnFile := file & b.PieceBBFor(Pawn, c)
	enemyPawnsOnFile := file & b.PieceBBFor(Pawn, opp)
	if ownPawnsOnFile.Empty() {
		total.MG -= penaltyKingOpenFile
		if enemyPawnsOnFile.Empty() {
			total.MG -= penaltyKingOpenFile
		}
	}

	shield := getKingAttacks(kingSq) & relativeUp(c, b.PieceBBFor(Pawn, c))
	total.MG += int32(shield.Count()) * bonusPawnShield

	storm := getKingAttacks(kingSq) & relativeUp(c, b.PieceBBFor(Pawn, opp))
	total.MG -= int32(storm.Count()) * penaltyPawnStorm

	enemyMinorsAndMajors := b.MinorsFor(opp) | b.MajorsFor(opp)
	for bb := enemyMinorsAndMajors; bb != 0; {
		sq := bb.PopLSB()
		d := chebyshevDistance(sq, kingSq)
		total.MG -= int32(7-d) * penaltyKingTropism
	}

	return total
}

func chebyshevDistance(a, b Square) int {
	dr := abs(a.Rank() - b.Rank())
	df := abs(a.File() - b.File())
	if dr > df {
		return dr
	}
	return df
}

// crossAttackTerms scores pawns/minors/rooks threatening higher-value enemy
// pieces right now, grounded on the teacher's cross-piece attack bonuses.
func crossAttackTerms(b *PositionBoards, c Color) TaperedScore {
	var total TaperedScore
	opp := c.Opponent()
	occ := b.Occupancy()

	pawns := b.PieceBBFor(Pawn, c)
	pawnTargets := (relativeUpLeft(c, pawns) | relativeUpRight(c, pawns)) & (b.MinorsFor(opp) | b.MajorsFor(opp))
	total.MG += int32(pawnTargets.Count()) * bonusPawnAttackMinor

	for bb := b.MinorsFor(c); bb != 0; {
		sq := bb.PopLSB()
		var attacks Bitboard
		if b.PieceAt(sq).Base() == Knight {
			attacks = getKnightAttacks(sq)
		} else {
			attacks = getBishopAttacks(sq, occ)
		}
		if attacks&b.MajorsFor(opp) != 0 {
			total.MG += bonusMinorAttackMajor
		}
	}

	for bb := b.PieceBBFor(Rook, c); bb != 0; {
		sq := bb.PopLSB()
		if getRookAttacks(sq, occ)&b.PieceBBFor(Queen, opp) != 0 {
			total.MG += bonusPawnAttackRook
		}
	}

	return total
}

// sideEval sums every per-side term for color c.
func sideEval(b *PositionBoards, c Color) TaperedScore {
	var total TaperedScore
	total = total.Add(mobilityAndMinorTerms(b, c))
	total = total.Add(kingSafetyTerms(b, c))
	total = total.Add(crossAttackTerms(b, c))
	return total
}

// StaticEval returns the position's score from the side-to-move's point of
// view, in centipawns.
func (p *Position) StaticEval() int32 {
	st := p.top()
	b := &st.Boards

	score := st.Material

	pawnScore, _ := evalPawnStructure(b, p.pawnCache, st.PawnKey)
	score = score.Add(pawnScore)

	score = score.Add(sideEval(b, White)).Sub(sideEval(b, Black))

	interpolated := score.Interpolate(clampPhase(st.Phase))

	interpolated = interpolated * int32(200-int(st.Halfmove)) / 200

	if p.IsLikelyDrawn() {
		interpolated /= 8
	}

	if p.ToMove() == Black {
		interpolated = -interpolated
	}
	return interpolated + tempoBonus
}

func clampPhase(phase int) int {
	if phase < 0 {
		return 0
	}
	if phase > totalPhase {
		return totalPhase
	}
	return phase
}

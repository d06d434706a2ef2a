package engine

import "fmt"

// wing indices into CastlingRooks; short = kingside, long = queenside.
const (
	wingShort = 0
	wingLong  = 1
)

// BoardState is one undo-stack frame. apply_move copies the current top
// frame and mutates the copy; pop_move simply discards the top frame. See
// original_source/src/position/position.h for the field set this mirrors.
type BoardState struct {
	Boards PositionBoards

	Key     uint64
	PawnKey uint64

	Material TaperedScore
	Phase    int

	Checkers Bitboard

	CastlingRooks [2][2]Square

	LastMove  Move
	Captured  Piece
	EnPassant Square
	Halfmove  uint16
	Kings     [2]Square
}

// Position owns the undo stack, the separate (cheap) repetition key history,
// side to move, and fullmove count, plus an injected Options and PawnCache —
// never package globals.
type Position struct {
	states      []BoardState
	keyHistory  []uint64
	blackToMove bool
	fullmove    uint16

	opts      *Options
	pawnCache *PawnCache
}

func NewPosition(opts *Options) *Position {
	if opts == nil {
		d := DefaultOptions()
		opts = &d
	}
	p := &Position{opts: opts, pawnCache: NewPawnCache(opts.PawnCacheSize)}
	p.setStartPos()
	return p
}

func (p *Position) top() *BoardState    { return &p.states[len(p.states)-1] }
func (p *Position) Boards() *PositionBoards { return &p.top().Boards }

func (p *Position) ToMove() Color {
	if p.blackToMove {
		return Black
	}
	return White
}

func (p *Position) Key() uint64        { return p.top().Key }
func (p *Position) PawnKey() uint64    { return p.top().PawnKey }
func (p *Position) Material() TaperedScore { return p.top().Material }
func (p *Position) Phase() int         { return p.top().Phase }
func (p *Position) Checkers() Bitboard { return p.top().Checkers }
func (p *Position) IsCheck() bool      { return p.top().Checkers != 0 }
func (p *Position) EnPassant() Square  { return p.top().EnPassant }
func (p *Position) Halfmove() uint16   { return p.top().Halfmove }
func (p *Position) Fullmove() uint16   { return p.fullmove }
func (p *Position) King(c Color) Square { return p.top().Kings[c] }
func (p *Position) CastlingRooks() [2][2]Square { return p.top().CastlingRooks }
func (p *Position) LastMove() Move {
	if len(p.states) == 0 {
		return NullMove
	}
	return p.top().LastMove
}
func (p *Position) Options() *Options  { return p.opts }
func (p *Position) PawnCache() *PawnCache { return p.pawnCache }

// attackersTo returns every piece of color `by` attacking `sq`, given the
// boards' own occupancy. Grounded on
// original_source/src/position/position.h's attackersTo.
func attackersTo(b *PositionBoards, sq Square, by Color) Bitboard {
	occ := b.Occupancy()

	queens := b.PieceBBFor(Queen, by)
	rooks := queens | b.PieceBBFor(Rook, by)
	bishops := queens | b.PieceBBFor(Bishop, by)

	attackers := rooks & getRookAttacks(sq, occ)
	attackers |= bishops & getBishopAttacks(sq, occ)
	attackers |= b.PieceBBFor(Pawn, by) & getPawnAttacks(sq, by.Opponent())
	attackers |= b.PieceBBFor(Knight, by) & getKnightAttacks(sq)
	attackers |= b.PieceBBFor(King, by) & getKingAttacks(sq)
	return attackers
}

// allAttackersTo is attackersTo for both colors at once against a caller-
// supplied occupancy (used by SEE, which shrinks occupancy as it removes
// attackers).
func allAttackersTo(b *PositionBoards, sq Square, occ Bitboard) Bitboard {
	queens := b.Queens()
	rooks := queens | b.Rooks()
	bishops := queens | b.Bishops()

	attackers := rooks & getRookAttacks(sq, occ)
	attackers |= bishops & getBishopAttacks(sq, occ)
	attackers |= b.PieceBBFor(Pawn, White) & getPawnAttacks(sq, Black)
	attackers |= b.PieceBBFor(Pawn, Black) & getPawnAttacks(sq, White)
	attackers |= b.Knights() & getKnightAttacks(sq)
	attackers |= b.Kings() & getKingAttacks(sq)
	return attackers
}

func isAttacked(b *PositionBoards, sq Square, by Color) bool {
	if b.PieceBBFor(Knight, by)&getKnightAttacks(sq) != 0 {
		return true
	}
	if b.PieceBBFor(Pawn, by)&getPawnAttacks(sq, by.Opponent()) != 0 {
		return true
	}
	if b.PieceBBFor(King, by)&getKingAttacks(sq) != 0 {
		return true
	}
	occ := b.Occupancy()
	queens := b.PieceBBFor(Queen, by)
	if (queens|b.PieceBBFor(Bishop, by))&getBishopAttacks(sq, occ) != 0 {
		return true
	}
	if (queens|b.PieceBBFor(Rook, by))&getRookAttacks(sq, occ) != 0 {
		return true
	}
	return false
}

func anyAttacked(b *PositionBoards, squares Bitboard, by Color) bool {
	for squares != 0 {
		sq := squares.PopLSB()
		if isAttacked(b, sq, by) {
			return true
		}
	}
	return false
}

func (p *Position) calcCheckers() Bitboard {
	toMove := p.ToMove()
	return attackersTo(p.Boards(), p.top().Kings[toMove], toMove.Opponent())
}

// setStartPos resets the position to the standard initial array, pushing a
// single state frame. Grounded on the teacher's setStartPos.
func (p *Position) setStartPos() {
	p.states = p.states[:0]
	p.keyHistory = p.keyHistory[:0]
	p.blackToMove = false
	p.fullmove = 1

	var st BoardState
	for sq := range st.Boards.mailbox {
		st.Boards.mailbox[sq] = NoPiece
	}
	st.EnPassant = NoSquare
	st.CastlingRooks = [2][2]Square{
		{Square(7), Square(0)},   // white: short rook h1, long rook a1
		{Square(63), Square(56)}, // black: short rook h8, long rook a8
	}

	place := func(c Color, bp BasePiece, sq Square) {
		piece := MakePiece(c, bp)
		st.Boards.SetPiece(sq, piece)
		st.Material = st.Material.Add(pieceTaperedValue(piece, sq))
		st.Phase += piecePhaseWeight[bp]
		st.Key ^= zobristPieceKey(piece, sq)
		if bp == Pawn {
			st.PawnKey ^= zobristPieceKey(piece, sq)
		}
	}

	for f := 0; f < 8; f++ {
		place(White, Pawn, MakeSquare(1, f))
		place(Black, Pawn, MakeSquare(6, f))
	}
	backRank := []BasePiece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f, bp := range backRank {
		place(White, bp, MakeSquare(0, f))
		place(Black, bp, MakeSquare(7, f))
	}

	st.Kings[White] = MakeSquare(0, 4)
	st.Kings[Black] = MakeSquare(7, 4)

	p.states = append(p.states, st)
	p.top().Checkers = p.calcCheckers()
	p.keyHistory = append(p.keyHistory, p.top().Key)
}

// IsDrawn reports the draw conditions: 50-move rule, repetition, and exact
// insufficient material. Grounded on
// original_source/src/position/position.h's isDrawn.
func (p *Position) IsDrawn(threefold bool) bool {
	st := p.top()
	if st.Halfmove >= 100 {
		return true
	}

	repetitionsLeft := 2
	if threefold {
		repetitionsLeft = 3
	}
	for i := len(p.keyHistory) - 1; i >= 0; i-- {
		if p.keyHistory[i] == st.Key {
			repetitionsLeft--
			if repetitionsLeft == 0 {
				return true
			}
		}
	}

	b := &st.Boards
	if !b.Pawns().Empty() || !b.Majors().Empty() {
		return false
	}

	if b.NonPK().Empty() {
		return true // KK
	}

	// KNK or KBK.
	if (b.NonPKFor(Black).Empty() && b.NonPKFor(White) == b.MinorsFor(White) && !b.MinorsFor(White).Multiple()) ||
		(b.NonPKFor(White).Empty() && b.NonPKFor(Black) == b.MinorsFor(Black) && !b.MinorsFor(Black).Multiple()) {
		return true
	}

	// KBKB, opposite-colored bishops.
	whiteBishops := b.PieceBBFor(Bishop, White)
	blackBishops := b.PieceBBFor(Bishop, Black)
	if b.NonPKFor(White) == whiteBishops && b.NonPKFor(Black) == blackBishops &&
		!whiteBishops.Multiple() && !blackBishops.Multiple() &&
		(whiteBishops&LightSquares).Empty() != (blackBishops&LightSquares).Empty() {
		return true
	}

	return false
}

// IsLikelyDrawn extends insufficient-material detection, used only to scale
// the evaluation, never to declare a draw.
func (p *Position) IsLikelyDrawn() bool {
	b := &p.top().Boards
	if !b.Pawns().Empty() || !b.Majors().Empty() {
		return false
	}

	whiteKnights := b.PieceBBFor(Knight, White)
	blackKnights := b.PieceBBFor(Knight, Black)

	// KNK or KNNK.
	if (b.NonPKFor(Black).Empty() && b.NonPKFor(White) == whiteKnights && whiteKnights.Count() < 3) ||
		(b.NonPKFor(White).Empty() && b.NonPKFor(Black) == blackKnights && blackKnights.Count() < 3) {
		return true
	}

	if !b.NonPK().Empty() {
		// KNKN, KNKB, KBKB (opposite-color handled by IsDrawn).
		if !b.MinorsFor(White).Multiple() && !b.MinorsFor(Black).Multiple() {
			return true
		}

		whiteBishops := b.PieceBBFor(Bishop, White)
		blackBishops := b.PieceBBFor(Bishop, Black)
		// KBBKB.
		if b.NonPK() == b.Bishops() &&
			((whiteBishops.Count() < 3 && !blackBishops.Multiple()) ||
				(blackBishops.Count() < 3 && !whiteBishops.Multiple())) {
			return true
		}
	}

	return false
}

func (p *Position) String() string {
	st := p.top()
	var out string
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			out += fmt.Sprintf("%c ", st.Boards.PieceAt(MakeSquare(r, f)).Char())
		}
		out += "\n"
	}
	return out
}

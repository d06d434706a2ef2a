package engine

// Move packs source, destination, a 2-bit move type, and a 2-bit promotion
// target into 16 bits: type:2 | promo:2 | dst:6 | src:6. NullMove is the
// all-zero value; src == dst only for NullMove, since a1-a1 is never a real
// move.
type Move uint16

const NullMove Move = 0

type MoveType uint8

const (
	MoveStandard MoveType = 0
	MovePromotion MoveType = 1
	MoveCastling MoveType = 2
	MoveEnPassant MoveType = 3
)

// promoTarget values, packed in the 2-bit promo field, with Queen at 3. A
// zero promo field (as in NullMove) decodes as Knight, so PromoTarget is only
// meaningful once the move type has been checked to be MovePromotion.
const (
	promoKnight = 0
	promoBishop = 1
	promoRook   = 2
	promoQueen  = 3
)

var promoBasePiece = [4]BasePiece{Knight, Bishop, Rook, Queen}

func basePieceToPromo(bp BasePiece) uint16 {
	switch bp {
	case Bishop:
		return promoBishop
	case Rook:
		return promoRook
	case Queen:
		return promoQueen
	default:
		return promoKnight
	}
}

func NewMove(src, dst Square, typ MoveType) Move {
	return Move(uint16(src) | uint16(dst)<<6 | uint16(typ)<<14)
}

func NewPromotion(src, dst Square, target BasePiece) Move {
	return Move(uint16(src) | uint16(dst)<<6 | basePieceToPromo(target)<<12 | uint16(MovePromotion)<<14)
}

// NewCastling encodes src = king square, dst = rook square: this single
// encoding covers both standard and Chess960 castling.
func NewCastling(kingSrc, rookSrc Square) Move {
	return NewMove(kingSrc, rookSrc, MoveCastling)
}

func (m Move) Src() Square    { return Square(m & 0x3F) }
func (m Move) Dst() Square    { return Square((m >> 6) & 0x3F) }
func (m Move) Type() MoveType { return MoveType((m >> 14) & 0x3) }
func (m Move) PromoTarget() BasePiece {
	return promoBasePiece[(m>>12)&0x3]
}

func (m Move) IsNull() bool { return m == NullMove }

// String renders the move in long-algebraic form from its raw src and dst,
// so a castling move prints as king-takes-rook (e1h1). The standard castling
// form (king's own destination square) is produced by UCIString in fen.go,
// which takes the Chess960 flag to decide which form to print.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.Src().String() + m.Dst().String()
	if m.Type() == MovePromotion {
		s += string(m.PromoTarget().Char())
	}
	return s
}

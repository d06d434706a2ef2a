package engine

import (
	"fmt"
	"strconv"
	"strings"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// LoadFEN resets the position from a standard or Shredder-FEN string,
// grounded on the teacher's setFEN for the field layout and on
// original_source/src/position/position.h for Shredder castling-letter
// parsing, which the teacher's FEN reader never supported. Returns false
// (leaving the position untouched) on malformed input: malformed input
// never panics and never mutates state.
func (p *Position) LoadFEN(fen string) bool {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return false
	}

	var st BoardState
	for sq := range st.Boards.mailbox {
		st.Boards.mailbox[sq] = NoPiece
	}
	st.EnPassant = NoSquare
	st.CastlingRooks = [2][2]Square{{NoSquare, NoSquare}, {NoSquare, NoSquare}}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return false
	}

	var kings [2]Square
	kings[White], kings[Black] = NoSquare, NoSquare

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file > 7 {
				return false
			}
			color := White
			base := ch
			if base >= 'a' {
				color = Black
				base -= 'a' - 'A'
			}
			idx := strings.IndexByte("PNBRQK", byte(base))
			if idx < 0 {
				return false
			}
			sq := MakeSquare(rank, file)
			piece := MakePiece(Color(color), BasePiece(idx))
			st.Boards.SetPiece(sq, piece)
			st.Material = st.Material.Add(pieceTaperedValue(piece, sq))
			st.Phase += piecePhaseWeight[idx]
			st.Key ^= zobristPieceKey(piece, sq)
			if BasePiece(idx) == Pawn {
				st.PawnKey ^= zobristPieceKey(piece, sq)
			}
			if BasePiece(idx) == King {
				kings[color] = sq
			}
			file++
		}
		if file != 8 {
			return false
		}
	}
	if kings[White] == NoSquare || kings[Black] == NoSquare {
		return false
	}
	st.Kings = kings

	blackToMove := false
	switch fields[1] {
	case "w":
	case "b":
		blackToMove = true
	default:
		return false
	}

	if !parseCastling(&st, fields[2], kings) {
		return false
	}

	if fields[3] != "-" {
		sq, ok := parseSquare(fields[3])
		if !ok {
			return false
		}
		st.EnPassant = sq
	}

	halfmove := 0
	fullmove := 1
	if len(fields) >= 5 {
		if n, err := strconv.Atoi(fields[4]); err == nil && n >= 0 {
			halfmove = n
		}
	}
	if len(fields) >= 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n >= 1 {
			fullmove = n
		}
	}
	st.Halfmove = uint16(halfmove)

	if blackToMove {
		st.Key ^= zobristSide
		st.PawnKey ^= zobristSide
	}

	p.states = append(p.states[:0], st)
	p.keyHistory = append(p.keyHistory[:0], st.Key)
	p.blackToMove = blackToMove
	p.fullmove = uint16(fullmove)
	p.top().Checkers = p.calcCheckers()
	return true
}

// parseCastling accepts both standard KQkq letters and Shredder-FEN file
// letters (identifying the rook's file directly), so Shredder-FEN input is
// accepted to support Chess960.
//
// zobristCastleLost[c][wing] is XORed into the key when that right is ABSENT
// (the convention clearCastlingRight and setStartPos both use: the term goes
// in exactly once, at the moment the right is lost). st.CastlingRooks starts
// all-NoSquare, so the letters in the field fill in the present rights first;
// the final pass below XORs the term in for whichever (color, wing) pairs
// are still absent once every letter has been applied.
func parseCastling(st *BoardState, field string, kings [2]Square) bool {
	if field != "-" {
		for _, ch := range field {
			var color Color
			letter := ch
			switch {
			case ch >= 'A' && ch <= 'Z':
				color = White
				letter = ch
			case ch >= 'a' && ch <= 'z':
				color = Black
				letter = ch - ('a' - 'A')
			default:
				return false
			}

			kingFile := kings[color].File()
			rank := kings[color].Rank()

			var rookFile int
			switch letter {
			case 'K':
				rookFile = findOutermostRookFile(st, rank, kingFile, true)
			case 'Q':
				rookFile = findOutermostRookFile(st, rank, kingFile, false)
			default:
				if letter < 'A' || letter > 'H' {
					return false
				}
				rookFile = int(letter - 'A')
			}
			if rookFile < 0 {
				return false
			}

			wing := wingLong
			if rookFile > kingFile {
				wing = wingShort
			}
			st.CastlingRooks[color][wing] = MakeSquare(rank, rookFile)
		}
	}

	for c := Color(0); c < 2; c++ {
		for wing := 0; wing < 2; wing++ {
			if st.CastlingRooks[c][wing] == NoSquare {
				st.Key ^= zobristCastleLost[c][wing]
			}
		}
	}
	return true
}

// findOutermostRookFile locates the rook file a bare K/Q letter refers to in
// standard chess: the outermost rook on the king's side of the board.
func findOutermostRookFile(st *BoardState, rank, kingFile int, short bool) int {
	best := -1
	for f := 0; f < 8; f++ {
		sq := MakeSquare(rank, f)
		p := st.Boards.PieceAt(sq)
		if p.IsNone() || p.Base() != Rook {
			continue
		}
		if short && f > kingFile {
			if best == -1 || f > best {
				best = f
			}
		} else if !short && f < kingFile {
			if best == -1 || f < best {
				best = f
			}
		}
	}
	return best
}

func parseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return NoSquare, false
	}
	f := s[0] - 'a'
	r := s[1] - '1'
	if f > 7 || r > 7 {
		return NoSquare, false
	}
	return MakeSquare(int(r), int(f)), true
}

// FEN renders the position as a standard FEN string; castling rights print
// in KQkq form when both rooks sit on their classical home squares, else in
// Shredder file-letter form.
func (p *Position) FEN() string {
	st := p.top()
	var sb strings.Builder

	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			piece := st.Boards.PieceAt(MakeSquare(r, f))
			if piece.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.blackToMove {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}

	sb.WriteByte(' ')
	sb.WriteString(castlingField(st, p.opts.Chess960))

	sb.WriteByte(' ')
	sb.WriteString(st.EnPassant.String())

	fmt.Fprintf(&sb, " %d %d", st.Halfmove, p.fullmove)
	return sb.String()
}

func castlingField(st *BoardState, chess960 bool) string {
	classical := !chess960 &&
		classicalRook(st, White, wingShort, 7) &&
		classicalRook(st, White, wingLong, 0) &&
		classicalRook(st, Black, wingShort, 7) &&
		classicalRook(st, Black, wingLong, 0)

	letters := "KQkq"
	var sb strings.Builder
	for c := Color(0); c < 2; c++ {
		for wing := 0; wing < 2; wing++ {
			sq := st.CastlingRooks[c][wing]
			if sq == NoSquare {
				continue
			}
			if classical {
				sb.WriteByte(letters[int(c)*2+wing])
				continue
			}
			ch := byte('A' + sq.File())
			if c == Black {
				ch += 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func classicalRook(st *BoardState, c Color, wing, file int) bool {
	sq := st.CastlingRooks[c][wing]
	return sq == NoSquare || sq.File() == file
}

// ParseUCIMove decodes a long-algebraic move string (e2e4, e7e8q, and — in
// Chess960 king-takes-rook form — e1h1) against the current position's
// pseudo-legal move list. Returns (NullMove, false) for anything that
// doesn't match a generated move.
func (p *Position) ParseUCIMove(s string) (Move, bool) {
	if len(s) < 4 || len(s) > 5 {
		return NullMove, false
	}
	src, ok := parseSquare(s[0:2])
	if !ok {
		return NullMove, false
	}
	dst, ok := parseSquare(s[2:4])
	if !ok {
		return NullMove, false
	}

	var promo BasePiece = NoBasePiece
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return NullMove, false
		}
	}

	// Standard castling notation (e1g1) encodes the king's own destination,
	// not the rook square this engine's Move packs into dst; translate it to
	// the king-takes-rook encoding before searching the generated list.
	if !p.opts.Chess960 {
		mover := p.ToMove()
		if src == p.King(mover) && p.Boards().PieceAt(src).Base() == King {
			rooks := p.CastlingRooks()
			rank := src.Rank()
			if dst == MakeSquare(rank, 6) && rooks[mover][wingShort] != NoSquare {
				dst = rooks[mover][wingShort]
			} else if dst == MakeSquare(rank, 2) && rooks[mover][wingLong] != NoSquare {
				dst = rooks[mover][wingLong]
			}
		}
	}

	for _, m := range GenerateAll(p) {
		if m.Src() != src || m.Dst() != dst {
			continue
		}
		if m.Type() == MovePromotion && m.PromoTarget() != promo {
			continue
		}
		if m.Type() != MovePromotion && promo != NoBasePiece {
			continue
		}
		return m, true
	}
	return NullMove, false
}

// UCIString renders m the way this engine's UCI output layer would: standard
// castling as the king's own destination square, Chess960 castling as
// king-takes-rook.
func (m Move) UCIString(chess960 bool) string {
	if m.IsNull() {
		return "0000"
	}
	if m.Type() == MoveCastling && !chess960 {
		rank := m.Src().Rank()
		kingDst := MakeSquare(rank, 2)
		if m.Dst().File() > m.Src().File() {
			kingDst = MakeSquare(rank, 6)
		}
		return m.Src().String() + kingDst.String()
	}
	return m.String()
}

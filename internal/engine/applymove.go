package engine

// clearCastlingRight removes the stored rook square for (c, wing) if one is
// still present, XORing the corresponding "this right is lost" term
// (zobristCastleLost) into the key. A no-op if the right was already gone.
func clearCastlingRight(st *BoardState, c Color, wing int) {
	if st.CastlingRooks[c][wing] != NoSquare {
		st.Key ^= zobristCastleLost[c][wing]
		st.CastlingRooks[c][wing] = NoSquare
	}
}

// clearCastlingRooksOnSquare drops any castling right whose stored rook
// square equals sq — used both when a rook moves away from its home square
// and when it is captured there.
func clearCastlingRooksOnSquare(st *BoardState, sq Square) {
	for c := Color(0); c < 2; c++ {
		for wing := 0; wing < 2; wing++ {
			if st.CastlingRooks[c][wing] == sq {
				clearCastlingRight(st, c, wing)
			}
		}
	}
}

// castlingFinalSquares computes the king's and rook's destination squares
// given the king source and rook source (the move's encoded src/dst):
// g-file/f-file for short, c-file/d-file for long, same rank as the king.
func castlingFinalSquares(kingSrc, rookSrc Square) (kingFinal, rookFinal Square) {
	rank := kingSrc.Rank()
	if rookSrc.File() > kingSrc.File() {
		return MakeSquare(rank, 6), MakeSquare(rank, 5) // short: king->g, rook->f
	}
	return MakeSquare(rank, 2), MakeSquare(rank, 3) // long: king->c, rook->d
}

// ApplyMove executes the 12-step incremental update, pushing a new
// undo-stack frame. The move is assumed pseudo-legal; callers verify
// legality afterward via Checkers().
func (p *Position) ApplyMove(m Move) {
	mover := p.ToMove()
	prev := *p.top()
	p.states = append(p.states, prev)
	st := p.top()

	src, dst := m.Src(), m.Dst()
	boards := &st.Boards

	oldEP := st.EnPassant
	st.EnPassant = NoSquare
	st.LastMove = m

	var captured Piece = NoPiece
	var capturedSq Square = NoSquare
	irreversible := false

	switch m.Type() {
	case MoveCastling:
		kingSrc, rookSrc := src, dst
		kingFinal, rookFinal := castlingFinalSquares(kingSrc, rookSrc)

		kingPiece := boards.RemovePiece(kingSrc)
		rookPiece := boards.RemovePiece(rookSrc)

		st.Key ^= zobristPieceKey(kingPiece, kingSrc)
		st.Key ^= zobristPieceKey(rookPiece, rookSrc)

		boards.SetPiece(kingFinal, kingPiece)
		boards.SetPiece(rookFinal, rookPiece)

		st.Key ^= zobristPieceKey(kingPiece, kingFinal)
		st.Key ^= zobristPieceKey(rookPiece, rookFinal)

		st.Material = st.Material.Sub(pieceTaperedValue(kingPiece, kingSrc)).Add(pieceTaperedValue(kingPiece, kingFinal))
		st.Material = st.Material.Sub(pieceTaperedValue(rookPiece, rookSrc)).Add(pieceTaperedValue(rookPiece, rookFinal))

		st.Kings[mover] = kingFinal
		clearCastlingRight(st, mover, wingShort)
		clearCastlingRight(st, mover, wingLong)

	case MoveEnPassant:
		capturedSq = dst
		if mover == White {
			capturedSq = dst - 8
		} else {
			capturedSq = dst + 8
		}
		captured = boards.PieceAt(capturedSq)

		movingPiece := boards.MovePiece(src, dst)
		boards.RemovePiece(capturedSq)

		st.Key ^= zobristPieceKey(movingPiece, src)
		st.Key ^= zobristPieceKey(movingPiece, dst)
		st.Key ^= zobristPieceKey(captured, capturedSq)

		st.PawnKey ^= zobristPieceKey(movingPiece, src)
		st.PawnKey ^= zobristPieceKey(movingPiece, dst)
		st.PawnKey ^= zobristPieceKey(captured, capturedSq)

		st.Material = st.Material.Sub(pieceTaperedValue(movingPiece, src)).Add(pieceTaperedValue(movingPiece, dst))
		st.Material = st.Material.Sub(pieceTaperedValue(captured, capturedSq))
		st.Phase -= piecePhaseWeight[captured.Base()]
		irreversible = true // en passant is always a pawn move

	case MovePromotion:
		target := m.PromoTarget()
		if !boards.PieceAt(dst).IsNone() {
			captured = boards.PieceAt(dst)
			capturedSq = dst
			boards.RemovePiece(dst)
		}
		movingPawn := boards.PieceAt(src)
		boards.changePiece(src, dst, target)
		promoted := MakePiece(mover, target)

		st.Key ^= zobristPieceKey(movingPawn, src)
		st.Key ^= zobristPieceKey(promoted, dst)
		if captured != NoPiece {
			st.Key ^= zobristPieceKey(captured, capturedSq)
		}
		st.PawnKey ^= zobristPieceKey(movingPawn, src)
		if captured.Base() == Pawn {
			st.PawnKey ^= zobristPieceKey(captured, capturedSq)
		}

		st.Material = st.Material.Sub(pieceTaperedValue(movingPawn, src)).Add(pieceTaperedValue(promoted, dst))
		if captured != NoPiece {
			st.Material = st.Material.Sub(pieceTaperedValue(captured, capturedSq))
			st.Phase -= piecePhaseWeight[captured.Base()]
		}
		st.Phase += piecePhaseWeight[target]

		if target == Rook || captured.Base() == Rook {
			clearCastlingRooksOnSquare(st, dst)
		}
		irreversible = true

	default: // MoveStandard
		if !boards.PieceAt(dst).IsNone() {
			captured = boards.PieceAt(dst)
			capturedSq = dst
			boards.RemovePiece(dst)
		}
		movingPiece := boards.MovePiece(src, dst)

		st.Key ^= zobristPieceKey(movingPiece, src)
		st.Key ^= zobristPieceKey(movingPiece, dst)
		if captured != NoPiece {
			st.Key ^= zobristPieceKey(captured, capturedSq)
		}

		if movingPiece.Base() == Pawn {
			st.PawnKey ^= zobristPieceKey(movingPiece, src)
			st.PawnKey ^= zobristPieceKey(movingPiece, dst)
		}
		if captured.Base() == Pawn {
			st.PawnKey ^= zobristPieceKey(captured, capturedSq)
		}

		st.Material = st.Material.Sub(pieceTaperedValue(movingPiece, src)).Add(pieceTaperedValue(movingPiece, dst))
		if captured != NoPiece {
			st.Material = st.Material.Sub(pieceTaperedValue(captured, capturedSq))
			st.Phase -= piecePhaseWeight[captured.Base()]
		}
		irreversible = captured != NoPiece || movingPiece.Base() == Pawn

		if movingPiece.Base() == King {
			st.Kings[mover] = dst
			clearCastlingRight(st, mover, wingShort)
			clearCastlingRight(st, mover, wingLong)
		}

		// A rook moving away from, or being captured on, one of the four
		// stored castling squares loses that specific right.
		clearCastlingRooksOnSquare(st, src)
		if captured != NoPiece {
			clearCastlingRooksOnSquare(st, capturedSq)
		}

		// Double pawn push opens an en-passant target.
		if movingPiece.Base() == Pawn {
			diff := int(dst) - int(src)
			if diff == 16 || diff == -16 {
				st.EnPassant = (src + dst) / 2
			}
		}
	}

	st.Captured = captured

	if oldEP != NoSquare {
		st.Key ^= zobristEnPassant[oldEP.File()]
	}
	if st.EnPassant != NoSquare {
		st.Key ^= zobristEnPassant[st.EnPassant.File()]
	}

	if irreversible {
		st.Halfmove = 0
	} else {
		st.Halfmove++
	}

	st.Key ^= zobristSide
	st.PawnKey ^= zobristSide

	if mover == Black {
		p.fullmove++
	}

	p.blackToMove = !p.blackToMove
	st.Checkers = p.calcCheckers()
	p.keyHistory = append(p.keyHistory, st.Key)
}

// PopMove discards the top undo frame and the matching repetition-history
// entry, restoring the exact prior boards/key/material/phase/checkers by
// construction (they were never touched on the discarded frame's copy of
// the board below it).
func (p *Position) PopMove() {
	p.states = p.states[:len(p.states)-1]
	p.keyHistory = p.keyHistory[:len(p.keyHistory)-1]
	p.blackToMove = !p.blackToMove
	if p.ToMove() == Black {
		p.fullmove--
	}
}

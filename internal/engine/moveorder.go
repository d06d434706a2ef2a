package engine

// Staged move ordering: a lazy pull-based iterator over pseudo-legal moves,
// generalized from the teacher's eager orderMoves/orderMovesQ (a single
// stable sort over the whole move list before the caller ever sees move 1)
// into a pull-based stage machine, so a beta cutoff on the first noisy move
// never pays for generating or scoring quiets.
//
// Scoring constants and formulas are the teacher's own bands
// (scoreHash/scorePromoBase/scoreCaptureBase/scoreKiller1/scoreKiller2),
// adapted to the exact noisy-scoring formula below.
const (
	scoreGoodNoisyThreshold = 0
	promoBiasQueen          = 3
	promoBiasRook           = 1
	promoBiasBishop         = 0
	promoBiasKnight         = 2

	badNoisyPenalty = 8 * 2000 * 2000
	noisyUnit       = 2000
)

func promoBias(bp BasePiece) int32 {
	switch bp {
	case Queen:
		return promoBiasQueen
	case Rook:
		return promoBiasRook
	case Bishop:
		return promoBiasBishop
	default:
		return promoBiasKnight
	}
}

// scoreNoisy implements the noisy-move scoring formula exactly:
// (victim_mg - attacker_mg) * 2000 + victim_mg, plus a promotion bias term,
// minus a large penalty when SEE reports a losing capture (pushing it below
// the "good" threshold into the bad-noisy tail).
func scoreNoisy(pos *Position, m Move) int32 {
	b := pos.Boards()
	attacker := b.PieceAt(m.Src()).Base()
	attackerMG := pieceValues[attacker]

	var victimMG int32
	hasVictim := false
	switch m.Type() {
	case MoveEnPassant:
		victimMG = pieceValues[Pawn]
		hasVictim = true
	default:
		if v := b.PieceAt(m.Dst()); !v.IsNone() {
			victimMG = pieceValues[v.Base()]
			hasVictim = true
		}
	}

	score := (victimMG-attackerMG)*noisyUnit + victimMG

	if m.Type() == MovePromotion {
		score += promoBias(m.PromoTarget()) * noisyUnit * noisyUnit
	}

	if hasVictim && !SEE(pos, m, 0) {
		score -= badNoisyPenalty
	}

	return score
}

// QuietHistory is the search-driver-owned scoring hook: the history tables
// themselves live in the search driver, and the core only exposes a "score
// via this function" hook — butterfly history keyed by (piece, dst),
// continuation history keyed by the previous two moves, plus whatever bias
// the caller wants to fold in.
type QuietHistory func(pos *Position, m Move) int32

type orderStage int

const (
	stageHash orderStage = iota
	stageGoodNoisy
	stageKiller
	stageCountermove
	stageQuiet
	stageBadNoisy
	stageDone
)

// OrderedMoves is the lazy staged iterator: hash move, good noisy
// (score-sorted, descending), killer, countermove, quiet (best-first via
// repeated selection), bad noisy. Quiescence mode (quiescence=true)
// terminates after the good-noisy stage.
type OrderedMoves struct {
	pos *Position

	hash        Move
	killer      Move
	countermove Move
	quiescence  bool
	historyFn   QuietHistory

	stage orderStage

	noisy       []Move
	noisyScores []int32
	goodCount   int
	noisyIdx    int

	quiet       []Move
	quietScores []int32
	quietTaken  int

	// emitted records every move this iterator has already yielded, across
	// every stage — not just the stage a move "belongs" to. A killer or
	// countermove can equally well turn up earlier as a good-noisy capture;
	// without a single cross-stage record, that stage would hand it out a
	// second time since it only tracks its own emission, not anyone else's.
	emitted map[Move]bool
}

// NewOrderedMoves constructs the iterator. hash/killer/countermove are
// validated lazily (pseudo-legality, non-null, distinctness) as each stage
// is reached.
func NewOrderedMoves(pos *Position, hash, killer, countermove Move, quiescence bool, historyFn QuietHistory) *OrderedMoves {
	return &OrderedMoves{
		pos:         pos,
		hash:        hash,
		killer:      killer,
		countermove: countermove,
		quiescence:  quiescence,
		historyFn:   historyFn,
		emitted:     make(map[Move]bool),
	}
}

// skip reports whether m has already been handed out by an earlier call to
// Next, regardless of which stage emitted it.
func (o *OrderedMoves) skip(m Move) bool { return o.emitted[m] }

// emit records m as yielded and returns it; every return point in Next goes
// through this so no stage can hand out a move a previous stage already did.
func (o *OrderedMoves) emit(m Move) (Move, bool) {
	o.emitted[m] = true
	return m, true
}

func (o *OrderedMoves) genNoisy() {
	o.noisy = GenerateNoisy(o.pos)
	o.noisyScores = make([]int32, len(o.noisy))
	for i, m := range o.noisy {
		o.noisyScores[i] = scoreNoisy(o.pos, m)
	}
	// Stable insertion sort descending by score, same technique as the
	// teacher's orderMoves: small move counts make this as fast as anything
	// fancier and it preserves generation order among equal scores.
	for i := 1; i < len(o.noisy); i++ {
		m, s := o.noisy[i], o.noisyScores[i]
		j := i - 1
		for j >= 0 && o.noisyScores[j] < s {
			o.noisy[j+1] = o.noisy[j]
			o.noisyScores[j+1] = o.noisyScores[j]
			j--
		}
		o.noisy[j+1] = m
		o.noisyScores[j+1] = s
	}

	o.goodCount = len(o.noisy)
	for i, s := range o.noisyScores {
		if s < scoreGoodNoisyThreshold {
			o.goodCount = i
			break
		}
	}
}

func (o *OrderedMoves) genQuiet() {
	o.quiet = GenerateQuiet(o.pos)
	o.quietScores = make([]int32, len(o.quiet))
	for i, m := range o.quiet {
		if o.historyFn != nil {
			o.quietScores[i] = o.historyFn(o.pos, m)
		}
	}
}

// Next returns the next move in staged order, or (NullMove, false) once
// every stage is exhausted. Never yields the same move twice and never
// yields NullMove.
func (o *OrderedMoves) Next() (Move, bool) {
	for {
		switch o.stage {
		case stageHash:
			o.stage = stageGoodNoisy
			if !o.hash.IsNull() && o.pos.IsPseudolegal(o.hash) {
				return o.emit(o.hash)
			}

		case stageGoodNoisy:
			if o.noisy == nil {
				o.genNoisy()
			}
			if o.noisyIdx < o.goodCount {
				m := o.noisy[o.noisyIdx]
				o.noisyIdx++
				if o.skip(m) {
					continue
				}
				return o.emit(m)
			}
			if o.quiescence {
				o.stage = stageDone
				continue
			}
			o.stage = stageKiller

		case stageKiller:
			o.stage = stageCountermove
			if !o.killer.IsNull() && !o.skip(o.killer) && o.pos.IsPseudolegal(o.killer) {
				return o.emit(o.killer)
			}

		case stageCountermove:
			o.stage = stageQuiet
			if !o.countermove.IsNull() && !o.skip(o.countermove) && o.pos.IsPseudolegal(o.countermove) {
				return o.emit(o.countermove)
			}

		case stageQuiet:
			if o.quiet == nil {
				o.genQuiet()
			}
			if o.quietTaken >= len(o.quiet) {
				o.stage = stageBadNoisy
				continue
			}
			best := -1
			for i := o.quietTaken; i < len(o.quiet); i++ {
				if best == -1 || o.quietScores[i] > o.quietScores[best] {
					best = i
				}
			}
			last := o.quietTaken
			o.quiet[last], o.quiet[best] = o.quiet[best], o.quiet[last]
			o.quietScores[last], o.quietScores[best] = o.quietScores[best], o.quietScores[last]
			o.quietTaken++
			m := o.quiet[last]
			if o.skip(m) {
				continue
			}
			return o.emit(m)

		case stageBadNoisy:
			if o.noisyIdx < len(o.noisy) {
				m := o.noisy[o.noisyIdx]
				o.noisyIdx++
				if o.skip(m) {
					continue
				}
				return o.emit(m)
			}
			o.stage = stageDone

		case stageDone:
			return NullMove, false
		}
	}
}

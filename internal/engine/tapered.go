package engine

// TaperedScore is a (midgame, endgame) pair, interpolated by game phase
// everywhere the evaluation and PST tables produce a score.
type TaperedScore struct {
	MG int32
	EG int32
}

func (t TaperedScore) Add(o TaperedScore) TaperedScore {
	return TaperedScore{t.MG + o.MG, t.EG + o.EG}
}

func (t TaperedScore) Sub(o TaperedScore) TaperedScore {
	return TaperedScore{t.MG - o.MG, t.EG - o.EG}
}

func (t TaperedScore) Neg() TaperedScore {
	return TaperedScore{-t.MG, -t.EG}
}

func (t TaperedScore) Scale(n int32) TaperedScore {
	return TaperedScore{t.MG * n, t.EG * n}
}

const totalPhase = 24

// Interpolate combines mg/eg by phase: (mg*phase + eg*(24-phase))/24.
func (t TaperedScore) Interpolate(phase int) int32 {
	return (t.MG*int32(phase) + t.EG*int32(totalPhase-phase)) / totalPhase
}

// Package score implements the UCI score-cp normalization the external UCI
// layer applies to raw centipawn evaluations before printing them: a
// ply-parameterized sigmoid win-rate model ported from
// original_source/src/uci.cpp's winRateModel, with the same coefficient
// polynomials and a unit-test cross-check that the center polynomial's
// coefficients sum to the normalization constant.
package score

import "math"

// NormalizationK is the centipawn value that corresponds to a 50% win rate
// at ply 64; it must equal the sum of the a-polynomial's coefficients
// (centerCoeffs below), truncated, which
// TestNormalizationKMatchesCenterCoefficientSum checks.
const NormalizationK = 91

var centerCoeffs = [4]float64{-16.47359643, 125.09292680, -150.78265049, 133.46169058}
var widthCoeffs = [4]float64{-10.64392182, 68.80469735, -98.63536151, 100.12391368}

// WinRateModel returns the estimated win rate in permille (0..1000) for a
// position scored povScore centipawns (from the side-to-move's point of
// view) at the given ply, the same shape as original_source's
// uci::winRateModel.
func WinRateModel(povScore int32, ply uint32) int32 {
	m := math.Min(240.0, float64(ply)) / 64.0

	a := poly3(centerCoeffs, m)
	b := poly3(widthCoeffs, m)

	x := clamp(float64(povScore), -4000.0, 4000.0)

	return int32(0.5 + 1000.0/(1.0+math.Exp((a-x)/b)))
}

func poly3(c [4]float64, m float64) float64 {
	return (((c[0]*m+c[1])*m+c[2])*m + c[3])
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// NormalizeCP converts a raw internal centipawn score into the UCI
// `score cp` value: scaled so that NormalizationK raw centipawns corresponds
// to a score of 100, matching the spec's "a score of 100 corresponds to a
// 50% win probability at a fixed normalization constant K" contract.
func NormalizeCP(raw int32) int32 {
	return raw * 100 / NormalizationK
}

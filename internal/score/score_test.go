package score

import "testing"

func TestNormalizationKMatchesCenterCoefficientSum(t *testing.T) {
	sum := centerCoeffs[0] + centerCoeffs[1] + centerCoeffs[2] + centerCoeffs[3]
	if int32(sum) != NormalizationK {
		t.Fatalf("NormalizationK = %d, sum(centerCoeffs) = %v (truncates to %d)", NormalizationK, sum, int32(sum))
	}
}

func TestWinRateModelMonotonicInScore(t *testing.T) {
	prev := WinRateModel(-4000, 40)
	for s := int32(-4000); s <= 4000; s += 200 {
		cur := WinRateModel(s, 40)
		if cur < prev {
			t.Fatalf("WinRateModel not monotonic at score %d: %d < %d", s, cur, prev)
		}
		prev = cur
	}
}

// At ply 64 the center polynomial equals the sum of its coefficients, which
// truncates to NormalizationK, so a score of K is a roughly even win rate.
func TestWinRateModelIsRoughlyEvenAtK(t *testing.T) {
	w := WinRateModel(NormalizationK, 64)
	if w < 490 || w > 510 {
		t.Fatalf("WinRateModel(NormalizationK, 64) = %d, want close to 500", w)
	}
}

func TestWinRateModelClampsPly(t *testing.T) {
	// Ply beyond 240 must behave identically to ply == 240 (the model clamps
	// m to 240/64 before evaluating the polynomials).
	a := WinRateModel(150, 240)
	b := WinRateModel(150, 10000)
	if a != b {
		t.Fatalf("WinRateModel did not clamp ply: %d != %d", a, b)
	}
}

func TestNormalizeCPIdentityAtK(t *testing.T) {
	if got := NormalizeCP(NormalizationK); got != 100 {
		t.Fatalf("NormalizeCP(NormalizationK) = %d, want 100", got)
	}
}

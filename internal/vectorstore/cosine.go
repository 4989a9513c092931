package vectorstore

import "math"

// Cosine computes cosine similarity between a and b. It returns exactly 0.0
// when either vector is all zeros or the norms multiply to zero: a
// degenerate vector scores as "no confidence", never NaN.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	denom := math.Sqrt(na) * math.Sqrt(nb)
	if denom == 0 {
		return 0.0
	}
	return dot / denom
}

// IsZero reports whether every component of v is zero. A zero vector is the
// deliberate fallback for a failed embedding.
func IsZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

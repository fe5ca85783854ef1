package acg

// bisect refines a sign-change bracket [lo, hi] of f down to a width of tol,
// bounded by maxIter iterations so a pathological function can never spin
// forever. The bracket must satisfy f(lo)*f(hi) <= 0.
func bisect(f func(float64) float64, lo, hi, tol float64, maxIter int) float64 {
	flo := f(lo)
	for i := 0; i < maxIter && hi-lo > tol; i++ {
		mid := (lo + hi) / 2
		fm := f(mid)
		if fm == 0 {
			return mid
		}
		if (flo < 0) == (fm < 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

package aggregate

// SplitLimit pre-computes per-source sub-limits so the combined fetch effort
// roughly matches the caller's requested total instead of truncating
// post-hoc. Weights are relative shares (a nonpositive weight counts as 1);
// the remainder after flooring goes to the heaviest sources first. Every
// source gets at least 1 when the total allows it, so the sum can slightly
// exceed total for very small limits — a soft cap by design of the split.
func SplitLimit(total int, weights []int) []int {
	n := len(weights)
	out := make([]int, n)
	if n == 0 || total <= 0 {
		return out
	}

	norm := make([]int, n)
	sum := 0
	for i, w := range weights {
		if w <= 0 {
			w = 1
		}
		norm[i] = w
		sum += w
	}

	assigned := 0
	rem := make([]int, n) // numerator remainders, for leftover distribution
	for i, w := range norm {
		out[i] = total * w / sum
		rem[i] = total * w % sum
		assigned += out[i]
	}

	for assigned < total {
		best := 0
		for i := 1; i < n; i++ {
			if rem[i] > rem[best] {
				best = i
			}
		}
		out[best]++
		rem[best] = -1
		assigned++
	}

	for i := range out {
		if out[i] == 0 {
			out[i] = 1
		}
	}
	return out
}

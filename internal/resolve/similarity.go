package resolve

// Ratio computes a similarity ratio between two strings in [0, 1]:
// twice the length of their longest common subsequence over the total
// length. 1.0 means identical, 0.0 means nothing in common.
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	ra, rb := []rune(a), []rune(b)
	common := lcsLength(ra, rb)
	return 2.0 * float64(common) / float64(len(ra)+len(rb))
}

// lcsLength computes the longest common subsequence length with a
// rolling single-row table.
func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

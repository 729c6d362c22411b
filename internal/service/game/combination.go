package game

// Combinations returns every k-element subset of items in lexicographic
// index order.
func Combinations[T any](items []T, k int) [][]T {
	n := len(items)
	if k < 0 || k > n {
		return nil
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	var out [][]T
	for {
		combo := make([]T, k)
		for i, j := range idx {
			combo[i] = items[j]
		}
		out = append(out, combo)

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// disjointCombinations returns the empty combination followed by every
// combination of 1..maxSize groups whose members share no card, smallest
// combinations first and lexicographic within a size. Branches are cut as
// soon as a conflict appears, which yields the same survivors as filtering
// the full enumeration.
func disjointCombinations(groups []Group, maxSize int) [][]Group {
	out := [][]Group{{}}
	stack := make([]Group, 0, maxSize)

	var walk func(start, size int, used uint64)
	walk = func(start, size int, used uint64) {
		if len(stack) == size {
			out = append(out, append([]Group(nil), stack...))
			return
		}
		for i := start; i <= len(groups)-(size-len(stack)); i++ {
			g := groups[i]
			if g.mask&used != 0 {
				continue
			}
			stack = append(stack, g)
			walk(i+1, size, used|g.mask)
			stack = stack[:len(stack)-1]
		}
	}

	for size := 1; size <= maxSize; size++ {
		walk(0, size, 0)
	}
	return out
}

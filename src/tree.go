package pushvm

// Structural algorithms over Item trees. Point indices count one point per
// leaf and one per list, in depth-first order with index 0 naming the whole
// expression.

// Size returns the number of points in the item
func Size(item Item) int {
	l, ok := item.(List)
	if !ok {
		return 1
	}
	n := 1
	for _, child := range l.Items {
		n += Size(child)
	}
	return n
}

// ShallowSize counts the item itself plus its direct children; nested lists
// count as one point each
func ShallowSize(item Item) int {
	if l, ok := item.(List); ok {
		return 1 + len(l.Items)
	}
	return 1
}

// Length returns the direct child count of a list, or 1 for anything else
func Length(item Item) int {
	if l, ok := item.(List); ok {
		return len(l.Items)
	}
	return 1
}

// NormalizeIndex maps any integer onto [0, size) using the Euclidean
// remainder followed by the absolute value. size must be positive.
func NormalizeIndex(index, size int) int {
	r := index % size
	if r < 0 {
		if size > 0 {
			r += size
		} else {
			r -= size
		}
	}
	if r < 0 {
		r = -r
	}
	return r
}

// Traverse returns the sub-item at the given depth-first point index. The
// index is normalized against Size(tree).
func Traverse(tree Item, index int) Item {
	found, _ := traverse(tree, NormalizeIndex(index, Size(tree)))
	return Copy(found)
}

// traverse walks to point index i, returning the item and the number of
// points consumed when it is not found within tree
func traverse(tree Item, i int) (Item, int) {
	if i == 0 {
		return tree, 0
	}
	l, ok := tree.(List)
	if !ok {
		return nil, 1
	}
	i--
	consumed := 1
	for _, child := range l.Items {
		found, used := traverse(child, i)
		if found != nil {
			return found, 0
		}
		i -= used
		consumed += used
	}
	return nil, consumed
}

// Nth returns the whole item for index 0 or the direct child at position
// index-1; the index is normalized against ShallowSize(tree)
func Nth(tree Item, index int) Item {
	i := NormalizeIndex(index, ShallowSize(tree))
	l, ok := tree.(List)
	if i == 0 || !ok {
		return Copy(tree)
	}
	return Copy(l.Items[i-1])
}

// Insert replaces the sub-item at the normalized point index with a copy of
// replacement. It reports false if the index could not be resolved.
func Insert(tree Item, replacement Item, index int) (Item, bool) {
	size := Size(tree)
	if size == 0 {
		return tree, false
	}
	result, _, ok := insert(tree, replacement, NormalizeIndex(index, size))
	return result, ok
}

func insert(tree Item, replacement Item, i int) (Item, int, bool) {
	if i == 0 {
		return Copy(replacement), 0, true
	}
	l, ok := tree.(List)
	if !ok {
		return tree, 1, false
	}
	i--
	consumed := 1
	children := make([]Item, len(l.Items))
	copy(children, l.Items)
	for n, child := range children {
		updated, used, done := insert(child, replacement, i)
		if done {
			children[n] = updated
			return List{Items: children}, 0, true
		}
		i -= used
		consumed += used
	}
	return tree, consumed, false
}

// Contains searches haystack depth first and returns the point index of the
// first point equal to needle
func Contains(haystack, needle Item) (int, bool) {
	pos := -1
	var walk func(it Item, at int) int
	walk = func(it Item, at int) int {
		if Equal(it, needle) {
			pos = at
			return 1
		}
		used := 1
		if l, ok := it.(List); ok {
			for _, child := range l.Items {
				used += walk(child, at+used)
				if pos >= 0 {
					break
				}
			}
		}
		return used
	}
	walk(haystack, 0)
	return pos, pos >= 0
}

// Container returns the smallest list nested inside haystack that holds
// needle as one of its direct children. The haystack itself never qualifies,
// so a needle found only at the top level has no container.
func Container(haystack, needle Item) (List, bool) {
	var best List
	bestSize := -1
	var walk func(l List) int
	walk = func(l List) int {
		size, holds := 1, false
		for _, child := range l.Items {
			if !holds && Equal(child, needle) {
				holds = true
			}
			if sub, ok := child.(List); ok {
				size += walk(sub)
			} else {
				size++
			}
		}
		if holds && (bestSize < 0 || size < bestSize) {
			best, bestSize = l, size
		}
		return size
	}
	if root, ok := haystack.(List); ok {
		for _, child := range root.Items {
			if sub, ok := child.(List); ok {
				walk(sub)
			}
		}
	}
	if bestSize < 0 {
		return List{}, false
	}
	return Copy(best).(List), true
}

// Discrepancy measures how different two items are. Two lists are compared
// position by position over the first list's elements, plus the difference
// in their lengths; anything else is 0 when equal and 1 otherwise.
func Discrepancy(a, b Item) int {
	la, okA := a.(List)
	lb, okB := b.(List)
	if !okA || !okB {
		if Equal(a, b) {
			return 0
		}
		return 1
	}
	d := 0
	for i, x := range la.Items {
		if i < len(lb.Items) && !Equal(x, lb.Items[i]) {
			d++
		}
	}
	diff := len(la.Items) - len(lb.Items)
	if diff < 0 {
		diff = -diff
	}
	return d + diff
}

// Substitute replaces every sub-item of target equal to pattern with a copy
// of replacement. The boolean reports whether the root itself was replaced.
func Substitute(target, pattern, replacement Item) (Item, bool) {
	if Equal(target, pattern) {
		return Copy(replacement), true
	}
	return substitute(target, pattern, replacement), false
}

func substitute(it, pattern, replacement Item) Item {
	if Equal(it, pattern) {
		return Copy(replacement)
	}
	l, ok := it.(List)
	if !ok {
		return it
	}
	children := make([]Item, len(l.Items))
	for i, child := range l.Items {
		children[i] = substitute(child, pattern, replacement)
	}
	return List{Items: children}
}

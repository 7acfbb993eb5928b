package vdom

// patchChildren reconciles a child list inside container. end is the node
// the list must stay in front of: nil for an element's children, the end
// anchor for a fragment.
func (r *Renderer) patchChildren(old, next []*VNode, container, end Node) {
	strategy := r.strategy
	if !hasKeys(old) && !hasKeys(next) {
		strategy = StrategyIndex
	} else {
		r.checkKeys(next)
	}

	switch strategy {
	case StrategyIndex:
		r.diffIndex(old, next, container, end)
	case StrategyKeyed:
		r.diffKeyed(old, next, container, end)
	case StrategyDoubleEnded:
		r.diffDoubleEnded(old, next, container, end)
	default:
		r.diffQuick(old, next, container, end)
	}
}

// checkKeys warns about repeated keys. Repeated keys still render: the later
// node is treated as unmatched.
func (r *Renderer) checkKeys(children []*VNode) {
	seen := make(map[string]bool, len(children))
	for _, c := range children {
		if c.Key == "" {
			continue
		}
		if seen[c.Key] {
			r.warn(ErrDuplicateKey.WithDetail("key %q", c.Key))
			continue
		}
		seen[c.Key] = true
	}
}

// diffIndex pairs children by position.
func (r *Renderer) diffIndex(old, next []*VNode, container, end Node) {
	common := min(len(old), len(next))
	for i := 0; i < common; i++ {
		r.Patch(old[i], next[i], container, end)
	}
	for i := common; i < len(next); i++ {
		r.Patch(nil, next[i], container, end)
	}
	for i := common; i < len(old); i++ {
		r.Unmount(old[i])
	}
}

// diffKeyed matches each new child by a linear scan of the old list. A
// matched node moves only when its old index is smaller than the largest
// old index matched so far.
func (r *Renderer) diffKeyed(old, next []*VNode, container, end Node) {
	used := make([]bool, len(old))
	lastIndex := 0

	for i, nv := range next {
		found := false
		for j, ov := range old {
			if used[j] || !sameNode(ov, nv) {
				continue
			}
			found = true
			used[j] = true
			r.Patch(ov, nv, container, end)
			if j < lastIndex {
				r.move(nv, container, r.after(next[i-1], end))
			} else {
				lastIndex = j
			}
			break
		}
		if found {
			continue
		}

		var anchor Node
		switch {
		case i > 0:
			anchor = r.after(next[i-1], end)
		case len(old) > 0:
			anchor = r.hostOf(old[0])
		default:
			anchor = end
		}
		r.Patch(nil, nv, container, anchor)
	}

	for j, ov := range old {
		if !used[j] {
			r.Unmount(ov)
		}
	}
}

// after returns the host node immediately following v, or end.
func (r *Renderer) after(v *VNode, end Node) Node {
	if next := r.nextSibling(r.lastHostOf(v)); next != nil {
		return next
	}
	return end
}

// diffDoubleEnded compares the heads and tails of both lists, falling back
// to a keyed lookup when none of the four pairs match.
func (r *Renderer) diffDoubleEnded(old, next []*VNode, container, end Node) {
	oldCh := append([]*VNode(nil), old...)
	oStart, oEnd := 0, len(oldCh)-1
	nStart, nEnd := 0, len(next)-1

	for oStart <= oEnd && nStart <= nEnd {
		switch {
		case oldCh[oStart] == nil:
			oStart++
		case oldCh[oEnd] == nil:
			oEnd--
		case sameNode(oldCh[oStart], next[nStart]):
			r.Patch(oldCh[oStart], next[nStart], container, end)
			oStart++
			nStart++
		case sameNode(oldCh[oEnd], next[nEnd]):
			r.Patch(oldCh[oEnd], next[nEnd], container, end)
			oEnd--
			nEnd--
		case sameNode(oldCh[oStart], next[nEnd]):
			r.Patch(oldCh[oStart], next[nEnd], container, end)
			r.move(next[nEnd], container, r.after(oldCh[oEnd], end))
			oStart++
			nEnd--
		case sameNode(oldCh[oEnd], next[nStart]):
			r.Patch(oldCh[oEnd], next[nStart], container, end)
			r.move(next[nStart], container, r.hostOf(oldCh[oStart]))
			oEnd--
			nStart++
		default:
			idx := -1
			for j := oStart + 1; j < oEnd; j++ {
				if oldCh[j] != nil && sameNode(oldCh[j], next[nStart]) {
					idx = j
					break
				}
			}
			if idx > 0 {
				r.Patch(oldCh[idx], next[nStart], container, end)
				r.move(next[nStart], container, r.hostOf(oldCh[oStart]))
				oldCh[idx] = nil
			} else {
				r.Patch(nil, next[nStart], container, r.hostOf(oldCh[oStart]))
			}
			nStart++
		}
	}

	switch {
	case oStart > oEnd && nStart <= nEnd:
		anchor := end
		if nEnd+1 < len(next) {
			anchor = r.hostOf(next[nEnd+1])
		}
		for i := nStart; i <= nEnd; i++ {
			r.Patch(nil, next[i], container, anchor)
		}
	case nStart > nEnd:
		for i := oStart; i <= oEnd; i++ {
			if oldCh[i] != nil {
				r.Unmount(oldCh[i])
			}
		}
	}
}

// diffQuick trims the common prefix and suffix, then reuses the remaining
// old nodes by key and moves only those that are not on the longest
// increasing subsequence of reused positions.
func (r *Renderer) diffQuick(old, next []*VNode, container, end Node) {
	i := 0
	e1, e2 := len(old)-1, len(next)-1

	for i <= e1 && i <= e2 && sameNode(old[i], next[i]) {
		r.Patch(old[i], next[i], container, end)
		i++
	}
	for i <= e1 && i <= e2 && sameNode(old[e1], next[e2]) {
		r.Patch(old[e1], next[e2], container, end)
		e1--
		e2--
	}

	anchorAfter := func(idx int) Node {
		if idx+1 < len(next) {
			return r.hostOf(next[idx+1])
		}
		return end
	}

	switch {
	case i > e1:
		anchor := anchorAfter(e2)
		for j := i; j <= e2; j++ {
			r.Patch(nil, next[j], container, anchor)
		}
		return
	case i > e2:
		for j := i; j <= e1; j++ {
			r.Unmount(old[j])
		}
		return
	}

	count := e2 - i + 1
	source := make([]int, count)
	for k := range source {
		source[k] = Unmatched
	}
	keyIndex := make(map[string]int, count)
	for j := i; j <= e2; j++ {
		if _, dup := keyIndex[next[j].Key]; !dup {
			keyIndex[next[j].Key] = j
		}
	}

	patched := 0
	for j := i; j <= e1; j++ {
		ov := old[j]
		if patched >= count {
			r.Unmount(ov)
			continue
		}
		k, ok := keyIndex[ov.Key]
		if !ok || !sameType(ov, next[k]) || source[k-i] != Unmatched {
			r.Unmount(ov)
			continue
		}
		source[k-i] = j
		patched++
		r.Patch(ov, next[k], container, end)
	}

	seq := LongestIncreasingSubsequence(source)
	s := len(seq) - 1
	for k := count - 1; k >= 0; k-- {
		idx := i + k
		anchor := anchorAfter(idx)
		switch {
		case source[k] == Unmatched:
			r.Patch(nil, next[idx], container, anchor)
		case s < 0 || k != seq[s]:
			r.move(next[idx], container, anchor)
		default:
			s--
		}
	}
}

package ir

// Reachable reports which blocks can be reached from the entry block.
func (f *Function) Reachable() map[string]bool {
	seen := make(map[string]bool)
	if len(f.Blocks) == 0 {
		return seen
	}
	work := []string{f.Blocks[0].Label}
	for len(work) > 0 {
		label := work[len(work)-1]
		work = work[:len(work)-1]
		b := f.Block(label)
		if b == nil || seen[label] {
			continue
		}
		seen[label] = true
		work = append(work, b.Succs...)
	}
	return seen
}

// reversePostorder lists the reachable blocks so that, back edges aside,
// every block comes after its predecessors.
func (f *Function) reversePostorder() []string {
	if len(f.Blocks) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var post []string
	var visit func(label string)
	visit = func(label string) {
		b := f.Block(label)
		if b == nil || seen[label] {
			return
		}
		seen[label] = true
		for _, succ := range b.Succs {
			visit(succ)
		}
		post = append(post, label)
	}
	visit(f.Blocks[0].Label)

	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

// Dominators computes the immediate dominator of every reachable block,
// keyed by label. The entry block maps to "". Unreachable blocks are absent.
// The result does not depend on the order blocks appear in the text.
func (f *Function) Dominators() map[string]string {
	idom := make(map[string]string)
	order := f.reversePostorder()
	if len(order) == 0 {
		return idom
	}
	entry := order[0]
	idom[entry] = ""

	// Iterate to a fixed point: a block's dominator is the common dominator
	// of its already-processed predecessors. A block none of whose
	// predecessors has been processed yet stays unrecorded.
	for changed := true; changed; {
		changed = false
		for _, label := range order[1:] {
			newDom := ""
			for _, pred := range f.Block(label).Preds {
				if _, ok := idom[pred]; !ok {
					continue
				}
				if newDom == "" {
					newDom = pred
				} else {
					newDom = intersect(pred, newDom, idom)
				}
			}
			if newDom == "" {
				continue
			}
			if old, ok := idom[label]; !ok || old != newDom {
				idom[label] = newDom
				changed = true
			}
		}
	}
	return idom
}

// Dominates reports whether every path from the entry to b passes through a.
func (f *Function) Dominates(a, b string) bool {
	return dominates(a, b, f.Dominators())
}

func dominates(a, b string, idom map[string]string) bool {
	if _, ok := idom[b]; !ok {
		return false
	}
	for cur := b; cur != ""; cur = idom[cur] {
		if cur == a {
			return true
		}
	}
	return false
}

// intersect returns the closest block dominating both a and b.
func intersect(a, b string, idom map[string]string) string {
	onPath := make(map[string]bool)
	for cur := a; cur != ""; cur = idom[cur] {
		onPath[cur] = true
	}
	for cur := b; cur != ""; cur = idom[cur] {
		if onPath[cur] {
			return cur
		}
	}
	return ""
}

package grammar

import "fmt"

// nameAllocator mints non-terminal names that collide with no symbol of a grammar nor with a name it
// minted before.
type nameAllocator struct {
	used map[string]struct{}
}

func newNameAllocator(g *Grammar) *nameAllocator {
	a := &nameAllocator{
		used: map[string]struct{}{},
	}
	for _, name := range g.nonTerminals.Names() {
		a.used[name] = struct{}{}
	}
	for _, name := range g.terminals.Names() {
		a.used[name] = struct{}{}
	}
	return a
}

func (a *nameAllocator) isUsed(name string) bool {
	_, ok := a.used[name]
	return ok
}

// primed returns base followed by as few apostrophes as make it unused, e.g. expr'.
func (a *nameAllocator) primed(base string) string {
	name := base + "'"
	for a.isUsed(name) {
		name += "'"
	}
	a.used[name] = struct{}{}
	return name
}

// indexed returns prefix followed by the smallest positive index that makes it unused, e.g. N1.
func (a *nameAllocator) indexed(prefix string) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("%v%v", prefix, i)
		if a.isUsed(name) {
			continue
		}
		a.used[name] = struct{}{}
		return name
	}
}

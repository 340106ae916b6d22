package stub

// indexPool is the fixed pool of single-letter loop index names, in the
// order generated code conventionally uses them.
var indexPool = []string{
	"i", "j", "k", "l", "m", "n", "o", "p", "q", "r", "s", "t",
	"u", "v", "w", "x", "y", "z", "a", "b", "c", "d", "e", "f", "g", "h",
}

// LoopIndexNames returns n loop index identifiers drawn from the fixed pool,
// skipping any letter already used as a real variable identifier. If the
// pool runs dry the letters repeat with a numeric suffix.
func LoopIndexNames(used map[string]bool, n int) []string {
	names := make([]string, 0, n)
	for round := 0; len(names) < n; round++ {
		for _, letter := range indexPool {
			if len(names) == n {
				break
			}
			name := letter
			if round > 0 {
				name = letter + string(rune('0'+round))
			}
			if used[name] {
				continue
			}
			names = append(names, name)
		}
	}
	return names
}

// DeclaredIdentifiers collects the surface identifiers of every variable
// declared by Read and LoopLine commands anywhere in the tree, including
// inside loop bodies and inside the sub-trees retained by rewrite artifacts.
func DeclaredIdentifiers(commands []Cmd) map[string]bool {
	idents := make(map[string]bool)
	var walk func(cmd Cmd)
	walk = func(cmd Cmd) {
		switch c := cmd.(type) {
		case Read:
			for _, v := range c.Variables {
				idents[v.Ident] = true
			}
		case LoopLine:
			for _, v := range c.Variables {
				idents[v.Ident] = true
			}
		case Loop:
			walk(c.Body)
		case Extension:
			for _, retained := range c.Artifact.RetainedCommands() {
				walk(retained)
			}
		}
	}
	for _, cmd := range commands {
		walk(cmd)
	}
	return idents
}

// MaxNestingDepth returns the longest chain of nesting levels in the tree.
// Both Loop wrappers and the line-splitting iteration of a LoopLine count as
// one level each.
func MaxNestingDepth(commands []Cmd) int {
	maxDepth := 0
	var depth func(cmd Cmd, d int) int
	depth = func(cmd Cmd, d int) int {
		switch c := cmd.(type) {
		case Loop:
			return depth(c.Body, d+1)
		case LoopLine:
			return d + 1
		}
		return d
	}
	for _, cmd := range commands {
		if d := depth(cmd, 0); d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

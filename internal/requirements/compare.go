package requirements

import "fmt"

// ChangeKind classifies how a pin differs between two manifests.
type ChangeKind string

// Change kinds.
const (
	ChangeMissing    ChangeKind = "missing"
	ChangeAdded      ChangeKind = "added"
	ChangeUpgraded   ChangeKind = "upgraded"
	ChangeDowngraded ChangeKind = "downgraded"
)

// Change is one differing pin.
type Change struct {
	Name string
	Kind ChangeKind
	Want string // canonical version, empty for added pins
	Got  string // actual version, empty for missing pins
}

func (c Change) String() string {
	switch c.Kind {
	case ChangeMissing:
		return fmt.Sprintf("%s==%s missing", c.Name, c.Want)
	case ChangeAdded:
		return fmt.Sprintf("%s==%s not in canonical manifest", c.Name, c.Got)
	default:
		return fmt.Sprintf("%s %s %s -> %s", c.Name, c.Kind, c.Want, c.Got)
	}
}

// Compare lists required pins of want that are missing or pinned differently
// in got, then required pins of got that want does not declare. Optional
// pins are ignored on both sides.
func Compare(want, got *Manifest) []Change {
	var changes []Change

	seen := make(map[string]bool)
	for _, w := range want.Required() {
		seen[w.Key()] = true
		g, ok := got.Lookup(w.Name)
		if !ok || g.Optional {
			changes = append(changes, Change{Name: w.Name, Kind: ChangeMissing, Want: w.Raw})
			continue
		}
		switch w.Version.Compare(g.Version) {
		case -1:
			changes = append(changes, Change{Name: w.Name, Kind: ChangeUpgraded, Want: w.Raw, Got: g.Raw})
		case 1:
			changes = append(changes, Change{Name: w.Name, Kind: ChangeDowngraded, Want: w.Raw, Got: g.Raw})
		}
	}

	for _, g := range got.Required() {
		if !seen[g.Key()] {
			changes = append(changes, Change{Name: g.Name, Kind: ChangeAdded, Got: g.Raw})
		}
	}
	return changes
}

package keymap

// Resolver maps a key string, as bubbletea reports it, to its action.
type Resolver map[string]Action

// NewResolver indexes bindings by key. A key bound twice keeps its first
// binding, the one listed first in help.
func NewResolver(bindings []Binding) Resolver {
	r := make(Resolver)
	for _, b := range bindings {
		for _, k := range b.Keys {
			if _, taken := r[k]; !taken {
				r[k] = b.Action
			}
		}
	}
	return r
}

// Resolve returns the action bound to key, or "" when nothing is.
func (r Resolver) Resolve(key string) Action {
	return r[key]
}

package semantic

// ScopeID identifies a scope in the model arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope reference.
const NoScopeID ScopeID = 0

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// BindingID identifies a binding in the model arena.
type BindingID uint32

// NoBindingID marks the absence of a binding reference.
const NoBindingID BindingID = 0

// IsValid reports whether the binding ID refers to an allocated binding.
func (id BindingID) IsValid() bool { return id != NoBindingID }

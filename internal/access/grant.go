package access

// Grant is a boolean CRUD permission tuple scoped to one module. A user has
// at most one user-level and at most one profile-level grant per module
// (unique constraints in the permission tables).
type Grant struct {
	Module Module `json:"module"`
	Create bool   `json:"create"`
	Read   bool   `json:"read"`
	Update bool   `json:"update"`
	Delete bool   `json:"delete"`
}

// Allows reports whether the grant permits the given access kind.
func (g Grant) Allows(kind Kind) bool {
	switch kind {
	case KindCreate:
		return g.Create
	case KindRead:
		return g.Read
	case KindUpdate:
		return g.Update
	case KindDelete:
		return g.Delete
	}
	return false
}

func findGrant(grants []Grant, module Module) (Grant, bool) {
	for _, g := range grants {
		if g.Module == module {
			return g, true
		}
	}
	return Grant{}, false
}

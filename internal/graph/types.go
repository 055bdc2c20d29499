package graph

type RelationKind string

const (
	RelationInherits RelationKind = "inherits"
)

type UnresolvedReason string

const (
	ReasonNoCandidate UnresolvedReason = "no_candidate"
	ReasonAmbiguous   UnresolvedReason = "ambiguous"
)

// Unresolved is a base class expression that names no class of the project.
// Such a base is kept in resolution orders as an opaque ancestor.
type Unresolved struct {
	From   string           `json:"from"`
	Target string           `json:"target"`
	Reason UnresolvedReason `json:"reason"`
}

// externalPrefix marks the IDs of opaque ancestors.
const externalPrefix = "?"

// IsExternal reports whether id names a base outside the project.
func IsExternal(id string) bool {
	return len(id) > 0 && id[0] == externalPrefix[0]
}

package models

// Identifiable is the opt-in contract entities implement so that the
// data-access instrumentation can extract identifying attributes without
// reflection. Extraction is best-effort: a type that does not implement it is
// simply traced without entity attributes.
type Identifiable interface {
	EntityID() string
	EntityOwnerID() string
	EntityKind() string
}

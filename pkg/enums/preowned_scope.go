package enums

// PreOwnedScope limits a pre-owned listing to a brand family.
type PreOwnedScope string

const (
	PreOwnedScopeApple   PreOwnedScope = "apple"
	PreOwnedScopeAndroid PreOwnedScope = "android"
	PreOwnedScopeAll     PreOwnedScope = "all"
)

func (s PreOwnedScope) String() string {
	return string(s)
}

package entity

// Identity is the caller as verified by the identity provider.
type Identity struct {
	UID   string
	Email string
	Name  string
}

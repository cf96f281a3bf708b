package fgmerkle

// Hasher is the user-defined capability for hashing leaves and internal nodes.
// The [Tree] is agnostic to the concrete algorithm;
// it only requires that every call on a given Hasher
// produces a digest of the same fixed length.
//
// To be allocation-efficient, the Hasher implementation
// must append its hash output to dst and return the extended slice,
// instead of creating a new byte slice.
// Hasher must not retain references to the dst slice.
type Hasher interface {
	Hash(in, dst []byte) []byte
}

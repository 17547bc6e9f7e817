// Package codec holds interchangeable serializations of values, most notably
// ouch.OrderMessage. Binary is the canonical 32-byte wire form; the others are
// for archival, debugging or interop with systems that do not speak the wire format.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

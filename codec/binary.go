package codec

import "github.com/unkn0wn-root/ouch"

// Binary is the fixed 32-byte order message codec. Errors are the
// *ouch.EncodeError / *ouch.DecodeError values returned by the ouch package.
type Binary struct{}

var _ Codec[ouch.OrderMessage] = Binary{}

func (Binary) Encode(m ouch.OrderMessage) ([]byte, error) { return ouch.Encode(m) }
func (Binary) Decode(b []byte) (ouch.OrderMessage, error) { return ouch.Decode(b) }

// Package ouch encodes and decodes a fixed-layout, OUCH-style order entry message.
//
// Every message is exactly 32 bytes:
//
//	offset  size  field
//	0       1     message_type        ASCII char
//	1       14    order_token         ASCII, space padded
//	15      1     buy_sell_indicator  ASCII char ('B' or 'S')
//	16      4     shares              uint32 big-endian
//	20      8     stock_symbol        ASCII, space padded
//	28      4     price               uint32 big-endian, hundredths
//
// Encode and Decode are pure and safe for concurrent use. Failures are reported as
// *EncodeError / *DecodeError wrapping one of the package sentinels, so callers can
// match with errors.Is or inspect the failing field with errors.As.
//
// Components built around the codec:
//   - codec: alternative serializations of OrderMessage (JSON, msgpack, CBOR, protobuf).
//   - journal: latest-message-per-token store over a pluggable Provider,
//     guarded by per-token revisions from a GenStore.
//
// Round trip:
//
//	b, err := ouch.Encode(msg)
//	...
//	got, err := ouch.Decode(b) // got == msg.Normalize()
package ouch

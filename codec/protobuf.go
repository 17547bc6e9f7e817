package codec

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/unkn0wn-root/ouch"
)

// Protobuf field numbers:
//
//	message OrderMessage {
//	  string message_type       = 1;
//	  string order_token        = 2;
//	  string buy_sell_indicator = 3;
//	  int64  shares             = 4;
//	  string stock_symbol       = 5;
//	  int64  price              = 6;
//	}
const (
	pbMessageType protowire.Number = iota + 1
	pbOrderToken
	pbBuySell
	pbShares
	pbStockSymbol
	pbPrice
)

// Protobuf encodes ouch.OrderMessage in protobuf wire format without generated
// code. Zero-valued fields are omitted (proto3 semantics) and unknown fields are
// skipped on Decode, so newer producers can add fields.
type Protobuf struct{}

var _ Codec[ouch.OrderMessage] = Protobuf{}

func (Protobuf) Encode(m ouch.OrderMessage) ([]byte, error) {
	b := make([]byte, 0, 64)
	b = appendString(b, pbMessageType, m.MessageType)
	b = appendString(b, pbOrderToken, m.OrderToken)
	b = appendString(b, pbBuySell, m.BuySell)
	b = appendInt(b, pbShares, m.Shares)
	b = appendString(b, pbStockSymbol, m.StockSymbol)
	b = appendInt(b, pbPrice, m.Price)
	return b, nil
}

func (Protobuf) Decode(b []byte) (ouch.OrderMessage, error) {
	var m ouch.OrderMessage
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return ouch.OrderMessage{}, fmt.Errorf("codec: protobuf tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch num {
		case pbMessageType, pbOrderToken, pbBuySell, pbStockSymbol:
			if typ != protowire.BytesType {
				return ouch.OrderMessage{}, fmt.Errorf("codec: protobuf field %d: wire type %d, want bytes", num, typ)
			}
			var s string
			s, n = protowire.ConsumeString(b)
			switch num {
			case pbMessageType:
				m.MessageType = s
			case pbOrderToken:
				m.OrderToken = s
			case pbBuySell:
				m.BuySell = s
			default:
				m.StockSymbol = s
			}
		case pbShares, pbPrice:
			if typ != protowire.VarintType {
				return ouch.OrderMessage{}, fmt.Errorf("codec: protobuf field %d: wire type %d, want varint", num, typ)
			}
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			if num == pbShares {
				m.Shares = int64(v)
			} else {
				m.Price = int64(v)
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return ouch.OrderMessage{}, fmt.Errorf("codec: protobuf field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return m, nil
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendInt(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

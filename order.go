package ouch

import (
	"fmt"
	"strings"

	"github.com/unkn0wn-root/ouch/internal/wire"
)

const (
	// MessageSize is the encoded length of every OrderMessage.
	MessageSize = wire.Size

	TokenWidth  = wire.TokenWidth
	SymbolWidth = wire.SymbolWidth

	MaxUint32Value = 1<<32 - 1
)

const (
	TypeEnterOrder = "O"

	SideBuy  = "B"
	SideSell = "S"
)

// Wire names of the message fields, as reported in EncodeError/DecodeError.
const (
	FieldMessageType = "message_type"
	FieldOrderToken  = "order_token"
	FieldBuySell     = "buy_sell_indicator"
	FieldShares      = "shares"
	FieldStockSymbol = "stock_symbol"
	FieldPrice       = "price"
)

// OrderMessage is a single order entry message. It is a plain value: copy it freely.
//
// Shares and Price are int64 so that out-of-range input can be rejected by Encode
// instead of wrapping. Price is in hundredths of a currency unit.
type OrderMessage struct {
	MessageType string `json:"message_type" msgpack:"message_type"`
	OrderToken  string `json:"order_token" msgpack:"order_token"`
	BuySell     string `json:"buy_sell_indicator" msgpack:"buy_sell_indicator"`
	Shares      int64  `json:"shares" msgpack:"shares"`
	StockSymbol string `json:"stock_symbol" msgpack:"stock_symbol"`
	Price       int64  `json:"price" msgpack:"price"`
}

// Normalize returns m with the padding Decode would strip removed from its text fields.
// Decode(Encode(m)) equals m.Normalize() for every m that encodes.
func (m OrderMessage) Normalize() OrderMessage {
	m.OrderToken = strings.TrimRight(m.OrderToken, " \x00")
	m.StockSymbol = strings.TrimRight(m.StockSymbol, " \x00")
	return m
}

func (m OrderMessage) DisplayPrice() string { return FormatPrice(m.Price) }

// String renders m on one line with the price in raw hundredths; use
// DisplayPrice for the two-decimal form.
func (m OrderMessage) String() string {
	return fmt.Sprintf("Type: %s, Order Token: %s, Side: %s, Shares: %d, Symbol: %s, Price: %d",
		m.MessageType, m.OrderToken, m.BuySell, m.Shares, m.StockSymbol, m.Price)
}

package ouch

import (
	"fmt"
	"unicode/utf8"

	"github.com/unkn0wn-root/ouch/internal/wire"
)

type textField struct {
	name  string
	off   int
	width int
}

// byte ranges Decode requires to be ASCII
var textFields = [...]textField{
	{FieldMessageType, wire.OffType, 1},
	{FieldOrderToken, wire.OffToken, wire.TokenWidth},
	{FieldBuySell, wire.OffSide, 1},
	{FieldStockSymbol, wire.OffSymbol, wire.SymbolWidth},
}

// Encode returns the 32-byte wire form of m.
// On error the result is nil and err is an *EncodeError.
func Encode(m OrderMessage) ([]byte, error) {
	return AppendEncode(nil, m)
}

// AppendEncode appends the wire form of m to dst and returns the extended slice.
// On error dst is returned unchanged.
func AppendEncode(dst []byte, m OrderMessage) ([]byte, error) {
	if err := m.validate(); err != nil {
		return dst, err
	}

	n := len(dst)
	dst = append(dst, make([]byte, wire.Size)...)
	b := dst[n:]

	b[wire.OffType] = m.MessageType[0]
	wire.PutText(b[wire.OffToken:wire.OffSide], m.OrderToken)
	b[wire.OffSide] = m.BuySell[0]
	wire.PutUint32(b[wire.OffShares:wire.OffSymbol], uint32(m.Shares))
	wire.PutText(b[wire.OffSymbol:wire.OffPrice], m.StockSymbol)
	wire.PutUint32(b[wire.OffPrice:wire.Size], uint32(m.Price))

	return dst, nil
}

// Decode parses exactly one 32-byte message. Text fields lose trailing
// spaces and NULs. The result does not reference b.
func Decode(b []byte) (OrderMessage, error) {
	if len(b) != wire.Size {
		return OrderMessage{}, &DecodeError{
			Err:    ErrLengthMismatch,
			Detail: fmt.Sprintf("got %d bytes, want %d", len(b), wire.Size),
		}
	}
	for _, f := range textFields {
		if i := wire.ASCII(b[f.off : f.off+f.width]); i >= 0 {
			return OrderMessage{}, &DecodeError{
				Field:  f.name,
				Offset: f.off + i,
				Err:    ErrInvalidEncoding,
				Detail: fmt.Sprintf("byte 0x%02x", b[f.off+i]),
			}
		}
	}

	return OrderMessage{
		MessageType: string(b[wire.OffType : wire.OffType+1]),
		OrderToken:  wire.Text(b[wire.OffToken:wire.OffSide]),
		BuySell:     string(b[wire.OffSide : wire.OffSide+1]),
		Shares:      int64(wire.Uint32(b[wire.OffShares:wire.OffSymbol])),
		StockSymbol: wire.Text(b[wire.OffSymbol:wire.OffPrice]),
		Price:       int64(wire.Uint32(b[wire.OffPrice:wire.Size])),
	}, nil
}

// Validate reports whether m can be encoded, without encoding it. The error is
// the *EncodeError Encode would return.
func (m OrderMessage) Validate() error { return m.validate() }

// validate checks fields in wire order and reports the first failure.
func (m OrderMessage) validate() error {
	if err := checkChar(FieldMessageType, m.MessageType); err != nil {
		return err
	}
	if err := checkText(FieldOrderToken, m.OrderToken, wire.TokenWidth); err != nil {
		return err
	}
	if err := checkChar(FieldBuySell, m.BuySell); err != nil {
		return err
	}
	if err := checkUint32(FieldShares, m.Shares); err != nil {
		return err
	}
	if err := checkText(FieldStockSymbol, m.StockSymbol, wire.SymbolWidth); err != nil {
		return err
	}
	return checkUint32(FieldPrice, m.Price)
}

func checkChar(field, s string) error {
	if utf8.RuneCountInString(s) != 1 || s[0] >= utf8.RuneSelf {
		return &EncodeError{Field: field, Err: ErrInvalidCharacterField, Detail: fmt.Sprintf("%q", s)}
	}
	return nil
}

func checkText(field, s string, width int) error {
	if n := utf8.RuneCountInString(s); n > width {
		return &EncodeError{Field: field, Err: ErrFieldTooLong, Detail: fmt.Sprintf("%d chars, max %d", n, width)}
	}
	if i := wire.ASCII(s); i >= 0 {
		return &EncodeError{Field: field, Err: ErrInvalidEncoding, Detail: fmt.Sprintf("non-ASCII at index %d", i)}
	}
	return nil
}

func checkUint32(field string, v int64) error {
	if v < 0 || v > MaxUint32Value {
		return &EncodeError{Field: field, Err: ErrValueOutOfRange, Detail: fmt.Sprintf("%d", v)}
	}
	return nil
}

package ouch

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
)

func sample() OrderMessage {
	return OrderMessage{
		MessageType: TypeEnterOrder,
		OrderToken:  "ABC12345678901",
		BuySell:     SideBuy,
		Shares:      100,
		StockSymbol: "AAPL",
		Price:       15000,
	}
}

func mustEncode(t *testing.T, m OrderMessage) []byte {
	t.Helper()
	b, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode(%+v): %v", m, err)
	}
	return b
}

func mustDecode(t *testing.T, b []byte) OrderMessage {
	t.Helper()
	m, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode(% x): %v", b, err)
	}
	return m
}

func TestEncodeKnownBytes(t *testing.T) {
	var want []byte
	want = append(want, 0x4F)
	want = append(want, "ABC12345678901"...)
	want = append(want, 0x42)
	want = append(want, 0x00, 0x00, 0x00, 0x64)
	want = append(want, "AAPL    "...)
	want = append(want, 0x00, 0x00, 0x3A, 0x98)

	got := mustEncode(t, sample())
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode mismatch:\n got % x\nwant % x", got, want)
	}

	m := mustDecode(t, want)
	if m != sample() {
		t.Fatalf("Decode mismatch: got %+v want %+v", m, sample())
	}
	if p := m.DisplayPrice(); p != "150.00" {
		t.Fatalf("DisplayPrice = %q, want 150.00", p)
	}
}

func TestString(t *testing.T) {
	want := "Type: O, Order Token: ABC12345678901, Side: B, Shares: 100, Symbol: AAPL, Price: 15000"
	if got := sample().String(); got != want {
		t.Fatalf("String() = %q\nwant %q", got, want)
	}
	if err := sample().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestDecodeStripsPadding(t *testing.T) {
	b := mustEncode(t, sample())
	if string(b[20:28]) != "AAPL    " {
		t.Fatalf("symbol not space padded: %q", b[20:28])
	}
	if got := mustDecode(t, b).StockSymbol; got != "AAPL" {
		t.Fatalf("StockSymbol = %q, want AAPL", got)
	}

	// NUL padding from foreign encoders is tolerated
	short := sample()
	short.OrderToken = "T1"
	b = mustEncode(t, short)
	for i := 1 + 2; i < 15; i++ {
		b[i] = 0
	}
	copy(b[20:28], "GE\x00\x00\x00\x00\x00\x00")
	m := mustDecode(t, b)
	if m.OrderToken != "T1" || m.StockSymbol != "GE" {
		t.Fatalf("NUL padding not stripped: %+v", m)
	}
}

func TestFixedLengthAndBoundaries(t *testing.T) {
	cases := []OrderMessage{
		{MessageType: "O", BuySell: "S"},
		{MessageType: "O", OrderToken: strings.Repeat("Z", TokenWidth), BuySell: "B",
			Shares: MaxUint32Value, StockSymbol: strings.Repeat("Y", SymbolWidth), Price: MaxUint32Value},
		{MessageType: "U", OrderToken: "x", BuySell: "S", Shares: 1, StockSymbol: "A", Price: 1},
	}
	for _, m := range cases {
		b := mustEncode(t, m)
		if len(b) != MessageSize {
			t.Fatalf("len = %d, want %d", len(b), MessageSize)
		}
		if got := mustDecode(t, b); got != m {
			t.Fatalf("round trip: got %+v want %+v", got, m)
		}
	}
}

func randText(r *rand.Rand, max int) string {
	b := make([]byte, r.Intn(max+1))
	for i := range b {
		b[i] = byte(r.Intn(0x80))
	}
	return string(b)
}

func randMessage(r *rand.Rand) OrderMessage {
	return OrderMessage{
		MessageType: string([]byte{byte(r.Intn(0x80))}),
		OrderToken:  randText(r, TokenWidth),
		BuySell:     string([]byte{byte(r.Intn(0x80))}),
		Shares:      r.Int63n(MaxUint32Value + 1),
		StockSymbol: randText(r, SymbolWidth),
		Price:       r.Int63n(MaxUint32Value + 1),
	}
}

func TestRoundTripAndIdempotence(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		m := randMessage(r)
		b := mustEncode(t, m)
		got := mustDecode(t, b)
		if got != m.Normalize() {
			t.Fatalf("round trip #%d: got %+v want %+v", i, got, m.Normalize())
		}
		again := mustEncode(t, got)
		if !bytes.Equal(again, b) {
			t.Fatalf("re-encode #%d differs:\n got % x\nwant % x", i, again, b)
		}
	}
}

func TestTrailingSpacesAreNormalized(t *testing.T) {
	m := sample()
	m.OrderToken = "TOK  "
	m.StockSymbol = "MSFT "
	got := mustDecode(t, mustEncode(t, m))
	if got.OrderToken != "TOK" || got.StockSymbol != "MSFT" {
		t.Fatalf("got %+v", got)
	}
	if got != m.Normalize() {
		t.Fatalf("Normalize disagrees with Decode: %+v vs %+v", m.Normalize(), got)
	}
}

func TestEncodeErrors(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*OrderMessage)
		want  error
		field string
	}{
		{"token 15", func(m *OrderMessage) { m.OrderToken = strings.Repeat("A", 15) }, ErrFieldTooLong, FieldOrderToken},
		{"symbol 9", func(m *OrderMessage) { m.StockSymbol = "ABCDEFGHI" }, ErrFieldTooLong, FieldStockSymbol},
		{"shares negative", func(m *OrderMessage) { m.Shares = -1 }, ErrValueOutOfRange, FieldShares},
		{"shares overflow", func(m *OrderMessage) { m.Shares = MaxUint32Value + 1 }, ErrValueOutOfRange, FieldShares},
		{"price negative", func(m *OrderMessage) { m.Price = -15000 }, ErrValueOutOfRange, FieldPrice},
		{"price overflow", func(m *OrderMessage) { m.Price = 1 << 40 }, ErrValueOutOfRange, FieldPrice},
		{"type empty", func(m *OrderMessage) { m.MessageType = "" }, ErrInvalidCharacterField, FieldMessageType},
		{"type two chars", func(m *OrderMessage) { m.MessageType = "OX" }, ErrInvalidCharacterField, FieldMessageType},
		{"side non-ascii", func(m *OrderMessage) { m.BuySell = "é" }, ErrInvalidCharacterField, FieldBuySell},
		{"side invalid utf8", func(m *OrderMessage) { m.BuySell = "\xff" }, ErrInvalidCharacterField, FieldBuySell},
		{"token non-ascii", func(m *OrderMessage) { m.OrderToken = "ÄBC" }, ErrInvalidEncoding, FieldOrderToken},
		{"symbol wide runes", func(m *OrderMessage) { m.StockSymbol = "ééééé" }, ErrInvalidEncoding, FieldStockSymbol},
		// first failing field in wire order wins
		{"token before price", func(m *OrderMessage) {
			m.Price = -1
			m.OrderToken = strings.Repeat("A", 20)
		}, ErrFieldTooLong, FieldOrderToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := sample()
			tc.edit(&m)
			b, err := Encode(m)
			if b != nil {
				t.Fatalf("expected nil output on error, got % x", b)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			var ee *EncodeError
			if !errors.As(err, &ee) || ee.Field != tc.field {
				t.Fatalf("expected *EncodeError for %s, got %#v", tc.field, err)
			}
			if verr := m.Validate(); verr == nil || verr.Error() != err.Error() {
				t.Fatalf("Validate = %v, want %v", verr, err)
			}
		})
	}
}

func TestEncodeErrorMessage(t *testing.T) {
	m := sample()
	m.OrderToken = strings.Repeat("A", 15)
	_, err := Encode(m)
	want := "ouch: field too long: order_token (15 chars, max 14)"
	if err == nil || err.Error() != want {
		t.Fatalf("err = %v, want %q", err, want)
	}
}

func TestAppendEncode(t *testing.T) {
	prefix := []byte("hdr")
	out, err := AppendEncode(prefix, sample())
	if err != nil {
		t.Fatalf("AppendEncode: %v", err)
	}
	if len(out) != len(prefix)+MessageSize || string(out[:3]) != "hdr" {
		t.Fatalf("unexpected output % x", out)
	}
	if !bytes.Equal(out[3:], mustEncode(t, sample())) {
		t.Fatalf("appended message differs from Encode")
	}

	bad := sample()
	bad.Shares = -5
	out, err = AppendEncode(prefix, bad)
	if !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("err = %v", err)
	}
	if string(out) != "hdr" {
		t.Fatalf("dst modified on error: %q", out)
	}
}

func TestDecodeLengthMismatch(t *testing.T) {
	full := mustEncode(t, sample())
	for _, n := range []int{0, 1, 31, 33, 64} {
		b := make([]byte, n)
		copy(b, full)
		_, err := Decode(b)
		if !errors.Is(err, ErrLengthMismatch) {
			t.Fatalf("len %d: err = %v, want ErrLengthMismatch", n, err)
		}
		var de *DecodeError
		if !errors.As(err, &de) || de.Field != "" {
			t.Fatalf("len %d: expected field-less *DecodeError, got %#v", n, err)
		}
	}
	if _, err := Decode(nil); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("nil input: err = %v", err)
	}
}

func TestDecodeInvalidEncoding(t *testing.T) {
	cases := []struct {
		off   int
		field string
	}{
		{0, FieldMessageType},
		{5, FieldOrderToken},
		{15, FieldBuySell},
		{22, FieldStockSymbol},
	}
	for _, tc := range cases {
		b := mustEncode(t, sample())
		b[tc.off] = 0xC3
		_, err := Decode(b)
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Fatalf("offset %d: err = %v", tc.off, err)
		}
		var de *DecodeError
		if !errors.As(err, &de) || de.Field != tc.field || de.Offset != tc.off {
			t.Fatalf("offset %d: got %#v", tc.off, err)
		}
	}

	// high bytes inside integer fields are data, not text
	b := mustEncode(t, sample())
	copy(b[16:20], []byte{0xFF, 0xFF, 0xFF, 0xFF})
	copy(b[28:32], []byte{0x80, 0x00, 0x00, 0x00})
	m := mustDecode(t, b)
	if m.Shares != MaxUint32Value || m.Price != 1<<31 {
		t.Fatalf("integer decode: %+v", m)
	}
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	b := mustEncode(t, sample())
	m := mustDecode(t, b)
	copy(b[1:15], "XXXXXXXXXXXXXX")
	if m.OrderToken != "ABC12345678901" {
		t.Fatalf("decoded token changed with input buffer: %q", m.OrderToken)
	}
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed))
			for i := 0; i < 200; i++ {
				m := randMessage(r)
				b, err := Encode(m)
				if err != nil {
					errs <- err
					return
				}
				got, err := Decode(b)
				if err != nil {
					errs <- err
					return
				}
				if got != m.Normalize() {
					errs <- errors.New("round trip mismatch")
					return
				}
			}
		}(int64(g))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

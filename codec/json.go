package codec

import "encoding/json"

// JSON is handy for logs and HTTP-facing tools; OrderMessage marshals with its
// wire field names (order_token, stock_symbol, ...).
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}

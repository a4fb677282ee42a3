// Package message holds low level helpers for protobuf wire-format records
// that are encoded without generated code.
package message

import (
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

var ErrTruncated = errors.New("message: truncated packed field")

func AppendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func AppendBool(b []byte, num protowire.Number, v bool) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

// AppendPackedFloat64s writes vs as one packed repeated double field.
func AppendPackedFloat64s(b []byte, num protowire.Number, vs []float64) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(len(vs)*8))
	for _, v := range vs {
		b = protowire.AppendFixed64(b, math.Float64bits(v))
	}
	return b
}

// AppendPackedUint32s writes vs as one packed repeated uint32 field.
func AppendPackedUint32s(b []byte, num protowire.Number, vs []uint32) []byte {
	var payload []byte
	for _, v := range vs {
		payload = protowire.AppendVarint(payload, uint64(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, payload)
}

func DecodePackedFloat64s(payload []byte) ([]float64, error) {
	if len(payload)%8 != 0 {
		return nil, ErrTruncated
	}
	res := make([]float64, 0, len(payload)/8)
	for len(payload) > 0 {
		v, n := protowire.ConsumeFixed64(payload)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		res = append(res, math.Float64frombits(v))
		payload = payload[n:]
	}
	return res, nil
}

func DecodePackedUint32s(payload []byte) ([]uint32, error) {
	var res []uint32
	for len(payload) > 0 {
		v, n := protowire.ConsumeVarint(payload)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		if v > math.MaxUint32 {
			return nil, errors.Errorf("message: varint %d overflows uint32", v)
		}
		res = append(res, uint32(v))
		payload = payload[n:]
	}
	return res, nil
}

// Field is one decoded top level field. Payload is set for length-delimited
// fields, Varint for varint fields.
type Field struct {
	Num     protowire.Number
	Type    protowire.Type
	Payload []byte
	Varint  uint64
}

// Walk calls fn for every field of the record in b. Fields of types other
// than varint and bytes are skipped.
func Walk(b []byte, fn func(f Field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		f := Field{Num: num, Type: typ}
		switch typ {
		case protowire.BytesType:
			f.Payload, n = protowire.ConsumeBytes(b)
		case protowire.VarintType:
			f.Varint, n = protowire.ConsumeVarint(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

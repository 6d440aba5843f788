package wire

import (
	"errors"
	"fmt"
	"io"

	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/period"
	"github.com/calperiod/calperiod-go/pkg/version"
	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder mode for all payloads.
// Configured for deterministic encoding with integer keys.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for all payloads.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	// Lenient for forward compatibility.
	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// Marshal encodes a value to CBOR bytes.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR bytes into a value.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// EncodeInstant encodes an instant payload.
func EncodeInstant(i period.Instant) ([]byte, error) {
	return Marshal(InstantMessage{Value: i.Value()})
}

// DecodeInstant decodes an instant payload.
func DecodeInstant(data []byte) (period.Instant, error) {
	var msg InstantMessage
	if err := Unmarshal(data, &msg); err != nil {
		return period.Instant{}, fmt.Errorf("failed to decode instant: %w", err)
	}
	return period.FromValue(msg.Value), nil
}

// EncodeRange encodes a range payload.
func EncodeRange(r period.Range) ([]byte, error) {
	return Marshal(RangeMessage{
		Start: r.StartValue(),
		End:   r.EndValue(),
		Unit:  r.Unit().String(),
		Text:  r.Text(),
	})
}

// DecodeRange decodes a range payload and rebuilds it at the encoded unit.
func DecodeRange(data []byte) (period.Range, error) {
	var msg RangeMessage
	if err := Unmarshal(data, &msg); err != nil {
		return period.Range{}, fmt.Errorf("failed to decode range: %w", err)
	}

	var unit calendar.Unit
	if err := unit.UnmarshalText([]byte(msg.Unit)); err != nil {
		return period.Range{}, fmt.Errorf("invalid range: %w", err)
	}
	r, err := period.FromStartEndValues(msg.Start, msg.End, unit)
	if err != nil {
		return period.Range{}, fmt.Errorf("invalid range: %w", err)
	}
	if msg.Text != "" && msg.Text != r.Text() {
		return period.Range{}, fmt.Errorf("%w: %q, bounds give %q", ErrTextMismatch, msg.Text, r.Text())
	}
	return r, nil
}

// Encode wraps a period.Instant or period.Range in a versioned envelope.
func Encode(v any) ([]byte, error) {
	env, err := envelope(v)
	if err != nil {
		return nil, err
	}
	return Marshal(env)
}

func envelope(v any) (Envelope, error) {
	var (
		kind    Kind
		payload []byte
		err     error
	)
	switch v := v.(type) {
	case period.Instant:
		kind = KindInstant
		payload, err = EncodeInstant(v)
	case period.Range:
		kind = KindRange
		payload, err = EncodeRange(v)
	default:
		return Envelope{}, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Version: version.Current, Kind: kind, Payload: payload}, nil
}

// Decode unwraps an envelope, returning a period.Instant or period.Range.
func Decode(data []byte) (any, error) {
	var env Envelope
	if err := Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return open(env)
}

func open(env Envelope) (any, error) {
	if _, err := version.Check(env.Version); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}
	switch env.Kind {
	case KindInstant:
		return DecodeInstant(env.Payload)
	case KindRange:
		return DecodeRange(env.Payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, env.Kind)
	}
}

// PeekKind returns the kind of an envelope without decoding its payload.
func PeekKind(data []byte) (Kind, error) {
	var peek struct {
		Kind Kind `cbor:"1,keyasint"`
	}
	if err := Unmarshal(data, &peek); err != nil {
		return KindUnknown, fmt.Errorf("failed to peek envelope: %w", err)
	}
	return peek.Kind, nil
}

// Writer writes a stream of envelopes.
type Writer struct {
	enc *cbor.Encoder
}

// NewWriter creates a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: encMode.NewEncoder(w)}
}

// Write encodes v as the next envelope.
func (w *Writer) Write(v any) error {
	env, err := envelope(v)
	if err != nil {
		return err
	}
	return w.enc.Encode(env)
}

// Reader reads a stream of envelopes.
type Reader struct {
	dec *cbor.Decoder
}

// NewReader creates a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: decMode.NewDecoder(r)}
}

// Next decodes the next envelope. It returns io.EOF at the end of the
// stream.
func (r *Reader) Next() (any, error) {
	var env Envelope
	if err := r.dec.Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return open(env)
}

package wire

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Wire format errors.
var (
	ErrUnknownKind  = errors.New("unknown payload kind")
	ErrTextMismatch = errors.New("range text does not match bounds")
	ErrUnsupported  = errors.New("unsupported value type")
	ErrFileClosed   = errors.New("file closed")
)

// Kind identifies the payload of an envelope.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInstant
	KindRange
)

var kindNames = map[Kind]string{
	KindInstant: "instant",
	KindRange:   "range",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// InstantMessage is the wire form of an Instant.
type InstantMessage struct {
	Value int64 `cbor:"1,keyasint"`
}

// RangeMessage is the wire form of a Range. Unit and Text are empty for an
// empty range.
type RangeMessage struct {
	Start int64  `cbor:"1,keyasint"`
	End   int64  `cbor:"2,keyasint"`
	Unit  string `cbor:"3,keyasint,omitempty"`
	Text  string `cbor:"4,keyasint,omitempty"`
}

// Envelope frames a payload with the format version and its kind.
type Envelope struct {
	Version string          `cbor:"0,keyasint"`
	Kind    Kind            `cbor:"1,keyasint"`
	Payload cbor.RawMessage `cbor:"2,keyasint"`
}

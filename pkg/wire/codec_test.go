package wire_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/period"
	"github.com/calperiod/calperiod-go/pkg/resolver"
	"github.com/calperiod/calperiod-go/pkg/version"
	"github.com/calperiod/calperiod-go/pkg/wire"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, text string) period.Range {
	t.Helper()
	r, err := period.FromText(text)
	require.NoError(t, err)
	return r
}

// TestInstantRoundTrip verifies instants survive encoding.
func TestInstantRoundTrip(t *testing.T) {
	for _, i := range []period.Instant{
		period.FromFields(2018, 3, 4, 5, 6, 7),
		period.FromFields(0),
		period.FromFields(-44, 3, 15),
		period.FromValue(0),
	} {
		t.Run(i.Text(), func(t *testing.T) {
			data, err := wire.EncodeInstant(i)
			require.NoError(t, err)

			got, err := wire.DecodeInstant(data)
			require.NoError(t, err)
			assert.True(t, got.Equal(i))
			assert.Equal(t, i.Text(), got.Text())
		})
	}
}

// TestInstantEncoding verifies the canonical bytes of an instant payload.
func TestInstantEncoding(t *testing.T) {
	data, err := wire.EncodeInstant(period.FromValue(0))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa1, 0x01, 0x00}, data)

	data, err = wire.EncodeInstant(period.FromValue(1000))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa1, 0x01, 0x19, 0x03, 0xe8}, data)
}

// TestRangeRoundTrip verifies ranges keep their bounds and unit.
func TestRangeRoundTrip(t *testing.T) {
	for _, text := range []string{
		"2018",
		"2019-Q1..2020-Q4",
		"2018-05..12",
		"2017-W52",
		"C21",
		"2018-05-12T07..09",
		"2017-04-03T00:00..2019-05-03T13:31",
	} {
		t.Run(text, func(t *testing.T) {
			r := mustRange(t, text)
			data, err := wire.EncodeRange(r)
			require.NoError(t, err)

			got, err := wire.DecodeRange(data)
			require.NoError(t, err)
			assert.True(t, got.Identical(r))
			assert.Equal(t, r.Text(), got.Text())
		})
	}
}

func TestRangeEmpty(t *testing.T) {
	r, err := period.FromStartEndValues(1000, 1000, 0)
	require.NoError(t, err)

	data, err := wire.EncodeRange(r)
	require.NoError(t, err)
	got, err := wire.DecodeRange(data)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, "", got.Text())
}

func TestDecodeRangeRejects(t *testing.T) {
	y2018 := period.FromFields(2018).Value()
	y2019 := period.FromFields(2019).Value()

	tests := []struct {
		name string
		msg  wire.RangeMessage
		want error
	}{
		{"text mismatch", wire.RangeMessage{Start: y2018, End: y2019, Unit: "year", Text: "2017"}, wire.ErrTextMismatch},
		{"unknown unit", wire.RangeMessage{Start: y2018, End: y2019, Unit: "fortnight"}, calendar.ErrUnknownUnit},
		{"unit mismatch", wire.RangeMessage{Start: y2018, End: y2019, Unit: "decade"}, resolver.ErrInvalidForcedResolution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := wire.Marshal(tt.msg)
			require.NoError(t, err)
			_, err = wire.DecodeRange(data)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := wire.DecodeRange([]byte{0xff})
	assert.Error(t, err)
}

func TestDecodeRangeWithoutText(t *testing.T) {
	data, err := wire.Marshal(wire.RangeMessage{
		Start: period.FromFields(2018, 5).Value(),
		End:   period.FromFields(2019, 1).Value(),
	})
	require.NoError(t, err)

	r, err := wire.DecodeRange(data)
	require.NoError(t, err)
	assert.Equal(t, "2018-05..12", r.Text())
	assert.Equal(t, calendar.Month, r.Unit())
}

// TestEnvelopeRoundTrip verifies Encode and Decode for both kinds.
func TestEnvelopeRoundTrip(t *testing.T) {
	i := period.FromFields(2018, 5, 12, 7)
	data, err := wire.Encode(i)
	require.NoError(t, err)

	kind, err := wire.PeekKind(data)
	require.NoError(t, err)
	assert.Equal(t, wire.KindInstant, kind)

	v, err := wire.Decode(data)
	require.NoError(t, err)
	require.IsType(t, period.Instant{}, v)
	assert.True(t, v.(period.Instant).Equal(i))

	r := mustRange(t, "2019-W20..21")
	data, err = wire.Encode(r)
	require.NoError(t, err)

	kind, err = wire.PeekKind(data)
	require.NoError(t, err)
	assert.Equal(t, wire.KindRange, kind)

	v, err = wire.Decode(data)
	require.NoError(t, err)
	require.IsType(t, period.Range{}, v)
	assert.True(t, v.(period.Range).Identical(r))
}

func TestEncodeUnsupported(t *testing.T) {
	_, err := wire.Encode("2018")
	assert.ErrorIs(t, err, wire.ErrUnsupported)
}

func TestDecodeEnvelopeVersions(t *testing.T) {
	payload, err := wire.EncodeInstant(period.FromFields(2018))
	require.NoError(t, err)

	newer, err := wire.Marshal(map[int]any{
		0: "1.4",
		1: wire.KindInstant,
		2: cbor.RawMessage(payload),
		9: "ignored",
	})
	require.NoError(t, err)
	v, err := wire.Decode(newer)
	require.NoError(t, err)
	assert.Equal(t, "2018-01-01T00:00:00", v.(period.Instant).Text())

	major, err := wire.Marshal(wire.Envelope{Version: "2.0", Kind: wire.KindInstant, Payload: payload})
	require.NoError(t, err)
	_, err = wire.Decode(major)
	assert.ErrorIs(t, err, version.ErrIncompatible)

	unknown, err := wire.Marshal(wire.Envelope{Version: version.Current, Kind: 9, Payload: payload})
	require.NoError(t, err)
	_, err = wire.Decode(unknown)
	assert.ErrorIs(t, err, wire.ErrUnknownKind)
}

// TestStream verifies a Writer and Reader exchange several envelopes.
func TestStream(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)

	values := []any{
		period.FromFields(2018, 5, 12),
		mustRange(t, "2019-Q2"),
		mustRange(t, "C21..22"),
	}
	for _, v := range values {
		require.NoError(t, w.Write(v))
	}
	assert.ErrorIs(t, w.Write(42), wire.ErrUnsupported)

	r := wire.NewReader(&buf)
	var got []string
	for {
		v, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, v.(interface{ Text() string }).Text())
	}
	assert.Equal(t, []string{"2018-05-12T00:00:00", "2019-Q2", "C21..22"}, got)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "instant", wire.KindInstant.String())
	assert.Equal(t, "range", wire.KindRange.String())
	assert.Equal(t, "kind(7)", wire.Kind(7).String())
}

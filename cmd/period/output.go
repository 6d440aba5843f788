package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/calperiod/calperiod-go/pkg/period"
	"github.com/calperiod/calperiod-go/pkg/resolver"
	"github.com/calperiod/calperiod-go/pkg/wire"
	"gopkg.in/yaml.v3"
)

// rangeView is the YAML rendering of a period.Range.
type rangeView struct {
	Text     string `yaml:"text"`
	ISO      string `yaml:"iso"`
	Unit     string `yaml:"unit"`
	Duration int    `yaml:"duration"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
}

func viewRange(r period.Range) rangeView {
	return rangeView{
		Text:     r.Text(),
		ISO:      r.ISO(),
		Unit:     r.Unit().String(),
		Duration: r.Duration(),
		Start:    r.Start().Text(),
		End:      r.End().Text(),
	}
}

// instantView is the YAML rendering of a period.Instant.
type instantView struct {
	Text  string `yaml:"text"`
	Value int64  `yaml:"value"`
}

// resultView is the YAML rendering of a resolver.Result.
type resultView struct {
	Unit     string `yaml:"unit"`
	Duration int    `yaml:"duration"`
	Abbr     string `yaml:"abbr"`
	ISO      string `yaml:"iso"`
	First    string `yaml:"first"`
	Next     string `yaml:"next"`
	Last     string `yaml:"last"`
}

// printer writes values in one output format. YAML values are written as
// separate documents.
type printer struct {
	w      io.Writer
	format string
	docs   int
}

func newPrinter(w io.Writer, format string) *printer {
	return &printer{w: w, format: format}
}

// printRange writes the canonical text, ISO text, YAML view or CBOR hex of r.
func (p *printer) printRange(r period.Range) error {
	switch p.format {
	case OutputISO:
		return p.line(r.ISO())
	case OutputYAML:
		return p.yaml(viewRange(r))
	case OutputCBOR:
		return p.cbor(r)
	}
	return p.line(r.Text())
}

// describeRange is printRange with every field in text output.
func (p *printer) describeRange(r period.Range) error {
	if p.format != OutputText {
		return p.printRange(r)
	}
	v := viewRange(r)
	_, err := fmt.Fprintf(p.w, "%s\t%s\t%s\t%d\t%s\t%s\n", v.Text, v.ISO, v.Unit, v.Duration, v.Start, v.End)
	return err
}

func (p *printer) printInstant(i period.Instant) error {
	switch p.format {
	case OutputYAML:
		return p.yaml(instantView{Text: i.Text(), Value: i.Value()})
	case OutputCBOR:
		return p.cbor(i)
	}
	return p.line(i.Text())
}

// printResult writes res. summary replaces the abbreviated text in text
// output.
func (p *printer) printResult(res resolver.Result, r period.Range, summary bool) error {
	switch p.format {
	case OutputISO:
		return p.line(res.ISO)
	case OutputYAML:
		return p.yaml(resultView{
			Unit:     res.Unit.String(),
			Duration: res.Duration,
			Abbr:     res.Abbr,
			ISO:      res.ISO,
			First:    res.First,
			Next:     res.Next,
			Last:     res.Last,
		})
	case OutputCBOR:
		return p.cbor(r)
	}
	if summary {
		return p.line(fmt.Sprintf("%s %d", res.Unit, res.Duration))
	}
	return p.line(res.Abbr)
}

// printValue writes a decoded wire value.
func (p *printer) printValue(v any) error {
	switch x := v.(type) {
	case period.Range:
		return p.printRange(x)
	case period.Instant:
		return p.printInstant(x)
	}
	return fmt.Errorf("%w: %T", wire.ErrUnsupported, v)
}

func (p *printer) line(s string) error {
	_, err := fmt.Fprintln(p.w, s)
	return err
}

func (p *printer) yaml(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	if p.docs > 0 {
		if _, err := io.WriteString(p.w, "---\n"); err != nil {
			return err
		}
	}
	p.docs++
	_, err = p.w.Write(data)
	return err
}

func (p *printer) cbor(v any) error {
	data, err := wire.Encode(v)
	if err != nil {
		return err
	}
	return p.line(hex.EncodeToString(data))
}

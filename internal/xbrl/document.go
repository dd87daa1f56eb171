package xbrl

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// QName identifies an XBRL element. Prefix is only populated for inline
// facts, where the taxonomy reference arrives as a "prefix:Local" name
// attribute; plain XBRL facts carry the resolved namespace URI instead.
type QName struct {
	Prefix string
	Local  string
	Space  string
}

// Fact is one tagged value from an XBRL or inline XBRL document.
type Fact struct {
	Name       QName
	ContextRef string
	UnitRef    string
	Decimals   string
	Scale      string
	Sign       string
	IsNil      bool
	Value      string
}

type Period struct {
	Instant   string
	StartDate string
	EndDate   string
}

type Context struct {
	ID          string
	Period      Period
	HasScenario bool
}

type Document struct {
	Facts    []Fact
	Contexts map[string]Context
}

// Parse walks the token stream and collects every context definition and
// every element that carries a contextRef. It handles both plain XBRL
// instances and inline XBRL embedded in XHTML.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	// Inline XBRL is XHTML, tolerate its entities and void elements.
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity

	doc := &Document{Contexts: make(map[string]Context)}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse xbrl document: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case se.Name.Local == "context":
			ctx, err := parseContext(decoder, se)
			if err != nil {
				return nil, err
			}
			doc.Contexts[ctx.ID] = ctx

		case se.Name.Local == "nonFraction" || se.Name.Local == "nonNumeric":
			fact, err := parseInlineFact(decoder, se)
			if err != nil {
				return nil, err
			}
			if fact.ContextRef != "" {
				doc.Facts = append(doc.Facts, fact)
			}

		default:
			if ref := attr(se, "contextRef"); ref != "" {
				fact, err := parsePlainFact(decoder, se, ref)
				if err != nil {
					return nil, err
				}
				doc.Facts = append(doc.Facts, fact)
			}
		}
	}

	return doc, nil
}

func parseContext(decoder *xml.Decoder, start xml.StartElement) (Context, error) {
	ctx := Context{ID: attr(start, "id")}

	var current string
	for {
		tok, err := decoder.Token()
		if err != nil {
			return ctx, fmt.Errorf("failed to parse context %s: %w", ctx.ID, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			current = t.Name.Local
			if current == "scenario" {
				ctx.HasScenario = true
			}
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			switch current {
			case "instant":
				ctx.Period.Instant = text
			case "startDate":
				ctx.Period.StartDate = text
			case "endDate":
				ctx.Period.EndDate = text
			}
		case xml.EndElement:
			if t.Name.Local == "context" {
				return ctx, nil
			}
			current = ""
		}
	}
}

func parseInlineFact(decoder *xml.Decoder, start xml.StartElement) (Fact, error) {
	fact := Fact{
		ContextRef: attr(start, "contextRef"),
		UnitRef:    attr(start, "unitRef"),
		Decimals:   attr(start, "decimals"),
		Scale:      attr(start, "scale"),
		Sign:       attr(start, "sign"),
		IsNil:      attr(start, "nil") == "true",
	}

	name := attr(start, "name")
	if i := strings.Index(name, ":"); i >= 0 {
		fact.Name = QName{Prefix: name[:i], Local: name[i+1:]}
	} else {
		fact.Name = QName{Local: name}
	}

	value, err := collectText(decoder, start.Name)
	if err != nil {
		return fact, err
	}
	fact.Value = value
	return fact, nil
}

func parsePlainFact(decoder *xml.Decoder, start xml.StartElement, contextRef string) (Fact, error) {
	fact := Fact{
		Name:       QName{Local: start.Name.Local, Space: start.Name.Space},
		ContextRef: contextRef,
		UnitRef:    attr(start, "unitRef"),
		Decimals:   attr(start, "decimals"),
		Sign:       attr(start, "sign"),
		IsNil:      attr(start, "nil") == "true",
	}

	value, err := collectText(decoder, start.Name)
	if err != nil {
		return fact, err
	}
	fact.Value = value
	return fact, nil
}

// collectText accumulates character data until the element that opened at
// depth zero closes. Inline facts often wrap the number in nested spans.
func collectText(decoder *xml.Decoder, name xml.Name) (string, error) {
	var sb strings.Builder
	depth := 0
	for {
		tok, err := decoder.Token()
		if err != nil {
			return "", fmt.Errorf("unterminated element %s: %w", name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if depth == 0 {
				return strings.TrimSpace(sb.String()), nil
			}
			depth--
		}
	}
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// NumericValue converts the raw fact text to a number, honoring the inline
// scale and sign attributes. Returns nil for nil facts and empty values.
func (f Fact) NumericValue() (*float64, error) {
	if f.IsNil {
		return nil, nil
	}
	text := strings.TrimSpace(f.Value)
	if text == "" || text == "-" || text == "－" {
		return nil, nil
	}

	text = strings.ReplaceAll(text, ",", "")
	negative := false
	// Japanese filings mark negatives with a triangle.
	for _, marker := range []string{"△", "▲"} {
		if strings.HasPrefix(text, marker) {
			negative = true
			text = strings.TrimPrefix(text, marker)
		}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("non-numeric fact value %q: %w", f.Value, err)
	}

	if f.Scale != "" {
		scale, err := strconv.Atoi(f.Scale)
		if err != nil {
			return nil, fmt.Errorf("invalid scale %q: %w", f.Scale, err)
		}
		for i := 0; i < scale; i++ {
			v *= 10
		}
		for i := 0; i > scale; i-- {
			v /= 10
		}
	}

	if negative || f.Sign == "-" {
		v = -v
	}
	return &v, nil
}

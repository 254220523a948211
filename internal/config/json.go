package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// parseJSON converts a JSON document to a yaml.Node tree so that both
// formats share one reader. Key order and positions are preserved. A nil
// node is returned for empty input.
func parseJSON(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	p := &jsonParser{dec: json.NewDecoder(bytes.NewReader(data)), data: data}
	p.dec.UseNumber()
	n, err := p.value()
	if err != nil {
		return nil, p.syntaxError(err)
	}
	if _, err := p.dec.Token(); !errors.Is(err, io.EOF) {
		line, col := p.position()
		return nil, &StructuralError{Line: line, Column: col, Msg: "parsing config: unexpected data after the top level value"}
	}
	return n, nil
}

type jsonParser struct {
	dec  *json.Decoder
	data []byte
}

func (p *jsonParser) value() (*yaml.Node, error) {
	line, col := p.position()
	tok, err := p.dec.Token()
	if err != nil {
		return nil, err
	}
	n := &yaml.Node{Line: line, Column: col}
	switch v := tok.(type) {
	case json.Delim:
		if v == '{' {
			n.Kind, n.Tag = yaml.MappingNode, "!!map"
			for p.dec.More() {
				kl, kc := p.position()
				kt, err := p.dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := kt.(string)
				val, err := p.value()
				if err != nil {
					return nil, err
				}
				k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key, Line: kl, Column: kc}
				n.Content = append(n.Content, k, val)
			}
		} else {
			n.Kind, n.Tag = yaml.SequenceNode, "!!seq"
			for p.dec.More() {
				item, err := p.value()
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, item)
			}
		}
		// closing delimiter
		if _, err := p.dec.Token(); err != nil {
			return nil, err
		}
	case string:
		n.Kind, n.Tag, n.Value = yaml.ScalarNode, "!!str", v
	case json.Number:
		n.Kind, n.Tag, n.Value = yaml.ScalarNode, "!!int", v.String()
		if strings.ContainsAny(n.Value, ".eE") {
			n.Tag = "!!float"
		}
	case bool:
		n.Kind, n.Tag, n.Value = yaml.ScalarNode, "!!bool", strconv.FormatBool(v)
	case nil:
		n.Kind, n.Tag, n.Value = yaml.ScalarNode, "!!null", "null"
	}
	return n, nil
}

// position returns the 1-based line and column of the next token.
func (p *jsonParser) position() (int, int) {
	off := min(int(p.dec.InputOffset()), len(p.data))
	for off < len(p.data) && bytes.IndexByte([]byte(" \t\r\n,:"), p.data[off]) >= 0 {
		off++
	}
	return p.lineColumn(off)
}

func (p *jsonParser) lineColumn(off int) (int, int) {
	line := 1 + bytes.Count(p.data[:off], []byte{'\n'})
	col := off - bytes.LastIndexByte(p.data[:off], '\n')
	return line, col
}

func (p *jsonParser) syntaxError(err error) error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		line, col := p.lineColumn(int(min(se.Offset, int64(len(p.data)))))
		return &StructuralError{Line: line, Column: col, Msg: fmt.Sprintf("parsing config: %v", se)}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &StructuralError{Msg: "parsing config: unexpected end of JSON input"}
	}
	return &StructuralError{Msg: fmt.Sprintf("parsing config: %v", err)}
}

package source

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/entschema/entity"
)

// ErrNotEntity is returned when a top-level document is not an object.
var ErrNotEntity = errors.New("source: top-level value is not an object")

// ReadJSON reads entities from r. The input is either one array of objects or
// a stream of objects. Property order is preserved; numbers without a
// fraction or exponent become Integer values.
func ReadJSON(r io.Reader) ([]entity.Entity, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	t := &tokens{dec: dec}
	first, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	var out []entity.Entity
	if d, ok := first.(j.Delim); ok && d == '[' {
		l, err := t.list()
		if err != nil {
			return nil, err
		}
		for i, v := range l.(entity.List) {
			e, ok := v.(entity.Entity)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %s", ErrNotEntity, i, v.Kind())
			}
			out = append(out, e)
		}
		return out, nil
	}
	for tok := first; ; {
		e, err := t.entity(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		tok, err = dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
	}
}

type tokens struct {
	dec *j.Decoder
}

func (t *tokens) next() (j.Token, error) {
	tok, err := t.dec.Token()
	if err != nil {
		return nil, unexpectedEOF(err)
	}
	return tok, nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("source: %w", io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("source: %w", err)
}

func (t *tokens) entity(first j.Token) (entity.Entity, error) {
	if d, ok := first.(j.Delim); !ok || d != '{' {
		return entity.Entity{}, fmt.Errorf("%w: got %v", ErrNotEntity, first)
	}
	v, err := t.value(first)
	if err != nil {
		return entity.Entity{}, err
	}
	return v.(entity.Entity), nil
}

func (t *tokens) value(tok j.Token) (entity.Value, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return t.object()
		case '[':
			return t.list()
		}
		return nil, fmt.Errorf("source: unexpected %q", rune(v))
	case string:
		return entity.String(v), nil
	case bool:
		return entity.Boolean(v), nil
	case j.Number:
		return number(string(v))
	case float64:
		return entity.Double(v), nil
	case nil:
		return entity.Null{}, nil
	}
	return nil, fmt.Errorf("source: unsupported token %T", tok)
}

func number(s string) (entity.Value, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return entity.Integer(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("source: number %q: %w", s, err)
	}
	return entity.Double(f), nil
}

func (t *tokens) object() (entity.Value, error) {
	var props []entity.Property
	for {
		tok, err := t.next()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(j.Delim); ok && d == '}' {
			break
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("source: expected object key, got %v", tok)
		}
		tok, err = t.next()
		if err != nil {
			return nil, err
		}
		v, err := t.value(tok)
		if err != nil {
			return nil, err
		}
		props = append(props, entity.Property{Name: key, Value: v})
	}
	e, err := entity.New(props...)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return e, nil
}

func (t *tokens) list() (entity.Value, error) {
	l := entity.List{}
	for {
		tok, err := t.next()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(j.Delim); ok && d == ']' {
			return l, nil
		}
		v, err := t.value(tok)
		if err != nil {
			return nil, err
		}
		l = append(l, v)
	}
}

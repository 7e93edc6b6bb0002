// Package plist reads and writes XML property lists such as Info.plist and
// EXBuildConstants.plist. Dictionaries keep their key order so rewriting a
// file produces minimal diffs.
//
// Supported value types are string, bool, int64, float64, *Dict and
// []interface{}. Elements without a Go mapping (data, date) are kept as Raw
// and written back unchanged.
package plist

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/dynmacros/pkg/errors"
	"github.com/beevik/etree"
)

const doctype = `DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`

// Raw is a plist element carried through verbatim
type Raw struct {
	Tag  string
	Text string
}

// Dict is an ordered plist dictionary
type Dict struct {
	keys   []string
	values map[string]interface{}
}

// NewDict returns an empty dictionary
func NewDict() *Dict {
	return &Dict{values: make(map[string]interface{})}
}

// Set stores value under key, keeping the position of an existing key
func (d *Dict) Set(key string, value interface{}) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value stored under key
func (d *Dict) Get(key string) (interface{}, bool) {
	v, ok := d.values[key]
	return v, ok
}

// String returns the string stored under key, or the empty string
func (d *Dict) String(key string) string {
	s, _ := d.values[key].(string)
	return s
}

// Bool returns the bool stored under key and whether it was a bool
func (d *Dict) Bool(key string) (bool, bool) {
	b, ok := d.values[key].(bool)
	return b, ok
}

// Delete removes key
func (d *Dict) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in document order
func (d *Dict) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Len returns the number of entries
func (d *Dict) Len() int {
	return len(d.keys)
}

// MapStrings replaces every string value, including those nested in arrays
// and dictionaries, with fn(value).
func (d *Dict) MapStrings(fn func(string) string) {
	for _, k := range d.keys {
		d.values[k] = mapValue(d.values[k], fn)
	}
}

func mapValue(v interface{}, fn func(string) string) interface{} {
	switch val := v.(type) {
	case string:
		return fn(val)
	case *Dict:
		val.MapStrings(fn)
		return val
	case []interface{}:
		for i := range val {
			val[i] = mapValue(val[i], fn)
		}
		return val
	}
	return v
}

// Decode parses an XML property list whose root object is a dictionary
func Decode(data []byte) (*Dict, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrPlistParse, "invalid XML")
	}
	root := doc.SelectElement("plist")
	if root == nil {
		return nil, errors.New(errors.ErrPlistParse, "missing <plist> root element")
	}
	dictEl := root.SelectElement("dict")
	if dictEl == nil {
		return nil, errors.New(errors.ErrPlistParse, "root object is not a <dict>")
	}
	return decodeDict(dictEl)
}

func decodeDict(el *etree.Element) (*Dict, error) {
	d := NewDict()
	children := el.ChildElements()
	for i := 0; i < len(children); i += 2 {
		keyEl := children[i]
		if keyEl.Tag != "key" {
			return nil, errors.Newf(errors.ErrPlistParse, "expected <key>, found <%s>", keyEl.Tag)
		}
		if i+1 >= len(children) {
			return nil, errors.Newf(errors.ErrPlistParse, "key %q has no value", keyEl.Text())
		}
		value, err := decodeValue(children[i+1])
		if err != nil {
			return nil, err
		}
		d.Set(keyEl.Text(), value)
	}
	return d, nil
}

func decodeValue(el *etree.Element) (interface{}, error) {
	switch el.Tag {
	case "string":
		return el.Text(), nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "integer":
		n, err := strconv.ParseInt(el.Text(), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPlistParse, "invalid integer %q", el.Text())
		}
		return n, nil
	case "real":
		f, err := strconv.ParseFloat(el.Text(), 64)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPlistParse, "invalid real %q", el.Text())
		}
		return f, nil
	case "dict":
		return decodeDict(el)
	case "array":
		var items []interface{}
		for _, child := range el.ChildElements() {
			item, err := decodeValue(child)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}
	return Raw{Tag: el.Tag, Text: el.Text()}, nil
}

// Encode renders d as an XML property list, tab-indented like Xcode writes it
func Encode(d *Dict) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(doctype)
	root := doc.CreateElement("plist")
	root.CreateAttr("version", "1.0")

	if err := encodeDict(root.CreateElement("dict"), d); err != nil {
		return nil, err
	}

	doc.IndentTabs()
	return doc.WriteToBytes()
}

func encodeDict(el *etree.Element, d *Dict) error {
	for _, k := range d.keys {
		el.CreateElement("key").SetText(k)
		if err := encodeValue(el, d.values[k]); err != nil {
			return fmt.Errorf("key %s: %w", k, err)
		}
	}
	return nil
}

func encodeValue(parent *etree.Element, v interface{}) error {
	switch val := v.(type) {
	case string:
		parent.CreateElement("string").SetText(val)
	case bool:
		if val {
			parent.CreateElement("true")
		} else {
			parent.CreateElement("false")
		}
	case int:
		parent.CreateElement("integer").SetText(strconv.Itoa(val))
	case int64:
		parent.CreateElement("integer").SetText(strconv.FormatInt(val, 10))
	case float64:
		parent.CreateElement("real").SetText(strconv.FormatFloat(val, 'g', -1, 64))
	case *Dict:
		return encodeDict(parent.CreateElement("dict"), val)
	case []interface{}:
		arr := parent.CreateElement("array")
		for _, item := range val {
			if err := encodeValue(arr, item); err != nil {
				return err
			}
		}
	case Raw:
		parent.CreateElement(val.Tag).SetText(val.Text)
	default:
		return errors.Newf(errors.ErrPlistParse, "unsupported plist value of type %T", v)
	}
	return nil
}

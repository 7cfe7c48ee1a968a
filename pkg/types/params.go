package types

import (
	"strings"

	"github.com/valyala/fasthttp"
)

// Param is a single RPC parameter. A null parameter carries a key and no value.
type Param struct {
	Key   string
	Value string
	Null  bool
}

// NewParam creates a parameter with a value.
func NewParam(key, value string) Param {
	return Param{Key: key, Value: value}
}

// NullParam creates a parameter with no value.
func NullParam(key string) Param {
	return Param{Key: key, Null: true}
}

// OptionalParam creates a parameter from an optional value; nil gives a null parameter.
func OptionalParam(key string, value *string) Param {
	if value == nil {
		return NullParam(key)
	}
	return NewParam(key, *value)
}

func (p Param) String() string {
	if p.Null {
		return "(" + p.Key + ", null)"
	}
	return "(" + p.Key + ", " + p.Value + ")"
}

// Params is an ordered parameter list. Duplicate keys are allowed and order is kept.
type Params []Param

// Add appends a parameter with a value.
func (ps Params) Add(key, value string) Params {
	return append(ps, NewParam(key, value))
}

// AddNull appends a parameter with no value.
func (ps Params) AddNull(key string) Params {
	return append(ps, NullParam(key))
}

// Get returns the first parameter with the given key.
func (ps Params) Get(key string) (Param, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p, true
		}
	}
	return Param{}, false
}

// Args encodes the list as form arguments. Null parameters are written as a bare key.
func (ps Params) Args() *fasthttp.Args {
	args := &fasthttp.Args{}
	for _, p := range ps {
		if p.Null {
			args.AddNoValue(p.Key)
			continue
		}
		args.Add(p.Key, p.Value)
	}
	return args
}

// Encode returns the form-encoded body for the list.
func (ps Params) Encode() string {
	return string(ps.Args().QueryString())
}

func (ps Params) String() string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		parts = append(parts, p.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

package models

import (
	"bytes"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// TriState is a yes/no preference where "no preference" is a real state.
// It round-trips as JSON/BSON null (unspecified), true or false, so documents
// written by older clients that used nullable booleans keep decoding.
type TriState int8

const (
	TriUnspecified TriState = iota
	TriYes
	TriNo
)

// Known reports whether an explicit yes or no was given.
func (t TriState) Known() bool {
	return t == TriYes || t == TriNo
}

// Bool returns the boolean value and whether one was set.
func (t TriState) Bool() (bool, bool) {
	switch t {
	case TriYes:
		return true, true
	case TriNo:
		return false, true
	default:
		return false, false
	}
}

func (t TriState) String() string {
	switch t {
	case TriYes:
		return "yes"
	case TriNo:
		return "no"
	default:
		return "unspecified"
	}
}

func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case TriYes:
		return []byte("true"), nil
	case TriNo:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (t *TriState) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(bytes.TrimSpace(data), []byte("null")):
		*t = TriUnspecified
	case bytes.Equal(bytes.TrimSpace(data), []byte("true")):
		*t = TriYes
	case bytes.Equal(bytes.TrimSpace(data), []byte("false")):
		*t = TriNo
	default:
		return fmt.Errorf("cannot decode %s into TriState", data)
	}
	return nil
}

func (t TriState) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch t {
	case TriYes:
		return bson.MarshalValue(true)
	case TriNo:
		return bson.MarshalValue(false)
	default:
		return bsontype.Null, nil, nil
	}
}

func (t *TriState) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	switch bt {
	case bsontype.Null, bsontype.Undefined:
		*t = TriUnspecified
		return nil
	case bsontype.Boolean:
		var value bool
		if err := bson.UnmarshalValue(bt, data, &value); err != nil {
			return err
		}
		if value {
			*t = TriYes
		} else {
			*t = TriNo
		}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into TriState", bt)
	}
}

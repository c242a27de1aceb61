package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// StringList is a tag set stored as an ordered array. It decodes whether the
// field was persisted as a single string or an array of strings, so legacy
// documents never fail the whole request.
type StringList []string

// Contains reports whether value is present in the set.
func (s StringList) Contains(value string) bool {
	for _, item := range s {
		if item == value {
			return true
		}
	}
	return false
}

// Toggle returns the set with value added, or removed when already present.
func (s StringList) Toggle(value string) StringList {
	value = strings.TrimSpace(value)
	if value == "" {
		return s
	}
	if !s.Contains(value) {
		return append(s, value)
	}
	out := make(StringList, 0, len(s)-1)
	for _, item := range s {
		if item != value {
			out = append(out, item)
		}
	}
	return out
}

// Dedupe returns the set with empty entries and duplicates removed, first
// occurrence winning. A nil input stays nil.
func (s StringList) Dedupe() StringList {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(s))
	out := make(StringList, 0, len(s))
	for _, item := range s {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// UnmarshalBSONValue accepts both string and array BSON types.
func (s *StringList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*s = nil
		return nil
	case bsontype.Array:
		var values []string
		if err := bson.UnmarshalValue(t, data, &values); err != nil {
			return err
		}
		*s = values
		return nil
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}

		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			*s = []string{}
			return nil
		}

		*s = []string{trimmed}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into StringList", t)
	}
}

// MarshalBSONValue always stores the list as an array, keeping new writes
// consistent even when legacy documents used a string value.
func (s StringList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue([]string(s))
}

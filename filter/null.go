// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NullInt is an integer report value that may be absent.
type NullInt struct {
	Value int64
	Valid bool
}

func parseNullInt(s string) (NullInt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NullInt{}, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return NullInt{}, err
	}
	return NullInt{Value: v, Valid: true}, nil
}

// String returns the decimal value of n, or the empty string if n is null.
func (n NullInt) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatInt(n.Value, 10)
}

// MarshalJSON implements json.Marshaler.
func (n NullInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// NullFloat is a floating point report value that may be absent.
// Non-finite values are treated as absent.
type NullFloat struct {
	Value float64
	Valid bool
}

func parseNullFloat(s string) (NullFloat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NullFloat{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NullFloat{}, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NullFloat{}, nil
	}
	return NullFloat{Value: v, Valid: true}, nil
}

// String returns the value of n, or the empty string if n is null.
func (n NullFloat) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// MarshalJSON implements json.Marshaler.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

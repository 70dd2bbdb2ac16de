/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package model contains the value types shared between the certificate
// manager, the stack orchestrator, and the validator.
package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/authfront/authfront/internal/errdefs"
)

// Parameter is a single deployment parameter. The JSON field names follow the
// CloudFormation parameter-file convention so the artifacts stay readable by
// the AWS CLI.
type Parameter struct {
	Key   string `json:"ParameterKey"`
	Value string `json:"ParameterValue"`
}

// ParameterSet is a collection of parameters with unique keys. Entries keep
// their insertion order for stable artifacts; Set and Merge are
// last-write-wins on the value.
type ParameterSet struct {
	params []Parameter
}

// NewParameterSet creates a parameter set from the given parameters.
func NewParameterSet(params ...Parameter) *ParameterSet {
	ps := &ParameterSet{}
	for _, p := range params {
		ps.Set(p.Key, p.Value)
	}
	return ps
}

// Set adds a parameter, replacing the value of an existing key in place.
func (ps *ParameterSet) Set(key, value string) {
	for i := range ps.params {
		if ps.params[i].Key == key {
			ps.params[i].Value = value
			return
		}
	}
	ps.params = append(ps.params, Parameter{Key: key, Value: value})
}

// Get returns the value for key and whether it is present.
func (ps *ParameterSet) Get(key string) (string, bool) {
	for _, p := range ps.params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Merge overlays fragment onto the set, last write wins.
func (ps *ParameterSet) Merge(fragment *ParameterSet) {
	if fragment == nil {
		return
	}
	for _, p := range fragment.params {
		ps.Set(p.Key, p.Value)
	}
}

// Parameters returns a copy of the parameters in insertion order.
func (ps *ParameterSet) Parameters() []Parameter {
	out := make([]Parameter, len(ps.params))
	copy(out, ps.params)
	return out
}

// Len returns the number of parameters in the set.
func (ps *ParameterSet) Len() int {
	return len(ps.params)
}

// MarshalJSON encodes the set as an ordered array of key/value objects.
func (ps *ParameterSet) MarshalJSON() ([]byte, error) {
	if ps.params == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(ps.params)
}

// rawParameter mirrors Parameter with pointer fields so that absent keys can
// be told apart from empty values during decoding.
type rawParameter struct {
	Key   *string `json:"ParameterKey"`
	Value *string `json:"ParameterValue"`
}

// UnmarshalJSON decodes an array of key/value objects, rejecting entries that
// omit either field.
func (ps *ParameterSet) UnmarshalJSON(data []byte) error {
	var raw []rawParameter
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parameter set must be a JSON array of key/value objects: %w", err)
	}

	ps.params = nil
	for i, r := range raw {
		if r.Key == nil || r.Value == nil {
			return fmt.Errorf("parameter entry %d must have both ParameterKey and ParameterValue", i)
		}
		ps.Set(*r.Key, *r.Value)
	}
	return nil
}

// ReadFile loads a parameter set from a JSON artifact file. A file that does
// not exist is reported via os.IsNotExist on the returned error; malformed
// content is a validation error.
func ReadFile(path string) (*ParameterSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ps := &ParameterSet{}
	if err := json.Unmarshal(data, ps); err != nil {
		return nil, errdefs.Validationf("parameter file %s: %w", path, err)
	}
	return ps, nil
}

// WriteFile persists the parameter set as an indented JSON artifact.
func WriteFile(path string, ps *ParameterSet) error {
	data, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode parameter file %s: %w", path, err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write parameter file %s: %w", path, err)
	}
	return nil
}

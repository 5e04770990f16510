// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package modelerr holds the errors shared by the model sheet parser and both
// converters. Every error aborts the whole conversion.
package modelerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedField    = errors.New("malformed field")
	ErrDanglingReference = errors.New("dangling reference")
	ErrUnsupportedShape  = errors.New("unsupported shape")
)

// ReferenceKind - the kind of entity a dangling reference points to.
type ReferenceKind string

const (
	ReferenceKindTable          ReferenceKind = "table"
	ReferenceKindJoin           ReferenceKind = "join"
	ReferenceKindColumn         ReferenceKind = "column"
	ReferenceKindWorksheetTable ReferenceKind = "worksheet table"
)

// MalformedFieldError - a string encoded boolean, numeric or enumerated value could not be parsed.
type MalformedFieldError struct {
	// Table - owning table name, empty for worksheet level fields.
	Table string
	// Column - column name, empty for table level fields.
	Column string
	// Field - the model sheet header name of the field.
	Field string
	// Value - the raw value.
	Value string
	Err   error
}

func NewMalformedFieldError(table, column, field, value string, err error) *MalformedFieldError {
	return &MalformedFieldError{
		Table:  table,
		Column: column,
		Field:  field,
		Value:  value,
		Err:    err,
	}
}

func (e *MalformedFieldError) Error() string {
	var location []string
	if e.Table != "" {
		location = append(location, fmt.Sprintf("table %q", e.Table))
	}
	if e.Column != "" {
		location = append(location, fmt.Sprintf("column %q", e.Column))
	}
	location = append(location, fmt.Sprintf("field %q", e.Field))
	msg := fmt.Sprintf("%s: %s: cannot parse value %q", ErrMalformedField, strings.Join(location, " "), e.Value)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *MalformedFieldError) Is(target error) bool {
	return target == ErrMalformedField
}

func (e *MalformedFieldError) Unwrap() error {
	return e.Err
}

// DanglingReferenceError - a join, relation, table path or column id names an entity that does not exist.
type DanglingReferenceError struct {
	Kind ReferenceKind
	// Name - the unresolved name.
	Name string
	// From - the entity holding the reference.
	From string
}

func NewDanglingReferenceError(kind ReferenceKind, name, from string) *DanglingReferenceError {
	return &DanglingReferenceError{
		Kind: kind,
		Name: name,
		From: from,
	}
}

func (e *DanglingReferenceError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("%s: %s %q not found", ErrDanglingReference, e.Kind, e.Name)
	}
	return fmt.Sprintf("%s: %s %q referenced by %q not found", ErrDanglingReference, e.Kind, e.Name, e.From)
}

func (e *DanglingReferenceError) Is(target error) bool {
	return target == ErrDanglingReference
}

// UnsupportedShapeError - the construct is expressible in one model but not in the other.
type UnsupportedShapeError struct {
	Reason  string
	Subject string
}

func NewUnsupportedShapeError(subject, reason string, args ...any) *UnsupportedShapeError {
	return &UnsupportedShapeError{
		Reason:  fmt.Sprintf(reason, args...),
		Subject: subject,
	}
}

func (e *UnsupportedShapeError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s: %s", ErrUnsupportedShape, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrUnsupportedShape, e.Subject, e.Reason)
}

func (e *UnsupportedShapeError) Is(target error) bool {
	return target == ErrUnsupportedShape
}

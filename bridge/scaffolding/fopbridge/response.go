// Package fopbridge provides shared response envelopes for the bridge
// handlers.
package fopbridge

import "encoding/json"

// RecordID is the data model used when returning just a record id.
type RecordID struct {
	ID string `json:"id"`
}

// Encode implements the encoder interface.
func (r RecordID) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

// CodeResponse provides a standard response with code and message.
type CodeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Encode implements the encoder interface.
func (c CodeResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

// RecordResponse wraps a single record.
type RecordResponse[T any] struct {
	Record T `json:"record"`
}

// NewRecordResponse constructs a record response.
func NewRecordResponse[T any](record T) RecordResponse[T] {
	return RecordResponse[T]{Record: record}
}

// Encode implements the encoder interface.
func (r RecordResponse[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

// Package models defines data structures for XML to worksheet mapping.
package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidColumn indicates a column outside the single-letter range A-Z.
var ErrInvalidColumn = errors.New("column must be a single letter A-Z")

// ErrInvalidRow indicates a row number below 1.
var ErrInvalidRow = errors.New("row must be 1 or greater")

// columnLetters is the closed set of addressable columns.
const columnLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Columns returns the addressable column letters in order.
func Columns() []string {
	cols := make([]string, len(columnLetters))
	for i := range columnLetters {
		cols[i] = columnLetters[i : i+1]
	}
	return cols
}

// CellAddress is a single-letter column and a 1-based row.
// It serializes as a two-element JSON array: ["B", 2].
type CellAddress struct {
	// Column is one of A-Z.
	Column string
	// Row is the 1-based row number.
	Row int
}

// Validate reports whether the address is within the supported range.
func (a CellAddress) Validate() error {
	if len(a.Column) != 1 || a.Column[0] < 'A' || a.Column[0] > 'Z' {
		return fmt.Errorf("%w: %q", ErrInvalidColumn, a.Column)
	}
	if a.Row < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRow, a.Row)
	}
	return nil
}

// ColumnIndex returns the 1-based column number (A=1).
func (a CellAddress) ColumnIndex() int {
	if len(a.Column) != 1 {
		return 0
	}
	return int(a.Column[0]-'A') + 1
}

// Offset returns the address n rows below a, in the same column.
func (a CellAddress) Offset(n int) CellAddress {
	return CellAddress{Column: a.Column, Row: a.Row + n}
}

// CellName returns the A1-style reference for the address.
func (a CellAddress) CellName() (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	return excelize.CoordinatesToCellName(a.ColumnIndex(), a.Row)
}

func (a CellAddress) String() string {
	return fmt.Sprintf("%s%d", a.Column, a.Row)
}

// MarshalJSON encodes the address as [column, row].
func (a CellAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{a.Column, a.Row})
}

// UnmarshalJSON decodes a [column, row] pair.
func (a *CellAddress) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("cell address: expected [column, row], got %d elements", len(pair))
	}
	var addr CellAddress
	if err := json.Unmarshal(pair[0], &addr.Column); err != nil {
		return fmt.Errorf("cell address column: %w", err)
	}
	if err := json.Unmarshal(pair[1], &addr.Row); err != nil {
		return fmt.Errorf("cell address row: %w", err)
	}
	*a = addr
	return nil
}

// CellRow represents a single row of cells keyed by column letter.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column letter to cell value.
	C map[string]interface{} `json:"c"`
}

// Package komb combines data columns of delimited logger exports onto a
// single regular time grid.
//
// Every input column is held in a Series, an append-only store of samples
// sorted by time. Export queries every Series at each tick of a Grid and
// reports the most recent value at or before the tick, leaving the cell
// empty before the first and after the last sample of a column.
//
// This package is created for the CLI tool in the cmd/komb subpackage.
package komb

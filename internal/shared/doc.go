// Package shared holds code used across layers that belongs to none of them.
//
// The testutil subpackage provides sample sales records, a raw sheet grid
// built from them and a buffered slog handler for asserting on log output.
package shared

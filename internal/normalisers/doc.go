// Package normalisers turns source candidates into canonical records.
//
// The star subpackage maps RawStar candidates onto the StarRecord schema,
// applying defaults field by field, and collapses duplicates by full name.
package normalisers

// Package query filters sequences of records by a flat field query.
//
// A Query maps field names to criteria. A Literal criterion matches a field
// whose value is structurally equal to it; a Pattern criterion matches a field
// holding a string accepted by its regular expression. A record passes when
// every criterion matches. The criterion kind is decided once, when the query
// is compiled.
package query

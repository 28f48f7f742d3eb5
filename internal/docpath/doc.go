// Package docpath reads and writes nested Document values addressed by
// dot-separated paths such as "user.name".
//
// Each segment of a path names a mapping key at that depth. Reads never create
// anything: a missing or non-mapping intermediate simply means the path is
// absent. Writes always succeed: missing intermediates are created as empty
// mappings and non-mapping intermediates are replaced by one.
//
// Values handed back to the caller are deep copies, so mutating them never
// reaches the Document they came from.
package docpath

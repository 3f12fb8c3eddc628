// Package output renders hermes command output.
//
// Styles use semantic names (Success, Error, Key, Muted, Type) with adaptive
// colors defined in the embedded styles.yaml. A Printer built for a
// non-terminal writer, or with NO_COLOR set, prints plain text.
package output

// Package smithy4s carries shared metadata for the smithy4s code
// generation toolchain.
package smithy4s

// Version is the current smithy4s release version.
const Version = "0.2.0"

// Package schema defines the HCL block structures for manifest files:
// `command` blocks that declare a command's shape and `invocation` blocks
// that supply concrete argument values for it.
package schema

// Package structarg is the struct-tag declaration front-end. It derives a
// command definition from a Go struct type whose fields carry `cmd` tags,
// resolves the definition into a plan once, and then builds a Command from
// any instance of that type.
//
//	type Echo struct {
//		_ struct{} `cmd:"executable=echo"`
//
//		NoNewline bool   `cmd:"flag=-n"`
//		Text      string `cmd:"arg"`
//	}
//
// The field's Go type decides its role: bool fields are presence flags,
// pointer fields are optional, slice fields repeat once per element, and
// everything else is a single value.
package structarg

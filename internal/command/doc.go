// Package command implements the argument sequence builder. Given a resolved
// plan and one concrete value set it produces a Command: the executable name
// plus the ordered token sequence, ready for a process spawner.
//
// Building is a pure transformation. The same plan and values always yield
// byte-identical output, and a plan can serve any number of concurrent
// builds because it is never written to.
package command

// Package guard provides a navigation hook that sends navigations failing
// a predicate to another path before anything renders.
package guard

// Package testing provides test utilities for the substate library.
//
// It follows Go's convention of providing testing utilities in a dedicated
// package (similar to net/http/httptest).
//
// Example usage:
//
//	import (
//	    "testing"
//	    substatetest "github.com/arloliu/substate/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    logger := substatetest.NewTestLogger(t)
//	    state, err := substate.New(nil, substate.WithLogger(logger))
//	    // ...
//	}
package testing

// Package config holds the one structural limit the reference
// implementation hard-codes as a C #define and that is practical to vary
// in tests: the frame-cache bound. It is a package-level var rather than
// an untyped const so a test exercising the "page number out of bounds"
// fatal path (P-style boundary test, see internal/pager) can shrink it
// for a single test instead of driving the pager to page 100 to do it.
//
// Production code must never assign to this; only tests do, and only
// ever inside a t.Cleanup that restores the default.
package config

import "github.com/tinybase/tinybase/internal/format"

// TableMaxPages bounds how many page frames the pager will allocate.
// Defaults to format.TableMaxPages, the reference's TABLE_MAX_PAGES.
var TableMaxPages = format.TableMaxPages

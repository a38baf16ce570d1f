// Package runner executes registered test blocks and collects their matcher
// results.
//
// A Suite holds test blocks registered with Test, Skip and Only. Run
// executes them sequentially or in parallel, giving each block a fresh *T
// that owns its TestRecord; expectations created through T.Expect report
// into that record and never leak across tests. Panics in a test body are
// recovered and recorded, and matcher usage errors abort the remaining
// evaluations of their block only.
package runner

// Package expect provides matcher-based assertions for jest test suites.
//
// Supported matchers:
//   - Identity and deep equality (ToBe, ToEqual)
//   - Null/undefined classification (ToBeNull, ToBeUndefined, ToBeDefined)
//   - Truthiness (ToBeTruthy, ToBeFalsy)
//   - Numeric ordering and approximation (ToBeGreaterThan, ToBeCloseTo, ...)
//   - Strings and collections (ToMatch, ToContain, ToHaveLength, ToHaveProperty)
//   - Guarded invocation (ToThrow)
//   - JSON Schema validation (ToMatchSchema) and snapshots (ToMatchSnapshot)
//
// Every matcher reports its outcome through a Reporter, and Not() flips the
// pass/fail meaning without changing the underlying comparison. Custom
// matchers can be added with Register and invoked through To.
package expect

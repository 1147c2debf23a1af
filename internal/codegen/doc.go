// Package codegen renders JSX/TSX snippets for catalogue components and
// page patterns, and TypeScript prop interfaces for components.
//
// All output is deterministic: props, object keys and interface members are
// emitted in sorted key order, so identical requests produce identical code
// and can be memoized.
package codegen

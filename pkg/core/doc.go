// Package core defines the shared language of monhealth.
//
// This package contains:
//   - Domain entities (Food, Date, Clock)
//   - The query descriptor produced by pkg/query (Field, Predicate, Conjunction, SortKey, Query)
//   - Service interfaces (Store)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core

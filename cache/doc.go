// Package cache defines the best-effort key/value store the repository
// uses as its preferred item source, plus the key scheme shared by every
// consumer.
//
// # Overview
//
// Two entry kinds exist:
//
//   - The aggregate entry (AllItemsKey): the full serialized collection
//     snapshot. When present it is treated as complete and current.
//   - Per-item entries (ItemKey): one serialized item keyed by its ID.
//
// The contract is deliberately forgiving: a Cache implementation must
// absorb backend failures and degrade to absent/no-op results rather
// than propagate transport errors. Consumers therefore never branch on
// cache errors for correctness; the repository's in-memory set remains
// the last-resort source of truth.
//
// # Disabled mode
//
// Rather than scattering failure handling through every call site, the
// unreachable-backend case is modeled as a second implementation: Noop.
// The construction site (see pkg/di) probes connectivity once and picks
// either the real backend or Noop behind the same Cache interface.
package cache

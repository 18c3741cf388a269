// Package pbcore reads and edits PBCore description documents stored in the
// PBCORE datastream of commercial objects.
//
// A Record is an immutable snapshot of one parsed document. Edit operations
// never touch the receiver: they return an Edit carrying a new snapshot and
// the list of field changes that produced it. An edit with no changes returns
// the receiver itself, which keeps "did anything change" a matter of checking
// the change log and makes repeated application trivially idempotent.
//
// Field lookups are namespace aware: every element must live in the PBCore
// namespace, whether the document binds it as the default namespace or under
// a prefix. Elements created by edits reuse the prefix of the document root.
package pbcore

// Package records defines the two replicated entity shapes, Subject and
// Event, together with the replication metadata they share and the document
// projection used when a record leaves the local store.
//
// # Replication metadata
//
// Every record embeds Meta: a client-generated id, the scope partition it
// lives in, the owner, an epoch-millisecond UpdatedAt used as the only
// conflict arbiter, a soft-delete tombstone and the local-only Dirty flag.
//
// # Documents
//
// Encode produces a Document whose Body is a flat JSON object of all record
// fields with "dirty" omitted. Decode reverses it and always yields a clean
// record, since anything arriving from the remote side is by definition
// acknowledged there.
package records

// Package documents stores replicated record documents on the server.
//
// A document is addressed by Key (owner, workspace, collection, id) and
// overwritten as a whole on every upsert. SelectNewer serves the pull side
// of a sync: documents of one scope with updated_at above a watermark, in
// (updated_at, id) order so a Cursor can resume between pages.
package documents

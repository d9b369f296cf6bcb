// Package remote implements the client side of the shared document store.
//
// A Store addresses documents by (owner, workspace, collection, scope, id);
// owner and workspace are bound when the adapter is built, so callers pass
// only the rest. Adapters never retry: every failure is returned to the
// caller mapped onto the sentinel errors of package common
// (ErrUnavailable, ErrTimeout, ErrorUnauthorized, ErrPermissionDenied) so
// the sync layer can tell network, timeout and auth failures apart.
//
// Three adapters are provided:
//
//   - GRPC talks to the gophrecords server (see package rpc).
//   - S3 stores one JSON object per document in an S3-compatible bucket.
//   - Memory keeps documents in process, for tests and offline demos.
package remote

// Package rpc defines the gophrecords.RecordStore gRPC service shared by the
// server and the client's remote adapter.
//
// Messages are plain Go structs carried by a JSON codec that is registered
// under the "json" content subtype; clients select it with
// grpc.CallContentSubtype, which RecordStoreClient does on every call. The
// service descriptor is written by hand in the shape protoc-gen-go-grpc
// emits.
package rpc

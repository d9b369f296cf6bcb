package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: rpc.StatusOK}, nil
}

func (s *GRPCServer) UpsertDocument(ctx context.Context, req *rpc.UpsertDocumentRequest) (*rpc.UpsertDocumentResponse, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	if err := s.documents.Upsert(ctx, owner, req); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.UpsertDocumentResponse{}, nil
}

func (s *GRPCServer) QueryDocuments(ctx context.Context, req *rpc.QueryDocumentsRequest) (*rpc.QueryDocumentsResponse, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	resp, err := s.documents.Query(ctx, owner, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

// toStatus maps service errors to gRPC status codes. Internal errors do not
// leak their cause to the caller.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrInvalidScope),
		errors.Is(err, common.ErrInvalidCollection),
		errors.Is(err, common.ErrInvalidDocument),
		errors.Is(err, common.ErrInvalidPageToken),
		errors.Is(err, common.ErrInvalidWorkspace):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

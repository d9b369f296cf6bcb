package rpc

import (
	"context"

	"github.com/dmitrijs2005/gophrecords/internal/common"
	"google.golang.org/grpc/metadata"
)

// WithAccessToken returns ctx carrying token in the outgoing metadata,
// replacing any token already present.
func WithAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

// AccessToken extracts the token from incoming metadata. Empty when absent.
func AccessToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
		return values[0]
	}
	return ""
}

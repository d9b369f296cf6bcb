package remote

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/gophrecords/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// contextError maps context termination. It returns nil for other errors.
func contextError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", common.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	}
	return nil
}

func mapGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if cerr := contextError(err); cerr != nil {
		return cerr
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, st.Message())
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", common.ErrPermissionDenied, st.Message())
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", common.ErrUnavailable, st.Message())
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", common.ErrTimeout, st.Message())
	case codes.Canceled:
		return context.Canceled
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrInvalidDocument, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func mapS3Error(err error) error {
	if err == nil {
		return nil
	}
	if cerr := contextError(err); cerr != nil {
		return cerr
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "InvalidToken":
			return fmt.Errorf("%w: %s", common.ErrorUnauthorized, apiErr.ErrorMessage())
		case "AccessDenied", "Forbidden", "AllAccessDisabled":
			return fmt.Errorf("%w: %s", common.ErrPermissionDenied, apiErr.ErrorMessage())
		case "NoSuchBucket", "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s", common.ErrorNotFound, apiErr.ErrorCode())
		case "SlowDown", "ServiceUnavailable", "InternalError", "RequestTimeout":
			return fmt.Errorf("%w: %s", common.ErrUnavailable, apiErr.ErrorCode())
		}
		return fmt.Errorf("s3 error: %w", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %w", common.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}
	return fmt.Errorf("s3 error: %w", err)
}

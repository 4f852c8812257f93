package teaching

import "context"

// TeachingService journals teaching sessions.
type TeachingService interface {
	Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error)
}

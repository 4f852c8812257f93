package leave

import "context"

// LeaveService files leave requests.
type LeaveService interface {
	Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error)
}

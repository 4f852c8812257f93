package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/leave"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/submission"
)

type LeaveServiceImpl struct {
	submitter submission.Service
	now       func() time.Time
}

func NewLeaveService(submitter submission.Service) leave.LeaveService {
	return &LeaveServiceImpl{
		submitter: submitter,
		now:       time.Now,
	}
}

// leavePayload is the data block of a LEAVE envelope, camelCase per the web
// app's script. The attachment travels as the base64 data URL the client
// produced; the web app stores it as-is.
type leavePayload struct {
	LeaveType        string `json:"leaveType"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Reason           string `json:"reason"`
	Timestamp        string `json:"timestamp"`
	AttachmentBase64 string `json:"attachmentBase64,omitempty"`
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.SubmitResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.SubmitResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return leave.SubmitResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	name, _ := claims["name"].(string)
	nip, _ := claims["nip"].(string)
	role, _ := claims["role"].(string)

	delivery, err := l.submitter.Submit(ctx, submission.Envelope{
		Action: submission.ActionLeave,
		User:   submission.SubmitterInfo{Name: name, NIP: nip, Role: role},
		Data: leavePayload{
			LeaveType:        req.LeaveType,
			StartDate:        req.StartDate,
			EndDate:          req.EndDate,
			Reason:           req.Reason,
			Timestamp:        l.now().Format(time.RFC3339),
			AttachmentBase64: req.AttachmentBase64,
		},
	})
	if err != nil {
		return leave.SubmitResponse{}, err
	}

	return leave.SubmitResponse{
		LeaveType:         req.LeaveType,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		DeliveryConfirmed: delivery.Confirmed,
	}, nil
}

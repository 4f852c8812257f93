package teaching

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/submission"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/teaching"
)

type TeachingServiceImpl struct {
	submitter submission.Service
	now       func() time.Time
}

func NewTeachingService(submitter submission.Service) teaching.TeachingService {
	return &TeachingServiceImpl{
		submitter: submitter,
		now:       time.Now,
	}
}

// teachingPayload is the data block of a TEACHING envelope, camelCase per the
// web app's script.
type teachingPayload struct {
	Subject     string `json:"subject"`
	ClassName   string `json:"className"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Timestamp   string `json:"timestamp"`
	PhotoBase64 string `json:"photoBase64"`
}

// Submit implements teaching.TeachingService.
func (t *TeachingServiceImpl) Submit(ctx context.Context, req teaching.SubmitRequest) (teaching.SubmitResponse, error) {
	if err := req.Validate(); err != nil {
		return teaching.SubmitResponse{}, err
	}

	user, err := submitterFromContext(ctx)
	if err != nil {
		return teaching.SubmitResponse{}, err
	}

	photo, err := encodePhoto(req.File, req.FileHeader)
	if err != nil {
		return teaching.SubmitResponse{}, fmt.Errorf("failed to read proof photo: %w", err)
	}

	delivery, err := t.submitter.Submit(ctx, submission.Envelope{
		Action: submission.ActionTeaching,
		User:   user,
		Data: teachingPayload{
			Subject:     req.Subject,
			ClassName:   req.ClassName,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Timestamp:   t.now().Format(time.RFC3339),
			PhotoBase64: photo,
		},
	})
	if err != nil {
		return teaching.SubmitResponse{}, err
	}

	return teaching.SubmitResponse{
		ID:                uuid.NewString(),
		Subject:           req.Subject,
		ClassName:         req.ClassName,
		TimeRange:         req.StartTime + " - " + req.EndTime,
		DeliveryConfirmed: delivery.Confirmed,
	}, nil
}

func submitterFromContext(ctx context.Context) (submission.SubmitterInfo, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return submission.SubmitterInfo{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	name, _ := claims["name"].(string)
	nip, _ := claims["nip"].(string)
	role, _ := claims["role"].(string)
	return submission.SubmitterInfo{Name: name, NIP: nip, Role: role}, nil
}

func encodePhoto(file multipart.File, header *multipart.FileHeader) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

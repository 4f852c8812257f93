// Package submission is the boundary with the spreadsheet web app that stores
// attendance, teaching and leave events. The transport cannot read a
// structured response back (the web app only accepts opaque POSTs), so every
// delivery is optimistic: callers must treat a nil error as "handed to the
// network", never as "durably written".
package submission

import (
	"context"
	"time"
)

type Action string

const (
	ActionAttendance Action = "ATTENDANCE"
	ActionTeaching   Action = "TEACHING"
	ActionLeave      Action = "LEAVE"
)

// Submitter is the identity block attached to every envelope.
type SubmitterInfo struct {
	Name string `json:"name"`
	NIP  string `json:"nip"`
	Role string `json:"role"`
}

// Envelope is the wire payload accepted by the web app.
type Envelope struct {
	Action Action        `json:"action"`
	User   SubmitterInfo `json:"user"`
	Data   any           `json:"data"`
}

// Delivery describes the outcome of a submit. Confirmed is always false in the
// current transport; it exists so callers cannot mistake an optimistic send
// for a confirmed write.
type Delivery struct {
	Confirmed bool
	SentAt    time.Time
}

// Service sends envelopes to the web app. An error means the request never
// left or the transport failed; absence of an error means at-most-once,
// unconfirmed delivery.
type Service interface {
	Submit(ctx context.Context, env Envelope) (Delivery, error)
}

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/dashboard"
	"github.com/smpn1padarincang/presensi-backend-go/internal/handler/http/response"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/jwt"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/sse"
	dashboardService "github.com/smpn1padarincang/presensi-backend-go/internal/service/dashboard"
)

type DashboardHandler interface {
	Snapshot(w http.ResponseWriter, r *http.Request)
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashService dashboard.DashboardService
	jwtService  jwt.Service
	hub         *sse.Hub
}

func NewDashboardHandler(dashService dashboard.DashboardService, jwtService jwt.Service, hub *sse.Hub) DashboardHandler {
	return &dashboardHandlerImpl{
		dashService: dashService,
		jwtService:  jwtService,
		hub:         hub,
	}
}

// Snapshot implements DashboardHandler. ?order=daily|ranking picks the sort,
// ?q= filters by name or NIP.
func (h *dashboardHandlerImpl) Snapshot(w http.ResponseWriter, r *http.Request) {
	q := dashboard.Query{
		Order:  dashboard.OrderDaily,
		Search: r.URL.Query().Get("q"),
	}
	if r.URL.Query().Get("order") == string(dashboard.OrderRanking) {
		q.Order = dashboard.OrderRanking
	}

	response.Success(w, h.dashService.Snapshot(r.Context(), q))
}

type sseTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GetSSEToken implements DashboardHandler. EventSource cannot send an
// Authorization header, so the authenticated admin trades their session for a
// short-lived token carried in the stream URL.
func (h *dashboardHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	username, _ := claims["username"].(string)
	if username == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(username)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, sseTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream implements DashboardHandler: the live dashboard feed.
func (h *dashboardHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Token comes from the query string, SSE does not support custom headers.
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	username, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(dashboardService.Topic)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"username\":%q}\n\n", username)
	flusher.Flush()

	// The first snapshot goes out immediately so a reconnecting dashboard is
	// never blank until the next refresh tick.
	if data, err := json.Marshal(h.dashService.Snapshot(r.Context(), dashboard.Query{Order: dashboard.OrderDaily})); err == nil {
		fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
		flusher.Flush()
	}

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

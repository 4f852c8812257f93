package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/attendance"
	"github.com/smpn1padarincang/presensi-backend-go/internal/handler/http/middleware"
	"github.com/smpn1padarincang/presensi-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Status(r.Context(), middleware.DeviceID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// parseCheckForm decodes the multipart check-in/out form: a JSON 'data' field
// with the GPS fix plus a 'photo' file.
func parseCheckForm(w http.ResponseWriter, r *http.Request) (attendance.CheckRequest, bool) {
	var req attendance.CheckRequest

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return req, false
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return req, false
	}

	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			// Validate reports the missing selfie with the contract message.
			return req, true
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return req, false
	}

	req.File = file
	req.FileHeader = fileHeader
	return req, true
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	req, ok := parseCheckForm(w, r)
	if !ok {
		return
	}
	if req.File != nil {
		defer req.File.Close()
	}

	result, err := h.attendanceService.CheckIn(r.Context(), middleware.DeviceID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absen masuk terkirim", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	req, ok := parseCheckForm(w, r)
	if !ok {
		return
	}
	if req.File != nil {
		defer req.File.Close()
	}

	result, err := h.attendanceService.CheckOut(r.Context(), middleware.DeviceID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/teaching"
	"github.com/smpn1padarincang/presensi-backend-go/internal/handler/http/response"
)

type TeachingHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Options(w http.ResponseWriter, r *http.Request)
}

type teachingHandlerImpl struct {
	teachingService teaching.TeachingService
}

func NewTeachingHandler(teachingService teaching.TeachingService) TeachingHandler {
	return &teachingHandlerImpl{
		teachingService: teachingService,
	}
}

// Submit implements TeachingHandler.
func (h *teachingHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req teaching.SubmitRequest

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil && err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if file != nil {
		defer file.Close()
		req.File = file
		req.FileHeader = fileHeader
	}

	result, err := h.teachingService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Jurnal mengajar terkirim", result)
}

// Options serves the subject and class lists the journal form offers.
func (h *teachingHandlerImpl) Options(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string][]string{
		"subjects": teaching.SubjectOptions,
		"classes":  teaching.RoomOptions,
	})
}

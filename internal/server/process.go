package server

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/joseph-ayodele/document-agent/constants"
	"github.com/joseph-ayodele/document-agent/internal/common"
	"github.com/joseph-ayodele/document-agent/internal/pipeline"
)

// ErrorEnvelope is the wire shape for all rejected/failed requests.
type ErrorEnvelope struct {
	Detail    string `json:"detail"`
	ErrorType string `json:"error_type"`
}

// handleProcessDocument accepts a multipart form with an optional text_input
// field and an optional file upload, and runs the pipeline. The image takes
// precedence when both are supplied.
func (s *Server) handleProcessDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		s.writeErrorEnvelope(w, http.StatusBadRequest, ErrorEnvelope{
			Detail:    "invalid multipart form: " + err.Error(),
			ErrorType: string(constants.ErrorTypeFileRead),
		})
		return
	}

	in := pipeline.Input{Text: r.FormValue("text_input")}

	file, hdr, err := r.FormFile("file")
	switch {
	case err == nil:
		if ext := filepath.Ext(hdr.Filename); ext != "" && !constants.IsImageExt(ext) {
			_ = file.Close()
			s.writeErrorEnvelope(w, http.StatusBadRequest, ErrorEnvelope{
				Detail:    "unsupported image type: " + constants.NormalizeExt(ext),
				ErrorType: string(constants.ErrorTypeFileRead),
			})
			return
		}
		data, readErr := io.ReadAll(file)
		_ = file.Close()
		if readErr != nil {
			s.writeErrorEnvelope(w, http.StatusBadRequest, ErrorEnvelope{
				Detail:    "error reading uploaded file: " + readErr.Error(),
				ErrorType: string(constants.ErrorTypeFileRead),
			})
			return
		}
		in.Image = data
	case errors.Is(err, http.ErrMissingFile):
		// text-only request
	default:
		s.writeErrorEnvelope(w, http.StatusBadRequest, ErrorEnvelope{
			Detail:    "error reading uploaded file: " + err.Error(),
			ErrorType: string(constants.ErrorTypeFileRead),
		})
		return
	}

	res, err := s.processor.Process(r.Context(), in)
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			s.writeErrorEnvelope(w, appErr.HTTPStatus(), ErrorEnvelope{
				Detail:    appErr.Detail(),
				ErrorType: string(appErr.Type),
			})
			return
		}
		// never leak internals for unclassified failures
		s.logger.Error("http.process.internal_error", "error", err)
		s.writeErrorEnvelope(w, http.StatusInternalServerError, ErrorEnvelope{
			Detail:    "internal processing error",
			ErrorType: string(constants.ErrorTypeLLMExecution),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeErrorEnvelope(w http.ResponseWriter, status int, env ErrorEnvelope) {
	s.writeJSON(w, status, env)
}

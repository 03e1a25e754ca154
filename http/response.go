package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/sagarc03/lakepath"
)

// DebugInfo identifies the server build in every response.
type DebugInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
}

// NewDebugInfo returns DebugInfo for the running binary.
func NewDebugInfo(name, version string) DebugInfo {
	return DebugInfo{Name: name, Version: version, GoVersion: runtime.Version()}
}

// Response holds the fields common to every datalake response.
type Response struct {
	InvocationID        string     `json:"invocationId"`
	DebugInfo           *DebugInfo `json:"debugInfo,omitempty"`
	StorageContainerURL string     `json:"storageContainerUrl,omitempty"`
	Parameters          any        `json:"parameters,omitempty"`
	Error               string     `json:"error,omitempty"`
}

// CheckPathResponse is the body of a successful checkpathcase request.
type CheckPathResponse struct {
	Response
	ValidatedPath string `json:"validatedPath"`
}

// GetItemsResponse is the body of a successful getitems request.
type GetItemsResponse struct {
	Response
	CorrectedFilePath string          `json:"correctedFilePath,omitempty"`
	FileCount         int             `json:"fileCount"`
	Files             []lakepath.Item `json:"files"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, invocationID, message string) {
	if err := WriteJSON(w, code, Response{InvocationID: invocationID, Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type.
// Errors a caller can act on are returned with their message; anything else
// is logged and answered with a generic message.
func HandleError(w http.ResponseWriter, invocationID string, err error) {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, lakepath.ErrUnauthorized) {
		slog.Warn("request unauthorized", "invocation_id", invocationID, "error", err)
		WriteError(w, http.StatusUnauthorized, invocationID, "Unauthorized")
		return
	}

	if isDetailed(err) {
		slog.Error("request error", "invocation_id", invocationID, "error", err)
		WriteError(w, http.StatusBadRequest, invocationID, err.Error())
		return
	}

	slog.Error("request failed", "invocation_id", invocationID, "error", err)
	WriteError(w, http.StatusBadRequest, invocationID, GenericErrorMessage)
}

func isDetailed(err error) bool {
	for _, target := range []error{
		lakepath.ErrInvalidInput,
		lakepath.ErrInvalidFilter,
		lakepath.ErrMultipleDirectoryMatches,
		lakepath.ErrMultipleFileMatches,
		lakepath.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

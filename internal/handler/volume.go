package handler

import (
	"log/slog"
	"net/http"

	"inkstone/internal/httputil"

	novelSvc "inkstone/internal/domain/services/novel"
)

// VolumeHandler handles volume HTTP requests
type VolumeHandler struct {
	volumes novelSvc.VolumeService
	logger  *slog.Logger
}

// NewVolumeHandler creates a new volume handler
func NewVolumeHandler(volumes novelSvc.VolumeService, logger *slog.Logger) *VolumeHandler {
	return &VolumeHandler{
		volumes: volumes,
		logger:  logger,
	}
}

// CreateVolume appends a volume to a manuscript
// POST /api/volumes
func (h *VolumeHandler) CreateVolume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req novelSvc.CreateVolumeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	v, err := h.volumes.CreateVolume(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, v)
}

// UpdateVolume updates a volume's title/description
// PATCH /api/volumes/{id}
func (h *VolumeHandler) UpdateVolume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	var req novelSvc.UpdateVolumeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.volumes.UpdateVolume(r.Context(), userID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, v)
}

// DeleteVolume hard-deletes a volume and its chapters
// DELETE /api/volumes/{id}
func (h *VolumeHandler) DeleteVolume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.volumes.DeleteVolume(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

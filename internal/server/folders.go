package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/lernapp-2025/studycards-v3/internal/datasync"
	"github.com/lernapp-2025/studycards-v3/internal/folder"
)

type createFolderRequest struct {
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	ParentID *string `json:"parent_id"`
}

type moveFolderRequest struct {
	ParentID *string `json:"parent_id"`
}

type reorderFoldersRequest struct {
	FolderIDs []string `json:"folder_ids"`
}

// PathResponse is a folder's ancestry, root first.
type PathResponse struct {
	Path    []folder.Folder `json:"path"`
	Display string          `json:"display"`
}

func (h *Handler) getTree(w http.ResponseWriter, r *http.Request) {
	roots, err := h.folders.Tree(r.Context(), userFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if roots == nil {
		roots = []*folder.Node{}
	}
	respondJSON(w, http.StatusOK, roots)
}

func (h *Handler) createFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if !decode(w, r, &req) {
		return
	}
	created, err := h.folders.Create(r.Context(), folder.CreateParams{
		Name:     req.Name,
		Color:    req.Color,
		ParentID: req.ParentID,
		UserID:   userFrom(r),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) searchFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folders.Search(r.Context(), userFrom(r), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, folders)
}

func (h *Handler) getFolder(w http.ResponseWriter, r *http.Request) {
	f, err := h.folders.Get(r.Context(), r.PathValue("id"), userFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, f)
}

func (h *Handler) updateFolder(w http.ResponseWriter, r *http.Request) {
	var changes folder.Changes
	if !decode(w, r, &changes) {
		return
	}
	if changes.IsEmpty() {
		respondError(w, http.StatusBadRequest, "nothing to update")
		return
	}
	f, err := h.folders.Update(r.Context(), r.PathValue("id"), userFrom(r), changes)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, f)
}

func (h *Handler) deleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := h.folders.Delete(r.Context(), r.PathValue("id"), userFrom(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) moveFolder(w http.ResponseWriter, r *http.Request) {
	var req moveFolderRequest
	if !decode(w, r, &req) {
		return
	}
	f, err := h.folders.Move(r.Context(), r.PathValue("id"), req.ParentID, userFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, f)
}

func (h *Handler) reorderFolders(w http.ResponseWriter, r *http.Request) {
	var req reorderFoldersRequest
	if !decode(w, r, &req) {
		return
	}
	reorder := h.folders.Reorder
	if h.atomicReorder {
		reorder = h.folders.ReorderAtomic
	}
	if err := reorder(r.Context(), req.FolderIDs, userFrom(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getFolderPath(w http.ResponseWriter, r *http.Request) {
	path, err := h.folders.Path(r.Context(), r.PathValue("id"), userFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if path == nil {
		path = []folder.Folder{}
	}
	respondJSON(w, http.StatusOK, PathResponse{Path: path, Display: folder.FormatPath(path)})
}

func (h *Handler) getFolderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.folders.Stats(r.Context(), r.PathValue("id"), userFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) exportFolders(w http.ResponseWriter, r *http.Request) {
	format, err := datasync.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	roots, err := h.folders.Tree(r.Context(), userFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// Render fully before writing so a failure can still become an error response.
	var buf bytes.Buffer
	if err := datasync.Export(&buf, roots, format); err != nil {
		h.fail(w, r, fmt.Errorf("export folders: %w", err))
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="folders.%s"`, format.Extension()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

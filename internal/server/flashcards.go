package server

import (
	"net/http"

	"github.com/lernapp-2025/studycards-v3/internal/canvas"
	"github.com/lernapp-2025/studycards-v3/internal/card"
)

// addElementRequest creates an element from the editor defaults of its type;
// set fields override them.
type addElementRequest struct {
	ID       string        `json:"id"`
	Type     card.Kind     `json:"type"`
	Content  string        `json:"content"`
	Position *canvas.Point `json:"position"`
	Size     *canvas.Size  `json:"size"`
	Rotation *float64      `json:"rotation"`
	ZIndex   *int          `json:"zIndex"`
	Style    *card.Style   `json:"style"`
}

func (req addElementRequest) element() (card.Element, bool) {
	var el card.Element
	switch req.Type {
	case card.KindText:
		el = card.NewTextElement(req.Content)
	case card.KindImage:
		el = card.NewImageElement(req.Content)
	default:
		return card.Element{}, false
	}
	if req.ID != "" {
		el.ID = req.ID
	}
	return card.Patch{
		Position: req.Position,
		Size:     req.Size,
		Rotation: req.Rotation,
		ZIndex:   req.ZIndex,
		Style:    req.Style,
	}.Apply(el), true
}

type moveElementRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (h *Handler) side(w http.ResponseWriter, r *http.Request) (card.Side, bool) {
	side, err := card.ParseSide(r.PathValue("side"))
	if err != nil {
		h.fail(w, r, err)
		return "", false
	}
	return side, true
}

func (h *Handler) getFlashcard(w http.ResponseWriter, r *http.Request) {
	c, err := h.cards.Get(r.Context(), r.PathValue("id"), userFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handler) renderFace(w http.ResponseWriter, r *http.Request) {
	side, ok := h.side(w, r)
	if !ok {
		return
	}
	elements, err := h.cards.Render(r.Context(), r.PathValue("id"), userFrom(r), side)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if elements == nil {
		elements = []card.Element{}
	}
	respondJSON(w, http.StatusOK, elements)
}

func (h *Handler) layoutFace(w http.ResponseWriter, r *http.Request) {
	side, ok := h.side(w, r)
	if !ok {
		return
	}
	placements, err := h.cards.Layout(r.Context(), r.PathValue("id"), userFrom(r), side)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if placements == nil {
		placements = []card.Placement{}
	}
	respondJSON(w, http.StatusOK, placements)
}

func (h *Handler) replaceFace(w http.ResponseWriter, r *http.Request) {
	side, ok := h.side(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	face, err := h.cards.ReplaceFace(r.Context(), r.PathValue("id"), userFrom(r), side, body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, face)
}

func (h *Handler) addElement(w http.ResponseWriter, r *http.Request) {
	side, ok := h.side(w, r)
	if !ok {
		return
	}
	var req addElementRequest
	if !decode(w, r, &req) {
		return
	}
	el, ok := req.element()
	if !ok {
		respondError(w, http.StatusBadRequest, "element type must be text or image")
		return
	}
	added, err := h.cards.AddElement(r.Context(), r.PathValue("id"), userFrom(r), side, el)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, added)
}

func (h *Handler) updateElement(w http.ResponseWriter, r *http.Request) {
	side, ok := h.side(w, r)
	if !ok {
		return
	}
	var patch card.Patch
	if !decode(w, r, &patch) {
		return
	}
	face, err := h.cards.UpdateElement(r.Context(), r.PathValue("id"), userFrom(r), side, r.PathValue("elementID"), patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, face)
}

func (h *Handler) deleteElement(w http.ResponseWriter, r *http.Request) {
	side, ok := h.side(w, r)
	if !ok {
		return
	}
	face, err := h.cards.DeleteElement(r.Context(), r.PathValue("id"), userFrom(r), side, r.PathValue("elementID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, face)
}

func (h *Handler) moveElement(w http.ResponseWriter, r *http.Request) {
	side, ok := h.side(w, r)
	if !ok {
		return
	}
	var req moveElementRequest
	if !decode(w, r, &req) {
		return
	}
	face, err := h.cards.MoveElement(r.Context(), r.PathValue("id"), userFrom(r), side, r.PathValue("elementID"), req.DX, req.DY)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, face)
}

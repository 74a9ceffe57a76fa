package candidate

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/apperror"
	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "")
		return
	}

	// the profile stays opaque, only the host email is lifted out of it
	var env hostEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "")
		return
	}

	id, err := h.service.Create(ctx, CreateCandidateCmd{
		HostEmail: env.Host.Email,
		Profile:   json.RawMessage(body),
	})
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, reqID, utils.CandidateSaved, id.String())
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid candidate id")
		return
	}

	c, err := h.service.GetByID(ctx, id)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", toResponse(c))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	candidates, err := h.service.List(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", toResponses(candidates))
}

func (h *Handler) ListByHost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	email := chi.URLParam(r, "email")
	if email == "" {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "email is required")
		return
	}

	candidates, err := h.service.ListByHost(ctx, email)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", toResponses(candidates))
}

func toResponses(candidates []Candidate) []CandidateResponse {
	res := make([]CandidateResponse, 0, len(candidates))
	for i := range candidates {
		res = append(res, *toResponse(&candidates[i]))
	}
	return res
}

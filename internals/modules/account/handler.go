package account

import (
	"encoding/json"
	"net/http"

	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/apperror"
	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service, validator *validator.Validate) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
	}
}

func (h *Handler) RegisterOrRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	// the path email is authoritative for which record is targeted
	email := chi.URLParam(r, "email")
	if email == "" {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "email is required")
		return
	}

	var req UpsertAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "")
		return
	}
	// validate request body
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "")
		return
	}

	acct, err := h.service.RegisterOrRequest(ctx, email, req.toPatch())
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, utils.AccountSaved, toResponse(acct))
}

func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	email := chi.URLParam(r, "email")
	if email == "" {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "email is required")
		return
	}

	var req UpsertAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "")
		return
	}

	acct, err := h.service.AssignRole(ctx, email, req.toPatch())
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, utils.AccountSaved, toResponse(acct))
}

func (h *Handler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	email := chi.URLParam(r, "email")
	if email == "" {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "email is required")
		return
	}

	acct, err := h.service.GetByEmail(ctx, email)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	// a miss replies 200 with null data, matching what the frontends expect
	utils.WriteJSON(w, http.StatusOK, reqID, utils.AccountRetrieved, toResponse(acct))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	accounts, err := h.service.List(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	res := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		res = append(res, *toResponse(&accounts[i]))
	}

	utils.WriteJSON(w, http.StatusOK, reqID, utils.AccountRetrieved, res)
}

package review

import (
	"context"
	"net/http"
	"time"

	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
)

type Store interface {
	List(ctx context.Context) ([]Review, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{
		store: store,
	}
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	reviews, err := h.store.List(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	res := make([]ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		res = append(res, ReviewResponse{
			ID:        rv.ID.String(),
			Name:      rv.Name,
			PhotoURL:  rv.PhotoURL,
			Rating:    rv.Rating,
			Comment:   rv.Comment,
			CreatedAt: rv.CreatedAt,
		})
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", res)
}

// Package favorite serves the authenticated user's favorites.
package favorite

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"newsfox/internal/domain/entity"
	"newsfox/internal/handler/http/auth"
	"newsfox/internal/handler/http/respond"
	"newsfox/internal/observability/logging"
	favUC "newsfox/internal/usecase/favorite"
)

// AlreadyExistsMessage accompanies a 200 response for a duplicate add.
const AlreadyExistsMessage = "Already in favorites"

// Service is the subset of the favorite use case the handlers need.
type Service interface {
	Add(ctx context.Context, identity string, in favUC.AddInput) (*entity.Favorite, bool, error)
	List(ctx context.Context, identity string) ([]*entity.Favorite, error)
}

type CreateHandler struct{ Svc Service }

// ServeHTTP お気に入り追加
// @Summary      お気に入り追加
// @Description  記事をお気に入りに保存します。同じURLが保存済みの場合は既存のレコードを返します（冪等）
// @Tags         favorites
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        favorite body CreateRequest true "保存する記事"
// @Success      201 {object} CreatedResponse "作成"
// @Success      200 {object} ExistingResponse "保存済み"
// @Failure      400 {object} respond.ErrorBody "title / url が不正"
// @Failure      401 {object} respond.ErrorBody "未認証"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /favorites [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	fav, created, err := h.Svc.Add(r.Context(), auth.UserFromContext(r.Context()), favUC.AddInput{
		Title:    req.Title,
		URL:      req.URL,
		ImageURL: req.ImageURL,
		Source:   req.Source,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !created {
		respond.JSON(w, http.StatusOK, ExistingResponse{Message: AlreadyExistsMessage, Favorite: toDTO(fav)})
		return
	}
	respond.JSON(w, http.StatusCreated, CreatedResponse{Favorite: toDTO(fav)})
}

// writeError maps use case errors to status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *entity.ValidationError
	switch {
	case errors.Is(err, favUC.ErrUnauthorized):
		respond.Error(w, http.StatusUnauthorized, favUC.ErrUnauthorized)
	case errors.Is(err, favUC.ErrInvalidInput) && errors.As(err, &verr):
		respond.Error(w, http.StatusBadRequest, errors.New(verr.Message))
	case errors.Is(err, favUC.ErrInvalidInput):
		respond.Error(w, http.StatusBadRequest, favUC.ErrInvalidInput)
	case errors.Is(err, favUC.ErrUserNotFound):
		respond.Error(w, http.StatusNotFound, favUC.ErrUserNotFound)
	default:
		logging.FromContext(r.Context()).Error("favorite request failed",
			"method", r.Method, "error", respond.SanitizeError(err))
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

package favorite

import (
	"net/http"

	"newsfox/internal/handler/http/auth"
	"newsfox/internal/handler/http/respond"
)

type ListHandler struct{ Svc Service }

// ServeHTTP お気に入り一覧
// @Summary      お気に入り一覧
// @Description  認証ユーザーのお気に入りを追加日時の新しい順に返します
// @Tags         favorites
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} ListResponse "一覧"
// @Failure      401 {object} respond.ErrorBody "未認証"
// @Failure      404 {object} respond.ErrorBody "ユーザー未登録（まだ何も保存していない）"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /favorites [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	favs, err := h.Svc.List(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := ListResponse{Favorites: make([]DTO, 0, len(favs))}
	for _, f := range favs {
		out.Favorites = append(out.Favorites, toDTO(f))
	}
	respond.JSON(w, http.StatusOK, out)
}

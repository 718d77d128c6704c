package headline

import (
	"net/http"

	"newsfox/internal/domain/entity"
	"newsfox/internal/handler/http/respond"
)

type CategoriesHandler struct{}

// ServeHTTP カテゴリ一覧
// @Summary      カテゴリ一覧
// @Tags         headlines
// @Produce      json
// @Success      200 {object} CategoriesDTO "カテゴリ"
// @Router       /categories [get]
func (CategoriesHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	cats := entity.Categories()
	out := CategoriesDTO{Categories: make([]string, 0, len(cats)), Default: entity.DefaultCategory.String()}
	for _, c := range cats {
		out.Categories = append(out.Categories, c.String())
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	respond.JSON(w, http.StatusOK, out)
}

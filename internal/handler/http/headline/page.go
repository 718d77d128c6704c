// Package headline serves normalized provider pages over HTTP so the
// provider credential stays on the server.
package headline

import (
	"context"
	"errors"
	"net/http"

	"newsfox/internal/common/pagination"
	"newsfox/internal/domain/entity"
	"newsfox/internal/handler/http/respond"
	hlUC "newsfox/internal/usecase/headline"
)

// Service is the subset of the headline use case the handler needs.
type Service interface {
	Page(ctx context.Context, category string, page int) (*entity.Page, error)
}

type PageHandler struct {
	Svc           Service
	PaginationCfg pagination.Config
}

// ServeHTTP ヘッドライン取得
// @Summary      ヘッドライン取得
// @Description  カテゴリのヘッドラインを1ページ（12件）取得します
// @Tags         headlines
// @Produce      json
// @Param        category path string true "カテゴリ" Enums(general, business, entertainment, health, science, sports, technology)
// @Param        page query int false "ページ番号（1始まり）" default(1)
// @Success      200 {object} PageDTO "ヘッドライン"
// @Failure      400 {object} respond.ErrorBody "ページ番号が不正"
// @Failure      404 {object} respond.ErrorBody "category not found"
// @Failure      502 {object} respond.ErrorBody "ニュースプロバイダのエラー"
// @Router       /headlines/{category} [get]
func (h PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		pagination.RecordError("invalid_page")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	category := r.PathValue("category")
	p, err := h.Svc.Page(r.Context(), category, params.Page)
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, hlUC.ErrCategoryNotFound):
			code = http.StatusNotFound
			pagination.RecordError("unknown_category")
			respond.Error(w, code, hlUC.ErrCategoryNotFound)
		case errors.Is(err, hlUC.ErrInvalidPage):
			code = http.StatusBadRequest
			pagination.RecordError("invalid_page")
			respond.Error(w, code, errors.New("invalid page number"))
		case errors.Is(err, entity.ErrProvider):
			code = http.StatusBadGateway
			pagination.RecordError("provider")
			respond.SafeError(w, code, respond.NewAppError(code, "news provider unavailable", err))
		case errors.Is(err, context.Canceled):
			// クライアント切断
			return
		default:
			pagination.RecordError("internal")
			respond.SafeError(w, code, err)
		}
		pagination.RecordRequest(code, params.Page)
		return
	}

	cat, _ := entity.ParseCategory(category)
	pagination.RecordRequest(http.StatusOK, params.Page)
	respond.JSON(w, http.StatusOK, toPageDTO(cat, p))
}

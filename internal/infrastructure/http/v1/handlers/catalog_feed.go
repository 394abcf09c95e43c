package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing/catalog"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/http/v1/dto"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/logger"
)

// CatalogFeedHandler exposes the in-memory price catalog: browse tree
// for the configurator, health status and a staff-triggered reload.
type CatalogFeedHandler struct {
	*BaseHandler
	index  *catalog.Index
	loader *catalog.Loader
}

// NewCatalogFeedHandler creates a catalog feed handler.
func NewCatalogFeedHandler(base *BaseHandler, index *catalog.Index, loader *catalog.Loader) *CatalogFeedHandler {
	return &CatalogFeedHandler{
		BaseHandler: base,
		index:       index,
		loader:      loader,
	}
}

// Tree handles GET /catalog/tree - the category/model/size/finish
// browse hierarchy with per-leaf prices.
func (h *CatalogFeedHandler) Tree(c *gin.Context) {
	if !h.index.Loaded() {
		h.Error(c, apperror.NewCatalogLoad(h.loader.Err()))
		return
	}

	h.OK(c, dto.CatalogTreeResponse{Tree: h.index.BrowseTree()})
}

// Lookup handles GET /catalog/codes/:code - direct price lookup.
// Unknown codes answer 404 here; only engine lookups count misses.
func (h *CatalogFeedHandler) Lookup(c *gin.Context) {
	if !h.index.Loaded() {
		h.Error(c, apperror.NewCatalogLoad(h.loader.Err()))
		return
	}

	code := c.Param("code")
	if !h.index.Contains(code) {
		h.Error(c, apperror.NewNotFound("catalog code", code))
		return
	}

	h.OK(c, dto.CatalogCodeResponse{
		Code:  code,
		Price: h.index.Lookup(c.Request.Context(), code),
	})
}

// Status handles GET /catalog/status - index health for operations.
func (h *CatalogFeedHandler) Status(c *gin.Context) {
	resp := dto.CatalogStatusResponse{
		Loaded:  h.index.Loaded(),
		Entries: h.index.Len(),
		Misses:  h.index.Misses(),
	}
	if err := h.loader.Err(); err != nil {
		resp.LastError = err.Error()
	}

	h.OK(c, resp)
}

// Reload handles POST /catalog/reload - refetch the published feed.
func (h *CatalogFeedHandler) Reload(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.loader.Reload(ctx); err != nil {
		h.Error(c, apperror.NewCatalogLoad(err))
		return
	}

	logger.Info(ctx, "catalog reloaded", "entries", h.index.Len())
	h.Success(c, "catalog reloaded")
}

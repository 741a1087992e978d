package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppgee-dashboard-api/internal/middleware"
	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.Claims(c)
	if !ok {
		return nil
	}
	return claims
}

// pageRequest reads page and page_size. A missing page_size returns every item.
type pageRequest struct {
	page int
	size int
}

func parsePage(c *gin.Context) (pageRequest, error) {
	req := pageRequest{page: 1}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return req, appErrors.Clone(appErrors.ErrValidation, "page must be a positive integer")
		}
		req.page = page
	}
	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return req, appErrors.Clone(appErrors.ErrValidation, "page_size must be a positive integer")
		}
		if size > maxPageSize {
			size = maxPageSize
		}
		req.size = size
	} else if c.Query("page") != "" {
		req.size = defaultPageSize
	}
	return req, nil
}

func paginate[T any](items []T, req pageRequest) ([]T, *models.Pagination) {
	if req.size == 0 {
		return items, nil
	}
	meta := &models.Pagination{Page: req.page, PageSize: req.size, TotalCount: len(items)}
	start := (req.page - 1) * req.size
	if start >= len(items) {
		return []T{}, meta
	}
	end := start + req.size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], meta
}

func optionalIntQuery(c *gin.Context, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" || raw == "all" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, key+" must be an integer")
	}
	return &v, nil
}

func optionalBoolQuery(c *gin.Context, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" || raw == "all" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, key+" must be true or false")
	}
	return &v, nil
}

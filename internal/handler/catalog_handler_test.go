package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"daurulang/internal/listing"
	"daurulang/internal/model"
	"daurulang/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_List(t *testing.T) {
	items := []model.CatalogItem{
		{ID: "1", Name: "Botol PET", Category: model.Category{ID: "plastik", Name: "Plastik"}, Price: model.PriceRange{Min: 1000, Max: 3000}, Unit: "kg"},
	}
	page := listing.Paginate(items, 1, 12)

	tests := []struct {
		name           string
		path           string
		view           service.View
		filter         model.FilterState
		page           int
		mockReturn     *listing.Page[model.CatalogItem]
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Catalog with defaults",
			path:           "/api/catalog",
			view:           service.ViewCatalog,
			filter:         model.DefaultFilterState(),
			page:           1,
			mockReturn:     &page,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Guide with filter",
			path:           "/api/guide?search=botol&category=plastik&sort=price-asc&page=2",
			view:           service.ViewGuide,
			filter:         model.FilterState{Search: "botol", Category: "plastik", Sort: model.SortPriceAsc},
			page:           2,
			mockReturn:     &page,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Service error",
			path:           "/api/catalog",
			view:           service.ViewCatalog,
			filter:         model.DefaultFilterState(),
			page:           1,
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCatalogService)
			svc.On("List", mock.Anything, tt.view, tt.filter, tt.page).Return(tt.mockReturn, tt.mockError)

			h := NewCatalogHandler(svc, zerolog.Nop())
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			if tt.view == service.ViewGuide {
				h.Guide(w, req)
			} else {
				h.List(w, req)
			}

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var got listing.Page[model.CatalogItem]
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, 1, got.TotalItems)
				assert.Equal(t, "Botol PET", got.Items[0].Name)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestCatalogHandler_EmptyResult(t *testing.T) {
	empty := listing.Paginate([]model.CatalogItem{}, 1, 12)
	svc := new(MockCatalogService)
	svc.On("List", mock.Anything, service.ViewCatalog, mock.Anything, 1).Return(&empty, nil)

	w := httptest.NewRecorder()
	NewCatalogHandler(svc, zerolog.Nop()).List(w, httptest.NewRequest(http.MethodGet, "/api/catalog?search=kaca", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"page":1,"pageSize":12,"totalItems":0,"totalPages":0,"empty":true}`, w.Body.String())
}

func TestCatalogHandler_GetByID(t *testing.T) {
	item := &model.CatalogItem{ID: "1", Name: "Botol PET"}

	svc := new(MockCatalogService)
	svc.On("GetByID", mock.Anything, "1").Return(item, nil)
	svc.On("GetByID", mock.Anything, "99").Return(nil, model.ErrCatalogItemNotFound)
	h := NewCatalogHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/1", nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	h.GetByID(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/catalog/99", nil)
	req.SetPathValue("id", "99")
	w = httptest.NewRecorder()
	h.GetByID(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodeNotFound, decodeError(t, w).Error)
}

func TestCatalogHandler_Categories(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("Categories", mock.Anything).Return([]model.Category{{ID: "kertas", Name: "Kertas"}}, nil)

	w := httptest.NewRecorder()
	NewCatalogHandler(svc, zerolog.Nop()).Categories(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"kertas","name":"Kertas"}]`, w.Body.String())
}

func TestOpportunityHandler(t *testing.T) {
	opps := []model.BusinessOpportunity{{ID: "o1", Title: "Pupuk Kompos"}}
	page := listing.Paginate(opps, 1, 6)

	svc := new(MockOpportunityService)
	svc.On("List", mock.Anything, model.FilterState{Category: "organik", Sort: model.DefaultSortKey}, 1).Return(&page, nil)
	svc.On("GetByID", mock.Anything, "o9").Return(nil, model.ErrOpportunityNotFound)
	h := NewOpportunityHandler(svc, zerolog.Nop())

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/opportunities?category=organik", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/opportunities/o9", nil)
	req.SetPathValue("id", "o9")
	w = httptest.NewRecorder()
	h.GetByID(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc.AssertExpectations(t)
}

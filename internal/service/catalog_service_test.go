package service

import (
	"context"
	"errors"
	"testing"

	"daurulang/internal/config"
	"daurulang/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPageSizes = config.ListingConfig{CatalogPageSize: 2, GuidePageSize: 3, OpportunityPageSize: 2}

func testCatalog() []model.CatalogItem {
	plastik := model.Category{ID: "plastik", Name: "Plastik"}
	kertas := model.Category{ID: "kertas", Name: "Kertas"}
	logam := model.Category{ID: "logam", Name: "Logam"}
	return []model.CatalogItem{
		{ID: "1", Name: "Botol PET", Description: "Botol minuman bening", Category: plastik, Price: model.PriceRange{Min: 1000, Max: 3000}, Unit: "kg"},
		{ID: "2", Name: "Kardus", Description: "Kotak bekas", Category: kertas, Price: model.PriceRange{Min: 800, Max: 1500}, Unit: "kg"},
		{ID: "3", Name: "Kaleng Aluminium", Description: "Kaleng minuman", Category: logam, Price: model.PriceRange{Min: 12000, Max: 15000}, Unit: "kg"},
		{ID: "4", Name: "Gelas Plastik", Description: "Bekas air mineral, seperti botol", Category: plastik, Price: model.PriceRange{Min: 2500, Max: 4000}, Unit: "kg"},
		{ID: "5", Name: "Koran", Description: "Kertas koran", Category: kertas, Price: model.PriceRange{Min: 1500, Max: 2000}, Unit: "kg"},
	}
}

func itemIDs(items []model.CatalogItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestCatalogService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		view          View
		filter        model.FilterState
		page          int
		expectedIDs   []string
		expectedPage  int
		expectedPages int
		expectedTotal int
		expectedEmpty bool
	}{
		{
			name:          "Default filter first page",
			view:          ViewCatalog,
			filter:        model.DefaultFilterState(),
			page:          1,
			expectedIDs:   []string{"1", "4"},
			expectedPage:  1,
			expectedPages: 3,
			expectedTotal: 5,
		},
		{
			name:          "Price ascending within category",
			view:          ViewCatalog,
			filter:        model.FilterState{Category: "kertas", Sort: model.SortPriceAsc},
			page:          1,
			expectedIDs:   []string{"2", "5"},
			expectedPage:  1,
			expectedPages: 1,
			expectedTotal: 2,
		},
		{
			name:          "Page past the end is clamped",
			view:          ViewCatalog,
			filter:        model.FilterState{Search: "botol"},
			page:          9,
			expectedIDs:   []string{"1", "4"},
			expectedPage:  1,
			expectedPages: 1,
			expectedTotal: 2,
		},
		{
			name:          "Guide view uses its own page size",
			view:          ViewGuide,
			filter:        model.FilterState{Sort: model.SortPriceDesc},
			page:          1,
			expectedIDs:   []string{"3", "4", "5"},
			expectedPage:  1,
			expectedPages: 2,
			expectedTotal: 5,
		},
		{
			name:          "No matches is an empty page, not an error",
			view:          ViewCatalog,
			filter:        model.FilterState{Search: "kaca"},
			page:          1,
			expectedIDs:   []string{},
			expectedPage:  1,
			expectedPages: 0,
			expectedTotal: 0,
			expectedEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCatalogRepository)
			repo.On("ListItems", ctx).Return(testCatalog(), nil)

			svc := NewCatalogService(repo, testPageSizes, zerolog.Nop())
			page, err := svc.List(ctx, tt.view, tt.filter, tt.page)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedIDs, itemIDs(page.Items))
			assert.Equal(t, tt.expectedPage, page.Page)
			assert.Equal(t, tt.expectedPages, page.TotalPages)
			assert.Equal(t, tt.expectedTotal, page.TotalItems)
			assert.Equal(t, tt.expectedEmpty, page.Empty)
			repo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_List_RepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	repo.On("ListItems", ctx).Return(nil, errors.New("connection refused"))

	svc := NewCatalogService(repo, testPageSizes, zerolog.Nop())
	page, err := svc.List(ctx, ViewCatalog, model.DefaultFilterState(), 1)

	assert.Nil(t, page)
	assert.ErrorContains(t, err, "failed to list waste types")
}

func TestCatalogService_GetByID(t *testing.T) {
	ctx := context.Background()
	item := testCatalog()[0]

	tests := []struct {
		name        string
		id          string
		setupMock   func(*MockCatalogRepository)
		expected    *model.CatalogItem
		expectedErr error
	}{
		{
			name: "Found",
			id:   "1",
			setupMock: func(m *MockCatalogRepository) {
				m.On("GetItem", ctx, "1").Return(&item, nil)
			},
			expected: &item,
		},
		{
			name: "Not found",
			id:   "99",
			setupMock: func(m *MockCatalogRepository) {
				m.On("GetItem", ctx, "99").Return(nil, nil)
			},
			expectedErr: model.ErrCatalogItemNotFound,
		},
		{
			name:        "Empty ID",
			id:          "",
			setupMock:   func(m *MockCatalogRepository) {},
			expectedErr: model.ErrCatalogItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCatalogRepository)
			tt.setupMock(repo)

			svc := NewCatalogService(repo, testPageSizes, zerolog.Nop())
			got, err := svc.GetByID(ctx, tt.id)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_Categories(t *testing.T) {
	ctx := context.Background()
	categories := []model.Category{{ID: "kertas", Name: "Kertas"}, {ID: "plastik", Name: "Plastik"}}

	repo := new(MockCatalogRepository)
	repo.On("ListCategories", ctx).Return(categories, nil)

	svc := NewCatalogService(repo, testPageSizes, zerolog.Nop())
	got, err := svc.Categories(ctx)

	require.NoError(t, err)
	assert.Equal(t, categories, got)
}

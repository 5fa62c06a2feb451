package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/service"
)

// ---------- Mocks ----------

type mockGadgetRepo struct {
	gadgets     []domain.Gadget
	total       int64
	searchErr   error
	lastQuery   *domain.GadgetQuery
	createCalls int
	createErrs  []error // one per call, nil means success
	created     *domain.Gadget
}

func (m *mockGadgetRepo) Create(_ context.Context, gadget *domain.Gadget) (*domain.Gadget, error) {
	idx := m.createCalls
	m.createCalls++
	if idx < len(m.createErrs) && m.createErrs[idx] != nil {
		return nil, m.createErrs[idx]
	}
	copied := *gadget
	m.created = &copied
	return &copied, nil
}

func (m *mockGadgetRepo) List(_ context.Context) ([]domain.Gadget, error) {
	return m.gadgets, nil
}

func (m *mockGadgetRepo) Search(_ context.Context, q *domain.GadgetQuery) ([]domain.Gadget, int64, error) {
	m.lastQuery = q
	return m.gadgets, m.total, m.searchErr
}

func (m *mockGadgetRepo) GetByID(_ context.Context, id string) (*domain.Gadget, error) {
	for i := range m.gadgets {
		if m.gadgets[i].ID.Hex() == id {
			return &m.gadgets[i], nil
		}
	}
	return nil, nil
}

func (m *mockGadgetRepo) GetBySerialCode(_ context.Context, serialCode string) (*domain.Gadget, error) {
	for i := range m.gadgets {
		if m.gadgets[i].SerialCode == serialCode {
			return &m.gadgets[i], nil
		}
	}
	return nil, nil
}

func (m *mockGadgetRepo) Update(_ context.Context, _ string, _ domain.GadgetPatch) (*domain.Gadget, error) {
	return nil, nil
}

func (m *mockGadgetRepo) Delete(_ context.Context, _ string) (bool, error) {
	return false, nil
}

// ---------- Tests ----------

func TestSearchTotalPages(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		limit     int
		wantPages int
	}{
		{"exact division", 12, 6, 2},
		{"remainder rounds up", 13, 6, 3},
		{"single partial page", 4, 6, 1},
		{"empty catalog", 0, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockGadgetRepo{total: tt.total}
			svc := service.NewCatalogService(repo)

			page, err := svc.Search(context.Background(), &domain.GadgetQuery{Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPages, page.TotalPages)
		})
	}
}

func TestSearchEmptyResultIsSlice(t *testing.T) {
	repo := &mockGadgetRepo{gadgets: nil, total: 0}
	svc := service.NewCatalogService(repo)

	page, err := svc.Search(context.Background(), &domain.GadgetQuery{})
	require.NoError(t, err)
	assert.NotNil(t, page.Gadgets, "gadgets must serialize as [] not null")
	assert.Empty(t, page.Gadgets)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestSearchNormalizesQuery(t *testing.T) {
	repo := &mockGadgetRepo{}
	svc := service.NewCatalogService(repo)

	_, err := svc.Search(context.Background(), &domain.GadgetQuery{Page: -2, Limit: 900, Category: domain.CategoryAll})
	require.NoError(t, err)

	require.NotNil(t, repo.lastQuery)
	assert.Equal(t, 1, repo.lastQuery.Page)
	assert.Equal(t, domain.MaxPageSize, repo.lastQuery.Limit)
	assert.Empty(t, repo.lastQuery.Category)
}

func TestCreateGadgetMintsSerialCode(t *testing.T) {
	repo := &mockGadgetRepo{}
	svc := service.NewCatalogService(repo)

	created, err := svc.CreateGadget(context.Background(), &domain.Gadget{
		Name:        "Action Cam",
		Category:    "Cameras",
		Price:       25,
		RenterEmail: "renter@example.com",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.SerialCode, "GR-"))
	assert.Equal(t, domain.GadgetAvailable, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateGadgetRegeneratesSerialOnConflict(t *testing.T) {
	repo := &mockGadgetRepo{
		createErrs: []error{
			domain.ConflictError("Serial code already assigned"),
			domain.ConflictError("Serial code already assigned"),
		},
	}
	svc := service.NewCatalogService(repo)

	created, err := svc.CreateGadget(context.Background(), &domain.Gadget{
		Name:     "Drone",
		Category: "Drones",
		Price:    99,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.createCalls)
	assert.NotEmpty(t, created.SerialCode)
}

func TestCreateGadgetValidation(t *testing.T) {
	repo := &mockGadgetRepo{}
	svc := service.NewCatalogService(repo)

	_, err := svc.CreateGadget(context.Background(), &domain.Gadget{Name: "Drone", Category: "Drones", Price: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, repo.createCalls)
}

func TestGetGadgetNotFound(t *testing.T) {
	svc := service.NewCatalogService(&mockGadgetRepo{})

	_, err := svc.GetGadget(context.Background(), "64f000000000000000000000")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"overcooked-menusync/sync-svc/internal/domain"
	"overcooked-menusync/sync-svc/internal/mocks"
	"overcooked-menusync/sync-svc/internal/service"
	"overcooked-menusync/sync-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	tests := []struct {
		name         string
		menuItems    []domain.MenuItem
		posItems     []domain.POSItem
		wantValid    bool
		wantOrphans  []string
		wantUnlinked []string
		wantIssues   int
		wantStats    domain.SyncStats
	}{
		{
			name:      "empty catalogs are consistent",
			wantValid: true,
		},
		{
			name:      "matching catalogs",
			menuItems: []domain.MenuItem{menuItem("m1", "Soup", 5), menuItem("m2", "Salad", 6)},
			posItems:  []domain.POSItem{posItem("m2", "Salad"), posItem("m1", "Soup")},
			wantValid: true,
			wantStats: domain.SyncStats{MenuItems: 2, POSItems: 2, LinkedItems: 2},
		},
		{
			name:        "orphan only",
			menuItems:   []domain.MenuItem{menuItem("m1", "Soup", 5)},
			posItems:    []domain.POSItem{posItem("m1", "Soup"), posItem("x9", "Ghost")},
			wantOrphans: []string{"x9"},
			wantIssues:  2,
			wantStats:   domain.SyncStats{MenuItems: 1, POSItems: 2, LinkedItems: 1, OrphanedItems: 1},
		},
		{
			name:         "same counts but different ids",
			menuItems:    []domain.MenuItem{menuItem("m1", "Soup", 5)},
			posItems:     []domain.POSItem{posItem("x1", "Ghost")},
			wantOrphans:  []string{"x1"},
			wantUnlinked: []string{"m1"},
			wantIssues:   2,
			wantStats:    domain.SyncStats{MenuItems: 1, POSItems: 1, OrphanedItems: 1},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			report := service.BuildReport(testCase.menuItems, testCase.posItems)

			assert.Equal(t, testCase.wantValid, report.Valid)
			assert.Equal(t, testCase.wantOrphans, report.Orphans)
			assert.Equal(t, testCase.wantUnlinked, report.Unlinked)
			assert.Len(t, report.Issues, testCase.wantIssues)
			assert.Equal(t, testCase.wantStats, report.Stats)
		})
	}
}

func TestBuildReport_IssueText(t *testing.T) {
	report := service.BuildReport(
		[]domain.MenuItem{menuItem("m1", "Soup", 5), menuItem("m2", "Stew", 7)},
		[]domain.POSItem{posItem("x9", "Ghost")},
	)

	require.Len(t, report.Issues, 4)
	assert.Equal(t, `orphaned POS item x9 ("Ghost") has no menu item`, report.Issues[0])
	assert.Equal(t, `menu item m1 ("Soup") has no POS item`, report.Issues[1])
	assert.Equal(t, `menu item m2 ("Stew") has no POS item`, report.Issues[2])
	assert.Equal(t, "count mismatch: 2 menu items, 1 POS items", report.Issues[3])
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MenuRepository, *mocks.POSRepository)
		wantErr   bool
		wantValid bool
	}{
		{
			name: "consistent",
			setupMock: func(menus *mocks.MenuRepository, pos *mocks.POSRepository) {
				menus.On("ListMenuItems", mock.Anything, testScope).Return([]domain.MenuItem{menuItem("m1", "Soup", 5)}, nil).Once()
				pos.On("ListPOSItems", mock.Anything, testScope).Return([]domain.POSItem{posItem("m1", "Soup")}, nil).Once()
			},
			wantValid: true,
		},
		{
			name: "menu read fails",
			setupMock: func(menus *mocks.MenuRepository, pos *mocks.POSRepository) {
				pos.On("ListPOSItems", mock.Anything, testScope).Return(nil, nil).Once()
				menus.On("ListMenuItems", mock.Anything, testScope).Return(nil, errors.New("permission denied")).Once()
			},
			wantErr: true,
		},
		{
			name: "pos read fails",
			setupMock: func(menus *mocks.MenuRepository, pos *mocks.POSRepository) {
				pos.On("ListPOSItems", mock.Anything, testScope).Return(nil, errors.New("permission denied")).Once()
			},
			wantErr: true,
		},
		{
			name: "transient error is retried",
			setupMock: func(menus *mocks.MenuRepository, pos *mocks.POSRepository) {
				menus.On("ListMenuItems", mock.Anything, testScope).
					Return(nil, &domain.TransientError{Op: "list", Err: errors.New("timeout")}).Once()
				menus.On("ListMenuItems", mock.Anything, testScope).Return(nil, nil).Once()
				pos.On("ListPOSItems", mock.Anything, testScope).Return(nil, nil).Once()
			},
			wantValid: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			menus := mocks.NewMenuRepository(t)
			pos := mocks.NewPOSRepository(t)
			testCase.setupMock(menus, pos)

			report, err := service.NewValidator(menus, pos).Validate(context.Background(), testScope)
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantValid, report.Valid)
		})
	}
}

// writeBetweenReads runs a concurrent menu and POS write right after the
// first catalog read of a Validate call.
type writeBetweenReads struct {
	*storage.MemoryStore
	once  sync.Once
	write func()
}

func (w *writeBetweenReads) ListMenuItems(ctx context.Context, scope domain.Scope) ([]domain.MenuItem, error) {
	items, err := w.MemoryStore.ListMenuItems(ctx, scope)
	w.once.Do(w.write)
	return items, err
}

func (w *writeBetweenReads) ListPOSItems(ctx context.Context, scope domain.Scope) ([]domain.POSItem, error) {
	items, err := w.MemoryStore.ListPOSItems(ctx, scope)
	w.once.Do(w.write)
	return items, err
}

func TestValidator_ItemCreatedDuringValidateIsNotOrphaned(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	fresh := menuItem("m2", "Stew", 12)
	racing := &writeBetweenReads{MemoryStore: store, write: func() {
		store.PutMenuItem(fresh)
		require.NoError(t, store.UpsertPOSItem(ctx, service.DeriveProjection(fresh, time.Now())))
	}}
	reconciler := service.NewReconciler(racing, racing, service.NewValidator(racing, racing), nil)

	removed, err := reconciler.CleanupOrphans(ctx, testScope)

	require.NoError(t, err)
	assert.Zero(t, removed)
	_, ok := store.GetPOSItem(testScope, "m2")
	assert.True(t, ok)
}

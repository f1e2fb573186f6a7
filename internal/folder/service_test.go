package folder_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lernapp-2025/studycards-v3/internal/folder"
	mock_folder "github.com/lernapp-2025/studycards-v3/internal/mocks/folder"
)

func sp(s string) *string { return &s }

func newService(t *testing.T) (*folder.Service, *mock_folder.MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_folder.NewMockRepository(ctrl)
	v, err := folder.NewValidator()
	require.NoError(t, err)
	return folder.NewService(repo, v, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

// stubFolders answers FindByID from the given records.
func stubFolders(repo *mock_folder.MockRepository, records ...folder.Folder) {
	byID := make(map[string]folder.Folder, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), "user-1").DoAndReturn(
		func(_ context.Context, id, _ string) (*folder.Folder, error) {
			f, ok := byID[id]
			if !ok {
				return nil, folder.ErrNotFound
			}
			return &f, nil
		}).AnyTimes()
}

// chain returns n folders f0..f(n-1) where f(i) is the parent of f(i+1).
func chain(n int) []folder.Folder {
	out := make([]folder.Folder, n)
	for i := range out {
		out[i] = folder.Folder{ID: fmt.Sprintf("f%d", i), Name: fmt.Sprintf("Ebene %d", i), UserID: "user-1"}
		if i > 0 {
			out[i].ParentID = sp(out[i-1].ID)
		}
	}
	return out
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		params    folder.CreateParams
		setupMock func(repo *mock_folder.MockRepository)
		wantErr   error
		check     func(t *testing.T, got *folder.Folder)
	}{
		{
			name:   "root folder goes after existing roots",
			params: folder.CreateParams{Name: "  Englisch ", Color: "#6EE7B7", UserID: "user-1"},
			setupMock: func(repo *mock_folder.MockRepository) {
				repo.EXPECT().CountSiblings(gomock.Any(), nil, "user-1").Return(3, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, f folder.Folder) (*folder.Folder, error) {
						return &f, nil
					})
			},
			check: func(t *testing.T, got *folder.Folder) {
				assert.Equal(t, "Englisch", got.Name)
				assert.Equal(t, "#6EE7B7", got.Color)
				assert.Equal(t, 3, got.OrderIndex)
				assert.NotEmpty(t, got.ID)
				assert.Nil(t, got.ParentID)
			},
		},
		{
			name:   "missing color is picked from the palette",
			params: folder.CreateParams{Name: "Mathe", UserID: "user-1"},
			setupMock: func(repo *mock_folder.MockRepository) {
				repo.EXPECT().CountSiblings(gomock.Any(), nil, "user-1").Return(0, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, f folder.Folder) (*folder.Folder, error) {
						return &f, nil
					})
			},
			check: func(t *testing.T, got *folder.Folder) {
				assert.True(t, folder.IsPaletteColor(got.Color))
			},
		},
		{
			name:      "invalid name never reaches the store",
			params:    folder.CreateParams{Name: "a/b", UserID: "user-1"},
			setupMock: func(repo *mock_folder.MockRepository) {},
			wantErr:   &folder.ValidationError{},
		},
		{
			name:      "invalid color",
			params:    folder.CreateParams{Name: "ok", Color: "red", UserID: "user-1"},
			setupMock: func(repo *mock_folder.MockRepository) {},
			wantErr:   &folder.ValidationError{},
		},
		{
			name:   "unknown parent",
			params: folder.CreateParams{Name: "ok", ParentID: sp("nope"), UserID: "user-1"},
			setupMock: func(repo *mock_folder.MockRepository) {
				stubFolders(repo)
			},
			wantErr: folder.ErrNotFound,
		},
		{
			name:   "child of the deepest level is rejected",
			params: folder.CreateParams{Name: "zu tief", ParentID: sp("f9"), UserID: "user-1"},
			setupMock: func(repo *mock_folder.MockRepository) {
				stubFolders(repo, chain(10)...)
			},
			wantErr: folder.ErrDepthExceeded,
		},
		{
			name:   "deepest level is allowed",
			params: folder.CreateParams{Name: "Ebene 9", ParentID: sp("f8"), UserID: "user-1"},
			setupMock: func(repo *mock_folder.MockRepository) {
				stubFolders(repo, chain(9)...)
				repo.EXPECT().CountSiblings(gomock.Any(), sp("f8"), "user-1").Return(0, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, f folder.Folder) (*folder.Folder, error) {
						return &f, nil
					})
			},
			check: func(t *testing.T, got *folder.Folder) {
				assert.Equal(t, "f8", *got.ParentID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				if ve, ok := tt.wantErr.(*folder.ValidationError); ok {
					assert.ErrorAs(t, err, &ve)
				} else {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_Update(t *testing.T) {
	t.Run("rename trims and stores", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Update(gomock.Any(), "f1", "user-1", folder.Changes{Name: sp("Neu")}).
			Return(&folder.Folder{ID: "f1", Name: "Neu"}, nil)

		got, err := svc.Rename(context.Background(), "f1", "user-1", " Neu ")
		require.NoError(t, err)
		assert.Equal(t, "Neu", got.Name)
	})

	t.Run("invalid rename is rejected", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Rename(context.Background(), "f1", "user-1", "")
		var ve *folder.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("empty color is rejected", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Update(context.Background(), "f1", "user-1", folder.Changes{Color: sp("")})
		var ve *folder.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "color", ve.Field)
		assert.Equal(t, folder.ReasonInvalidColor, ve.Reason)
	})

	t.Run("empty changes read the folder", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().FindByID(gomock.Any(), "f1", "user-1").Return(&folder.Folder{ID: "f1"}, nil)

		got, err := svc.Update(context.Background(), "f1", "user-1", folder.Changes{})
		require.NoError(t, err)
		assert.Equal(t, "f1", got.ID)
	})

	t.Run("not found is propagated", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Update(gomock.Any(), "f1", "user-1", gomock.Any()).Return(nil, folder.ErrNotFound)

		_, err := svc.Update(context.Background(), "f1", "user-1", folder.Changes{Color: sp("#FF8787")})
		assert.ErrorIs(t, err, folder.ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		children  int
		sets      int
		wantErr   error
		wantMsg   string
		setupMock func(repo *mock_folder.MockRepository)
	}{
		{
			name: "empty folder is deleted",
			setupMock: func(repo *mock_folder.MockRepository) {
				repo.EXPECT().Delete(gomock.Any(), "f1", "user-1").Return(nil)
			},
		},
		{
			name:      "card set blocks delete",
			sets:      1,
			wantErr:   folder.ErrNotEmpty,
			wantMsg:   "Cannot delete folder with card sets. Move or delete card sets first.",
			setupMock: func(repo *mock_folder.MockRepository) {},
		},
		{
			name:      "subfolder blocks delete",
			children:  2,
			sets:      1,
			wantErr:   folder.ErrNotEmpty,
			wantMsg:   "Cannot delete folder with subfolders. Move or delete subfolders first.",
			setupMock: func(repo *mock_folder.MockRepository) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			repo.EXPECT().CountChildren(gomock.Any(), "f1").Return(tt.children, nil)
			repo.EXPECT().CountCardSets(gomock.Any(), "f1").Return(tt.sets, nil)
			tt.setupMock(repo)

			err := svc.Delete(context.Background(), "f1", "user-1")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.EqualError(t, err, tt.wantMsg)
			var ne *folder.NotEmptyError
			require.ErrorAs(t, err, &ne)
			assert.Equal(t, tt.children, ne.Subfolders)
			assert.Equal(t, tt.sets, ne.CardSets)
		})
	}
}

func TestService_Move(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		parent    *string
		records   []folder.Folder
		wantWrite bool
		wantErr   error
	}{
		{
			name:    "into own child is circular",
			id:      "A",
			parent:  sp("B"),
			records: []folder.Folder{{ID: "A"}, {ID: "B", ParentID: sp("A")}},
			wantErr: folder.ErrCircularReference,
		},
		{
			name:    "into itself is circular",
			id:      "A",
			parent:  sp("A"),
			records: []folder.Folder{{ID: "A"}},
			wantErr: folder.ErrCircularReference,
		},
		{
			name:    "into deep descendant is circular",
			id:      "f2",
			parent:  sp("f6"),
			records: chain(7),
			wantErr: folder.ErrCircularReference,
		},
		{
			name:    "into the depth 9 folder exceeds the cap",
			id:      "X",
			parent:  sp("f9"),
			records: append(chain(10), folder.Folder{ID: "X"}),
			wantErr: folder.ErrDepthExceeded,
		},
		{
			name:      "into the depth 8 folder is allowed",
			id:        "X",
			parent:    sp("f8"),
			records:   append(chain(9), folder.Folder{ID: "X"}),
			wantWrite: true,
		},
		{
			name:    "corrupted endless chain is cut off",
			id:      "X",
			parent:  sp("L1"),
			records: []folder.Folder{{ID: "L1", ParentID: sp("L2")}, {ID: "L2", ParentID: sp("L1")}, {ID: "X"}},
			wantErr: folder.ErrDepthExceeded,
		},
		{
			name:    "unknown parent",
			id:      "X",
			parent:  sp("nope"),
			records: []folder.Folder{{ID: "X"}},
			wantErr: folder.ErrNotFound,
		},
		{
			name:      "orphaned parent chain counts from the break",
			id:        "X",
			parent:    sp("o"),
			records:   []folder.Folder{{ID: "o", ParentID: sp("deleted")}, {ID: "X"}},
			wantWrite: true,
		},
		{
			name:      "to root skips checks",
			id:        "B",
			parent:    nil,
			wantWrite: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			stubFolders(repo, tt.records...)
			if tt.wantWrite {
				repo.EXPECT().UpdateParent(gomock.Any(), tt.id, "user-1", tt.parent).
					Return(&folder.Folder{ID: tt.id, ParentID: tt.parent}, nil)
			}

			got, err := svc.Move(context.Background(), tt.id, tt.parent, "user-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.parent, got.ParentID)
		})
	}
}

func TestService_Reorder(t *testing.T) {
	t.Run("assigns positions", func(t *testing.T) {
		svc, repo := newService(t)
		gomock.InOrder(
			repo.EXPECT().UpdateOrder(gomock.Any(), "c", "user-1", 0).Return(nil),
			repo.EXPECT().UpdateOrder(gomock.Any(), "a", "user-1", 1).Return(nil),
			repo.EXPECT().UpdateOrder(gomock.Any(), "b", "user-1", 2).Return(nil),
		)

		assert.NoError(t, svc.Reorder(context.Background(), []string{"c", "a", "b"}, "user-1"))
	})

	t.Run("partial failure keeps applied updates", func(t *testing.T) {
		svc, repo := newService(t)
		storeErr := fmt.Errorf("connection reset")
		gomock.InOrder(
			repo.EXPECT().UpdateOrder(gomock.Any(), "c", "user-1", 0).Return(nil),
			repo.EXPECT().UpdateOrder(gomock.Any(), "a", "user-1", 1).Return(storeErr),
		)

		err := svc.Reorder(context.Background(), []string{"c", "a", "b"}, "user-1")
		var re *folder.ReorderError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, 1, re.Applied)
		assert.Equal(t, "a", re.FolderID)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("atomic reorder needs store support", func(t *testing.T) {
		svc, _ := newService(t)
		err := svc.ReorderAtomic(context.Background(), []string{"a"}, "user-1")
		assert.ErrorIs(t, err, folder.ErrAtomicReorderUnsupported)
	})
}

func TestService_ReorderAtomic(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := struct {
		*mock_folder.MockRepository
		*mock_folder.MockAtomicReorderer
	}{mock_folder.NewMockRepository(ctrl), mock_folder.NewMockAtomicReorderer(ctrl)}
	v, err := folder.NewValidator()
	require.NoError(t, err)
	svc := folder.NewService(repo, v, slog.New(slog.NewTextHandler(io.Discard, nil)))

	repo.MockAtomicReorderer.EXPECT().ReorderAtomic(gomock.Any(), []string{"b", "a"}, "user-1").Return(nil)
	assert.NoError(t, svc.ReorderAtomic(context.Background(), []string{"b", "a"}, "user-1"))
}

func TestService_Path(t *testing.T) {
	t.Run("root first", func(t *testing.T) {
		svc, repo := newService(t)
		stubFolders(repo, chain(4)...)

		got, err := svc.Path(context.Background(), "f3", "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Ebene 0 / Ebene 1 / Ebene 2 / Ebene 3", folder.FormatPath(got))
	})

	t.Run("broken chain truncates silently", func(t *testing.T) {
		svc, repo := newService(t)
		stubFolders(repo, folder.Folder{ID: "c", Name: "Kind", ParentID: sp("deleted")})

		got, err := svc.Path(context.Background(), "c", "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Kind", folder.FormatPath(got))
	})

	t.Run("unknown folder is an empty path", func(t *testing.T) {
		svc, repo := newService(t)
		stubFolders(repo)

		got, err := svc.Path(context.Background(), "nope", "user-1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().FindByID(gomock.Any(), "c", "user-1").Return(nil, fmt.Errorf("timeout"))

		_, err := svc.Path(context.Background(), "c", "user-1")
		assert.EqualError(t, err, "timeout")
	})
}

func TestService_Depth(t *testing.T) {
	svc, repo := newService(t)
	stubFolders(repo, chain(5)...)

	depth, err := svc.Depth(context.Background(), "f0", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, depth)

	depth, err = svc.Depth(context.Background(), "f4", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 4, depth)

	_, err = svc.Depth(context.Background(), "nope", "user-1")
	assert.ErrorIs(t, err, folder.ErrNotFound)
}

func TestService_TreeAndStats(t *testing.T) {
	svc, repo := newService(t)
	records := []folder.Folder{
		{ID: "b", ParentID: sp("a"), OrderIndex: 0},
		{ID: "a", OrderIndex: 0},
		{ID: "c", ParentID: sp("b"), OrderIndex: 0},
	}
	sets := []folder.CardSetSummary{
		{ID: "s1", FolderID: sp("a")},
		{ID: "s2", FolderID: sp("c")},
	}
	repo.EXPECT().FindAll(gomock.Any(), "user-1").Return(records, nil).Times(2)
	repo.EXPECT().FindCardSets(gomock.Any(), "user-1").Return(sets, nil).Times(2)

	roots, err := svc.Tree(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "a", roots[0].ID)
	assert.Equal(t, "b", roots[0].Children[0].ID)

	stats, err := svc.Stats(context.Background(), "a", "user-1")
	require.NoError(t, err)
	assert.Equal(t, folder.Stats{CardSetCount: 1, SubfolderCount: 1, TotalCardSets: 2}, stats)
}

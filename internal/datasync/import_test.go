package datasync

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lernapp-2025/studycards-v3/internal/folder"
)

type fakeCreator struct {
	created []folder.CreateParams
	failOn  string
}

func (f *fakeCreator) Create(_ context.Context, p folder.CreateParams) (*folder.Folder, error) {
	if p.Name == f.failOn {
		return nil, folder.ErrDepthExceeded
	}
	f.created = append(f.created, p)
	return &folder.Folder{ID: "id-" + p.Name, Name: p.Name, ParentID: p.ParentID}, nil
}

const outlineYAML = `folders:
  - name: Biology
    color: "#7EC4FF"
    children:
      - name: Cells
      - name: Genetics
  - name: Chemistry
`

func newTestImporter(t *testing.T, creator FolderCreator) (*Importer, *bytes.Buffer) {
	t.Helper()
	v, err := folder.NewValidator()
	require.NoError(t, err)
	var out bytes.Buffer
	return NewImporter(creator, v, &out), &out
}

func TestImporter_Import(t *testing.T) {
	creator := &fakeCreator{}
	imp, out := newTestImporter(t, creator)

	got, err := imp.Import(context.Background(), strings.NewReader(outlineYAML), "user-1", ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{
		FoldersNew: 4,
		Paths:      []string{"Biology", "Biology / Cells", "Biology / Genetics", "Chemistry"},
	}, got)

	require.Len(t, creator.created, 4)
	assert.Nil(t, creator.created[0].ParentID)
	assert.Equal(t, "#7EC4FF", creator.created[0].Color)
	require.NotNil(t, creator.created[1].ParentID)
	assert.Equal(t, "id-Biology", *creator.created[1].ParentID)
	assert.Equal(t, "id-Biology", *creator.created[2].ParentID)
	assert.Nil(t, creator.created[3].ParentID)
	for _, p := range creator.created {
		assert.Equal(t, "user-1", p.UserID)
	}
	assert.Contains(t, out.String(), "created Biology / Cells\n")
}

func TestImporter_Import_UnderParent(t *testing.T) {
	creator := &fakeCreator{}
	imp, _ := newTestImporter(t, creator)

	parent := "existing"
	_, err := imp.Import(context.Background(), strings.NewReader("folders:\n  - name: Notes\n"), "user-1", ImportOptions{ParentID: &parent})
	require.NoError(t, err)
	require.Len(t, creator.created, 1)
	assert.Equal(t, &parent, creator.created[0].ParentID)
}

func TestImporter_Import_StopsAtFirstFailure(t *testing.T) {
	creator := &fakeCreator{failOn: "Genetics"}
	imp, _ := newTestImporter(t, creator)

	got, err := imp.Import(context.Background(), strings.NewReader(outlineYAML), "user-1", ImportOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, folder.ErrDepthExceeded))
	assert.Contains(t, err.Error(), "Biology / Genetics")
	assert.Equal(t, 2, got.FoldersNew)
	assert.Len(t, creator.created, 2)
}

func TestImporter_Import_DryRun(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		wantErr    bool
		wantReason string
		wantNew    int
	}{
		{name: "valid outline", yaml: outlineYAML, wantNew: 4},
		{name: "invalid name", yaml: "folders:\n  - name: \"a/b\"\n", wantErr: true, wantReason: folder.ReasonInvalidCharacters},
		{name: "invalid color", yaml: "folders:\n  - name: ok\n    color: \"#000000\"\n", wantErr: true, wantReason: folder.ReasonInvalidColor},
		{name: "empty document", yaml: "", wantNew: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &fakeCreator{}
			imp, out := newTestImporter(t, creator)

			got, err := imp.Import(context.Background(), strings.NewReader(tt.yaml), "user-1", ImportOptions{DryRun: true})
			assert.Empty(t, creator.created)
			if tt.wantErr {
				var validationErr *folder.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.wantReason, validationErr.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNew, got.FoldersNew)
			if tt.wantNew > 0 {
				assert.Contains(t, out.String(), "would create Chemistry\n")
			}
		})
	}
}

func TestImporter_Import_DryRunDepth(t *testing.T) {
	var b strings.Builder
	b.WriteString("folders:\n")
	for i := 0; i <= folder.MaxDepth; i++ {
		indent := strings.Repeat("    ", i)
		b.WriteString(indent + "  - name: level\n")
		if i < folder.MaxDepth {
			b.WriteString(indent + "    children:\n")
		}
	}

	imp, _ := newTestImporter(t, &fakeCreator{})
	_, err := imp.Import(context.Background(), strings.NewReader(b.String()), "user-1", ImportOptions{DryRun: true})
	assert.ErrorIs(t, err, folder.ErrDepthExceeded)
}

func TestReadOutline_UnknownField(t *testing.T) {
	_, err := ReadOutline(strings.NewReader("folders:\n  - name: a\n    icon: star\n"))
	assert.Error(t, err)
}

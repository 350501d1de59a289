package lineagecsv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/lineage"
	"github.com/cellanneal/cellanneal/simconfig"
)

func TestWriteEmitsHeaderAndSortedRows(t *testing.T) {
	l := lineage.New([]*cell.Bacillus{
		cell.New("b", 2, 2, 10, 20, 0),
		cell.New("a", 1, 1, 10, 20, 0),
	}, simconfig.Config{})

	path := filepath.Join(t.TempDir(), "lineage.csv")
	require.NoError(t, Write(path, l, []string{"frame0.png"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "image_name,cell_name,x,y,width,length,rotation")
	aIdx := indexOf(text, "frame0.png,a,")
	bIdx := indexOf(text, "frame0.png,b,")
	require.GreaterOrEqual(t, aIdx, 0)
	require.GreaterOrEqual(t, bIdx, 0)
	assert.Less(t, aIdx, bIdx, "rows within a frame are sorted by cell name")
}

func TestWriteRejectsMismatchedImageNameCount(t *testing.T) {
	l := lineage.New([]*cell.Bacillus{cell.New("a", 0, 0, 10, 20, 0)}, simconfig.Config{})
	path := filepath.Join(t.TempDir(), "lineage.csv")
	assert.Error(t, Write(path, l, nil))
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

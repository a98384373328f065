package design

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/card-overlay/pkg/types"
)

func TestResolveDefaults(t *testing.T) {
	d, err := New().Resolve(types.FrontDesign{})
	require.NoError(t, err)

	assert.Equal(t, types.Point{X: DefaultPhotoX, Y: DefaultPhotoY}, d.PhotoPosition)
	assert.Equal(t, types.Size{Width: DefaultPhotoWidth, Height: DefaultPhotoHeight}, d.PhotoSize)
	assert.Equal(t, DefaultPhotoShape, d.PhotoShape)
	assert.Nil(t, d.ShowPhoto)
}

func TestResolveOverrides(t *testing.T) {
	front := types.FrontDesign{
		PhotoX:      types.Float(10),
		PhotoY:      types.Float(20),
		PhotoWidth:  types.Float(50),
		PhotoHeight: types.Float(80),
		PhotoShape:  " Circle ",
		ShowPhoto:   types.Bool(false),
	}

	d, err := New().Resolve(front)
	require.NoError(t, err)

	assert.Equal(t, 10.0, d.PhotoPosition.X)
	assert.Equal(t, 20.0, d.PhotoPosition.Y)
	assert.Equal(t, 50.0, d.PhotoSize.Width)
	assert.Equal(t, 80.0, d.PhotoSize.Height)
	assert.Equal(t, types.ShapeCircle, d.PhotoShape)
	require.NotNil(t, d.ShowPhoto)
	assert.False(t, *d.ShowPhoto)
}

func TestResolveUnknownShape(t *testing.T) {
	d, err := New().Resolve(types.FrontDesign{PhotoShape: "hexagon"})
	require.NoError(t, err)
	assert.Equal(t, types.ShapeRounded, d.PhotoShape)
}

func TestResolveNonFinite(t *testing.T) {
	_, err := New().Resolve(types.FrontDesign{PhotoWidth: types.Float(math.NaN())})
	assert.ErrorIs(t, err, ErrInvalidDesign)

	_, err = New().Resolve(types.FrontDesign{PhotoY: types.Float(math.Inf(1))})
	assert.ErrorIs(t, err, ErrInvalidDesign)
}

func TestNewWithDefaults(t *testing.T) {
	r := NewWithDefaults(types.Design{
		PhotoPosition: types.Point{X: 1, Y: 2},
		PhotoSize:     types.Size{Width: 3, Height: 4},
	})

	d, err := r.Resolve(types.FrontDesign{})
	require.NoError(t, err)
	assert.Equal(t, types.Point{X: 1, Y: 2}, d.PhotoPosition)
	assert.Equal(t, DefaultPhotoShape, d.PhotoShape, "invalid default shape falls back")
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classic.json")
	data := `{"name":"Classic","front":{"photoX":10,"photoY":20,"photoWidth":50,"photoHeight":80,"photoShape":"square","showPhoto":true}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	tpl, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "Classic", tpl.Name)
	require.NotNil(t, tpl.Front.PhotoX)
	assert.Equal(t, 10.0, *tpl.Front.PhotoX)
	assert.Equal(t, "square", tpl.Front.PhotoShape)

	_, err = LoadTemplate(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = LoadTemplate(bad)
	assert.Error(t, err)
}

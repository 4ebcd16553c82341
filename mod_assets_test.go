package honeycomb

import (
	"image/color"
	"testing"

	"github.com/gekko3d/honeycomb/hexrt/rt/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetServer_Mesh(t *testing.T) {
	server := NewAssetServer()
	prism := core.NewHexPrism(0.5, 0.1)

	mesh := server.LoadMesh(prism)
	_, err := uuid.Parse(string(mesh.Id()))
	require.NoError(t, err, "asset ids are uuids")

	asset, err := server.GetMesh(mesh)
	require.NoError(t, err)
	assert.Equal(t, prism, asset.Prism)

	other := server.LoadMesh(prism)
	assert.NotEqual(t, mesh.Id(), other.Id())
}

func TestAssetServer_Material(t *testing.T) {
	server := NewAssetServer()
	mat := server.CreateMaterial(color.RGBA{R: 255, G: 0, B: 51, A: 255})

	asset, err := server.GetMaterial(mat)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{1, 0, 0.2, 1}, asset.Vec4()[:], 1e-6)
}

func TestAssetServer_Unknown(t *testing.T) {
	server := NewAssetServer()

	_, err := server.GetMesh(Mesh{assetId: "missing"})
	assert.ErrorIs(t, err, ErrUnknownAsset)
	_, err = server.GetMaterial(Material{})
	assert.ErrorIs(t, err, ErrUnknownAsset)
}

func TestAssetServerModule_Idempotent(t *testing.T) {
	app := NewApp()
	app.UseModules(AssetServerModule{})
	first, ok := Resource[AssetServer](app)
	require.True(t, ok)

	assert.NotPanics(t, func() { app.UseModules(AssetServerModule{}) })
	second, _ := Resource[AssetServer](app)
	assert.Same(t, first, second)
}

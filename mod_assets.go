package honeycomb

import (
	"fmt"
	"image/color"

	"github.com/gekko3d/honeycomb/hexrt/rt/core"
	"github.com/google/uuid"
)

type AssetId string

// AssetServer holds the shared mesh and material assets renderers draw with.
type AssetServer struct {
	meshes    map[AssetId]MeshAsset
	materials map[AssetId]MaterialAsset
}

type AssetServerModule struct{}

type Mesh struct {
	assetId AssetId
}

func (m Mesh) Id() AssetId { return m.assetId }

type Material struct {
	assetId AssetId
}

func (m Material) Id() AssetId { return m.assetId }

type MeshAsset struct {
	version uint
	Prism   core.PrismMesh
}

type MaterialAsset struct {
	version uint
	Color   color.RGBA
}

// Vec4 returns the material colour as normalized RGBA.
func (m MaterialAsset) Vec4() [4]float32 {
	return [4]float32{
		float32(m.Color.R) / 255,
		float32(m.Color.G) / 255,
		float32(m.Color.B) / 255,
		float32(m.Color.A) / 255,
	}
}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		meshes:    make(map[AssetId]MeshAsset),
		materials: make(map[AssetId]MaterialAsset),
	}
}

func (server *AssetServer) LoadMesh(prism core.PrismMesh) Mesh {
	id := makeAssetId()

	server.meshes[id] = MeshAsset{
		version: 0,
		Prism:   prism,
	}

	return Mesh{
		assetId: id,
	}
}

func (server *AssetServer) CreateMaterial(c color.RGBA) Material {
	id := makeAssetId()

	server.materials[id] = MaterialAsset{
		version: 0,
		Color:   c,
	}

	return Material{
		assetId: id,
	}
}

func (server *AssetServer) GetMesh(mesh Mesh) (MeshAsset, error) {
	asset, ok := server.meshes[mesh.assetId]
	if !ok {
		return MeshAsset{}, fmt.Errorf("mesh %q: %w", mesh.assetId, ErrUnknownAsset)
	}
	return asset, nil
}

func (server *AssetServer) GetMaterial(material Material) (MaterialAsset, error) {
	asset, ok := server.materials[material.assetId]
	if !ok {
		return MaterialAsset{}, fmt.Errorf("material %q: %w", material.assetId, ErrUnknownAsset)
	}
	return asset, nil
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	ensureAssetServer(app)
}

// ensureAssetServer returns the installed AssetServer, creating one if missing.
func ensureAssetServer(app *App) *AssetServer {
	if server, ok := Resource[AssetServer](app); ok {
		return server
	}
	server := NewAssetServer()
	app.addResources(server)
	return server
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

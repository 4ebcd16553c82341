package shaders

import (
	_ "embed"
)

//go:embed prism.wgsl
var PrismWGSL string

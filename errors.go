package honeycomb

import (
	"errors"

	"github.com/gekko3d/honeycomb/hexrt/rt/core"
)

var (
	ErrInvalidArgument = core.ErrInvalidArgument
	ErrIndexOutOfRange = core.ErrIndexOutOfRange
	ErrUnknownAsset    = errors.New("unknown asset")
)

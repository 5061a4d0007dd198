package core

import (
	"errors"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported color format")
	ErrUnboundUniform    = errors.New("shader uniform is not bound")
	ErrSortOrder         = errors.New("producer sort is not lower than consumer sort")
	ErrUnknownTexture    = errors.New("texture input does not exist")
	ErrDuplicatePass     = errors.New("pass already exists")
	ErrUnknownPass       = errors.New("pass does not exist")
	ErrUnknownUniform    = errors.New("uniform was not bound at assembly")
	ErrBindingKind       = errors.New("binding kind does not match")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrTargetAllocation  = errors.New("render target allocation failed")
	ErrGraphAssembled    = errors.New("render graph already assembled")
	ErrGraphNotAssembled = errors.New("render graph not assembled")
	ErrUnknown           = errors.New("unknown")
)

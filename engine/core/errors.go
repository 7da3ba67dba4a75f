package core

import (
	"errors"
)

var (
	ErrDeviceLost         = errors.New("device lost")
	ErrInvalidDeviceStage = errors.New("invalid device stage for this operation")
	ErrResourceLeak       = errors.New("device resources still registered at destroy")
	ErrDrawReentrant      = errors.New("drawBegin called while a frame is already open")
	ErrDrawNotBegun       = errors.New("draw issued outside drawBegin/drawEnd")
	ErrInvalidHandle      = errors.New("invalid handle")
	ErrAlreadyLocked      = errors.New("resource already locked")
	ErrNotLocked          = errors.New("unlock without lock")
	ErrIndexOutOfRange    = errors.New("index out of vertex range")
	ErrUnsupportedAPI     = errors.New("unsupported renderer api")
	ErrBadVertexFormat    = errors.New("bad vertex format")
	ErrUnknown            = errors.New("unknown")
)

package service

import "errors"

var (
	ErrEngineRunning     = errors.New("propagation engine already running for scope")
	ErrEngineStopped     = errors.New("propagation engine is not running for scope")
	ErrInvalidScope      = errors.New("tenant and location are required")
	ErrResetNotConfirmed = errors.New("emergency reset requires explicit confirmation of the scope")
)

package io

import (
	"errors"

	"github.com/ezrec/hopvm/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelDetached = errors.New(f("channel has no output"))
	ErrChannelShort    = errors.New(f("short write"))
)

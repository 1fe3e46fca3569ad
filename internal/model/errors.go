package model

import "errors"

var ErrInvalidStatusTransition = errors.New("alert status can only move from pending to sent or failed")

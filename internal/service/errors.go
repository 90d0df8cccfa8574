package service

import "errors"

// ErrUnknownDevice means a ping referenced a device_id that is not
// registered. The caller must register the device first.
var ErrUnknownDevice = errors.New("device not registered")

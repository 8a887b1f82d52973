package database

import "errors"

// ErrNotReady is returned by Ready before the startup ping has succeeded.
var ErrNotReady = errors.New("database not ready")

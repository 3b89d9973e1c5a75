package database

import "errors"

// ErrNotReady reports that the server did not answer a ping.
var ErrNotReady = errors.New("database not ready")

package storage

import "errors"

var ErrStorageUnavailable = errors.New("storage write credential is not configured")

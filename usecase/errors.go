package usecase

import "main/model"

// The session sentinels are defined in model so the repository layer
// can return them without importing usecase. Re-exported here because
// handlers match on them at this layer.
var (
	ErrSessionConflict = model.ErrSessionConflict
	ErrInvalidState    = model.ErrInvalidState
	ErrSessionNotFound = model.ErrSessionNotFound
)

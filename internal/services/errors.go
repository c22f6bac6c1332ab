package services

import (
	"errors"

	"fleura_back_end/internal/models"
)

// Taxonomie d'erreurs métier. Les handlers traduisent avec errors.Is :
// ErrNotFound → 404, ErrUnauthorized → 401, ErrForbidden → 403,
// ErrInvalidOperation → 400, le reste → 500 générique.
var (
	ErrNotFound         = errors.New("ressource introuvable")
	ErrUnauthorized     = errors.New("non authentifié")
	ErrForbidden        = errors.New("accès refusé")
	ErrInvalidOperation = errors.New("opération invalide")
)

// Actor : identité résolue de l'appelant, passée aux règles métier.
type Actor struct {
	ID   uint
	Role models.Role
}

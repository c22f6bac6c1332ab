package models

// Role est un type fermé : plus aucune comparaison de chaîne libre
// dans les handlers (source de typos).
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSupplier Role = "supplier"
	RoleAdmin    Role = "admin"
	// RolePending : compte OAuth dont le profil n'est pas encore complété
	RolePending Role = "pending"
)

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// CanModerate : droit d'approuver/rejeter les blogs et de masquer les commentaires
func (r Role) CanModerate() bool { return r == RoleAdmin }

// CanSell : droit de gérer des annonces fournisseur
func (r Role) CanSell() bool { return r == RoleSupplier || r == RoleAdmin }

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSupplier, RoleAdmin, RolePending:
		return true
	}
	return false
}

package entity

import "time"

// Roles de la aplicación. El directorio de colaboradores es una proyección
// sobre los usuarios; los handlers aplican la visibilidad por rol.
const (
	RoleAdmin       = "admin"
	RoleInventarios = "inventarios"
	RoleRRHH        = "rrhh"
)

// User representa un usuario del back-office (también colaborador del
// directorio de Recursos Humanos).
type User struct {
	ID               string
	Email            string // único
	PasswordHash     string
	FirstName        string
	PaternalLastName string
	MaternalLastName string
	Phone            string // 10 dígitos, único
	Role             string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName arma el nombre completo para el directorio.
func (u *User) FullName() string {
	name := u.FirstName + " " + u.PaternalLastName
	if u.MaternalLastName != "" {
		name += " " + u.MaternalLastName
	}
	return name
}

// ValidRole valida el rol contra el catálogo.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleInventarios, RoleRRHH:
		return true
	}
	return false
}

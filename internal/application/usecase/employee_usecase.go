package usecase

import (
	"regexp"
	"time"

	"github.com/xpyme/backoffice-api/internal/application/dto"
	"github.com/xpyme/backoffice-api/internal/domain"
	"github.com/xpyme/backoffice-api/internal/domain/entity"
	"github.com/xpyme/backoffice-api/internal/domain/repository"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// EmployeeUseCase directorio de colaboradores: una proyección de lectura y
// edición sobre los usuarios, sin columnas propias.
type EmployeeUseCase struct {
	userRepo repository.UserRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(userRepo repository.UserRepository) *EmployeeUseCase {
	return &EmployeeUseCase{userRepo: userRepo}
}

// List lista el directorio con paginación.
func (uc *EmployeeUseCase) List(limit, offset int) ([]*entity.User, error) {
	return uc.userRepo.List(limit, offset)
}

// GetByID obtiene un colaborador.
func (uc *EmployeeUseCase) GetByID(id string) (*entity.User, error) {
	return uc.userRepo.GetByID(id)
}

// Update edita datos del directorio. El teléfono debe tener 10 dígitos.
func (uc *EmployeeUseCase) Update(id string, in dto.UpdateEmployeeRequest) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.PaternalLastName != nil {
		u.PaternalLastName = *in.PaternalLastName
	}
	if in.MaternalLastName != nil {
		u.MaternalLastName = *in.MaternalLastName
	}
	if in.Phone != nil {
		if !phonePattern.MatchString(*in.Phone) {
			return nil, domain.ErrInvalidInput
		}
		u.Phone = *in.Phone
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		u.Role = *in.Role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	u.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

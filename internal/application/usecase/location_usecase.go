package usecase

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

// LocationUseCase etiquetas de ubicación de los coches. La deduplicación es por
// comparación sin mayúsculas ni acentos ("Campa Sur" == "campa sur" == "Campá Sur").
type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso de ubicaciones.
func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

// foldLocationName normaliza un nombre para comparar: minúsculas y sin marcas
// diacríticas (NFD, quitar Mn, NFC).
func foldLocationName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Create da de alta una ubicación si no existe ya una equivalente en la cuenta.
func (uc *LocationUseCase) Create(userID string, companyID *string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.list(userID, companyID)
	if err != nil {
		return nil, err
	}
	folded := foldLocationName(name)
	for _, loc := range existing {
		if foldLocationName(loc.Name) == folded {
			return nil, domain.ErrDuplicate
		}
	}
	loc := &entity.Location{
		ID:        uuid.New().String(),
		UserID:    userID,
		CompanyID: companyID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.locationRepo.Create(loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// List lista las ubicaciones de la cuenta (o del equipo si tiene).
func (uc *LocationUseCase) List(userID string, companyID *string) ([]dto.LocationResponse, error) {
	list, err := uc.list(userID, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, loc := range list {
		out = append(out, *toLocationResponse(loc))
	}
	return out, nil
}

// Delete borra una ubicación de la cuenta (o del equipo). Los coches conservan
// el nombre que tuvieran.
func (uc *LocationUseCase) Delete(userID string, companyID *string, id string) error {
	return uc.locationRepo.Delete(id, userID, companyID)
}

func (uc *LocationUseCase) list(userID string, companyID *string) ([]*entity.Location, error) {
	if companyID != nil && *companyID != "" {
		return uc.locationRepo.ListByCompany(*companyID)
	}
	return uc.locationRepo.ListByUser(userID)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt}
}

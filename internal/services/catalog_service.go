package services

import (
	"log"

	"weapondb/internal/models"
	"weapondb/internal/repositories"
	"weapondb/pkg/rabbitmq"
)

// EventPublisher publishes catalog change events to a message broker.
type EventPublisher interface {
	PublishCatalogEvent(event rabbitmq.CatalogEvent) error
}

// WeaponPage is one page of a paginated weapon listing.
type WeaponPage struct {
	Weapons    []models.Weapon
	Page       int
	TotalPages int
	Total      int64
}

// ClassOverview groups the catalog entries sharing one class label.
type ClassOverview struct {
	Class           string
	Weapons         []models.Weapon
	Gadgets         []models.Gadget
	Specializations []models.Specialization
}

// CatalogService handles business logic for the four catalog entity families.
type CatalogService struct {
	weaponRepo repositories.WeaponRepository
	gadgetRepo repositories.GadgetRepository
	specRepo   repositories.SpecializationRepository
	mapRepo    repositories.GameMapRepository
	publisher  EventPublisher // optional; nil disables events
	pageSize   int
}

// NewCatalogService creates a new CatalogService. The publisher may be nil,
// in which case catalog change events are not emitted.
func NewCatalogService(
	weaponRepo repositories.WeaponRepository,
	gadgetRepo repositories.GadgetRepository,
	specRepo repositories.SpecializationRepository,
	mapRepo repositories.GameMapRepository,
	publisher EventPublisher,
	pageSize int,
) *CatalogService {
	if pageSize <= 0 {
		pageSize = 3
	}
	return &CatalogService{
		weaponRepo: weaponRepo,
		gadgetRepo: gadgetRepo,
		specRepo:   specRepo,
		mapRepo:    mapRepo,
		publisher:  publisher,
		pageSize:   pageSize,
	}
}

// PageSize returns the fixed number of weapons per listing page.
func (s *CatalogService) PageSize() int {
	return s.pageSize
}

// ListWeapons returns one page of weapons, optionally filtered by class.
// Pages are 1-based; anything below 1 is treated as page 1. A page past
// the end simply comes back empty.
func (s *CatalogService) ListWeapons(class string, page int) (*WeaponPage, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.weaponRepo.Count(class)
	if err != nil {
		return nil, err
	}
	offset := (page - 1) * s.pageSize
	weapons, err := s.weaponRepo.List(class, s.pageSize, offset)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))
	return &WeaponPage{
		Weapons:    weapons,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

// GetWeapon retrieves a single weapon by ID.
func (s *CatalogService) GetWeapon(id uint) (*models.Weapon, error) {
	return s.weaponRepo.GetByID(id)
}

// CreateWeapon inserts a new weapon and emits a change event.
func (s *CatalogService) CreateWeapon(weapon *models.Weapon) error {
	if err := s.weaponRepo.Create(weapon); err != nil {
		return err
	}
	s.publish("created", "weapon", weapon.ID, weapon.Name)
	return nil
}

// UpdateWeapon updates an existing weapon. The stored image URL is
// replaced only when includeImage is true.
func (s *CatalogService) UpdateWeapon(weapon *models.Weapon, includeImage bool) error {
	if err := s.weaponRepo.Update(weapon, includeImage); err != nil {
		return err
	}
	s.publish("updated", "weapon", weapon.ID, weapon.Name)
	return nil
}

// DeleteWeapon removes a weapon by ID.
func (s *CatalogService) DeleteWeapon(id uint) error {
	if err := s.weaponRepo.Delete(id); err != nil {
		return err
	}
	s.publish("deleted", "weapon", id, "")
	return nil
}

// ListGadgets returns gadgets, optionally filtered by class.
func (s *CatalogService) ListGadgets(class string) ([]models.Gadget, error) {
	return s.gadgetRepo.List(class)
}

// GetGadget retrieves a single gadget by ID.
func (s *CatalogService) GetGadget(id uint) (*models.Gadget, error) {
	return s.gadgetRepo.GetByID(id)
}

// CreateGadget inserts a new gadget and emits a change event.
func (s *CatalogService) CreateGadget(gadget *models.Gadget) error {
	if err := s.gadgetRepo.Create(gadget); err != nil {
		return err
	}
	s.publish("created", "gadget", gadget.ID, gadget.Name)
	return nil
}

// UpdateGadget updates an existing gadget.
func (s *CatalogService) UpdateGadget(gadget *models.Gadget, includeImage bool) error {
	if err := s.gadgetRepo.Update(gadget, includeImage); err != nil {
		return err
	}
	s.publish("updated", "gadget", gadget.ID, gadget.Name)
	return nil
}

// DeleteGadget removes a gadget by ID.
func (s *CatalogService) DeleteGadget(id uint) error {
	if err := s.gadgetRepo.Delete(id); err != nil {
		return err
	}
	s.publish("deleted", "gadget", id, "")
	return nil
}

// ListSpecializations returns specializations, optionally filtered by class.
func (s *CatalogService) ListSpecializations(class string) ([]models.Specialization, error) {
	return s.specRepo.List(class)
}

// GetSpecialization retrieves a single specialization by ID.
func (s *CatalogService) GetSpecialization(id uint) (*models.Specialization, error) {
	return s.specRepo.GetByID(id)
}

// CreateSpecialization inserts a new specialization and emits a change event.
func (s *CatalogService) CreateSpecialization(spec *models.Specialization) error {
	if err := s.specRepo.Create(spec); err != nil {
		return err
	}
	s.publish("created", "specialization", spec.ID, spec.Name)
	return nil
}

// UpdateSpecialization updates an existing specialization.
func (s *CatalogService) UpdateSpecialization(spec *models.Specialization, includeImage bool) error {
	if err := s.specRepo.Update(spec, includeImage); err != nil {
		return err
	}
	s.publish("updated", "specialization", spec.ID, spec.Name)
	return nil
}

// DeleteSpecialization removes a specialization by ID.
func (s *CatalogService) DeleteSpecialization(id uint) error {
	if err := s.specRepo.Delete(id); err != nil {
		return err
	}
	s.publish("deleted", "specialization", id, "")
	return nil
}

// ListMaps returns all maps.
func (s *CatalogService) ListMaps() ([]models.GameMap, error) {
	return s.mapRepo.List()
}

// GetMap retrieves a single map by ID.
func (s *CatalogService) GetMap(id uint) (*models.GameMap, error) {
	return s.mapRepo.GetByID(id)
}

// CreateMap inserts a new map and emits a change event.
func (s *CatalogService) CreateMap(gameMap *models.GameMap) error {
	if err := s.mapRepo.Create(gameMap); err != nil {
		return err
	}
	s.publish("created", "map", gameMap.ID, gameMap.Name)
	return nil
}

// UpdateMap updates an existing map.
func (s *CatalogService) UpdateMap(gameMap *models.GameMap, includeImage bool) error {
	if err := s.mapRepo.Update(gameMap, includeImage); err != nil {
		return err
	}
	s.publish("updated", "map", gameMap.ID, gameMap.Name)
	return nil
}

// DeleteMap removes a map by ID.
func (s *CatalogService) DeleteMap(id uint) error {
	if err := s.mapRepo.Delete(id); err != nil {
		return err
	}
	s.publish("deleted", "map", id, "")
	return nil
}

// ClassOverview assembles the weapons, gadgets and specializations
// sharing one class label. The label is free text; an unknown label
// yields an overview with empty sections.
func (s *CatalogService) ClassOverview(class string) (*ClassOverview, error) {
	weapons, err := s.weaponRepo.List(class, 0, 0)
	if err != nil {
		return nil, err
	}
	gadgets, err := s.gadgetRepo.List(class)
	if err != nil {
		return nil, err
	}
	specs, err := s.specRepo.List(class)
	if err != nil {
		return nil, err
	}
	return &ClassOverview{
		Class:           class,
		Weapons:         weapons,
		Gadgets:         gadgets,
		Specializations: specs,
	}, nil
}

// publish emits a catalog event when a publisher is configured. A failed
// publish is logged and does not fail the request.
func (s *CatalogService) publish(action, entity string, id uint, name string) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.CatalogEvent{Action: action, Entity: entity, ID: id, Name: name}
	if err := s.publisher.PublishCatalogEvent(event); err != nil {
		log.Printf("Failed to publish catalog event %s %s %d: %v", action, entity, id, err)
	}
}

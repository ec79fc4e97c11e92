package services

import (
	"time"

	"vexpo/internal/events"
	"vexpo/internal/models"
	"vexpo/internal/repositories"
)

// ExhibitorService handles business logic for exhibitor profiles, their
// virtual booths and user interactions. Every mutation walks the ownership
// chain to the authenticated caller: exhibitors belong to a user, booths to
// an exhibitor.
type ExhibitorService struct {
	exhibitorRepo   repositories.ExhibitorRepository
	boothRepo       repositories.VirtualBoothRepository
	interactionRepo repositories.UserInteractionRepository
	emitter         events.Emitter
}

// NewExhibitorService creates a new ExhibitorService.
func NewExhibitorService(
	exhibitorRepo repositories.ExhibitorRepository,
	boothRepo repositories.VirtualBoothRepository,
	interactionRepo repositories.UserInteractionRepository,
	emitter events.Emitter,
) *ExhibitorService {
	return &ExhibitorService{
		exhibitorRepo:   exhibitorRepo,
		boothRepo:       boothRepo,
		interactionRepo: interactionRepo,
		emitter:         emitter,
	}
}

// CreateExhibitor creates the exhibitor profile for the calling user. A user
// owns at most one profile.
func (s *ExhibitorService) CreateExhibitor(callerID string, input models.CreateExhibitorInput) (*models.Exhibitor, error) {
	if callerID != input.UserID {
		return nil, ErrAccessDenied
	}

	if existing, err := s.exhibitorRepo.GetByUserID(input.UserID); err == nil && existing != nil {
		return nil, ErrExhibitorExists
	}

	exhibitor := &models.Exhibitor{
		UserID:    input.UserID,
		Name:      input.Name,
		Email:     input.Email,
		Company:   input.Company,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.exhibitorRepo.Create(exhibitor); err != nil {
		return nil, err
	}
	return exhibitor, nil
}

// GetExhibitor retrieves an exhibitor profile by ID.
func (s *ExhibitorService) GetExhibitor(id string) (*models.Exhibitor, error) {
	return s.exhibitorRepo.GetByID(id)
}

// UpdateExhibitor applies a partial update to an exhibitor profile. Only the
// owning user may update it.
func (s *ExhibitorService) UpdateExhibitor(callerID, id string, input models.UpdateExhibitorInput) (*models.Exhibitor, error) {
	exhibitor, err := s.exhibitorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exhibitor.UserID != callerID {
		return nil, ErrAccessDenied
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Company != nil {
		fields["company"] = *input.Company
	}
	if len(fields) == 0 {
		return nil, ErrNoUpdateFields
	}

	return s.exhibitorRepo.Update(id, fields)
}

// SearchExhibitors returns exhibitors matching the shared search pattern.
func (s *ExhibitorService) SearchExhibitors(params repositories.SearchParams) ([]models.Exhibitor, error) {
	return s.exhibitorRepo.Search(params)
}

// CreateBooth creates the virtual booth for an exhibitor owned by the
// caller. An exhibitor owns at most one booth.
func (s *ExhibitorService) CreateBooth(callerID string, input models.CreateVirtualBoothInput) (*models.VirtualBooth, error) {
	exhibitor, err := s.exhibitorRepo.GetByID(input.ExhibitorID)
	if err != nil {
		return nil, err
	}
	if exhibitor.UserID != callerID {
		return nil, ErrAccessDenied
	}

	if existing, err := s.boothRepo.GetByExhibitorID(input.ExhibitorID); err == nil && existing != nil {
		return nil, ErrBoothExists
	}

	booth := &models.VirtualBooth{
		ExhibitorID:    input.ExhibitorID,
		Description:    input.Description,
		MediaURLs:      input.MediaURLs,
		ProductCatalog: input.ProductCatalog,
	}
	if err := s.boothRepo.Create(booth); err != nil {
		return nil, err
	}
	return booth, nil
}

// GetBooth retrieves a virtual booth by ID.
func (s *ExhibitorService) GetBooth(id string) (*models.VirtualBooth, error) {
	return s.boothRepo.GetByID(id)
}

// UpdateBooth applies a partial update to a booth. Authorization is
// transitive: the caller must own the exhibitor that owns the booth.
func (s *ExhibitorService) UpdateBooth(callerID, id string, input models.UpdateVirtualBoothInput) (*models.VirtualBooth, error) {
	booth, err := s.boothRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	exhibitor, err := s.exhibitorRepo.GetByID(booth.ExhibitorID)
	if err != nil {
		return nil, err
	}
	if exhibitor.UserID != callerID {
		return nil, ErrAccessDenied
	}

	fields := map[string]interface{}{}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.MediaURLs != nil {
		fields["media_urls"] = *input.MediaURLs
	}
	if input.ProductCatalog != nil {
		fields["product_catalog"] = *input.ProductCatalog
	}
	if len(fields) == 0 {
		return nil, ErrNoUpdateFields
	}

	return s.boothRepo.Update(id, fields)
}

// RecordInteraction appends an interaction log record for the calling user
// and broadcasts it to connected clients.
func (s *ExhibitorService) RecordInteraction(callerID string, input models.CreateUserInteractionInput) (*models.UserInteraction, error) {
	if callerID != input.UserID {
		return nil, ErrAccessDenied
	}

	interaction := &models.UserInteraction{
		UserID:          input.UserID,
		ExhibitorID:     input.ExhibitorID,
		InteractionType: input.InteractionType,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.interactionRepo.Create(interaction); err != nil {
		return nil, err
	}

	if s.emitter != nil {
		s.emitter.Broadcast(events.ExhibitorInteraction, interaction)
	}

	return interaction, nil
}

// SearchInteractions returns interaction records matching the shared search
// pattern.
func (s *ExhibitorService) SearchInteractions(params repositories.SearchParams) ([]models.UserInteraction, error) {
	return s.interactionRepo.Search(params)
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Lparksi/vikunja-1/internal/models"
	"github.com/Lparksi/vikunja-1/internal/repository"
)

var (
	// ErrLabelNotFound covers both a missing label and one created by
	// someone else; labels are visible to their creator only.
	ErrLabelNotFound      = errors.New("label not found")
	ErrLabelTitleRequired = errors.New("label title is required")
)

// LabelService provides business logic for label operations. Labels belong
// to their creator; there is no sharing.
type LabelService struct {
	labelRepo repository.LabelRepository
}

// NewLabelService creates a new LabelService.
func NewLabelService(labelRepo repository.LabelRepository) *LabelService {
	return &LabelService{labelRepo: labelRepo}
}

// ListLabels returns the user's labels.
func (s *LabelService) ListLabels(userID uint64) ([]models.Label, error) {
	labels, err := s.labelRepo.ListByCreator(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// CreateLabelInput represents input for creating a label.
type CreateLabelInput struct {
	Title       string
	Description string
	HexColor    string
}

// CreateLabel creates a label owned by the user.
func (s *LabelService) CreateLabel(userID uint64, input CreateLabelInput) (*models.Label, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrLabelTitleRequired
	}

	label := &models.Label{
		Title:       input.Title,
		Description: input.Description,
		HexColor:    input.HexColor,
		CreatedByID: userID,
	}

	if err := s.labelRepo.Create(label); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}

	return label, nil
}

// GetLabel returns one of the user's labels.
func (s *LabelService) GetLabel(userID, labelID uint64) (*models.Label, error) {
	return s.findOwnedLabel(userID, labelID)
}

// UpdateLabelInput carries a sparse label update.
type UpdateLabelInput struct {
	Title       *string
	Description *string
	HexColor    *string
}

// UpdateLabel applies a sparse update to one of the user's labels.
func (s *LabelService) UpdateLabel(userID, labelID uint64, input UpdateLabelInput) (*models.Label, error) {
	label, err := s.findOwnedLabel(userID, labelID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrLabelTitleRequired
		}
		label.Title = *input.Title
	}
	if input.Description != nil {
		label.Description = *input.Description
	}
	if input.HexColor != nil {
		label.HexColor = *input.HexColor
	}

	if err := s.labelRepo.Update(label); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}

	return label, nil
}

// DeleteLabel removes one of the user's labels and its task links.
func (s *LabelService) DeleteLabel(userID, labelID uint64) error {
	label, err := s.findOwnedLabel(userID, labelID)
	if err != nil {
		return err
	}

	if err := s.labelRepo.Delete(label.ID); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}

	return nil
}

func (s *LabelService) findOwnedLabel(userID, labelID uint64) (*models.Label, error) {
	label, err := s.labelRepo.FindByID(labelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to find label: %w", err)
	}

	if label.CreatedByID != userID {
		return nil, ErrLabelNotFound
	}

	return label, nil
}

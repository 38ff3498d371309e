// Package presets stores named filters in the local sqlite database
package presets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ngmaloney/portman-terminal/internal/models"
)

// ErrEmptyName is returned when saving a preset without a name
var ErrEmptyName = errors.New("preset name is required")

// Service orchestrates preset operations
type Service struct {
	repo *Repository
}

// NewService creates a preset service for the database at dbPath
func NewService(dbPath string) *Service {
	return &Service{repo: NewRepository(dbPath)}
}

// SavePreset validates and stores filter under name, replacing any preset of that name
func (s *Service) SavePreset(name string, filter models.FilterState) (*models.Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}

	p := &models.Preset{Name: name, Filter: filter}
	if err := s.repo.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Filter returns the filter stored under name
func (s *Service) Filter(name string) (models.FilterState, error) {
	p, err := s.repo.Get(strings.TrimSpace(name))
	if err != nil {
		return models.FilterState{}, err
	}
	return p.Filter, nil
}

func (s *Service) ListPresets() ([]models.Preset, error) {
	return s.repo.List()
}

func (s *Service) DeletePreset(name string) error {
	return s.repo.Delete(strings.TrimSpace(name))
}

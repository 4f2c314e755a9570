package usecase

import "wavelink-cli/internal/domain"

// SettingsUseCase is the primary port for reading and changing connection settings.
type SettingsUseCase interface {
	Load() (domain.Settings, error)
	Update(change func(*domain.Settings)) (domain.Settings, error)
}

type settingsInteractor struct {
	repo domain.SettingsRepository
}

// NewSettingsUseCase creates the use case over repo.
func NewSettingsUseCase(repo domain.SettingsRepository) SettingsUseCase {
	return &settingsInteractor{repo: repo}
}

// Load returns the stored settings after validation.
func (s *settingsInteractor) Load() (domain.Settings, error) {
	settings, err := s.repo.Load()
	if err != nil {
		return domain.Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// Update applies change to the stored settings and persists the result if it is valid.
func (s *settingsInteractor) Update(change func(*domain.Settings)) (domain.Settings, error) {
	settings, err := s.repo.Load()
	if err != nil {
		return domain.Settings{}, err
	}
	change(&settings)
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	if err := s.repo.Save(settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

package usecase

import (
	"errors"
	"testing"
	"time"

	"wavelink-cli/internal/domain"
)

type mockSettingsRepo struct {
	settings domain.Settings
	saves    int
	loadErr  error
}

func (m *mockSettingsRepo) Load() (domain.Settings, error) {
	if m.loadErr != nil {
		return domain.Settings{}, m.loadErr
	}
	return m.settings, nil
}

func (m *mockSettingsRepo) Save(settings domain.Settings) error {
	m.saves++
	m.settings = settings
	return nil
}

func TestSettingsUpdatePersistsValidChanges(t *testing.T) {
	repo := &mockSettingsRepo{settings: domain.DefaultSettings()}
	uc := NewSettingsUseCase(repo)

	got, err := uc.Update(func(s *domain.Settings) {
		s.Port = 1890
		s.Timeout = 2 * time.Second
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Port != 1890 || repo.saves != 1 || repo.settings.Timeout != 2*time.Second {
		t.Fatalf("unexpected state: got=%+v saves=%d", got, repo.saves)
	}
}

func TestSettingsUpdateRejectsInvalid(t *testing.T) {
	repo := &mockSettingsRepo{settings: domain.DefaultSettings()}
	uc := NewSettingsUseCase(repo)

	_, err := uc.Update(func(s *domain.Settings) { s.PortMin, s.PortMax = 1900, 1800 })
	if !errors.Is(err, domain.ErrInvalidPort) {
		t.Fatalf("expected ErrInvalidPort, got %v", err)
	}
	if repo.saves != 0 {
		t.Fatal("invalid settings must not be saved")
	}
}

func TestSettingsLoadPropagatesErrors(t *testing.T) {
	repo := &mockSettingsRepo{loadErr: errors.New("disk")}
	if _, err := NewSettingsUseCase(repo).Load(); err == nil {
		t.Fatal("expected load error")
	}

	repo = &mockSettingsRepo{settings: domain.Settings{Host: "", PortMin: 1, PortMax: 2, Timeout: time.Second}}
	if _, err := NewSettingsUseCase(repo).Load(); !errors.Is(err, domain.ErrInvalidHost) {
		t.Fatalf("expected ErrInvalidHost, got %v", err)
	}
}

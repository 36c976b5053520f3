package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/repositories"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/storage"
)

type TournamentService interface {
	Create(ctx context.Context, actor *models.User, input TournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, limit, offset int) ([]models.Tournament, error)
	Update(ctx context.Context, actor *models.User, id int, input TournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, actor *models.User, id int) error
	UploadLogo(ctx context.Context, actor *models.User, id int, contentType string, reader io.Reader) (*models.Tournament, error)

	AddPlayer(ctx context.Context, actor *models.User, tournamentID, userID int) error
	RemovePlayer(ctx context.Context, actor *models.User, tournamentID, userID int) error
	ListPlayers(ctx context.Context, tournamentID int) ([]models.User, error)
}

type TournamentInput struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.TournamentPlayerRepository
	userRepo       repositories.UserRepository
	uploader       storage.FileUploader
	now            func() time.Time
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.TournamentPlayerRepository,
	userRepo repositories.UserRepository,
	uploader storage.FileUploader,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		userRepo:       userRepo,
		uploader:       uploader,
		now:            time.Now,
	}
}

func (s *tournamentService) Create(ctx context.Context, actor *models.User, input TournamentInput) (*models.Tournament, error) {
	if err := authorizeMutation(actor); err != nil {
		return nil, err
	}
	if err := validateTournamentInput(&input); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedBy:   actor.ID,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, err
	}

	s.populateTournament(tournament)
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.populateTournament(tournament)
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, limit, offset int) ([]models.Tournament, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	tournaments, err := s.tournamentRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		s.populateTournament(&tournaments[i])
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, actor *models.User, id int, input TournamentInput) (*models.Tournament, error) {
	tournament, err := s.getForMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateTournamentInput(&input); err != nil {
		return nil, err
	}

	tournament.Name = input.Name
	tournament.Description = input.Description
	tournament.StartDate = input.StartDate
	tournament.EndDate = input.EndDate

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, err
	}

	s.populateTournament(tournament)
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, actor *models.User, id int) error {
	if _, err := s.getForMutation(ctx, actor, id); err != nil {
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	return nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, actor *models.User, id int, contentType string, reader io.Reader) (*models.Tournament, error) {
	tournament, err := s.getForMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("file storage is not configured")
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("tournaments/tournament_%d%s", id, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}

	oldKey := tournament.LogoKey
	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &key); err != nil {
		return nil, err
	}
	if oldKey != nil && *oldKey != key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	tournament.LogoKey = &key
	s.populateTournament(tournament)
	return tournament, nil
}

// AddPlayer registers a user for a tournament. Only the player role can be
// registered; a duplicate registration surfaces as a conflict.
func (s *tournamentService) AddPlayer(ctx context.Context, actor *models.User, tournamentID, userID int) error {
	if err := authorizeMutation(actor); err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Role != models.RolePlayer {
		return ErrOnlyPlayersCanRegister
	}

	tp := &models.TournamentPlayer{TournamentID: tournamentID, UserID: userID}
	if err := s.playerRepo.Add(ctx, tp); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentPlayerConflict):
			return ErrPlayerAlreadyRegistered
		case errors.Is(err, repositories.ErrTournamentPlayerInvalid):
			return ErrTournamentNotFound
		}
		return err
	}
	return nil
}

func (s *tournamentService) RemovePlayer(ctx context.Context, actor *models.User, tournamentID, userID int) error {
	if err := authorizeMutation(actor); err != nil {
		return err
	}
	if err := s.playerRepo.Remove(ctx, tournamentID, userID); err != nil {
		if errors.Is(err, repositories.ErrTournamentPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return nil
}

func (s *tournamentService) ListPlayers(ctx context.Context, tournamentID int) ([]models.User, error) {
	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	players, err := s.playerRepo.ListPlayers(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for i := range players {
		players[i].PasswordHash = ""
		if players[i].AvatarKey != nil && s.uploader != nil {
			if url := s.uploader.GetPublicURL(*players[i].AvatarKey); url != "" {
				players[i].AvatarURL = &url
			}
		}
	}
	return players, nil
}

// getForMutation loads a tournament and checks the actor may change it:
// the creator or a master.
func (s *tournamentService) getForMutation(ctx context.Context, actor *models.User, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if err := authorizeMutation(actor); err != nil {
		return nil, err
	}
	if actor.Role != models.RoleMaster && tournament.CreatedBy != actor.ID {
		return nil, ErrForbiddenOperation
	}
	return tournament, nil
}

func (s *tournamentService) populateTournament(t *models.Tournament) {
	if t == nil {
		return
	}
	t.Status = t.StatusAt(s.now())
	if t.LogoKey != nil && *t.LogoKey != "" && s.uploader != nil {
		if url := s.uploader.GetPublicURL(*t.LogoKey); url != "" {
			t.LogoURL = &url
		}
	}
}

func validateTournamentInput(input *TournamentInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return ErrTournamentNameRequired
	}
	if input.StartDate.IsZero() {
		return ErrTournamentDatesRequired
	}
	if input.EndDate != nil && !input.StartDate.Before(*input.EndDate) {
		return fmt.Errorf("%w: start date (%s) must be before end date (%s)",
			ErrTournamentInvalidDates,
			input.StartDate.Format(time.RFC3339),
			input.EndDate.Format(time.RFC3339))
	}
	return nil
}

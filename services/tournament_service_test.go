package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/repositories"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/services"
)

func (f *fakeTournamentRepo) Create(_ context.Context, tournament *models.Tournament) error {
	tournament.ID = 7
	f.tournament = tournament
	return nil
}

func (f *fakeTournamentRepo) Update(_ context.Context, tournament *models.Tournament) error {
	f.tournament = tournament
	return nil
}

type fakeRegistrationRepo struct {
	repositories.TournamentPlayerRepository

	addErr    error
	removeErr error
	added     []models.TournamentPlayer
}

func (f *fakeRegistrationRepo) Add(_ context.Context, tp *models.TournamentPlayer) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, *tp)
	return nil
}

func (f *fakeRegistrationRepo) Remove(_ context.Context, _, _ int) error {
	return f.removeErr
}

type fakeUserRepo struct {
	repositories.UserRepository

	users map[int]*models.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func newTournamentService(
	tournamentRepo *fakeTournamentRepo,
	registrationRepo *fakeRegistrationRepo,
	userRepo *fakeUserRepo,
) services.TournamentService {
	if tournamentRepo == nil {
		tournamentRepo = &fakeTournamentRepo{tournament: &models.Tournament{
			ID:        7,
			Name:      "City Open",
			StartDate: time.Now().Add(-time.Hour),
			CreatedBy: 1,
		}}
	}
	if registrationRepo == nil {
		registrationRepo = &fakeRegistrationRepo{}
	}
	if userRepo == nil {
		userRepo = &fakeUserRepo{users: map[int]*models.User{}}
	}
	return services.NewTournamentService(tournamentRepo, registrationRepo, userRepo, nil)
}

func TestCreateTournamentValidation(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	earlier := start.Add(-48 * time.Hour)

	cases := []struct {
		name    string
		input   services.TournamentInput
		wantErr error
	}{
		{
			name:    "blank name",
			input:   services.TournamentInput{Name: "   ", StartDate: start},
			wantErr: services.ErrTournamentNameRequired,
		},
		{
			name:    "missing start date",
			input:   services.TournamentInput{Name: "City Open"},
			wantErr: services.ErrTournamentDatesRequired,
		},
		{
			name:    "end before start",
			input:   services.TournamentInput{Name: "City Open", StartDate: start, EndDate: &earlier},
			wantErr: services.ErrTournamentInvalidDates,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTournamentService(&fakeTournamentRepo{}, nil, nil)
			_, err := svc.Create(context.Background(), masterActor(), tc.input)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateTournamentDerivesStatus(t *testing.T) {
	repo := &fakeTournamentRepo{}
	svc := newTournamentService(repo, nil, nil)

	start := time.Now().Add(72 * time.Hour)
	tournament, err := svc.Create(context.Background(), masterActor(), services.TournamentInput{
		Name:      "City Open",
		StartDate: start,
	})
	require.NoError(t, err)
	require.Equal(t, models.TournamentUpcoming, tournament.Status)
	require.Equal(t, 1, tournament.CreatedBy)
}

func TestAddPlayerRequiresPlayerRole(t *testing.T) {
	userRepo := &fakeUserRepo{users: map[int]*models.User{
		30: {ID: 30, Role: models.RoleAdmin, VerificationStatus: models.VerificationApproved},
	}}
	svc := newTournamentService(nil, nil, userRepo)

	err := svc.AddPlayer(context.Background(), masterActor(), 7, 30)
	require.ErrorIs(t, err, services.ErrOnlyPlayersCanRegister)
}

func TestAddPlayerUnknownUser(t *testing.T) {
	svc := newTournamentService(nil, nil, nil)

	err := svc.AddPlayer(context.Background(), masterActor(), 7, 999)
	require.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestAddPlayerDuplicateRegistration(t *testing.T) {
	userRepo := &fakeUserRepo{users: map[int]*models.User{
		30: {ID: 30, Role: models.RolePlayer, VerificationStatus: models.VerificationApproved},
	}}
	registrationRepo := &fakeRegistrationRepo{addErr: repositories.ErrTournamentPlayerConflict}
	svc := newTournamentService(nil, registrationRepo, userRepo)

	err := svc.AddPlayer(context.Background(), masterActor(), 7, 30)
	require.ErrorIs(t, err, services.ErrPlayerAlreadyRegistered)
}

func TestAddPlayerRegistersPlayer(t *testing.T) {
	userRepo := &fakeUserRepo{users: map[int]*models.User{
		30: {ID: 30, Role: models.RolePlayer, VerificationStatus: models.VerificationApproved},
	}}
	registrationRepo := &fakeRegistrationRepo{}
	svc := newTournamentService(nil, registrationRepo, userRepo)

	err := svc.AddPlayer(context.Background(), masterActor(), 7, 30)
	require.NoError(t, err)
	require.Len(t, registrationRepo.added, 1)
	require.Equal(t, 7, registrationRepo.added[0].TournamentID)
	require.Equal(t, 30, registrationRepo.added[0].UserID)
}

func TestRemovePlayerNotRegistered(t *testing.T) {
	registrationRepo := &fakeRegistrationRepo{removeErr: repositories.ErrTournamentPlayerNotFound}
	svc := newTournamentService(nil, registrationRepo, nil)

	err := svc.RemovePlayer(context.Background(), masterActor(), 7, 30)
	require.ErrorIs(t, err, services.ErrPlayerNotFound)
}

func TestUpdateTournamentForbiddenForNonCreatorAdmin(t *testing.T) {
	svc := newTournamentService(nil, nil, nil)
	otherAdmin := &models.User{ID: 99, Role: models.RoleAdmin, VerificationStatus: models.VerificationApproved}

	_, err := svc.Update(context.Background(), otherAdmin, 7, services.TournamentInput{
		Name:      "Renamed Open",
		StartDate: time.Now(),
	})
	require.ErrorIs(t, err, services.ErrForbiddenOperation)
}

func TestUpdateTournamentAllowedForMaster(t *testing.T) {
	repo := &fakeTournamentRepo{tournament: &models.Tournament{
		ID:        7,
		Name:      "City Open",
		StartDate: time.Now().Add(-time.Hour),
		CreatedBy: 42,
	}}
	svc := newTournamentService(repo, nil, nil)

	updated, err := svc.Update(context.Background(), masterActor(), 7, services.TournamentInput{
		Name:      "Renamed Open",
		StartDate: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed Open", updated.Name)
}

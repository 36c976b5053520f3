package services_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/repositories"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/services"
)

// stubDriver hands out connections whose only working operation is
// transaction begin/commit/rollback. The repository fakes below never touch
// the executor they receive, so no statement ever reaches the driver.
type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("stub driver does not prepare statements")
}
func (stubConn) Close() error              { return nil }
func (stubConn) Begin() (driver.Tx, error) { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func init() {
	sql.Register("stubtx", stubDriver{})
}

func newStubDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("stubtx", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fakeMatchRepo struct {
	repositories.MatchRepository

	match *models.Match
	sets  []models.MatchSet

	created *models.Match

	replacedSets []models.MatchSet
	replacedExec repositories.SQLExecutor

	finalP1Score  int
	finalP2Score  int
	finalStatus   models.MatchStatus
	finalWinnerID *int
	finalExec     repositories.SQLExecutor
	finalCalled   bool
}

func (f *fakeMatchRepo) Create(_ context.Context, match *models.Match) error {
	match.ID = 501
	f.created = match
	return nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	if f.match == nil || f.match.ID != id {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *f.match
	return &copied, nil
}

func (f *fakeMatchRepo) ListSets(_ context.Context, _ int) ([]models.MatchSet, error) {
	return f.sets, nil
}

func (f *fakeMatchRepo) ReplaceSets(_ context.Context, exec repositories.SQLExecutor, _ int, sets []models.MatchSet) error {
	f.replacedSets = sets
	f.replacedExec = exec
	return nil
}

func (f *fakeMatchRepo) UpdateScoreStatusWinner(_ context.Context, exec repositories.SQLExecutor, _ int, p1Score, p2Score int, status models.MatchStatus, winnerID *int) error {
	f.finalP1Score = p1Score
	f.finalP2Score = p2Score
	f.finalStatus = status
	f.finalWinnerID = winnerID
	f.finalExec = exec
	f.finalCalled = true
	return nil
}

type fakePlayerRepo struct {
	repositories.TournamentPlayerRepository

	registered map[int]bool
}

func (f *fakePlayerRepo) Exists(_ context.Context, _ int, userID int) (bool, error) {
	return f.registered[userID], nil
}

func masterActor() *models.User {
	return &models.User{ID: 1, Role: models.RoleMaster, VerificationStatus: models.VerificationApproved}
}

func scheduledMatch() *models.Match {
	return &models.Match{
		ID:           42,
		TournamentID: 7,
		Player1ID:    10,
		Player2ID:    20,
		GamesPerSet:  6,
		SetsPerMatch: 3,
		Status:       models.MatchStatusScheduled,
	}
}

func newMatchService(t *testing.T, matchRepo *fakeMatchRepo, playerRepo *fakePlayerRepo) services.MatchService {
	t.Helper()
	if playerRepo == nil {
		playerRepo = &fakePlayerRepo{registered: map[int]bool{10: true, 20: true}}
	}
	return services.NewMatchService(newStubDB(t), matchRepo, playerRepo, nil)
}

func TestCreateMatchDefaultsFormat(t *testing.T) {
	repo := &fakeMatchRepo{}
	svc := newMatchService(t, repo, nil)

	match, err := svc.Create(context.Background(), masterActor(), services.CreateMatchInput{
		TournamentID: 7,
		Player1ID:    10,
		Player2ID:    20,
	})
	require.NoError(t, err)
	require.Equal(t, 6, match.GamesPerSet)
	require.Equal(t, 3, match.SetsPerMatch)
	require.Equal(t, models.MatchStatusScheduled, match.Status)
	require.NotNil(t, repo.created)
}

func TestCreateMatchRejectsSamePlayer(t *testing.T) {
	svc := newMatchService(t, &fakeMatchRepo{}, nil)

	_, err := svc.Create(context.Background(), masterActor(), services.CreateMatchInput{
		TournamentID: 7,
		Player1ID:    10,
		Player2ID:    10,
	})
	require.ErrorIs(t, err, services.ErrMatchSamePlayer)
}

func TestCreateMatchRequiresRegisteredPlayers(t *testing.T) {
	playerRepo := &fakePlayerRepo{registered: map[int]bool{10: true}}
	svc := newMatchService(t, &fakeMatchRepo{}, playerRepo)

	_, err := svc.Create(context.Background(), masterActor(), services.CreateMatchInput{
		TournamentID: 7,
		Player1ID:    10,
		Player2ID:    20,
	})
	require.ErrorIs(t, err, services.ErrMatchPlayerNotRegistered)
}

func TestCreateMatchBlockedForUnverifiedAdmin(t *testing.T) {
	svc := newMatchService(t, &fakeMatchRepo{}, nil)
	admin := &models.User{ID: 2, Role: models.RoleAdmin, VerificationStatus: models.VerificationPending}

	_, err := svc.Create(context.Background(), admin, services.CreateMatchInput{
		TournamentID: 7,
		Player1ID:    10,
		Player2ID:    20,
	})
	require.ErrorIs(t, err, services.ErrAccountNotVerified)
}

func TestCreateMatchForbiddenForPlayer(t *testing.T) {
	svc := newMatchService(t, &fakeMatchRepo{}, nil)
	player := &models.User{ID: 3, Role: models.RolePlayer, VerificationStatus: models.VerificationApproved}

	_, err := svc.Create(context.Background(), player, services.CreateMatchInput{
		TournamentID: 7,
		Player1ID:    10,
		Player2ID:    20,
	})
	require.ErrorIs(t, err, services.ErrForbiddenOperation)
}

func TestUpdateScoreMarksMatchInProgress(t *testing.T) {
	repo := &fakeMatchRepo{match: scheduledMatch()}
	svc := newMatchService(t, repo, nil)

	match, err := svc.UpdateScore(context.Background(), masterActor(), 42, 4, 2)
	require.NoError(t, err)
	require.Equal(t, models.MatchStatusInProgress, match.Status)
	require.Equal(t, 4, match.Player1Score)
	require.Equal(t, 2, match.Player2Score)
	require.Nil(t, match.WinnerID)

	require.True(t, repo.finalCalled)
	require.Equal(t, models.MatchStatusInProgress, repo.finalStatus)
	require.Nil(t, repo.finalWinnerID)
}

func TestUpdateScoreRejectsNegativeGames(t *testing.T) {
	repo := &fakeMatchRepo{match: scheduledMatch()}
	svc := newMatchService(t, repo, nil)

	_, err := svc.UpdateScore(context.Background(), masterActor(), 42, -1, 3)
	require.ErrorIs(t, err, services.ErrMatchNegativeGames)
}

func TestRecordSetsFinalizesMatch(t *testing.T) {
	repo := &fakeMatchRepo{match: scheduledMatch()}
	svc := newMatchService(t, repo, nil)

	match, err := svc.RecordSets(context.Background(), masterActor(), 42, []services.SetInput{
		{SetNumber: 1, Player1Games: 6, Player2Games: 4},
		{SetNumber: 2, Player1Games: 3, Player2Games: 6},
		{SetNumber: 3, Player1Games: 6, Player2Games: 2},
	})
	require.NoError(t, err)

	require.Equal(t, models.MatchStatusCompleted, match.Status)
	require.Equal(t, 15, match.Player1Score)
	require.Equal(t, 12, match.Player2Score)
	require.NotNil(t, match.WinnerID)
	require.Equal(t, 10, *match.WinnerID)
	require.Len(t, match.Sets, 3)

	require.True(t, repo.finalCalled)
	require.Equal(t, models.MatchStatusCompleted, repo.finalStatus)
	require.Equal(t, 15, repo.finalP1Score)
	require.Equal(t, 12, repo.finalP2Score)
	require.Len(t, repo.replacedSets, 3)

	// Both writes must travel on the same transaction.
	require.NotNil(t, repo.replacedExec)
	require.Same(t, repo.replacedExec, repo.finalExec)
}

func TestRecordSetsEqualTotalsFavorPlayer1(t *testing.T) {
	repo := &fakeMatchRepo{match: scheduledMatch()}
	svc := newMatchService(t, repo, nil)

	match, err := svc.RecordSets(context.Background(), masterActor(), 42, []services.SetInput{
		{SetNumber: 1, Player1Games: 6, Player2Games: 3},
		{SetNumber: 2, Player1Games: 3, Player2Games: 6},
	})
	require.NoError(t, err)
	require.NotNil(t, match.WinnerID)
	require.Equal(t, 10, *match.WinnerID)
}

func TestRecordSetsRejectsCompletedMatch(t *testing.T) {
	completed := scheduledMatch()
	completed.Status = models.MatchStatusCompleted
	repo := &fakeMatchRepo{match: completed}
	svc := newMatchService(t, repo, nil)

	_, err := svc.RecordSets(context.Background(), masterActor(), 42, []services.SetInput{
		{SetNumber: 1, Player1Games: 6, Player2Games: 0},
	})
	require.ErrorIs(t, err, services.ErrMatchAlreadyCompleted)
	require.False(t, repo.finalCalled)
}

func TestRecordSetsValidation(t *testing.T) {
	cases := []struct {
		name    string
		sets    []services.SetInput
		wantErr error
	}{
		{
			name:    "no sets",
			sets:    nil,
			wantErr: services.ErrMatchSetsRequired,
		},
		{
			name: "negative games",
			sets: []services.SetInput{
				{SetNumber: 1, Player1Games: -2, Player2Games: 6},
			},
			wantErr: services.ErrMatchNegativeGames,
		},
		{
			name: "duplicate set number",
			sets: []services.SetInput{
				{SetNumber: 1, Player1Games: 6, Player2Games: 4},
				{SetNumber: 1, Player1Games: 6, Player2Games: 2},
			},
			wantErr: services.ErrMatchInvalidSetNumbers,
		},
		{
			name: "set number out of range",
			sets: []services.SetInput{
				{SetNumber: 3, Player1Games: 6, Player2Games: 4},
			},
			wantErr: services.ErrMatchInvalidSetNumbers,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeMatchRepo{match: scheduledMatch()}
			svc := newMatchService(t, repo, nil)

			_, err := svc.RecordSets(context.Background(), masterActor(), 42, tc.sets)
			require.ErrorIs(t, err, tc.wantErr)
			require.False(t, repo.finalCalled)
		})
	}
}

func TestUpdateDetailsOnCompletedMatchFails(t *testing.T) {
	completed := scheduledMatch()
	completed.Status = models.MatchStatusCompleted
	repo := &fakeMatchRepo{match: completed}
	svc := newMatchService(t, repo, nil)

	court := "Centre Court"
	_, err := svc.UpdateDetails(context.Background(), masterActor(), 42, services.UpdateMatchInput{Court: &court})
	require.ErrorIs(t, err, services.ErrMatchAlreadyCompleted)
}

func TestGetByIDUnknownMatch(t *testing.T) {
	svc := newMatchService(t, &fakeMatchRepo{}, nil)

	_, err := svc.GetByID(context.Background(), 999)
	require.ErrorIs(t, err, services.ErrMatchNotFound)
}

package services

import (
	"context"
	"testing"

	"microjob_backend/internal/email"
	"microjob_backend/internal/models"
	"microjob_backend/internal/services/dto"
	"microjob_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appServiceFixture struct {
	userRepo   *fakeUserRepo
	jobRepo    *fakeJobRepo
	appRepo    *fakeApplicationRepo
	walletRepo *fakeWalletRepo
	wallet     WalletService
	svc        ApplicationService
}

func newAppServiceFixture() *appServiceFixture {
	userRepo := newFakeUserRepo()
	jobRepo := newFakeJobRepo()
	appRepo := newFakeApplicationRepo()
	walletRepo := newFakeWalletRepo(userRepo)
	wallet := NewWalletService(walletRepo, userRepo)
	return &appServiceFixture{
		userRepo:   userRepo,
		jobRepo:    jobRepo,
		appRepo:    appRepo,
		walletRepo: walletRepo,
		wallet:     wallet,
		svc:        NewApplicationService(appRepo, jobRepo, userRepo, wallet, email.NewNoopProvider()),
	}
}

func (f *appServiceFixture) addUser(status models.UserStatus) *models.User {
	return f.userRepo.add(&models.User{
		Email:    "worker@test.com",
		FullName: "Test Worker",
		Role:     models.UserRoleUser,
		Status:   status,
	})
}

func (f *appServiceFixture) addJob(amount float64) *models.Job {
	return f.jobRepo.add(&models.Job{
		Title:   "Telegram moderator",
		Company: "Acme",
		Amount:  amount,
	})
}

func submitRequest() *dto.SubmitApplicationRequest {
	return &dto.SubmitApplicationRequest{
		FullName: "Test Worker",
		Email:    "worker@test.com",
		Phone:    "+77001234567",
	}
}

func TestSubmitApplication_HappyPath(t *testing.T) {
	t.Parallel()
	f := newAppServiceFixture()
	ctx := context.Background()

	user := f.addUser(models.UserStatusApproved)
	job := f.addJob(50)

	app, err := f.svc.SubmitApplication(ctx, job.ID, user.ID, submitRequest())
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.Equal(t, job.Title, app.JobTitle)
	assert.Equal(t, job.Company, app.Company)
	assert.Equal(t, 50.0, app.JobAmount)
	assert.Nil(t, app.CompletedAt)
	assert.False(t, app.AppliedAt.IsZero())

	stored, err := f.jobRepo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Applicants)
}

func TestSubmitApplication_Duplicate(t *testing.T) {
	t.Parallel()
	f := newAppServiceFixture()
	ctx := context.Background()

	user := f.addUser(models.UserStatusApproved)
	job := f.addJob(50)

	_, err := f.svc.SubmitApplication(ctx, job.ID, user.ID, submitRequest())
	require.NoError(t, err)

	_, err = f.svc.SubmitApplication(ctx, job.ID, user.ID, submitRequest())
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyApplied, appErr.Code)

	// Счетчик не удвоился
	stored, err := f.jobRepo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Applicants)
}

func TestSubmitApplication_BannedUser(t *testing.T) {
	t.Parallel()
	f := newAppServiceFixture()
	ctx := context.Background()

	user := f.addUser(models.UserStatusBanned)
	job := f.addJob(50)

	_, err := f.svc.SubmitApplication(ctx, job.ID, user.ID, submitRequest())
	assert.ErrorIs(t, err, apperrors.ErrUserBanned)
}

func TestSubmitApplication_CounterFailureDoesNotRollBack(t *testing.T) {
	t.Parallel()
	f := newAppServiceFixture()
	ctx := context.Background()

	user := f.addUser(models.UserStatusApproved)
	job := f.addJob(50)
	f.jobRepo.failIncrement = true

	app, err := f.svc.SubmitApplication(ctx, job.ID, user.ID, submitRequest())
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)

	applied, err := f.appRepo.HasApplied(ctx, job.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestSubmitApplication_NegativeAmountClamped(t *testing.T) {
	t.Parallel()
	f := newAppServiceFixture()
	ctx := context.Background()

	user := f.addUser(models.UserStatusApproved)
	job := f.addJob(-10)

	app, err := f.svc.SubmitApplication(ctx, job.ID, user.ID, submitRequest())
	require.NoError(t, err)
	assert.Equal(t, 0.0, app.JobAmount)
}

func TestTransitionStatus_AcceptThenComplete(t *testing.T) {
	t.Parallel()
	f := newAppServiceFixture()
	ctx := context.Background()

	user := f.addUser(models.UserStatusApproved)
	job := f.addJob(50)
	app, err := f.svc.SubmitApplication(ctx, job.ID, user.ID, submitRequest())
	require.NoError(t, err)

	accepted, err := f.svc.TransitionStatus(ctx, app.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, accepted.Status)
	assert.Nil(t, accepted.CompletedAt)

	// Принятие еще не платит
	balance, err := f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)

	completed, err := f.svc.TransitionStatus(ctx, app.ID, models.ApplicationStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	balance, err = f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, balance)
}

func TestTransitionStatus_IllegalTransitions(t *testing.T) {
	t.Parallel()
	f := newAppServiceFixture()
	ctx := context.Background()

	user := f.addUser(models.UserStatusApproved)
	job := f.addJob(50)
	app, err := f.svc.SubmitApplication(ctx, job.ID, user.ID, submitRequest())
	require.NoError(t, err)

	// pending -> completed запрещен, как и перевод в тот же статус
	for _, target := range []models.ApplicationStatus{
		models.ApplicationStatusCompleted,
		models.ApplicationStatusPending,
		"archived",
	} {
		_, err := f.svc.TransitionStatus(ctx, app.ID, target)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "pending -> %s", target)
	}

	// Ничего не выплачено
	balance, err := f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)
}

func TestTransitionStatus_ReCompleteDoesNotPayTwice(t *testing.T) {
	t.Parallel()
	f := newAppServiceFixture()
	ctx := context.Background()

	user := f.addUser(models.UserStatusApproved)
	job := f.addJob(50)
	app, err := f.svc.SubmitApplication(ctx, job.ID, user.ID, submitRequest())
	require.NoError(t, err)

	_, err = f.svc.TransitionStatus(ctx, app.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	_, err = f.svc.TransitionStatus(ctx, app.ID, models.ApplicationStatusCompleted)
	require.NoError(t, err)

	// Откат завершения: средства не отзываются, completedAt очищен
	reverted, err := f.svc.TransitionStatus(ctx, app.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Nil(t, reverted.CompletedAt)

	balance, err := f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, balance)

	// Повторное завершение упирается в леджер: двойной выплаты нет
	again, err := f.svc.TransitionStatus(ctx, app.ID, models.ApplicationStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)

	balance, err = f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, balance)
}

func TestTransitionStatus_RejectionFlow(t *testing.T) {
	t.Parallel()
	f := newAppServiceFixture()
	ctx := context.Background()

	user := f.addUser(models.UserStatusApproved)
	job := f.addJob(50)
	app, err := f.svc.SubmitApplication(ctx, job.ID, user.ID, submitRequest())
	require.NoError(t, err)

	rejected, err := f.svc.TransitionStatus(ctx, app.ID, models.ApplicationStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, rejected.Status)

	// Отклонение обратимо: rejected -> pending
	restored, err := f.svc.TransitionStatus(ctx, app.ID, models.ApplicationStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, restored.Status)

	balance, err := f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)
}

func TestTransitionStatus_ConcurrentChangeRejected(t *testing.T) {
	t.Parallel()
	f := newAppServiceFixture()
	ctx := context.Background()

	user := f.addUser(models.UserStatusApproved)
	job := f.addJob(50)
	app, err := f.svc.SubmitApplication(ctx, job.ID, user.ID, submitRequest())
	require.NoError(t, err)

	// Конкурент переводит статус между чтением и условным update
	f.appRepo.beforeUpdateStatus = func() {
		f.appRepo.beforeUpdateStatus = nil
		f.appRepo.setStatus(app.ID, models.ApplicationStatusRejected)
	}

	_, err = f.svc.TransitionStatus(ctx, app.ID, models.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	stored, err := f.appRepo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, stored.Status)
}

func TestGetApplication_Authorization(t *testing.T) {
	t.Parallel()
	f := newAppServiceFixture()
	ctx := context.Background()

	owner := f.addUser(models.UserStatusApproved)
	other := f.userRepo.add(&models.User{
		Email:  "other@test.com",
		Role:   models.UserRoleUser,
		Status: models.UserStatusApproved,
	})
	job := f.addJob(50)
	app, err := f.svc.SubmitApplication(ctx, job.ID, owner.ID, submitRequest())
	require.NoError(t, err)

	_, err = f.svc.GetApplication(ctx, app.ID, other.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	got, err := f.svc.GetApplication(ctx, app.ID, other.ID, true)
	require.NoError(t, err)
	assert.Equal(t, app.ID, got.ID)

	got, err = f.svc.GetApplication(ctx, app.ID, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, app.ID, got.ID)
}

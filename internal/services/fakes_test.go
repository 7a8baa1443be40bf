package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"microjob_backend/internal/models"
	"microjob_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// In-memory реализации репозиториев с той же семантикой, что у
// Postgres-вариантов: create-if-absent, условные переводы статуса,
// идемпотентный леджер, условный дебет.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	saved map[string]map[string]bool // userID -> jobID -> saved
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[string]*models.User),
		saved: make(map[string]map[string]bool),
	}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, userID string, status models.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Status = status
	return nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) SaveJob(_ context.Context, userID, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved[userID] == nil {
		r.saved[userID] = make(map[string]bool)
	}
	r.saved[userID][jobID] = true
	return nil
}

func (r *fakeUserRepo) UnsaveJob(_ context.Context, userID, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.saved[userID], jobID)
	return nil
}

func (r *fakeUserRepo) ListSavedJobIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for jobID := range r.saved[userID] {
		out = append(out, jobID)
	}
	sort.Strings(out)
	return out, nil
}

type fakeJobRepo struct {
	mu            sync.Mutex
	jobs          map[string]*models.Job
	failIncrement bool
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *fakeJobRepo) add(job *models.Job) *models.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	r.jobs[job.ID] = job
	return job
}

func (r *fakeJobRepo) FindByID(_ context.Context, id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) FindAll(_ context.Context, limit, offset int) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, job := range r.jobs {
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeJobRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.jobs)), nil
}

func (r *fakeJobRepo) Create(_ context.Context, job *models.Job) error {
	r.add(job)
	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return apperrors.ErrJobNotFound
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) IncrementApplicants(_ context.Context, jobID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failIncrement {
		return apperrors.DatabaseError(apperrors.ErrJobNotFound)
	}
	job, ok := r.jobs[jobID]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	job.Applicants += delta
	return nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]*models.Application

	// beforeUpdateStatus позволяет тесту вклиниться между чтением и
	// условным переводом, имитируя конкурентный перевод статуса
	beforeUpdateStatus func()
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*models.Application)}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.UserID == app.UserID {
			return apperrors.ErrAlreadyApplied
		}
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	copied := *app
	r.apps[app.ID] = &copied
	return nil
}

func (r *fakeApplicationRepo) FindByID(_ context.Context, id string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByUser(_ context.Context, userID string) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, app := range r.apps {
		if app.UserID == userID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindAll(_ context.Context, limit, offset int) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, app := range r.apps {
		out = append(out, *app)
	}
	return out, nil
}

func (r *fakeApplicationRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.apps)), nil
}

func (r *fakeApplicationRepo) HasApplied(_ context.Context, jobID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.JobID == jobID && app.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id string, from, to models.ApplicationStatus, completedAt *time.Time) (bool, error) {
	if r.beforeUpdateStatus != nil {
		r.beforeUpdateStatus()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return false, nil
	}
	if app.Status != from {
		return false, nil
	}
	app.Status = to
	app.CompletedAt = completedAt
	return true, nil
}

// setStatus - прямая правка для имитации конкурентных изменений
func (r *fakeApplicationRepo) setStatus(id string, status models.ApplicationStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app, ok := r.apps[id]; ok {
		app.Status = status
	}
}

type fakeWalletRepo struct {
	mu          sync.Mutex
	users       *fakeUserRepo
	settled     map[string]bool // applicationID -> расчет проведен
	withdrawals map[string]*models.Withdrawal
	txns        []models.WalletTransaction
}

func newFakeWalletRepo(users *fakeUserRepo) *fakeWalletRepo {
	return &fakeWalletRepo{
		users:       users,
		settled:     make(map[string]bool),
		withdrawals: make(map[string]*models.Withdrawal),
	}
}

func (r *fakeWalletRepo) Balance(_ context.Context, userID string) (float64, error) {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	user, ok := r.users.users[userID]
	if !ok {
		return 0, apperrors.ErrUserNotFound
	}
	return user.WalletBalance, nil
}

func (r *fakeWalletRepo) Settle(_ context.Context, applicationID, userID string, amount float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settled[applicationID] {
		return false, nil
	}
	r.settled[applicationID] = true

	appID := applicationID
	r.txns = append(r.txns, models.WalletTransaction{
		BaseModel:     models.BaseModel{ID: uuid.NewString()},
		UserID:        userID,
		Amount:        amount,
		Type:          models.TransactionTypeSettlement,
		ApplicationID: &appID,
	})

	if amount > 0 {
		r.users.mu.Lock()
		if user, ok := r.users.users[userID]; ok {
			user.WalletBalance += amount
		}
		r.users.mu.Unlock()
	}
	return true, nil
}

func (r *fakeWalletRepo) CreateWithdrawal(_ context.Context, w *models.Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users.mu.Lock()
	user, ok := r.users.users[w.UserID]
	if !ok {
		r.users.mu.Unlock()
		return apperrors.ErrUserNotFound
	}
	if user.WalletBalance < w.Amount {
		r.users.mu.Unlock()
		return apperrors.ErrInsufficientBalance
	}
	user.WalletBalance -= w.Amount
	r.users.mu.Unlock()

	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	w.Status = models.WithdrawalStatusPending
	copied := *w
	r.withdrawals[w.ID] = &copied

	wID := w.ID
	r.txns = append(r.txns, models.WalletTransaction{
		BaseModel:    models.BaseModel{ID: uuid.NewString()},
		UserID:       w.UserID,
		Amount:       -w.Amount,
		Type:         models.TransactionTypeWithdrawal,
		WithdrawalID: &wID,
	})
	return nil
}

func (r *fakeWalletRepo) ResolveWithdrawal(_ context.Context, id string, outcome models.WithdrawalStatus) (*models.Withdrawal, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.withdrawals[id]
	if !ok {
		return nil, false, apperrors.ErrWithdrawalNotFound
	}
	if w.Status != models.WithdrawalStatusPending {
		copied := *w
		return &copied, true, nil
	}

	now := time.Now()
	w.Status = outcome
	w.ResolvedAt = &now

	if outcome == models.WithdrawalStatusRejected {
		r.users.mu.Lock()
		if user, ok := r.users.users[w.UserID]; ok {
			user.WalletBalance += w.Amount
		}
		r.users.mu.Unlock()

		wID := w.ID
		r.txns = append(r.txns, models.WalletTransaction{
			BaseModel:    models.BaseModel{ID: uuid.NewString()},
			UserID:       w.UserID,
			Amount:       w.Amount,
			Type:         models.TransactionTypeRefund,
			WithdrawalID: &wID,
		})
	}

	copied := *w
	return &copied, false, nil
}

func (r *fakeWalletRepo) FindWithdrawalByID(_ context.Context, id string) (*models.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.withdrawals[id]
	if !ok {
		return nil, apperrors.ErrWithdrawalNotFound
	}
	copied := *w
	return &copied, nil
}

func (r *fakeWalletRepo) ListWithdrawalsByUser(_ context.Context, userID string) ([]models.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Withdrawal
	for _, w := range r.withdrawals {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWalletRepo) ListAllWithdrawals(_ context.Context, limit, offset int) ([]models.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Withdrawal
	for _, w := range r.withdrawals {
		out = append(out, *w)
	}
	return out, nil
}

func (r *fakeWalletRepo) ListTransactions(_ context.Context, userID string) ([]models.WalletTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.WalletTransaction
	for _, txn := range r.txns {
		if txn.UserID == userID {
			out = append(out, txn)
		}
	}
	return out, nil
}

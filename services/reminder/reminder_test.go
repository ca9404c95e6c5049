package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"medvault/models"
	"medvault/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeReminderRepo struct {
	mu    sync.Mutex
	items map[string]models.Reminder
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{items: make(map[string]models.Reminder)}
}

func (f *fakeReminderRepo) Create(_ context.Context, rem *models.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[rem.ID] = *rem
	return nil
}

func (f *fakeReminderRepo) GetByID(_ context.Context, id string) (*models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rem, ok := f.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &rem, nil
}

func (f *fakeReminderRepo) Update(_ context.Context, rem *models.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[rem.ID] = *rem
	return nil
}

func (f *fakeReminderRepo) ListActiveByUser(_ context.Context, userID string) ([]models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reminder
	for _, rem := range f.items {
		if rem.UserID == userID && rem.IsActive {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) ListUpcomingByUser(_ context.Context, userID string, from, to time.Time) ([]models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reminder
	for _, rem := range f.items {
		if rem.UserID == userID && rem.IsActive && !rem.IsCompleted &&
			!rem.ReminderDate.Before(from) && rem.ReminderDate.Before(to) {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) SetCompleted(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rem, ok := f.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	rem.IsCompleted = true
	f.items[id] = rem
	return nil
}

func (f *fakeReminderRepo) Deactivate(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rem, ok := f.items[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	rem.IsActive = false
	f.items[id] = rem
	return nil
}

type fakeScheduler struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (f *fakeScheduler) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newReminderService() (*DefaultReminderService, *fakeReminderRepo, *fakeScheduler) {
	repo := newFakeReminderRepo()
	sched := &fakeScheduler{}
	svc := &DefaultReminderService{
		Repo:      repo,
		Scheduler: sched,
		Now:       func() time.Time { return time.Date(2025, 3, 3, 8, 0, 0, 0, time.Local) },
	}
	return svc, repo, sched
}

func TestCreateReminder(t *testing.T) {
	svc, _, sched := newReminderService()

	rem, err := svc.Create(context.Background(), "pat-1", models.CreateReminderRequest{
		Type:         "medication",
		Title:        "Take amlodipine",
		ReminderDate: "2025-03-04T09:00",
		Frequency:    models.FrequencyDaily,
	})
	require.NoError(t, err)
	assert.True(t, rem.IsActive)
	assert.False(t, rem.IsCompleted)
	assert.Equal(t, models.FrequencyDaily, rem.Frequency)
	assert.Len(t, sched.tasks, 1, "delivery task enqueued")
}

func TestCreateReminderValidation(t *testing.T) {
	svc, _, _ := newReminderService()
	ctx := context.Background()

	cases := []models.CreateReminderRequest{
		{Type: "medication", Title: "x", ReminderDate: "tomorrow"},
		{Type: "medication", Title: "x", ReminderDate: "2025-03-01T09:00"}, // past
		{Type: "medication", Title: "x", ReminderDate: "2025-03-04T09:00", Frequency: "hourly"},
	}
	for _, req := range cases {
		_, err := svc.Create(ctx, "pat-1", req)
		require.Error(t, err)
		assert.Equal(t, utils.CodeInvalidInput, err.(*utils.AppError).Code)
	}
}

func TestCreateReminderDefaultsToOnce(t *testing.T) {
	svc, _, _ := newReminderService()

	rem, err := svc.Create(context.Background(), "pat-1", models.CreateReminderRequest{
		Type: "appointment", Title: "Visit clinic", ReminderDate: "2025-03-04T09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.FrequencyOnce, rem.Frequency)
}

func TestNextOccurrence(t *testing.T) {
	base := time.Date(2025, 3, 4, 9, 0, 0, 0, time.Local)

	cases := []struct {
		frequency string
		want      time.Time
		recurring bool
	}{
		{models.FrequencyOnce, time.Time{}, false},
		{models.FrequencyDaily, base.AddDate(0, 0, 1), true},
		{models.FrequencyWeekly, base.AddDate(0, 0, 7), true},
		{models.FrequencyMonthly, base.AddDate(0, 1, 0), true},
	}
	for _, tc := range cases {
		rem := models.Reminder{Frequency: tc.frequency, ReminderDate: base}
		next, ok := rem.NextOccurrence(base)
		assert.Equal(t, tc.recurring, ok, tc.frequency)
		if ok {
			assert.True(t, next.Equal(tc.want), tc.frequency)
		}
	}
}

func TestUpdateReminderReschedules(t *testing.T) {
	svc, _, sched := newReminderService()
	ctx := context.Background()

	rem, err := svc.Create(ctx, "pat-1", models.CreateReminderRequest{
		Type: "medication", Title: "x", ReminderDate: "2025-03-04T09:00",
	})
	require.NoError(t, err)
	require.Len(t, sched.tasks, 1)

	// Title-only change does not reschedule.
	_, err = svc.Update(ctx, rem.ID, "pat-1", models.UpdateReminderRequest{Title: "y"})
	require.NoError(t, err)
	assert.Len(t, sched.tasks, 1)

	updated, err := svc.Update(ctx, rem.ID, "pat-1", models.UpdateReminderRequest{
		ReminderDate: "2025-03-05T10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.ReminderDate.Hour())
	assert.Len(t, sched.tasks, 2, "date change enqueues a fresh task")
}

func TestReminderOwnership(t *testing.T) {
	svc, _, _ := newReminderService()
	ctx := context.Background()

	rem, err := svc.Create(ctx, "pat-1", models.CreateReminderRequest{
		Type: "medication", Title: "x", ReminderDate: "2025-03-04T09:00",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, rem.ID, "pat-2", models.UpdateReminderRequest{Title: "y"})
	require.Error(t, err)
	assert.Equal(t, utils.CodeForbidden, err.(*utils.AppError).Code)

	err = svc.Complete(ctx, rem.ID, "pat-2")
	require.Error(t, err)
	assert.Equal(t, utils.CodeForbidden, err.(*utils.AppError).Code)

	err = svc.Delete(ctx, "missing", "pat-1")
	require.Error(t, err)
	assert.Equal(t, utils.CodeNotFound, err.(*utils.AppError).Code)
}

func TestCompleteAndDeleteReminder(t *testing.T) {
	svc, repo, _ := newReminderService()
	ctx := context.Background()

	rem, err := svc.Create(ctx, "pat-1", models.CreateReminderRequest{
		Type: "medication", Title: "x", ReminderDate: "2025-03-04T09:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Complete(ctx, rem.ID, "pat-1"))
	stored, err := repo.GetByID(ctx, rem.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCompleted)

	require.NoError(t, svc.Delete(ctx, rem.ID, "pat-1"))
	stored, err = repo.GetByID(ctx, rem.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	active, err := svc.List(ctx, "pat-1")
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestUpcomingWindow(t *testing.T) {
	svc, _, _ := newReminderService()
	ctx := context.Background()

	for _, date := range []string{"2025-03-03T12:00", "2025-03-04T09:00", "2025-03-20T09:00"} {
		_, err := svc.Create(ctx, "pat-1", models.CreateReminderRequest{
			Type: "medication", Title: "x", ReminderDate: date,
		})
		require.NoError(t, err)
	}

	upcoming, err := svc.Upcoming(ctx, "pat-1", 7*24*time.Hour)
	require.NoError(t, err)
	assert.Len(t, upcoming, 2, "the reminder beyond the window is excluded")
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restock-srv/internal/alert"
	"restock-srv/internal/model"
	"restock-srv/internal/plan"
	"restock-srv/internal/quiethours"
	"restock-srv/pkg/log"
)

// 23:00 UTC on a Wednesday.
var lateEvening = time.Date(2025, 3, 5, 23, 0, 0, 0, time.UTC)

// 12:00 UTC on the same day.
var noon = time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	uc         *implUseCase
	repo       *memAlertRepo
	dispatcher *fakeDispatcher
	now        time.Time
}

func (e *testEnv) setNow(t time.Time) { e.now = t }

func newEnv(users ...model.User) *testEnv {
	env := &testEnv{repo: newMemAlertRepo(), now: noon}
	clock := func() time.Time { return env.now }
	env.dispatcher = &fakeDispatcher{repo: env.repo, now: clock}

	byID := map[string]model.User{}
	for _, u := range users {
		byID[u.ID] = u
	}
	env.uc = New(log.NewNop(), Deps{
		Repo:       env.repo,
		UserRepo:   &memUserRepo{users: byID},
		Plan:       plan.New(plan.DefaultOptions()),
		QuietHours: quiethours.New(),
		Dispatcher: env.dispatcher,
	}, DefaultOptions()).(*implUseCase)
	env.uc.clock = clock
	return env
}

func freeUser(id string) model.User {
	return model.User{ID: id, Email: id + "@example.com", Settings: model.NotificationSettings{WebPush: true}}
}

func quietUser(id string) model.User {
	u := freeUser(id)
	u.QuietHours = model.QuietHoursConfig{Enabled: true, StartTime: "22:00", EndTime: "08:00", Timezone: "UTC"}
	return u
}

func restockEvent(userID, productID string) alert.SubmitInput {
	return alert.SubmitInput{
		UserID:     userID,
		ProductID:  productID,
		RetailerID: "r1",
		Type:       model.AlertTypeRestock,
		Payload:    model.AlertPayload{ProductName: "Switch 2", RetailerName: "Target"},
	}
}

func seed(repo *memAlertRepo, userID string, n int, created time.Time) {
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("seed-%s-%d", userID, i)
		repo.alerts[id] = model.Alert{
			ID: id, UserID: userID, ProductID: id, RetailerID: "r1", Type: model.AlertTypeRestock,
			Status: model.AlertStatusSent, CreatedAt: created, UpdatedAt: created,
		}
	}
}

func TestSubmitFreeTierDispatchesImmediately(t *testing.T) {
	env := newEnv(freeUser("u1"))

	out, err := env.uc.SubmitAvailabilityEvent(context.Background(), restockEvent("u1", "p1"))
	require.NoError(t, err)

	assert.Equal(t, alert.StatusAccepted, out.Status)
	require.NotNil(t, out.Delivery)
	assert.Equal(t, []string{model.ChannelWebPush}, out.Delivery.SuccessfulChannels)

	calls := env.dispatcher.dispatched()
	require.Len(t, calls, 1)
	assert.Equal(t, model.PriorityHigh, calls[0].Priority)

	saved := env.repo.get(out.AlertID)
	assert.Equal(t, model.AlertStatusSent, saved.Status)
	assert.Nil(t, saved.ScheduledFor)
	assert.Equal(t, noon, saved.CreatedAt)
}

func TestSubmitBoostsPriorityByTier(t *testing.T) {
	premium := freeUser("u1")
	premium.PlanID = "price_premium_monthly"
	pro := freeUser("u2")
	pro.SubscriptionTier = "pro"
	env := newEnv(premium, pro)

	ev := restockEvent("u1", "p1")
	ev.Type = model.AlertTypeLowStock
	out, err := env.uc.SubmitAvailabilityEvent(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, model.PriorityHigh, env.repo.get(out.AlertID).Priority)

	out, err = env.uc.SubmitAvailabilityEvent(context.Background(), restockEvent("u1", "p2"))
	require.NoError(t, err)
	assert.Equal(t, model.PriorityUrgent, env.repo.get(out.AlertID).Priority)

	ev = restockEvent("u2", "p1")
	ev.Type = model.AlertTypePriceDrop
	out, err = env.uc.SubmitAvailabilityEvent(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, model.PriorityHigh, env.repo.get(out.AlertID).Priority)
}

func TestSubmitDeduplicatesWithinWindow(t *testing.T) {
	env := newEnv(freeUser("u1"))
	ctx := context.Background()

	first, err := env.uc.SubmitAvailabilityEvent(ctx, restockEvent("u1", "p1"))
	require.NoError(t, err)
	require.Equal(t, alert.StatusAccepted, first.Status)

	env.setNow(noon.Add(15 * time.Minute))
	second, err := env.uc.SubmitAvailabilityEvent(ctx, restockEvent("u1", "p1"))
	require.NoError(t, err)
	assert.Equal(t, alert.StatusDeduplicated, second.Status)
	assert.Equal(t, first.AlertID, second.AlertID)
	assert.Nil(t, second.Delivery)

	other := restockEvent("u1", "p1")
	other.Type = model.AlertTypePriceDrop
	third, err := env.uc.SubmitAvailabilityEvent(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, alert.StatusAccepted, third.Status)

	env.setNow(noon.Add(20 * time.Minute))
	fourth, err := env.uc.SubmitAvailabilityEvent(ctx, restockEvent("u1", "p1"))
	require.NoError(t, err)
	assert.Equal(t, alert.StatusAccepted, fourth.Status)
	assert.NotEqual(t, first.AlertID, fourth.AlertID)
	assert.Equal(t, 3, env.repo.len())
}

func TestSubmitRateLimit(t *testing.T) {
	tcs := map[string]struct {
		existing int
		age      time.Duration
		want     alert.SubmitStatus
	}{
		"49 in the last hour":     {existing: 49, age: 30 * time.Minute, want: alert.StatusAccepted},
		"50 in the last hour":     {existing: 50, age: 30 * time.Minute, want: alert.StatusRateLimited},
		"60 in the last hour":     {existing: 60, age: time.Minute, want: alert.StatusRateLimited},
		"50 older than an hour":   {existing: 50, age: 61 * time.Minute, want: alert.StatusAccepted},
		"50 exactly an hour back": {existing: 50, age: time.Hour, want: alert.StatusRateLimited},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			env := newEnv(freeUser("u1"))
			seed(env.repo, "u1", tc.existing, noon.Add(-tc.age))

			out, err := env.uc.SubmitAvailabilityEvent(context.Background(), restockEvent("u1", "fresh"))
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Status)
			if tc.want == alert.StatusRateLimited {
				assert.Empty(t, out.AlertID)
				assert.Equal(t, tc.existing, env.repo.len())
				assert.Empty(t, env.dispatcher.dispatched())
			}
		})
	}
}

func TestSubmitDuringQuietHoursSchedules(t *testing.T) {
	env := newEnv(quietUser("u1"))
	env.setNow(lateEvening)

	out, err := env.uc.SubmitAvailabilityEvent(context.Background(), restockEvent("u1", "p1"))
	require.NoError(t, err)

	want := time.Date(2025, 3, 6, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, alert.StatusScheduled, out.Status)
	require.NotNil(t, out.ScheduledFor)
	assert.True(t, want.Equal(*out.ScheduledFor))
	assert.Nil(t, out.Delivery)
	assert.Empty(t, env.dispatcher.dispatched())

	saved := env.repo.get(out.AlertID)
	assert.Equal(t, model.AlertStatusPending, saved.Status)
	assert.Empty(t, saved.DeliveryChannels)
}

func TestSubmitInvalidTimezoneDeliversAnyway(t *testing.T) {
	u := quietUser("u1")
	u.QuietHours.Timezone = "Mars/Olympus_Mons"
	env := newEnv(u)
	env.setNow(lateEvening)

	out, err := env.uc.SubmitAvailabilityEvent(context.Background(), restockEvent("u1", "p1"))
	require.NoError(t, err)
	assert.Equal(t, alert.StatusAccepted, out.Status)
	assert.Len(t, env.dispatcher.dispatched(), 1)
}

func TestSubmitErrors(t *testing.T) {
	env := newEnv(freeUser("u1"))
	ctx := context.Background()

	_, err := env.uc.SubmitAvailabilityEvent(ctx, alert.SubmitInput{UserID: "u1", Type: model.AlertTypeRestock})
	assert.ErrorIs(t, err, alert.ErrInvalidInput)

	bad := restockEvent("u1", "p1")
	bad.Type = "sold_out"
	_, err = env.uc.SubmitAvailabilityEvent(ctx, bad)
	assert.ErrorIs(t, err, alert.ErrInvalidInput)

	_, err = env.uc.SubmitAvailabilityEvent(ctx, restockEvent("ghost", "p1"))
	assert.ErrorIs(t, err, alert.ErrUserNotFound)

	env.repo.createErr = errors.New("db down")
	_, err = env.uc.SubmitAvailabilityEvent(ctx, restockEvent("u1", "p1"))
	assert.EqualError(t, err, "db down")
	assert.Empty(t, env.dispatcher.dispatched())
}

func TestSubmitConcurrentSameKeyCreatesOneAlert(t *testing.T) {
	env := newEnv(freeUser("u1"))

	const n = 10
	var wg sync.WaitGroup
	statuses := make([]alert.SubmitStatus, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := env.uc.SubmitAvailabilityEvent(context.Background(), restockEvent("u1", "p1"))
			if err == nil {
				statuses[i] = out.Status
			}
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, s := range statuses {
		if s == alert.StatusAccepted {
			accepted++
		} else {
			assert.Equal(t, alert.StatusDeduplicated, s)
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, env.repo.len())
	assert.Empty(t, env.uc.locker.local)
}

func TestProcessDueAlerts(t *testing.T) {
	premium := quietUser("premium")
	premium.PlanID = "premium_yearly"
	free := quietUser("free")
	stillQuiet := quietUser("tokyo")
	stillQuiet.QuietHours.Timezone = "Asia/Tokyo"
	stillQuiet.QuietHours.StartTime = "08:00"
	stillQuiet.QuietHours.EndTime = "20:00"

	env := newEnv(premium, free, stillQuiet)
	ctx := context.Background()
	env.setNow(lateEvening)

	freeOut, err := env.uc.SubmitAvailabilityEvent(ctx, restockEvent("free", "p1"))
	require.NoError(t, err)
	env.setNow(lateEvening.Add(30 * time.Minute))
	premiumOut, err := env.uc.SubmitAvailabilityEvent(ctx, restockEvent("premium", "p1"))
	require.NoError(t, err)
	require.Equal(t, alert.StatusScheduled, freeOut.Status)
	require.Equal(t, alert.StatusScheduled, premiumOut.Status)

	// Tokyo is 08:30 next day at 23:30 UTC, inside its 08:00-20:00 window.
	tokyoOut, err := env.uc.SubmitAvailabilityEvent(ctx, restockEvent("tokyo", "p1"))
	require.NoError(t, err)
	require.Equal(t, alert.StatusScheduled, tokyoOut.Status)
	// Pull it due early so the sweep finds it while Tokyo is still quiet.
	tokyo := env.repo.get(tokyoOut.AlertID)
	early := time.Date(2025, 3, 6, 8, 0, 0, 0, time.UTC)
	tokyo.ScheduledFor = &early
	env.repo.alerts[tokyo.ID] = tokyo

	// An alert whose user was deleted.
	orphanAt := early
	env.repo.alerts["orphan"] = model.Alert{
		ID: "orphan", UserID: "deleted", ProductID: "p1", RetailerID: "r1", Type: model.AlertTypeRestock,
		Status: model.AlertStatusPending, ScheduledFor: &orphanAt, CreatedAt: lateEvening,
	}

	// 08:01 UTC: the UTC users are awake, Tokyo is at 17:01.
	env.setNow(time.Date(2025, 3, 6, 8, 1, 0, 0, time.UTC))
	out, err := env.uc.ProcessDueAlerts(ctx)
	require.NoError(t, err)

	assert.Equal(t, alert.SweepOutput{Due: 4, Dispatched: 2, Rescheduled: 1, Failed: 1}, out)

	calls := env.dispatcher.dispatched()
	require.Len(t, calls, 2)
	assert.Equal(t, premiumOut.AlertID, calls[0].ID)
	assert.Equal(t, freeOut.AlertID, calls[1].ID)
	assert.Nil(t, calls[0].ScheduledFor)

	assert.Equal(t, model.AlertStatusSent, env.repo.get(freeOut.AlertID).Status)

	rescheduled := env.repo.get(tokyoOut.AlertID)
	assert.Equal(t, model.AlertStatusPending, rescheduled.Status)
	require.NotNil(t, rescheduled.ScheduledFor)
	assert.True(t, time.Date(2025, 3, 6, 11, 0, 0, 0, time.UTC).Equal(*rescheduled.ScheduledFor))

	orphan := env.repo.get("orphan")
	assert.Equal(t, model.AlertStatusFailed, orphan.Status)
	require.NotNil(t, orphan.FailureReason)
	assert.Equal(t, alert.ErrUserNotFound.Error(), *orphan.FailureReason)

	again, err := env.uc.ProcessDueAlerts(ctx)
	require.NoError(t, err)
	assert.Equal(t, alert.SweepOutput{}, again)
}

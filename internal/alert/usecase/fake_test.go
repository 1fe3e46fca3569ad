package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"restock-srv/internal/alert/repository"
	"restock-srv/internal/dispatch"
	"restock-srv/internal/model"
	userRepo "restock-srv/internal/user/repository"
)

type memAlertRepo struct {
	mu        sync.Mutex
	alerts    map[string]model.Alert
	createErr error
}

func newMemAlertRepo() *memAlertRepo {
	return &memAlertRepo{alerts: map[string]model.Alert{}}
}

func (r *memAlertRepo) Create(_ context.Context, opts repository.CreateOptions) (model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return model.Alert{}, r.createErr
	}
	r.alerts[opts.Alert.ID] = opts.Alert
	return opts.Alert, nil
}

func (r *memAlertRepo) Update(_ context.Context, opts repository.UpdateOptions) (model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.alerts[opts.Alert.ID]
	if !ok {
		return model.Alert{}, repository.ErrNotFound
	}
	if cur.Status != model.AlertStatusPending {
		return model.Alert{}, repository.ErrNotPending
	}
	r.alerts[opts.Alert.ID] = opts.Alert
	return opts.Alert, nil
}

func (r *memAlertRepo) Detail(_ context.Context, id string) (model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.alerts[id]
	if !ok {
		return model.Alert{}, repository.ErrNotFound
	}
	return a, nil
}

func (r *memAlertRepo) FindRecent(_ context.Context, opts repository.FindRecentOptions) (model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *model.Alert
	for _, a := range r.alerts {
		if a.Key() == opts.Key && !a.CreatedAt.Before(opts.Since) {
			if found == nil || a.CreatedAt.After(found.CreatedAt) {
				found = &a
			}
		}
	}
	if found == nil {
		return model.Alert{}, repository.ErrNotFound
	}
	return *found, nil
}

func (r *memAlertRepo) CountByUserSince(_ context.Context, userID string, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.alerts {
		if a.UserID == userID && !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *memAlertRepo) ListDue(_ context.Context, opts repository.ListDueOptions) ([]model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Alert
	for _, a := range r.alerts {
		if a.Status == model.AlertStatusPending && a.ScheduledFor != nil && !a.ScheduledFor.After(opts.Before) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(*out[j].ScheduledFor) })
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *memAlertRepo) get(id string) model.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.alerts[id]
}

func (r *memAlertRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alerts)
}

type memUserRepo struct {
	users map[string]model.User
}

func (r *memUserRepo) Detail(_ context.Context, id string) (model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return model.User{}, userRepo.ErrNotFound
	}
	return u, nil
}

// fakeDispatcher marks every alert sent over web push, like a dispatcher whose channels all succeed.
type fakeDispatcher struct {
	repo *memAlertRepo
	now  func() time.Time

	mu    sync.Mutex
	calls []model.Alert
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, a model.Alert, _ model.User) (dispatch.DeliveryResult, error) {
	d.mu.Lock()
	d.calls = append(d.calls, a)
	d.mu.Unlock()

	channels := []string{model.ChannelWebPush}
	if err := a.MarkSent(channels, d.now()); err != nil {
		return dispatch.DeliveryResult{}, err
	}
	if _, err := d.repo.Update(ctx, repository.UpdateOptions{Alert: a}); err != nil {
		return dispatch.DeliveryResult{}, err
	}
	return dispatch.DeliveryResult{AlertID: a.ID, Status: dispatch.DeliveryStatusSent, SuccessfulChannels: channels}, nil
}

func (d *fakeDispatcher) dispatched() []model.Alert {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.Alert(nil), d.calls...)
}

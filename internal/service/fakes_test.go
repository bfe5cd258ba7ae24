package service

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"

	"github.com/stevenls811118/LightBnB/internal/model"
)

type fakeUsers struct {
	byEmail map[string]*model.User
	byID    map[int64]*model.User
	err     error

	created []model.NewUser
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return f.byEmail[email], f.err
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	return f.byID[id], f.err
}

func (f *fakeUsers) Create(_ context.Context, user model.NewUser) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, user)
	return &model.User{ID: int64(len(f.created)), Name: user.Name, Email: user.Email, Password: user.Password}, nil
}

type fakeProperties struct {
	results []model.PropertyWithRating
	err     error

	searched []model.PropertyFilter
	created  []model.NewProperty
}

func (f *fakeProperties) Search(_ context.Context, filter model.PropertyFilter, _ int) ([]model.PropertyWithRating, error) {
	f.searched = append(f.searched, filter)
	return f.results, f.err
}

func (f *fakeProperties) Create(_ context.Context, p model.NewProperty) (*model.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, p)
	return &model.Property{ID: 42, OwnerID: p.OwnerID, Title: p.Title, City: p.City, CostPerNight: model.ToMinorUnits(p.CostPerNight)}, nil
}

type fakeReservations struct {
	results []model.GuestReservation
	err     error
}

func (f *fakeReservations) ListForGuest(context.Context, int64, int) ([]model.GuestReservation, error) {
	return f.results, f.err
}

type fakeQueue struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default", Type: task.Type()}, nil
}

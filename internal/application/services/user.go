package services

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"users-api/internal/application/ports"
	domain "users-api/internal/domain/user"
	"users-api/internal/infrastructure/metrics"
	"users-api/internal/infrastructure/mq"
	"users-api/internal/interface/api/rest/dto/user"
)

type UserService struct {
	userRepository domain.Repository
	events         ports.EventPublisher
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		events:         events,
		mCounter:       mCounter,
	}
}

func (us *UserService) FindUsers(ctx context.Context) (domain.Users, error) {
	return us.userRepository.FetchUsers(ctx)
}

func (us *UserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	return us.userRepository.FetchUserByID(ctx, id)
}

func (us *UserService) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	uRet, err := us.userRepository.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	us.emit(http.MethodPost, uRet, metrics.UserCreated)

	return uRet, nil
}

func (us *UserService) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	uRet, err := us.userRepository.UpdateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	us.emit(http.MethodPut, uRet, metrics.UserUpdated)

	return uRet, nil
}

func (us *UserService) DeleteUser(ctx context.Context, id domain.ID) (*domain.User, error) {
	uRet, err := us.userRepository.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}

	us.emit(http.MethodDelete, uRet, metrics.UserDeleted)

	return uRet, nil
}

// emit is a no-op for a nil user, i.e. when nothing changed.
func (us *UserService) emit(method string, u *domain.User, counter string) {
	if u == nil {
		return
	}

	us.events.Publish(mq.NewEvent(method, user.ToResponseUser(*u)))
	us.mCounter.WithLabelValues(counter).Inc()
}

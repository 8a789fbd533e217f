package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"qa_automation/domain/entities"
	"qa_automation/infrastructure/config"
)

// Requester is the HTTP capability the services are built on
type Requester interface {
	Get(ctx context.Context, endpoint string, opts ...RequestOption) (*Response, error)
	Post(ctx context.Context, endpoint string, opts ...RequestOption) (*Response, error)
	Put(ctx context.Context, endpoint string, opts ...RequestOption) (*Response, error)
	Patch(ctx context.Context, endpoint string, opts ...RequestOption) (*Response, error)
	Delete(ctx context.Context, endpoint string, opts ...RequestOption) (*Response, error)
}

// Result is the outcome of a service call. Data is decoded only when the
// status code is one the operation expects; otherwise it is the zero value.
type Result[T any] struct {
	StatusCode int
	Data       T
	Response   *Response
}

// UserService wraps the /users endpoints
type UserService struct {
	requester Requester
}

// NewUserService creates a user service over requester
func NewUserService(requester Requester) *UserService {
	return &UserService{requester: requester}
}

// NewDefaultUserService creates a user service against API_BASE_URL
func NewDefaultUserService(s config.APISettings, logger logrus.FieldLogger) *UserService {
	client := NewBaseClient(s.BaseURL, s.Timeout, logger.WithField("component", "UserService"))
	logger.Infof("UserService initialized with base URL: %s", client.BaseURL())
	return NewUserService(client)
}

// Close closes the underlying requester when it holds resources
func (s *UserService) Close() error {
	if c, ok := s.requester.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func result[T any](resp *Response, err error, expected ...int) (Result[T], error) {
	if err != nil {
		return Result[T]{}, err
	}

	r := Result[T]{StatusCode: resp.StatusCode, Response: resp}
	if lo.Contains(expected, resp.StatusCode) {
		if err := resp.JSON(&r.Data); err != nil {
			return r, fmt.Errorf("failed to decode %d response: %w", resp.StatusCode, err)
		}
	}
	return r, nil
}

// GetAllUsers lists users, query may carry pagination or filters
func (s *UserService) GetAllUsers(ctx context.Context, query map[string]string) (Result[[]entities.User], error) {
	resp, err := s.requester.Get(ctx, "/users", WithQuery(query))
	return result[[]entities.User](resp, err, http.StatusOK)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (Result[*entities.User], error) {
	resp, err := s.requester.Get(ctx, fmt.Sprintf("/users/%d", id))
	return result[*entities.User](resp, err, http.StatusOK)
}

// CreateUser accepts 200 or 201 as success
func (s *UserService) CreateUser(ctx context.Context, user entities.User) (Result[*entities.User], error) {
	resp, err := s.requester.Post(ctx, "/users", WithJSON(user))
	return result[*entities.User](resp, err, http.StatusOK, http.StatusCreated)
}

// UpdateUser replaces the user (PUT)
func (s *UserService) UpdateUser(ctx context.Context, id int, user entities.User) (Result[*entities.User], error) {
	resp, err := s.requester.Put(ctx, fmt.Sprintf("/users/%d", id), WithJSON(user))
	return result[*entities.User](resp, err, http.StatusOK)
}

// PartialUpdateUser sends only the given fields (PATCH)
func (s *UserService) PartialUpdateUser(ctx context.Context, id int, fields map[string]interface{}) (Result[*entities.User], error) {
	resp, err := s.requester.Patch(ctx, fmt.Sprintf("/users/%d", id), WithJSON(fields))
	return result[*entities.User](resp, err, http.StatusOK)
}

// DeleteUser never decodes a body; Data is always nil
func (s *UserService) DeleteUser(ctx context.Context, id int) (Result[any], error) {
	resp, err := s.requester.Delete(ctx, fmt.Sprintf("/users/%d", id))
	return result[any](resp, err)
}

func (s *UserService) GetUserPosts(ctx context.Context, id int) (Result[[]entities.Post], error) {
	resp, err := s.requester.Get(ctx, fmt.Sprintf("/users/%d/posts", id))
	return result[[]entities.Post](resp, err, http.StatusOK)
}

func (s *UserService) GetUserAlbums(ctx context.Context, id int) (Result[[]entities.Album], error) {
	resp, err := s.requester.Get(ctx, fmt.Sprintf("/users/%d/albums", id))
	return result[[]entities.Album](resp, err, http.StatusOK)
}

// GetUserTodos lists the todos of a user, filtered by completion when completed is set
func (s *UserService) GetUserTodos(ctx context.Context, id int, completed *bool) (Result[[]entities.Todo], error) {
	query := map[string]string{}
	if completed != nil {
		query["completed"] = strconv.FormatBool(*completed)
	}
	resp, err := s.requester.Get(ctx, fmt.Sprintf("/users/%d/todos", id), WithQuery(query))
	return result[[]entities.Todo](resp, err, http.StatusOK)
}

func (s *UserService) SearchUsersByEmail(ctx context.Context, email string) (Result[[]entities.User], error) {
	resp, err := s.requester.Get(ctx, "/users", WithQuery(map[string]string{"email": email}))
	return result[[]entities.User](resp, err, http.StatusOK)
}

func (s *UserService) SearchUsersByUsername(ctx context.Context, username string) (Result[[]entities.User], error) {
	resp, err := s.requester.Get(ctx, "/users", WithQuery(map[string]string{"username": username}))
	return result[[]entities.User](resp, err, http.StatusOK)
}

package user_test

import (
	"context"
	"testing"

	"github.com/ctgmao2/planwise/internal/domain/task"
	"github.com/ctgmao2/planwise/internal/domain/user"
	"github.com/ctgmao2/planwise/internal/infrastructure/persistence/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type userFixture struct {
	store   *memory.Store
	tasks   task.TaskRepository
	service user.Service
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	tasks := memory.NewTaskRepository(store)
	return &userFixture{
		store:   store,
		tasks:   tasks,
		service: user.NewService(users, tasks, store, zap.NewNop()),
	}
}

func TestCreateUser(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateUser(ctx, user.CreateUserInput{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		FullName: "Jordan Doe",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "member", created.Role)
	assert.Equal(t, "JD", created.Initials)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "hunter22", created.PasswordHash)
}

func TestCreateUserValidation(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input user.CreateUserInput
	}{
		{"missing username", user.CreateUserInput{FullName: "x", Password: "p"}},
		{"missing full name", user.CreateUserInput{Username: "x", Password: "p"}},
		{"missing password", user.CreateUserInput{Username: "x", FullName: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateUser(ctx, tt.input)
			assert.ErrorIs(t, err, user.ErrInvalidInput)
		})
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateUser(ctx, user.CreateUserInput{Username: "jdoe", FullName: "Jordan Doe", Password: "p"})
	require.NoError(t, err)

	_, err = f.service.CreateUser(ctx, user.CreateUserInput{Username: "jdoe", FullName: "Other Person", Password: "p"})
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestUpdateUserRederivesInitials(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateUser(ctx, user.CreateUserInput{Username: "jdoe", FullName: "Jordan Doe", Password: "p"})
	require.NoError(t, err)

	newName := "Sam Smith"
	updated, err := f.service.UpdateUser(ctx, created.ID, user.UpdateUserInput{FullName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "SS", updated.Initials)

	// Explicit initials win over derivation.
	custom := "ZZ"
	otherName := "Alex Brown"
	updated, err = f.service.UpdateUser(ctx, created.ID, user.UpdateUserInput{FullName: &otherName, Initials: &custom})
	require.NoError(t, err)
	assert.Equal(t, "ZZ", updated.Initials)
}

func TestAuthenticate(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateUser(ctx, user.CreateUserInput{Username: "jdoe", FullName: "Jordan Doe", Password: "correct horse"})
	require.NoError(t, err)

	authed, err := f.service.Authenticate(ctx, "jdoe", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, created.ID, authed.ID)

	_, err = f.service.Authenticate(ctx, "jdoe", "wrong")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = f.service.Authenticate(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestDeleteUserClearsTaskReferences(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateUser(ctx, user.CreateUserInput{Username: "jdoe", FullName: "Jordan Doe", Password: "p"})
	require.NoError(t, err)
	other := uuid.New()

	assigned := &task.Task{
		ID:         uuid.New(),
		Title:      "assigned",
		Status:     task.TaskStatusNew,
		Priority:   task.TaskPriorityMedium,
		AssigneeID: &created.ID,
		ReporterID: &other,
	}
	reported := &task.Task{
		ID:         uuid.New(),
		Title:      "reported",
		Status:     task.TaskStatusNew,
		Priority:   task.TaskPriorityMedium,
		AssigneeID: &other,
		ReporterID: &created.ID,
	}
	require.NoError(t, f.tasks.Create(ctx, assigned))
	require.NoError(t, f.tasks.Create(ctx, reported))

	require.NoError(t, f.service.DeleteUser(ctx, created.ID))

	_, err = f.service.GetUser(ctx, created.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	// Tasks survive with the references unset; other references are intact.
	got, err := f.tasks.FindByID(ctx, assigned.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID)
	assert.Equal(t, other, *got.ReporterID)

	got, err = f.tasks.FindByID(ctx, reported.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ReporterID)
	assert.Equal(t, other, *got.AssigneeID)
}

func TestDeleteUserNotFound(t *testing.T) {
	f := newUserFixture(t)
	err := f.service.DeleteUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestDeriveInitials(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		want     string
	}{
		{"two names", "Jordan Doe", "JD"},
		{"single name", "Cher", "C"},
		{"three names uses first and last", "Ana Maria Silva", "AS"},
		{"empty", "", ""},
		{"lowercase input", "jordan doe", "JD"},
		{"multibyte first letters", "Éric Øster", "ÉØ"},
		{"single multibyte name", "Åsa", "Å"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, user.DeriveInitials(tt.fullName))
		})
	}
}

package session

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"skillscape/local-app/pkg/data"
	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
	"skillscape/local-app/pkg/storage"
)

func newTestDataManager(t *testing.T) *data.DataManager {
	t.Helper()
	cfg := &model.Config{
		DefaultUser:       "admin",
		DefaultUserActive: true,
		DefaultGroupColor: "#4A90D9",
	}
	dm, err := data.NewDataManager(storage.NewMemoryStore(), cfg, newTestLogger(t))
	require.NoError(t, err)
	return dm
}

func TestSessionCommandDispatch(t *testing.T) {
	logger := newTestLogger(t)
	s := NewSession("test-session", newTestDataManager(t), logger)

	run := func(scope, operation string, args ...string) (interface{}, error) {
		return s.CommandRun(model.Command{Scope: scope, Operation: operation, Args: args})
	}

	t.Run("user select", func(t *testing.T) {
		result, err := run("user", "select", "admin")
		require.NoError(t, err)
		assert.Equal(t, "User 'admin' selected successfully", result)
		require.NotNil(t, s.User)
		assert.Equal(t, "admin", s.User.Username)
	})

	t.Run("group add", func(t *testing.T) {
		result, err := run("group", "add", "Safety")
		require.NoError(t, err)
		assert.Equal(t, "Group 'Safety' added with code A", result)
	})

	t.Run("standard add under a group", func(t *testing.T) {
		result, err := run("standard", "add", "Safety", "Site safety")
		require.NoError(t, err)
		assert.Equal(t, "Standard 'Site safety' added with code A.1", result)
	})

	t.Run("standard add under a parent code", func(t *testing.T) {
		result, err := run("standard", "add", "A.1", "Protective equipment")
		require.NoError(t, err)
		assert.Equal(t, "Standard 'Protective equipment' added with code A.1.1", result)
	})

	t.Run("standard add with unknown target", func(t *testing.T) {
		_, err := run("standard", "add", "Nowhere", "Orphan")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no standard or group named 'Nowhere'")
	})

	t.Run("standard update with field arguments", func(t *testing.T) {
		result, err := run("standard", "update", "A.1.1", "name:PPE basics", "desc:gloves and helmets")
		require.NoError(t, err)
		assert.Equal(t, "Standard A.1.1 updated successfully", result)

		standard, err := s.DataManager.StandardManager.StandardGet("A.1.1")
		require.NoError(t, err)
		assert.Equal(t, "PPE basics", standard.Name)
		assert.Equal(t, "gloves and helmets", standard.Description)
	})

	t.Run("collapse and expand", func(t *testing.T) {
		result, err := run("standard", "collapse", "A.1")
		require.NoError(t, err)
		assert.Equal(t, "Standard A.1 collapsed", result)

		result, err = run("standard", "expand", "A.1")
		require.NoError(t, err)
		assert.Equal(t, "Standard A.1 expanded", result)
	})

	t.Run("staff add and assess", func(t *testing.T) {
		result, err := run("staff", "add", "Dana Reyes", "Trainer")
		require.NoError(t, err)
		assert.Equal(t, "Staff member 'Dana Reyes' added successfully", result)

		result, err = run("staff", "assess", "Dana Reyes", "A.1.1", "4", "solid")
		require.NoError(t, err)
		assert.Equal(t, "'Dana Reyes' scored 4 on A.1.1", result)

		result, err = run("staff", "unassess", "Dana Reyes", "A.1.1")
		require.NoError(t, err)
		assert.Equal(t, "Assessment of A.1.1 for 'Dana Reyes' removed", result)
	})

	t.Run("staff assess with a non-numeric score", func(t *testing.T) {
		_, err := run("staff", "assess", "Dana Reyes", "A.1.1", "high")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `score must be a number between 1 and 5, got "high"`)
	})

	t.Run("group list returns the groups", func(t *testing.T) {
		result, err := run("group", "list")
		require.NoError(t, err)
		groups, ok := result.([]*model.Group)
		require.True(t, ok)
		require.Len(t, groups, 1)
		assert.Equal(t, "Safety", groups[0].Name)
	})

	t.Run("user deselect", func(t *testing.T) {
		result, err := run("user", "select")
		require.NoError(t, err)
		assert.Equal(t, "User deselected", result)
		assert.Nil(t, s.User)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		_, err := run("user", "select", "admin", "wrong")
		require.Error(t, err)
		assert.Equal(t, "invalid credentials", err.Error())
	})

	t.Run("unknown scope", func(t *testing.T) {
		_, err := run("widget", "add", "x")
		require.Error(t, err)
		assert.Equal(t, "invalid command scope", err.Error())
	})

	t.Run("unknown operation", func(t *testing.T) {
		_, err := run("group", "merge", "a", "b")
		require.Error(t, err)
		assert.Equal(t, "invalid command operation", err.Error())
	})
}

func TestSessionExitRequest(t *testing.T) {
	logger := newTestLogger(t)
	s := NewSession("test-session", newTestDataManager(t), logger)

	for _, operation := range []string{"exit", "quit"} {
		_, err := s.CommandRun(model.Command{Scope: "system", Operation: operation})
		assert.ErrorIs(t, err, io.EOF, "system %s signals shutdown through io.EOF", operation)
	}
}

func TestSessionExportImport(t *testing.T) {
	logger := newTestLogger(t)
	dm := newTestDataManager(t)
	s := NewSession("test-session", dm, logger)

	run := func(scope, operation string, args ...string) (interface{}, error) {
		return s.CommandRun(model.Command{Scope: scope, Operation: operation, Args: args})
	}

	_, err := run("group", "add", "Safety")
	require.NoError(t, err)
	_, err = run("standard", "add", "Safety", "Site safety")
	require.NoError(t, err)
	_, err = run("standard", "add", "A.1", "Protective equipment")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalogue.json")
	result, err := run("system", "export", path)
	require.NoError(t, err)
	assert.Equal(t, "Catalogue exported to "+path, result)

	result, err = run("standard", "delete", "A.1", "--cascade")
	require.NoError(t, err)
	assert.Equal(t, "Standard A.1 and its subtree deleted", result)
	_, err = dm.StandardManager.StandardGet("A.1")
	require.Error(t, err)

	result, err = run("system", "import", path)
	require.NoError(t, err)
	assert.Equal(t, "Imported 1 groups, 2 standards and 0 staff members from "+path, result)

	standard, err := dm.StandardManager.StandardGet("A.1.1")
	require.NoError(t, err)
	assert.Equal(t, "A.1", standard.ParentCode)
}

func TestSessionManagerLifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := &model.Config{
		LogFolder:         t.TempDir(),
		CommandLog:        "command.log",
		ErrorLog:          "error.log",
		InfoLog:           "info.log",
		DefaultUser:       "admin",
		DefaultUserActive: true,
		DefaultGroupColor: "#4A90D9",
	}
	logger, err := log.NewLogger(cfg, log.LevelDebug)
	require.NoError(t, err)
	defer logger.Close()

	dm, err := data.NewDataManager(storage.NewMemoryStore(), cfg, logger)
	require.NoError(t, err)

	sm := NewSessionManager(dm, logger)
	defer sm.Stop()

	id, err := sm.SessionAdd()
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, exists := sm.SessionGet(id)
	require.True(t, exists)

	result, err := sm.SessionRun(id, model.Command{Scope: "group", Operation: "add", Args: []string{"Safety"}})
	require.NoError(t, err)
	assert.Equal(t, "Group 'Safety' added with code A", result)

	_, err = sm.SessionRun(id, model.Command{Scope: "group", Operation: "add", Args: []string{"Safety"}})
	require.Error(t, err, "errors travel back through the queue")

	_, err = sm.SessionRun("not-a-session", model.Command{Scope: "group", Operation: "list"})
	require.Error(t, err)
	assert.Equal(t, "session not found", err.Error())

	sm.SessionDelete(id)
	_, exists = sm.SessionGet(id)
	assert.False(t, exists)

	// Deleting an unknown session is a logged no-op
	sm.SessionDelete(id)
}

func TestSessionManagerClearsDeletedUser(t *testing.T) {
	logger := newTestLogger(t)
	dm := newTestDataManager(t)

	sm := NewSessionManager(dm, logger)
	defer sm.Stop()

	id, err := sm.SessionAdd()
	require.NoError(t, err)
	session, exists := sm.SessionGet(id)
	require.True(t, exists)

	user, err := dm.UserManager.UserAdd(model.UserInfo{Username: "dana", Password: "pw", Active: true})
	require.NoError(t, err)
	session.UserSet(user)

	// Deleting an unrelated user leaves the session alone
	_, err = dm.UserManager.UserAdd(model.UserInfo{Username: "other", Active: true})
	require.NoError(t, err)
	require.NoError(t, dm.UserManager.UserDelete("other"))
	require.NotNil(t, session.User)

	require.NoError(t, dm.UserManager.UserDelete("dana"))
	assert.Nil(t, session.User, "sessions must not keep acting as a deleted user")
}

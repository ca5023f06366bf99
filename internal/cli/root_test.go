package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fxola/trivia-api/internal/database"
	"github.com/fxola/trivia-api/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "trivia", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "seed"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"driver", "sqlite-path", "log-level"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue)
	}

	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	require.NotNil(t, serve.Flags().Lookup("addr"))
	seedFlag := serve.Flags().Lookup("seed")
	require.NotNil(t, seedFlag)
	assert.Equal(t, "false", seedFlag.DefValue)
}

// isolateEnv clears the variables that would point a command at real services
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOG_FILE", "")
	t.Setenv("REDIS_ADDR", "")
}

func execute(ctx context.Context, args ...string) (string, error) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestSeedCommand_SQLite(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "trivia.db")

	out, err := execute(context.Background(), "seed", "--driver", "sqlite", "--sqlite-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 6 categories and 19 questions.")

	extra := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(extra, []byte(`
questions:
  - question: What is the boiling point of water at sea level in Celsius?
    answer: "100"
    category: 1
    difficulty: 1
`), 0o600))
	out, err = execute(context.Background(), "seed", "--driver", "sqlite", "--sqlite-path", path, extra)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 0 categories and 1 questions.")

	ctx := context.Background()
	db, err := database.ConnectSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	repo, err := sqlite.NewQuestionRepository(ctx, db)
	require.NoError(t, err)

	questions, err := repo.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 20)
	assert.Equal(t, int64(20), questions[19].ID)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 6)
}

func TestSeedCommand_Errors(t *testing.T) {
	isolateEnv(t)
	_, err := execute(context.Background(), "seed", "--driver", "mongo")
	require.ErrorContains(t, err, `unknown store driver "mongo"`)

	_, err = execute(context.Background(), "seed", "--driver", "memory", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read seed file")

	_, err = execute(context.Background(), "seed", "a.yaml", "b.yaml")
	require.Error(t, err)
}

func TestServeCommand_StopsWithContext(t *testing.T) {
	isolateEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := execute(ctx, "serve", "--driver", "memory", "--seed", "--addr", "127.0.0.1:0")
		done <- err
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not stop")
	}
}

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// testEnv holds isolated config and data directories for one test.
type testEnv struct {
	configDir string
	dataDir   string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	root := t.TempDir()
	return testEnv{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// run executes the CLI with args and returns stdout.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "phonebook %s", strings.Join(args, " "))
	return out
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "version")
	assert.Contains(t, out, "phonebook v"+Version)
	assert.Contains(t, out, modulePath)

	_, err := os.Stat(env.configDir)
	assert.True(t, os.IsNotExist(err), "version does not touch the config dir")
}

func TestInitCreatesConfigAndData(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "init")
	assert.Contains(t, out, "Phonebook initialized successfully")

	cfg, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "backend: sqlite")
	assert.Contains(t, string(cfg), "log_level: warn")

	for _, name := range []string{"contacts.jsonl", "phones.jsonl"} {
		_, err := os.Stat(filepath.Join(env.dataDir, name))
		assert.NoError(t, err, "%s created", name)
	}
}

func TestInitKeepsExistingConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	custom := "backend: sqlite\nlog_level: error\n"
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, configFileExt), []byte(custom), 0o644))

	env.mustRun(t, "init")

	got, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, custom, string(got))
}

func TestUnknownBackendIsSystemError(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, configFileExt), []byte("backend: postgres\n"), 0o644))

	_, err := env.run(t, "all")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
	assert.Equal(t, exitSysError, exitCode(err))
}

func TestAddAndList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "add", "John", "1234567890", "--birthday", "15.06.1990")
	assert.Equal(t, "Contact added.\n", out)

	out = env.mustRun(t, "add", "John", "5555555555")
	assert.Equal(t, "Contact updated.\n", out)

	env.mustRun(t, "add", "Jane")

	out = env.mustRun(t, "all")
	assert.Equal(t,
		"Contact name: John, birthday: 15.06.1990 phones: 1234567890; 5555555555\n"+
			"Contact name: Jane, birthday: none phones: \n",
		out)
}

func TestAllEmpty(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, "No contacts.\n", env.mustRun(t, "all"))
	assert.Equal(t, "[]\n", env.mustRun(t, "--json", "all"))
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "short phone", args: []string{"add", "John", "12345"}, wantErr: types.ErrInvalidPhone},
		{name: "letters in phone", args: []string{"add", "John", "12345abcde"}, wantErr: types.ErrInvalidPhone},
		{name: "bad birthday", args: []string{"add", "John", "--birthday", "31.02.2020"}, wantErr: types.ErrInvalidBirthday},
		{name: "iso birthday", args: []string{"add", "John", "--birthday", "1990-06-15"}, wantErr: types.ErrInvalidBirthday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := env.run(t, tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, exitUserError, exitCode(err))

			assert.Equal(t, "No contacts.\n", env.mustRun(t, "all"), "nothing saved on failure")
		})
	}
}

func TestFailedUpdateSavesNothing(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "John", "1234567890")

	_, err := env.run(t, "add", "John", "bad", "--birthday", "01.01.1990")
	require.ErrorIs(t, err, types.ErrInvalidPhone)

	out := env.mustRun(t, "all")
	assert.Equal(t, "Contact name: John, birthday: none phones: 1234567890\n", out)
}

func TestChange(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "John", "1111111111")
	env.mustRun(t, "add", "John", "1111111111")
	env.mustRun(t, "add", "John", "2222222222")

	out := env.mustRun(t, "change", "John", "1111111111", "3333333333")
	assert.Equal(t, "Phone changed.\n", out)

	assert.Equal(t, "phones: 2222222222; 3333333333\n", env.mustRun(t, "phone", "John"))

	_, err := env.run(t, "change", "John", "2222222222", "bad")
	assert.ErrorIs(t, err, types.ErrInvalidPhone)
	assert.Equal(t, "phones: 2222222222; 3333333333\n", env.mustRun(t, "phone", "John"))

	_, err = env.run(t, "change", "Nobody", "2222222222", "4444444444")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestFindPhone(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "John", "1111111111")

	assert.Equal(t, "1111111111\n", env.mustRun(t, "find-phone", "John", "1111111111"))

	_, err := env.run(t, "find-phone", "John", "2222222222")
	assert.ErrorIs(t, err, errPhoneNotFound)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestDeletePhoneCommands(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "John", "1111111111")
	env.mustRun(t, "add", "John", "2222222222")
	env.mustRun(t, "add", "John", "1111111111")

	env.mustRun(t, "delete-phone", "John", "1111111111")
	assert.Equal(t, "phones: 2222222222\n", env.mustRun(t, "phone", "John"))

	env.mustRun(t, "delete-phone", "John", "9999999999")
	assert.Equal(t, "phones: 2222222222\n", env.mustRun(t, "phone", "John"))

	env.mustRun(t, "delete-phones", "John")
	assert.Equal(t, "phones: \n", env.mustRun(t, "phone", "John"))
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "John")

	assert.Equal(t, "Contact deleted.\n", env.mustRun(t, "delete", "John"))
	assert.Equal(t, "No contacts.\n", env.mustRun(t, "all"))

	_, err := env.run(t, "delete", "John")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestBirthdayCommands(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "John")

	_, err := env.run(t, "show-birthday", "John")
	assert.ErrorIs(t, err, errNoBirthday)

	_, err = env.run(t, "add-birthday", "John", "29.02.2021")
	assert.ErrorIs(t, err, types.ErrInvalidBirthday)

	assert.Equal(t, "Birthday added.\n", env.mustRun(t, "add-birthday", "John", "29.02.2000"))
	assert.Equal(t, "29.02.2000\n", env.mustRun(t, "show-birthday", "John"))

	_, err = env.run(t, "add-birthday", "Nobody", "01.01.2000")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestBirthdays(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Sam", "--birthday", "15.06.1990")
	env.mustRun(t, "add", "Tess", "--birthday", "13.06.1999")
	env.mustRun(t, "add", "Nora")

	// --date is midnight local time on Wednesday 2024-06-12.
	out := env.mustRun(t, "birthdays", "--date", "2024-06-12")
	assert.Equal(t,
		"Monday: Sam\nTuesday: \nWednesday: \nThursday: Tess\nFriday: \n",
		out)
}

func TestBirthdaysJSON(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Sam", "--birthday", "15.06.1990")

	out := env.mustRun(t, "--json", "birthdays", "--date", "2024-06-12")

	var week types.BirthdayWeek
	require.NoError(t, json.Unmarshal([]byte(out), &week))
	require.Len(t, week, 5)
	assert.Equal(t, "Monday", week[0].Day)
	assert.Equal(t, []string{"Sam"}, week[0].Names)
	assert.Equal(t, []string{}, week[4].Names)
}

func TestBirthdaysInvalidDate(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "birthdays", "--date", "12.06.2024")
	assert.ErrorIs(t, err, errInvalidDate)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestJSONContactOutput(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "--json", "add", "John", "1234567890", "--birthday", "15.06.1990")

	var got contactView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "John", got.Name)
	assert.Equal(t, []string{"1234567890"}, got.Phones)
	require.NotNil(t, got.Birthday)
	assert.Equal(t, "15.06.1990", *got.Birthday)

	out = env.mustRun(t, "--json", "all")
	var all []contactView
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	require.Len(t, all, 1)
	assert.Equal(t, "John", all[0].Name)
}

func TestArgsValidation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "change", "John", "1111111111")
	assert.Error(t, err)
	_, err = env.run(t, "add")
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitSuccess},
		{types.ErrInvalidPhone, exitUserError},
		{fmt.Errorf("wrapped: %w", types.ErrInvalidBirthday), exitUserError},
		{&types.ValidationError{Message: "other rule"}, exitUserError},
		{fmt.Errorf("%w: %q", types.ErrNotFound, "x"), exitUserError},
		{errPhoneNotFound, exitUserError},
		{errors.New("disk full"), exitSysError},
		{types.ErrDetached, exitSysError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCode(tt.err), "exitCode(%v)", tt.err)
	}
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/phonebook/internal/paths"
	"github.com/mesh-intelligence/phonebook/pkg/sqlite"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// User-facing lookup errors that are not part of the core model.
var (
	errPhoneNotFound = errors.New("phone not found")
	errNoBirthday    = errors.New("birthday not set")
	errInvalidDate   = errors.New("invalid --date, use YYYY-MM-DD")
)

// attachBackend resolves the data directory, creates a SQLite store and
// attaches it. The caller must call Detach.
func (a *app) attachBackend() (types.Store, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}

	store := sqlite.NewBackend(a.logger)
	if err := store.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}
	return store, nil
}

// withDirectory loads the Directory, runs fn on it, and saves it when save is
// true and fn succeeded. Nothing is written when fn fails.
func (a *app) withDirectory(save bool, fn func(d *types.Directory) error) (err error) {
	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer func() {
		if derr := backend.Detach(); derr != nil && err == nil {
			err = fmt.Errorf("detach backend: %w", derr)
		}
	}()

	d, err := backend.Load()
	if err != nil {
		return fmt.Errorf("load contacts: %w", err)
	}

	if err := fn(d); err != nil {
		a.logger.Debug("command rejected", zap.Error(err))
		return err
	}

	if !save {
		return nil
	}
	if err := backend.Save(d); err != nil {
		return fmt.Errorf("save contacts: %w", err)
	}
	return nil
}

// findRecord returns the record for name or a wrapped ErrNotFound.
func findRecord(d *types.Directory, name string) (*types.Record, error) {
	r, ok := d.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrNotFound, name)
	}
	return r, nil
}

// contactView is the JSON representation of a Record.
type contactView struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday *string  `json:"birthday"`
}

func newContactView(r *types.Record) contactView {
	v := contactView{Name: r.Name(), Phones: r.Phones()}
	if b, ok := r.Birthday(); ok {
		s := b.String()
		v.Birthday = &s
	}
	return v
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// printResult writes v as JSON in --json mode and text otherwise.
func (a *app) printResult(w io.Writer, v any, text string) error {
	if a.flags.jsonMode {
		return printJSON(w, v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"jobtrack/internal/config"
	"jobtrack/internal/store"
)

type Result struct {
	Name   string
	Detail string
	Err    error
}

func (r Result) OK() bool { return r.Err == nil }

// Check inspects the config and data files and never writes to either.
// The returned error joins every failed check.
func Check(ctx context.Context, cfgPath, dataPath string) ([]Result, error) {
	checks := []func() Result{
		func() Result { return checkConfig(cfgPath) },
		func() Result { return checkData(dataPath) },
		func() Result { return checkWritable(filepath.Dir(dataPath)) },
		func() Result { return checkLock(dataPath) },
	}
	results := make([]Result, 0, len(checks))
	var errs []error
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r := c()
		results = append(results, r)
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return results, errors.Join(errs...)
}

func checkConfig(p string) Result {
	r := Result{Name: "config"}
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		r.Detail = p + " not created yet, defaults apply"
		return r
	}
	cfg, err := config.LoadFrom(p)
	if err != nil {
		r.Err = err
		return r
	}
	r.Detail = fmt.Sprintf("%s (theme %s, log level %s)", p, cfg.Theme.Active, cfg.Log.Level)
	return r
}

func checkData(p string) Result {
	r := Result{Name: "data file"}
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		r.Detail = p + " not created yet"
		return r
	}
	apps, err := store.NewFileStore(p, nil).Load()
	if err != nil {
		r.Err = err
		return r
	}
	r.Detail = fmt.Sprintf("%s (%d applications)", p, len(apps))
	return r
}

func checkWritable(dir string) Result {
	r := Result{Name: "data directory", Detail: dir}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		r.Err = err
		return r
	}
	f, err := os.CreateTemp(dir, ".jobtrack-doctor-*")
	if err != nil {
		r.Err = fmt.Errorf("not writable: %w", err)
		return r
	}
	name := f.Name()
	f.Close()
	if err := os.Remove(name); err != nil {
		r.Err = err
	}
	return r
}

func checkLock(p string) Result {
	r := Result{Name: "lock"}
	unlock, err := store.NewFileStore(p, nil).Lock()
	if err != nil {
		r.Err = err
		return r
	}
	r.Detail = "no other instance is using the data file"
	if err := unlock(); err != nil {
		r.Err = err
	}
	return r
}

// pkg/prototype/loader.go
package prototype

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-spaceman/pkg/logging"
	"github.com/opd-ai/go-spaceman/pkg/validation"
)

// Descriptor locations inside the data file system.
const (
	EnginesDir    = "components/engines"
	HardpointsDir = "components/hardpoints"
	ShipsDir      = "ships"
	ShipInfo      = "info.yaml"
	StaticSprite  = "life/static.png"
)

// Loader reads prototype descriptors from a file system.
type Loader struct {
	fsys        fs.FS
	logger      *logging.Logger
	concurrency int
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Loader{fsys: fsys, logger: logger.Component("prototype"), concurrency: 8}
}

type file struct {
	name string
	data []byte
}

// Load reads every descriptor and returns a registry of the prototypes that
// validated. The error combines every problem found in every file; a
// prototype with any problem is left out of the registry. Ships are
// validated after the components they reference.
func (l *Loader) Load(ctx context.Context) (*Registry, error) {
	engineFiles, err := fs.Glob(l.fsys, path.Join(EnginesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("prototype: glob engines: %w", err)
	}
	hardpointFiles, err := fs.Glob(l.fsys, path.Join(HardpointsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("prototype: glob hardpoints: %w", err)
	}
	shipFiles, err := fs.Glob(l.fsys, path.Join(ShipsDir, "*", ShipInfo))
	if err != nil {
		return nil, fmt.Errorf("prototype: glob ships: %w", err)
	}

	names := slices.Concat(hardpointFiles, engineFiles, shipFiles)
	files, err := l.readAll(ctx, names)
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	var errs error
	at := 0
	for _, f := range files[at : at+len(hardpointFiles)] {
		errs = multierr.Append(errs, l.loadHardpoints(f, reg))
	}
	at += len(hardpointFiles)
	for _, f := range files[at : at+len(engineFiles)] {
		errs = multierr.Append(errs, l.loadEngines(f, reg))
	}
	at += len(engineFiles)
	for _, f := range files[at:] {
		errs = multierr.Append(errs, l.loadShip(f, reg))
	}

	l.logger.Info(ctx, "prototypes loaded",
		"ships", len(reg.Ships()),
		"engines", len(reg.Engines()),
		"hardpoints", len(reg.Hardpoints()),
		"errors", len(multierr.Errors(errs)),
	)
	return reg, errs
}

// readAll reads names in parallel, preserving their order.
func (l *Loader) readAll(ctx context.Context, names []string) ([]file, error) {
	files := make([]file, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(l.fsys, name)
			if err != nil {
				return fmt.Errorf("prototype: read %s: %w", name, err)
			}
			files[i] = file{name: name, data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// decode unmarshals data into v. Field type mismatches are reported
// individually through c; any other failure is returned.
func decode(c *validation.Collector, data []byte, v any) error {
	err := yaml.Unmarshal(data, v)
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		for _, msg := range typeErr.Errors {
			c.Addf("%s", msg)
		}
		return nil
	}
	return err
}

func (l *Loader) loadEngines(f file, reg *Registry) error {
	c := validation.NewCollector(f.name)
	var specs []engineSpec
	if err := decode(c, f.data, &specs); err != nil {
		c.Add(err)
		return c.Err()
	}
	for i, spec := range specs {
		sub := c.Sub("engine %s", label(spec.Name, i))
		e := spec.build(sub)
		if sub.Len() == 0 {
			sub.Add(reg.AddEngine(e))
		}
		c.Merge(sub)
	}
	return c.Err()
}

func (l *Loader) loadHardpoints(f file, reg *Registry) error {
	c := validation.NewCollector(f.name)
	var specs []hardpointSpec
	if err := decode(c, f.data, &specs); err != nil {
		c.Add(err)
		return c.Err()
	}
	for i, spec := range specs {
		sub := c.Sub("hardpoint %s", label(spec.Name, i))
		h := spec.build(sub)
		if sub.Len() == 0 {
			sub.Add(reg.AddHardpoint(h))
		}
		c.Merge(sub)
	}
	return c.Err()
}

func (l *Loader) loadShip(f file, reg *Registry) error {
	dir := path.Dir(f.name)
	name := path.Base(dir)
	c := validation.NewCollector(f.name)
	sub := c.Sub("ship %s", name)

	var spec shipSpec
	if err := decode(sub, f.data, &spec); err != nil {
		sub.Add(err)
		c.Merge(sub)
		return c.Err()
	}
	ship := spec.build(sub, name, dir, reg)
	if _, err := fs.Stat(l.fsys, path.Join(dir, StaticSprite)); err != nil {
		sub.Addf("%s is required for all ships", StaticSprite)
	}
	if sub.Len() == 0 {
		sub.Add(reg.AddShip(ship))
	}
	c.Merge(sub)
	return c.Err()
}

func label(name *string, i int) string {
	if name != nil && *name != "" {
		return fmt.Sprintf("%q", *name)
	}
	return fmt.Sprintf("#%d", i)
}

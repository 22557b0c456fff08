// Package appctx holds the state every pvm command runs with: the working
// directories and the resolved host vendor.
package appctx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pvm-php/pvm/internal/config"
	"github.com/pvm-php/pvm/internal/lenaris"
	"github.com/pvm-php/pvm/internal/utils/logger"
)

var log = logger.Logger()

var ErrMissingProperty = errors.New("missing property")

// MissingPropertyError names the Builder property that was not set.
type MissingPropertyError struct {
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("property %s is missing", e.Property)
}

func (e *MissingPropertyError) Is(target error) bool {
	return target == ErrMissingProperty
}

// Context is built once per command run.
type Context struct {
	buildPath   string
	versionPath string
	vendor      lenaris.Vendor
}

func (c *Context) BuildPath() string {
	return c.buildPath
}

func (c *Context) VersionPath() string {
	return c.versionPath
}

func (c *Context) Vendor() lenaris.Vendor {
	return c.vendor
}

// Init creates the build and version directories when missing.
func (c *Context) Init() error {
	for _, dir := range []string{c.versionPath, c.buildPath} {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s exists and is not a directory", dir)
			}
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", dir, err)
		}
		log.Debugf("Creating directory %s", dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// Builder assembles a Context.
type Builder struct {
	buildPath   string
	versionPath string
	discovery   lenaris.DiscoveryService
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) BuildPath(path string) *Builder {
	b.buildPath = path
	return b
}

func (b *Builder) VersionPath(path string) *Builder {
	b.versionPath = path
	return b
}

// Discovery sets the backend used to resolve the vendor. It defaults to
// lenaris.SysInfo.
func (b *Builder) Discovery(ds lenaris.DiscoveryService) *Builder {
	b.discovery = ds
	return b
}

// Build validates the properties and resolves the host vendor.
func (b *Builder) Build() (*Context, error) {
	if b.buildPath == "" {
		return nil, &MissingPropertyError{Property: "build path"}
	}
	if b.versionPath == "" {
		return nil, &MissingPropertyError{Property: "version path"}
	}

	ds := b.discovery
	if ds == nil {
		ds = lenaris.SysInfo{}
	}
	vendor, err := lenaris.Discover(ds)
	if err != nil {
		return nil, fmt.Errorf("unable to build vendor: %w", err)
	}
	log.Debugf("Resolved host vendor: %s", vendor)

	return &Context{
		buildPath:   b.buildPath,
		versionPath: b.versionPath,
		vendor:      vendor,
	}, nil
}

// Default builds a Context from cfg, discovering the host with ds.
func Default(cfg *config.GlobalConfig, ds lenaris.DiscoveryService) (*Context, error) {
	buildPath, err := cfg.BuildsPath()
	if err != nil {
		return nil, err
	}
	versionPath, err := cfg.VersionsPath()
	if err != nil {
		return nil, err
	}
	return NewBuilder().
		BuildPath(buildPath).
		VersionPath(versionPath).
		Discovery(ds).
		Build()
}

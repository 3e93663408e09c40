//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package game

import (
	"context"
	"io/fs"

	"github.com/google/wire"

	"github.com/opd-ai/go-spaceman/pkg/config"
	"github.com/opd-ai/go-spaceman/pkg/logging"
)

// InitializeSession loads the prototypes in data and assembles a Session.
func InitializeSession(ctx context.Context, settings *config.Settings, logger *logging.Logger, data fs.FS) (*Session, error) {
	wire.Build(ProviderSet)
	return nil, nil
}

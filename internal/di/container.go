// Package di provides dependency injection configuration for lutrisart.
package di

import (
	"github.com/samber/do/v2"

	"github.com/lutrisart/lutrisart/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
// flags carries the command-line overrides that take precedence over the
// config file.
func NewContainer(flags providers.Flags) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, flags)

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Remote catalog
	do.Provide(injector, providers.ProvideClient)

	// Pipeline
	do.Provide(injector, providers.ProvideLayout)
	do.Provide(injector, providers.ProvideEngine)

	return injector
}

// Package main is the entrypoint of the pdqstats CLI.
package main

import (
	"os"

	"github.com/mtlpdq/pdqstats/cmd"
	"github.com/mtlpdq/pdqstats/internal/iocache"
	"github.com/mtlpdq/pdqstats/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.LoadEnv()
	defer iocache.CloseCaching()

	cmd.SetCacheManager(iocache.Manager)
	if err := cmd.Execute(); err != nil {
		iocache.CloseCaching()
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// Command nstreed drives an in-memory hierarchical namespace from the
// command line: one-shot create/remove/list/move invocations, an
// interactive line-oriented session, and a concurrent stress harness that
// reproduces original_source/main.c's fixed and randomized workloads.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("nstreed: command failed")
		os.Exit(1)
	}
}

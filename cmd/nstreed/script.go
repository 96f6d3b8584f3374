package main

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/nbtaylor/nstree/nstree"
)

// step is one operation in a script file: a structured stand-in for a line
// of original_source/main.c's hardcoded example_move_test sequence.
type step struct {
	Op     string `yaml:"op"`
	Path   string `yaml:"path,omitempty"`
	Source string `yaml:"source,omitempty"`
	Target string `yaml:"target,omitempty"`
}

func loadScript(path string) ([]step, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading script %q", path)
	}
	var steps []step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, errors.Wrapf(err, "parsing script %q", path)
	}
	return steps, nil
}

// applyScript replays steps against tr, logging but not failing on
// per-step errors: a script rebuilding prior state is expected to re-issue
// operations whose effects may already be present.
func applyScript(tr *nstree.Tree, steps []step) {
	for _, s := range steps {
		var err error
		switch s.Op {
		case "create":
			err = tr.Create(s.Path)
		case "remove":
			err = tr.Remove(s.Path)
		case "move":
			err = tr.Move(s.Source, s.Target)
		case "list":
			_, err = tr.List(s.Path)
		default:
			log.WithField("op", s.Op).Warn("nstreed: unknown script step")
			continue
		}
		if err != nil {
			log.WithError(err).WithField("step", s).Debug("nstreed: script step failed")
		}
	}
}

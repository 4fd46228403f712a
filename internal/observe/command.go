package observe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"proviso/internal/pred"
)

// CommandObserver observes by running a subprocess and decoding its
// stdout as JSON. This is the adapter pattern for cloud-provider
// CLIs: the command is expected to print either a single JSON
// document or an array of resource objects.
type CommandObserver struct {
	name   string
	args   []string
	filter pred.Predicate
	logger *zap.Logger
}

// NewCommandObserver creates an observer for the given command line.
// filter, when non-nil, drops collected objects it rejects.
func NewCommandObserver(name string, args []string, filter pred.Predicate, logger *zap.Logger) *CommandObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandObserver{name: name, args: args, filter: filter, logger: logger}
}

// Observe implements Observer. Process failures and undecodable
// output become Observation errors.
func (c *CommandObserver) Observe(ctx context.Context) *Observation {
	obs := NewObservation()

	cmd := exec.CommandContext(ctx, c.name, c.args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("collecting observation",
		zap.String("command", c.name), zap.Strings("args", c.args))

	if err := cmd.Run(); err != nil {
		detail := err.Error()
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			detail = fmt.Sprintf("%s: %s", err, msg)
		}
		obs.AddError(&ObservationError{Op: "exec " + c.name, Err: fmt.Errorf("%s", detail)})
		return obs
	}

	decodeIntoObservation(stdout.Bytes(), c.filter, obs)
	return obs
}

// FileObserver observes by reading a JSON document from disk, for
// verifying snapshots captured out of band.
type FileObserver struct {
	path   string
	filter pred.Predicate
}

// NewFileObserver creates an observer for the given file path.
func NewFileObserver(path string, filter pred.Predicate) *FileObserver {
	return &FileObserver{path: path, filter: filter}
}

// Observe implements Observer.
func (f *FileObserver) Observe(context.Context) *Observation {
	obs := NewObservation()
	data, err := os.ReadFile(f.path)
	if err != nil {
		obs.AddError(&ObservationError{Op: "read " + f.path, Err: err})
		return obs
	}
	decodeIntoObservation(data, f.filter, obs)
	return obs
}

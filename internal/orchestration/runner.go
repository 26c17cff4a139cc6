package orchestration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"gorm.io/datatypes"

	"github.com/imamik/vpcprov/internal/config"
	"github.com/imamik/vpcprov/internal/inventory"
	"github.com/imamik/vpcprov/internal/logging"
	"github.com/imamik/vpcprov/internal/metrics"
	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
	"github.com/imamik/vpcprov/internal/provisioning"
	"github.com/imamik/vpcprov/internal/util/retry"
)

// TaskStore persists task records and resolves the records a request refers to.
type TaskStore interface {
	provisioning.Inventory
	CreateTask(ctx context.Context, task *inventory.ProvisionTask) error
	UpdateTask(ctx context.Context, task *inventory.ProvisionTask) error
}

// Archiver stores finished task records.
type Archiver interface {
	Archive(ctx context.Context, name string, doc any) (string, error)
}

// Runner executes provisioning tasks one at a time.
type Runner struct {
	gateway  ibmvpc.InstanceProvisioner
	store    TaskStore
	archiver Archiver
	observer provisioning.Observer
	timeouts *config.Timeouts
	logger   logr.Logger
	log      logging.Component
}

// Option configures a Runner.
type Option func(*Runner)

// WithArchiver archives every finished task record.
func WithArchiver(a Archiver) Option {
	return func(r *Runner) {
		r.archiver = a
	}
}

// WithObserver sets the progress observer.
func WithObserver(o provisioning.Observer) Option {
	return func(r *Runner) {
		r.observer = o
	}
}

// WithTimeouts sets the polling cadence and deadline.
func WithTimeouts(t *config.Timeouts) Option {
	return func(r *Runner) {
		r.timeouts = t
	}
}

// NewRunner creates a Runner.
func NewRunner(gateway ibmvpc.InstanceProvisioner, store TaskStore, logger logr.Logger, opts ...Option) *Runner {
	r := &Runner{
		gateway:  gateway,
		store:    store,
		timeouts: config.LoadTimeouts(),
		logger:   logger,
		log:      logging.NewComponent(logger, "runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.observer == nil {
		r.observer = discardObserver{}
	}
	return r
}

// Provision runs a request to completion and returns its task record. The
// record is returned even when provisioning fails; its phase and message
// describe the failure.
func (r *Runner) Provision(ctx context.Context, opts provisioning.Options) (*inventory.ProvisionTask, error) {
	raw, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request options: %w", err)
	}

	task := &inventory.ProvisionTask{
		Options: datatypes.JSON(raw),
		State:   provisioning.StateCreateDestination.String(),
	}
	if err := r.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	r.observer.Printf("Task %s queued for %s", task.ID, opts.Get(provisioning.OptTargetName))

	start := time.Now()
	err = r.run(ctx, task, opts)
	result := "success"
	if err != nil {
		result = "error"
		if errors.Is(err, context.DeadlineExceeded) {
			result = "timeout"
		}
		task.Phase = inventory.PhaseError
		task.Message = err.Error()
	} else {
		task.Phase = inventory.PhaseFinished
	}
	metrics.RecordProvisionDuration(result, time.Since(start).Seconds())

	// The caller's context may already be done; the final record is still saved.
	saveCtx := context.WithoutCancel(ctx)
	if uerr := r.store.UpdateTask(saveCtx, task); uerr != nil {
		r.log.Error("provision", fmt.Sprintf("unable to save task %s", task.ID), uerr)
	}
	r.archive(saveCtx, task)

	return task, err
}

func (r *Runner) run(ctx context.Context, task *inventory.ProvisionTask, opts provisioning.Options) error {
	resolver := provisioning.NewResolver(opts, r.store, r.logger)
	ems, err := resolver.EMS(ctx)
	if err != nil {
		return err
	}
	task.EmsID = ems.ID
	task.Phase = inventory.PhaseActive

	seq := provisioning.NewSequencer(r.logger)
	state := provisioning.StateCreateDestination
	for state != provisioning.StateFinished {
		if err := r.transition(ctx, task, state); err != nil {
			return err
		}

		stepStart := time.Now()
		provisioning.LogStateStart(r.observer, state)

		switch state {
		case provisioning.StateStartClone:
			err = r.startClone(ctx, task, resolver)
		case provisioning.StateCheckClone:
			err = r.checkClone(ctx, task)
		}
		if err != nil {
			provisioning.LogStateFailed(r.observer, state, err)
			return err
		}

		provisioning.LogStateComplete(r.observer, state, time.Since(stepStart))
		state = seq.Step(ctx, state)
	}

	return r.transition(ctx, task, provisioning.StateFinished)
}

func (r *Runner) transition(ctx context.Context, task *inventory.ProvisionTask, state provisioning.State) error {
	task.State = state.String()
	return r.store.UpdateTask(ctx, task)
}

func (r *Runner) startClone(ctx context.Context, task *inventory.ProvisionTask, resolver *provisioning.Resolver) error {
	image, err := resolver.SourceImage(ctx)
	if err != nil {
		return err
	}

	req := provisioning.Build(resolver.Options, image)
	ref, err := provisioning.NewSubmitter(r.gateway, r.logger).Submit(ctx, req)
	if err != nil {
		return err
	}

	task.InstanceRef = ref
	provisioning.LogInstanceSubmitted(r.observer, req.Name, ref)
	return nil
}

func (r *Runner) checkClone(ctx context.Context, task *inventory.ProvisionTask) error {
	pollCtx, cancel := context.WithTimeout(ctx, r.timeouts.Provision)
	defer cancel()

	poller := provisioning.NewPoller(r.gateway, r.logger)
	err := retry.Poll(pollCtx, func(ctx context.Context) (bool, error) {
		done, msg, err := poller.Check(ctx, task.InstanceRef)
		if err != nil {
			return false, err
		}

		provisioning.LogInstanceStatus(r.observer, task.InstanceRef, msg, done)
		if msg != task.Message {
			task.Message = msg
			if err := r.store.UpdateTask(ctx, task); err != nil {
				return false, err
			}
		}
		return done, nil
	},
		retry.WithInitialDelay(r.timeouts.PollInterval),
		retry.WithMaxDelay(r.timeouts.PollMaxInterval),
		retry.WithMaxRetries(r.timeouts.PollMaxChecks),
	)
	if err == nil {
		return nil
	}
	// A check cut short by the deadline is still a timeout.
	timedOut := errors.Is(pollCtx.Err(), context.DeadlineExceeded)
	if !timedOut && provisioning.IsProvisionError(err) {
		return err
	}
	if timedOut && !errors.Is(err, context.DeadlineExceeded) {
		err = errors.Join(err, context.DeadlineExceeded)
	}
	return fmt.Errorf("instance %s did not finish provisioning within %v: %w", task.InstanceRef, r.timeouts.Provision, err)
}

func (r *Runner) archive(ctx context.Context, task *inventory.ProvisionTask) {
	if r.archiver == nil {
		return
	}
	key, err := r.archiver.Archive(ctx, task.ID, task)
	if err != nil {
		r.log.Warn("archive", fmt.Sprintf("unable to archive task %s: %v", task.ID, err))
		return
	}
	r.log.Info("archive", fmt.Sprintf("task %s archived", task.ID), "key", key)
}

type discardObserver struct{}

func (discardObserver) Printf(string, ...any)    {}
func (discardObserver) Event(provisioning.Event) {}

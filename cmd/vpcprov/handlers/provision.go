package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/vpcprov/internal/orchestration"
	"github.com/imamik/vpcprov/internal/provisioning"
	"github.com/imamik/vpcprov/internal/ui"
)

// Provision runs the request in requestPath to completion.
//
// The handler:
//  1. Loads the configuration and the request options
//  2. Creates the VPC API client from IBMCLOUD_API_KEY
//  3. Prepares the task archive when archiving is enabled
//  4. Runs the request and prints the final task record
//
// The task record is printed even when provisioning fails.
func Provision(ctx context.Context, configPath, requestPath string) error {
	opts, err := provisioning.LoadOptions(requestPath)
	if err != nil {
		return err
	}

	s, err := openSession(configPath)
	if err != nil {
		return err
	}
	defer s.Close()

	return provision(ctx, s, opts)
}

func provision(ctx context.Context, s *session, opts provisioning.Options) error {
	store, err := s.inventory()
	if err != nil {
		return err
	}

	gateway, err := s.gateway()
	if err != nil {
		return err
	}

	runnerOpts := []orchestration.Option{
		orchestration.WithObserver(provisioning.NewConsoleObserver(stdout)),
	}
	if s.cfg.Archive.Enabled {
		a, err := prepareArchive(ctx, s)
		if err != nil {
			return err
		}
		runnerOpts = append(runnerOpts, orchestration.WithArchiver(a))
	}

	task, err := orchestration.NewRunner(gateway, store, s.logger, runnerOpts...).Provision(ctx, opts)
	if task != nil {
		fmt.Fprint(stdout, ui.RenderTask(task))
	}
	if err != nil {
		return fmt.Errorf("provisioning failed: %w", err)
	}
	return nil
}

func prepareArchive(ctx context.Context, s *session) (archiver, error) {
	a, err := newArchiver(s.cfg.Archive, loadCredentials())
	if err != nil {
		return nil, fmt.Errorf("failed to create archive client: %w", err)
	}
	if err := a.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare archive bucket: %w", err)
	}
	return a, nil
}

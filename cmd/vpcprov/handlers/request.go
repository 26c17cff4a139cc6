package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/vpcprov/internal/provisioning"
)

// Request builds a provisioning request with the interactive form. The request
// is written to outputPath when it is set and provisioned otherwise.
func Request(ctx context.Context, configPath, outputPath string) error {
	if !isInteractiveTTY() {
		return errors.New("vpcprov request needs an interactive terminal, use 'vpcprov provision -f <file>' instead")
	}

	s, err := openSession(configPath)
	if err != nil {
		return err
	}
	defer s.Close()

	w, err := newWorkflow(ctx, s)
	if err != nil {
		return err
	}

	opts, err := runRequestForm(ctx, w)
	if err != nil {
		return fmt.Errorf("request form: %w", err)
	}

	if outputPath == "" {
		return provision(ctx, s, opts)
	}
	return saveRequest(outputPath, opts)
}

func saveRequest(path string, opts provisioning.Options) error {
	data, err := opts.YAML()
	if err != nil {
		return err
	}
	if err := writeFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write request file: %w", err)
	}
	fmt.Fprintf(stdout, "Request written to %s\n", path)
	fmt.Fprintf(stdout, "Provision it with: vpcprov provision -f %s\n", path)
	return nil
}

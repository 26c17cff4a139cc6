package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/vpcprov/internal/ui"
	"github.com/imamik/vpcprov/internal/workflow"
)

// Options prints the allowed values of one request field category.
func Options(ctx context.Context, configPath, category string) error {
	s, err := openSession(configPath)
	if err != nil {
		return err
	}
	defer s.Close()

	w, err := newWorkflow(ctx, s)
	if err != nil {
		return err
	}

	d, err := w.Allowed(ctx, category)
	if err != nil {
		return err
	}

	fmt.Fprint(stdout, ui.RenderDropdown(category, d))
	return nil
}

func newWorkflow(ctx context.Context, s *session) (*workflow.Workflow, error) {
	ems, err := s.ems(ctx)
	if err != nil {
		return nil, err
	}
	gateway, err := s.gateway()
	if err != nil {
		return nil, err
	}
	return workflow.New(ems.ID, s.store, gateway, s.logger), nil
}

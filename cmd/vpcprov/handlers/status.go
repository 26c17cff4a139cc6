package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/vpcprov/internal/provisioning"
	"github.com/imamik/vpcprov/internal/ui"
)

// Status checks the provisioning status of an instance once and prints it.
// A failed instance is reported as an error.
func Status(ctx context.Context, configPath, instanceID string) error {
	s, err := openSession(configPath)
	if err != nil {
		return err
	}
	defer s.Close()

	gateway, err := s.gateway()
	if err != nil {
		return err
	}

	done, msg, err := provisioning.NewPoller(gateway, s.logger).Check(ctx, instanceID)
	if err != nil {
		return fmt.Errorf("instance %s: %w", instanceID, err)
	}

	fmt.Fprint(stdout, ui.RenderStatus(instanceID, done, msg))
	return nil
}

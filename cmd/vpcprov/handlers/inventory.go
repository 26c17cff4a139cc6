package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/vpcprov/internal/inventory"
)

// InventoryAddEMS registers the configured management system. uid defaults
// to the configured account id.
func InventoryAddEMS(ctx context.Context, configPath, uid string) error {
	s, err := openSession(configPath)
	if err != nil {
		return err
	}
	defer s.Close()

	store, err := s.inventory()
	if err != nil {
		return err
	}

	existing, err := store.GetEMSByName(ctx, s.cfg.EMS)
	switch {
	case err == nil:
		fmt.Fprintf(stdout, "Management system %q is already registered (id %d)\n", existing.Name, existing.ID)
		return nil
	case !errors.Is(err, inventory.ErrNotFound):
		return err
	}

	if uid == "" {
		uid = s.cfg.AccountID
	}
	ems := &inventory.ExtManagementSystem{
		Name:   s.cfg.EMS,
		UidEms: uid,
		Region: s.cfg.Region,
	}
	if err := store.CreateEMS(ctx, ems); err != nil {
		return err
	}

	s.log.Info("add_ems", fmt.Sprintf("registered management system %s", ems.Name), "id", ems.ID)
	fmt.Fprintf(stdout, "Registered management system %q (id %d) in %s\n", ems.Name, ems.ID, ems.Region)
	fmt.Fprintln(stdout, "Next: vpcprov inventory refresh")
	return nil
}

// InventoryRefresh replaces the cached inventory of the configured
// management system with the provider's current lists.
func InventoryRefresh(ctx context.Context, configPath string) error {
	s, err := openSession(configPath)
	if err != nil {
		return err
	}
	defer s.Close()

	ems, err := s.ems(ctx)
	if err != nil {
		return err
	}
	gateway, err := s.gateway()
	if err != nil {
		return err
	}

	snap, err := inventory.Refresh(ctx, s.store, gateway, ems.ID)
	if err != nil {
		return fmt.Errorf("inventory refresh failed: %w", err)
	}

	s.log.Info("refresh", fmt.Sprintf("refreshed inventory of %s", ems.Name))
	fmt.Fprintf(stdout, "Refreshed inventory of %q\n", ems.Name)
	fmt.Fprintf(stdout, "  zones:     %d\n", len(snap.Zones))
	fmt.Fprintf(stdout, "  profiles:  %d\n", len(snap.Flavors))
	fmt.Fprintf(stdout, "  vpcs:      %d\n", len(snap.Networks))
	fmt.Fprintf(stdout, "  subnets:   %d\n", len(snap.Subnets))
	fmt.Fprintf(stdout, "  volumes:   %d\n", len(snap.Volumes))
	fmt.Fprintf(stdout, "  images:    %d\n", len(snap.Templates))
	return nil
}

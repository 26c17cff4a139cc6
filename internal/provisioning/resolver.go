package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"

	"github.com/imamik/vpcprov/internal/inventory"
	"github.com/imamik/vpcprov/internal/logging"
)

// Inventory is the part of the local inventory a Resolver reads.
type Inventory interface {
	GetTemplate(ctx context.Context, id uint) (*inventory.Template, error)
	GetEMS(ctx context.Context, id uint) (*inventory.ExtManagementSystem, error)
}

// Resolver resolves the records a request refers to. Lookups are done once per
// Resolver; a new request needs a new Resolver.
type Resolver struct {
	Options Options

	inv Inventory
	log logging.Component

	image *inventory.Template
	ems   *inventory.ExtManagementSystem
}

// NewResolver returns a Resolver over opts.
func NewResolver(opts Options, inv Inventory, log logr.Logger) *Resolver {
	return &Resolver{
		Options: opts,
		inv:     inv,
		log:     logging.NewComponent(log, "provision"),
	}
}

// Log returns the component logger of the request.
func (r *Resolver) Log() logging.Component {
	return r.log
}

// SourceImage returns the template selected with src_vm_id.
func (r *Resolver) SourceImage(ctx context.Context) (*inventory.Template, error) {
	if r.image != nil {
		return r.image, nil
	}

	raw := r.Options.Get(OptSourceImage)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		err = fmt.Errorf("invalid source template id %q", raw)
		r.log.Error("source_image", "unable to resolve source template", err)
		return nil, newError("source_image", err)
	}

	image, err := r.inv.GetTemplate(ctx, uint(id))
	if err != nil {
		r.log.Error("source_image", fmt.Sprintf("unable to find source template %d", id), err)
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, &Error{Op: "source_image", Message: fmt.Sprintf("Unable to find source template %d", id), Err: err}
		}
		return nil, newError("source_image", err)
	}

	r.image = image
	return image, nil
}

// EMS returns the management system owning the source template.
func (r *Resolver) EMS(ctx context.Context) (*inventory.ExtManagementSystem, error) {
	if r.ems != nil {
		return r.ems, nil
	}

	image, err := r.SourceImage(ctx)
	if err != nil {
		return nil, err
	}

	ems, err := r.inv.GetEMS(ctx, image.EmsID)
	if err != nil {
		r.log.Error("ems", fmt.Sprintf("unable to find management system %d", image.EmsID), err)
		return nil, newError("ems", err)
	}

	r.ems = ems
	return ems, nil
}

// CloudInstanceID returns the provider account id of the management system.
func (r *Resolver) CloudInstanceID(ctx context.Context) (string, error) {
	ems, err := r.EMS(ctx)
	if err != nil {
		return "", err
	}
	return ems.UidEms, nil
}

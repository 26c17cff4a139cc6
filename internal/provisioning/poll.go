package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/imamik/vpcprov/internal/logging"
	"github.com/imamik/vpcprov/internal/metrics"
	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
)

// Status is the classification of a provider-reported instance status.
type Status string

// Status classes.
const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusFailed  Status = "failed"
	StatusUnknown Status = "unknown"
)

// Status messages reported to the host.
const (
	MsgProvisioning    = "The server is being provisioned."
	MsgProvisioned     = "The server has been provisioned."
	MsgProvisionFailed = "An error occurred while provisioning the instance."
)

var pendingStatuses = map[string]bool{
	"pausing":    true,
	"pending":    true,
	"restarting": true,
	"resuming":   true,
	"starting":   true,
	"stopping":   true,
}

// Classify maps a provider status string to its class. Matching is
// case-insensitive.
func Classify(raw string) Status {
	status := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case pendingStatuses[status]:
		return StatusPending
	case status == "running":
		return StatusRunning
	case status == "failed":
		return StatusFailed
	default:
		return StatusUnknown
	}
}

// UnknownStateMessage is reported for statuses outside the known classes.
func UnknownStateMessage(raw string) string {
	return fmt.Sprintf("Unknown server state received from the cloud API: '%s'", raw)
}

// Poller checks whether a submitted instance finished provisioning.
type Poller struct {
	gateway ibmvpc.InstanceProvisioner
	log     logging.Component
}

// NewPoller returns a Poller using gateway.
func NewPoller(gateway ibmvpc.InstanceProvisioner, log logr.Logger) *Poller {
	return &Poller{gateway: gateway, log: logging.NewComponent(log, "poller")}
}

// Check fetches the instance once and reports whether it is done along with a
// message for the user. A failed instance or an unreachable provider is a
// provisioning error. Unknown statuses are not done and never an error. Check
// does not wait; cadence and deadline belong to the caller.
func (p *Poller) Check(ctx context.Context, ref string) (bool, string, error) {
	instance, err := p.gateway.GetInstance(ctx, ref)
	if err != nil {
		metrics.RecordStatusCheck("error")
		p.log.Error("check", fmt.Sprintf("unable to fetch instance %s", ref), err)
		return false, "", newError("check", err)
	}

	status := Classify(instance.Status)
	metrics.RecordStatusCheck(string(status))

	switch status {
	case StatusRunning:
		return true, MsgProvisioned, nil
	case StatusFailed:
		p.log.Info("check", MsgProvisionFailed, "instance", ref)
		return false, "", &Error{Op: "check", Message: MsgProvisionFailed, Err: errors.New(instance.Status)}
	case StatusPending:
		return false, MsgProvisioning, nil
	default:
		msg := UnknownStateMessage(instance.Status)
		p.log.Warn("check", msg, "instance", ref)
		return false, msg, nil
	}
}

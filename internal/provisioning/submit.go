package provisioning

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-logr/logr"

	"github.com/imamik/vpcprov/internal/logging"
	"github.com/imamik/vpcprov/internal/metrics"
	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
)

// Submitter sends instance-creation documents to the provider.
type Submitter struct {
	gateway ibmvpc.InstanceProvisioner
	log     logging.Component
}

// NewSubmitter returns a Submitter using gateway.
func NewSubmitter(gateway ibmvpc.InstanceProvisioner, log logr.Logger) *Submitter {
	return &Submitter{gateway: gateway, log: logging.NewComponent(log, "submitter")}
}

// Submit creates the instance and returns the provider's instance id. Any
// failure is returned as a provisioning error carrying the provider message.
// Submission is not retried.
func (s *Submitter) Submit(ctx context.Context, req *ibmvpc.InstancePrototype) (string, error) {
	if payload, err := json.Marshal(req); err == nil {
		s.log.Debug("submit", "outbound payload", "payload", string(payload))
	}

	instance, err := s.gateway.CreateInstance(ctx, req)
	if err != nil {
		metrics.RecordSubmission("error")
		s.log.Error("submit", "instance creation failed", err)
		return "", newError("submit", err)
	}
	if instance == nil || instance.ID == "" {
		metrics.RecordSubmission("error")
		return "", newError("submit", errors.New("provider returned no instance id"))
	}

	metrics.RecordSubmission("success")
	s.log.Info("submit", "instance accepted", "instance", instance.ID, "name", instance.Name)
	return instance.ID, nil
}

// Package provisioning places virtual server instances on IBM Cloud VPC.
//
// A provisioning run walks the [State] chain with [Next]. The pre-provision
// steps (create_destination through prepare_provision) are placeholders reserved
// for volume and network creation. Once they are done the host builds the
// instance-creation document with [Build], hands it to a [Submitter] and calls
// [Poller.Check] until the instance leaves its transitional states.
//
// # Core Types
//
// Options is the flat option store of a request; each value is a scalar or an
// (id, label) pair as recorded by the request form.
// Resolver resolves the source template and management system of a request.
// Error is the single provisioning error kind; test with [IsProvisionError].
// Observer reports progress of a run on the console.
package provisioning

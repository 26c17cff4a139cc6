// Package ibmvpc wraps the IBM Cloud VPC API behind small typed interfaces.
//
// # Architecture
//
//   - client.go: gateway interfaces consumed by provisioning and the form workflow
//   - types.go: decoded domain types and the instance-creation document
//   - real_client.go: RealClient backed by vpc-go-sdk and the resource manager SDK
//   - decode.go: typed decoding of SDK models, missing required fields are errors
//   - errors.go: error classification (not found, decoding)
//   - mock_client.go: function-field mock used by tests across the module
//
// SDK responses are never handed out untyped. Every model is decoded at this
// boundary into a struct whose required fields are guaranteed present, so callers
// never probe documents for keys.
//
// # Example Usage
//
//	client, err := ibmvpc.NewRealClient(apiKey, cfg)
//	if err != nil {
//	    return err
//	}
//	instance, err := client.CreateInstance(ctx, prototype)
package ibmvpc

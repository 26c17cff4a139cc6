// Package naming provides consistent names for the resources vpcprov creates.
//
// A boot volume is named after its instance with a "_boot" suffix, and an
// archived task record is stored as <prefix>/<task id>.json.
package naming

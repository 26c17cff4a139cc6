// Package cos archives provisioning task records to IBM Cloud Object Storage.
//
// COS speaks the S3 protocol with HMAC credentials, so the client is built on
// the AWS SDK with a static credentials provider and the regional COS endpoint.
package cos

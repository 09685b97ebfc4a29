// Package environment identifies the deployment environment from APP_ENV and
// threads it through context. The logger factory selects output format and
// level from it, and the trust-boundary packages consult IsProduction for
// fail-fast decisions around missing key material.
package environment

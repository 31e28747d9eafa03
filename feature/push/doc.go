// Package push ingests the viewer's client settings and web push subscriptions.
//
// Every setting owns one subscription per push policy. The active subscription is
// the one activated most recently; posting a subscription whose alerts changed
// makes its policy the active one.
//
// # HTTP Endpoints
//
//   - POST /push/:domain/setting : Reconciles the viewer's setting properties.
//   - POST /push/:domain/subscription : Reconciles a push subscription. The policy
//     comes from the X-Push-Policy header, then the payload, then the default.
//   - GET /push/:domain/subscription : Returns the viewer's active subscription.
package push

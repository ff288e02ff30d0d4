// Package strato provides types, interfaces, and helpers for working with
// OpenStack-compatible cloud APIs.
//
// # Overview
//
// The strato package defines the domain types (Network, Subnet, Port,
// FloatingIP, Server) and the interfaces for resource-oriented clients
// (NetworksClient, PortsClient, ...). A concrete implementation of these
// clients is provided by the osclient package, which wires configuration,
// transport, authentication, and service discovery. Most consumers should
// import osclient to construct a client and then interact with the resource
// client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/strato-io/strato/pkg/osclient"
//	  "github.com/strato-io/strato/pkg/strato"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := osclient.NewWithPassword(ctx, "https://cloud.example.com:5000",
//	    "user", "pass", "project")
//	  if err != nil { log.Fatal(err) }
//
//	  networks, err := cli.Networks().List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = networks
//	}
//
// # Queries and pagination
//
// Use Query to express list filters; it preserves insertion order when
// encoding. Collections are iterated lazily with marker-based pagination:
//
//	it := cli.Ports().Iterate(ctx, strato.NewQuery().Set("network_id", netID))
//	for {
//	  port, err := it.Next()
//	  if errors.Is(err, strato.ErrNoMoreItems) { break }
//	  if err != nil { /* handle error */ }
//	  _ = port
//	}
//
// or collect everything at once with it.All(), or use First/One for
// queries expected to match a single resource.
//
// # Versions and discovery
//
// Service endpoints are discovered by fetching their version document and
// walking up the URL path on 404. The negotiated microversion is controlled
// with VersionSelector (LatestVersion, MinimumVersion, ExactVersion,
// VersionChoice) and sent on every request.
//
// # Updates
//
// Resource handles (NetworkHandle, PortHandle, FloatingIPHandle) track which
// fields were modified locally and send only those on Save. Clearing setters
// stage an explicit null, which is distinct from leaving a field untouched.
//
// # Errors
//
// Service errors are represented by APIError plus wrapped sentinel errors.
// Helpers such as IsNotFound, IsUnauthorized, and IsTooManyItems make it
// easy to branch on common cases.
package strato

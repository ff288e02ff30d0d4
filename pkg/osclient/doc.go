// Package osclient provides the primary entry point for constructing a cloud
// API client that implements the strato.Client interface.
//
// It layers configuration, HTTP transport, authentication, and service
// discovery on top of the resource interfaces and types defined in the strato
// package. Most applications should import osclient to build a client, then
// use the returned strato.Client to access resource-specific clients, for
// example Networks(), Ports(), Servers(), etc.
//
// Quick start
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
//
//	  // With username/password: endpoints come from the service catalog.
//	  cli, err := osclient.New(&strato.Config{
//	    AuthURL:     "https://cloud.example.com:5000",
//	    Username:    "demo",
//	    Password:    "secret",
//	    ProjectName: "demo",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a pre-issued token and explicit endpoints:
//	  cli, err = osclient.New(&strato.Config{
//	    Token:           "gAAAAAB...",
//	    NetworkEndpoint: "https://cloud.example.com:9696",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the strato.Client interface
//	  networks, err := cli.Networks().List(ctx, strato.NewQuery().SetBool("shared", true))
//	  if err != nil { log.Fatal(err) }
//	  _ = networks
//	}
//
// On the first API call the client discovers the service's version document,
// walking up the endpoint path if needed, and negotiates a microversion from
// the advertised range. Discovery results are cached per service type.
//
// # Helpers
//
// The package also provides convenience constructors NewWithPassword,
// NewWithToken, and NewWithEndpoint that wrap New with the appropriate
// configuration.
package osclient

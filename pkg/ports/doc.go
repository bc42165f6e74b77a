// Package ports declares the interfaces the workflow core depends on:
// durable configuration storage and the remote generation/simulation
// service. Adapters under internal/adapters implement them; tests
// substitute in-memory fakes without touching real storage or network.
package ports

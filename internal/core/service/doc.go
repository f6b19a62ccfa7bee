// Package service implements the session core of loginchallenge.
//
// The package contains:
//
//   - AuthGateway: simulated login and logout against a single account
//   - UserGateway: simulated profile lookup for the session subject
//   - Controller: single-flight orchestration of login, logout and reload
//
// Gateways simulate a remote backend. Every call waits a fixed latency and
// then draws an Outcome that can turn into a network, server or system
// failure. Both the wait and the draw are injectable so tests stay
// deterministic.
package service

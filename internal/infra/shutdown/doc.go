// Package shutdown provides graceful shutdown for loginchallenge.
//
// This package handles process termination:
//
//   - Signal handling (SIGINT, SIGTERM by default)
//   - Programmatic shutdown via Trigger or Shutdown
//   - Cleanup hooks run once, in reverse registration order, under a timeout
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(server.Shutdown)
//	go h.Wait()
//	defer h.Shutdown()
package shutdown

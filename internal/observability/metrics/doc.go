// Package metrics provides the Prometheus business, AI and database metrics.
//
// HTTP request metrics live with the HTTP middleware; everything here is
// registered with the default registry and exposed via /metrics.
//
//	start := time.Now()
//	out, err := provider.Complete(ctx, req)
//	metrics.RecordAIRequest("openai", "categorize", err == nil, time.Since(start))
package metrics
